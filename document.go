package ember

import "fmt"

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENTS AND THEIR METADATA
// ═══════════════════════════════════════════════════════════════════════════════
// A document enters the engine through AddDocument and is immutable from that
// point on. Three things about it are visible to callers:
//
//  1. Its id        - a non-negative integer chosen by the caller
//  2. Its status    - one of ACTUAL / IRRELEVANT / BANNED / REMOVED
//  3. Its rating    - the averaged user ratings supplied at add time
//
// Search results carry a fourth, computed value: relevance. Relevance is the
// tf-idf score of the document against the query that produced the result,
// so it only exists in the context of a single search.
// ═══════════════════════════════════════════════════════════════════════════════

// DocumentStatus classifies a document's lifecycle state.
//
// The status does not change retrieval mechanics at all: every status is
// indexed identically. It only matters to the predicate that filters results,
// and the default predicate keeps StatusActual documents only.
type DocumentStatus int

const (
	StatusActual DocumentStatus = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

// String returns the status name used in logs and demo output.
func (s DocumentStatus) String() string {
	switch s {
	case StatusActual:
		return "ACTUAL"
	case StatusIrrelevant:
		return "IRRELEVANT"
	case StatusBanned:
		return "BANNED"
	case StatusRemoved:
		return "REMOVED"
	}
	return fmt.Sprintf("DocumentStatus(%d)", int(s))
}

// Document is a single search result.
//
// EXAMPLE:
// --------
//
//	{ document_id = 2, relevance = 0.346574, rating = 5 }
//
// Relevance is the sum, over every query plus-word present in the document,
// of term-frequency times inverse-document-frequency (see search.go).
type Document struct {
	ID        int     // Document identifier
	Relevance float64 // tf-idf score against the query
	Rating    int     // Averaged user rating
}

// String formats the document the way the demo driver prints it.
func (d Document) String() string {
	return fmt.Sprintf("{ document_id = %d, relevance = %v, rating = %d }",
		d.ID, d.Relevance, d.Rating)
}

// DocumentPredicate decides whether a document may appear in search results.
//
// It receives the document's id, status and rating and returns true to keep
// the document. Predicates must be pure: the ranker may call them from
// multiple worker goroutines at once.
type DocumentPredicate func(documentID int, status DocumentStatus, rating int) bool

// StatusFilter builds a predicate that keeps documents with the given status.
//
// EXAMPLE:
// --------
//
//	docs, err := server.FindTopDocuments(Sequential, "fluffy cat", StatusFilter(StatusBanned))
func StatusFilter(status DocumentStatus) DocumentPredicate {
	return func(_ int, documentStatus DocumentStatus, _ int) bool {
		return documentStatus == status
	}
}

// computeAverageRating averages the caller-supplied ratings for a document.
//
// The average is floor division of the sum by the count, so a negative sum
// rounds down, not toward zero:
//
//	[8, -4]  → 4/2  → 2
//	[9]      → 9
//	[]       → 0
//	[-3, -4] → -7/2 → -4
func computeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := sum / len(ratings)
	if sum%len(ratings) != 0 && sum < 0 {
		avg--
	}
	return avg
}
