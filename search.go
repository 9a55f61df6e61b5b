// ═══════════════════════════════════════════════════════════════════════════════
// RANKED RETRIEVAL: TF-IDF
// ═══════════════════════════════════════════════════════════════════════════════
// FindTopDocuments scores every candidate document against the query and
// returns the best five.
//
// THE SCORING MODEL:
// ------------------
// For each plus word w and document d containing it:
//
//	score(d) += tf(w, d) × idf(w)
//
// where
//
//	tf(w, d)  = occurrences of w in d / total tokens in d
//	idf(w)    = ln(total documents / documents containing w)
//
// INTUITION:
// ----------
// - tf rewards documents where the word is a big share of the text.
// - idf rewards rare words: a word in every document scores ln(1) = 0,
//   a word in one of four documents scores ln(4) ≈ 1.386.
//
// WORKED EXAMPLE (stop words "на в и", query "кот глаза"):
// --------------------------------------------------------
//	Doc 0: "белый кот и модный ошейник"        (4 tokens, "кот" × 1)
//	Doc 1: "ухоженный пёс выразительные глаза" (4 tokens, "глаза" × 1)
//	Doc 2: "пушистый кот пушистый хвост"       (4 tokens, "кот" × 1)
//	Doc 3: "ухоженный скворец евгений"         (3 tokens, neither)
//
//	idf("кот")   = ln(4/2) ≈ 0.6931   (2 of 4 docs)
//	idf("глаза") = ln(4/1) ≈ 1.3863   (1 of 4 docs)
//
//	score(0) = 0.25 × 0.6931 ≈ 0.1733
//	score(1) = 0.25 × 1.3863 ≈ 0.3466
//	score(2) = 0.25 × 0.6931 ≈ 0.1733
//
// MINUS WORDS:
// ------------
// After plus accumulation, every document containing ANY minus word is
// struck from the accumulator. "кот -хвост" drops Doc 2 no matter how well
// it scored.
//
// ORDERING:
// ---------
// Results sort by relevance descending. Relevances closer than 1e-6 count
// as equal and fall back to rating descending, then document id ascending.
// The id tiebreak makes the order total, so sequential and parallel runs
// return identical listings.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

const (
	// MaxResultDocumentCount is the result cap of FindTopDocuments.
	MaxResultDocumentCount = 5

	// RelevanceEpsilon is the threshold under which two relevance values
	// count as equal for ordering purposes.
	RelevanceEpsilon = 1e-6
)

// FindTopDocuments returns up to five documents matching the query, best
// first, under the given execution policy.
//
// A nil predicate means "status is ACTUAL". The query grammar and error
// cases are those of ParseQuery; a query whose plus set is empty (including
// an all-stop-word query) returns no documents even if minus words remain.
func (s *SearchServer) FindTopDocuments(policy Policy, rawQuery string, predicate DocumentPredicate) ([]Document, error) {
	query, err := s.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	if predicate == nil {
		predicate = StatusFilter(StatusActual)
	}

	var matched []Document
	if policy == Parallel {
		matched = s.findAllDocumentsParallel(query, predicate)
	} else {
		matched = s.findAllDocuments(query, predicate)
	}

	sortDocuments(matched)
	if len(matched) > MaxResultDocumentCount {
		matched = matched[:MaxResultDocumentCount]
	}
	return matched, nil
}

// computeInverseDocumentFreq computes idf for a word known to be indexed.
func (s *SearchServer) computeInverseDocumentFreq(word string) float64 {
	return math.Log(float64(s.GetDocumentCount()) / float64(s.index.DocumentCountFor(word)))
}

// findAllDocuments is the sequential accumulator walk.
//
// Plus words are visited in sorted order (ParseQuery sorts them), so each
// document's relevance sums in a fixed order and the floating-point result
// is reproducible run to run.
func (s *SearchServer) findAllDocuments(query Query, predicate DocumentPredicate) []Document {
	relevance := make(map[int]float64)

	for _, word := range query.PlusWords {
		postings, ok := s.index.PostingsFor(word)
		if !ok {
			continue
		}
		idf := s.computeInverseDocumentFreq(word)
		for documentID, tf := range postings {
			data, ok := s.store.Lookup(documentID)
			if ok && predicate(documentID, data.Status, data.Rating) {
				relevance[documentID] += tf * idf
			}
		}
	}

	for _, word := range query.MinusWords {
		postings, ok := s.index.PostingsFor(word)
		if !ok {
			continue
		}
		for documentID := range postings {
			delete(relevance, documentID)
		}
	}

	// Materialize ascending by id, mirroring the order Snapshot produces
	// on the parallel path.
	ids := make([]int, 0, len(relevance))
	for documentID := range relevance {
		ids = append(ids, documentID)
	}
	sort.Ints(ids)

	matched := make([]Document, 0, len(ids))
	for _, documentID := range ids {
		data, _ := s.store.Lookup(documentID)
		matched = append(matched, Document{
			ID:        documentID,
			Relevance: relevance[documentID],
			Rating:    data.Rating,
		})
	}
	return matched
}

// findAllDocumentsParallel distributes the word loops across workers.
//
// SCHEDULING:
// -----------
// One worker task per plus word, then one per minus word, each bounded by
// GOMAXPROCS. Per-document accumulation goes through the sharded map, so
// two workers only contend when their documents share one of the 128
// shards. Minus erasure starts strictly after every plus worker has
// joined; erase-then-accumulate interleavings cannot happen.
func (s *SearchServer) findAllDocumentsParallel(query Query, predicate DocumentPredicate) []Document {
	relevance := NewConcurrentMap(DefaultShardCount)

	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, word := range query.PlusWords {
		word := word
		group.Go(func() error {
			postings, ok := s.index.PostingsFor(word)
			if !ok {
				return nil
			}
			idf := s.computeInverseDocumentFreq(word)
			for documentID, tf := range postings {
				data, ok := s.store.Lookup(documentID)
				if ok && predicate(documentID, data.Status, data.Rating) {
					access := relevance.At(documentID)
					*access.Value += tf * idf
					access.Release()
				}
			}
			return nil
		})
	}
	_ = group.Wait() // workers never fail

	group = new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, word := range query.MinusWords {
		word := word
		group.Go(func() error {
			postings, ok := s.index.PostingsFor(word)
			if !ok {
				return nil
			}
			for documentID := range postings {
				relevance.Erase(documentID)
			}
			return nil
		})
	}
	_ = group.Wait()

	entries := relevance.Snapshot()
	matched := make([]Document, 0, len(entries))
	for _, entry := range entries {
		data, _ := s.store.Lookup(entry.Key)
		matched = append(matched, Document{
			ID:        entry.Key,
			Relevance: entry.Value,
			Rating:    data.Rating,
		})
	}
	return matched
}

// sortDocuments orders results by (relevance desc, rating desc, id asc),
// treating relevances within RelevanceEpsilon as equal.
func sortDocuments(documents []Document) {
	sort.Slice(documents, func(i, j int) bool {
		lhs, rhs := documents[i], documents[j]
		if math.Abs(lhs.Relevance-rhs.Relevance) < RelevanceEpsilon {
			if lhs.Rating != rhs.Rating {
				return lhs.Rating > rhs.Rating
			}
			return lhs.ID < rhs.ID
		}
		return lhs.Relevance > rhs.Relevance
	})
}
