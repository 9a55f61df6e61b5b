// ═══════════════════════════════════════════════════════════════════════════════
// DUPLICATE REMOVAL
// ═══════════════════════════════════════════════════════════════════════════════
// Two documents are duplicates when they contain exactly the same SET of
// tokens. Frequencies, ordering and repetitions do not matter. With "and"
// as a stop word:
//
//	"funny pet and nasty rat"  }  same token set
//	"nasty rat funny pet pet"  }  → duplicates
//
// Among duplicates, the document with the SMALLEST id survives: the sweep
// walks ids in ascending order, keeps the first holder of each token set
// and marks every later holder for removal.
//
// CANONICAL KEY:
// --------------
// A document's key is its sorted token set joined with single spaces.
// Tokens cannot contain spaces (the splitter guarantees it), so the join is
// collision-free.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"log/slog"
	"sort"
	"strings"
)

// RemoveDuplicates removes every document whose token set duplicates that
// of a lower-id document, logging each removed id. It returns the removed
// ids in ascending order.
func RemoveDuplicates(server *SearchServer) []int {
	seen := make(map[string]struct{})
	var duplicates []int

	server.EachDocumentID(func(documentID int) bool {
		key := contentKey(server.GetWordFrequencies(documentID))
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, documentID)
		} else {
			seen[key] = struct{}{}
		}
		return true
	})

	for _, documentID := range duplicates {
		slog.Info("found duplicate document", slog.Int("documentID", documentID))
		// The id came from the sweep above, so removal cannot fail.
		_ = server.RemoveDocument(Sequential, documentID)
	}
	return duplicates
}

// contentKey builds the canonical token-set key of a document from its
// word frequency map.
func contentKey(frequencies map[string]float64) string {
	words := make([]string, 0, len(frequencies))
	for word := range frequencies {
		words = append(words, word)
	}
	sort.Strings(words)
	return strings.Join(words, " ")
}
