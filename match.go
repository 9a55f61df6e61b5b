// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENT MATCHING: Which Query Words Hit One Document?
// ═══════════════════════════════════════════════════════════════════════════════
// MatchDocument is the diagnostic twin of FindTopDocuments. Instead of
// ranking the whole corpus, it answers for ONE document: which plus words
// of this query occur in it?
//
// SEMANTICS:
// ----------
//  1. The document must be live, otherwise ErrUnknownDocument.
//  2. Minus words are checked FIRST. If any minus word occurs in the
//     document, the answer is an empty word list; the plus words are not
//     even inspected. One forbidden word disqualifies the document, so
//     there is nothing useful to report beyond "no match".
//  3. Otherwise the answer is the sorted, deduplicated subset of plus
//     words occurring in the document.
//
// The document's status is returned in both cases.
//
// EXAMPLE (stop words "на в и", doc 0 = "белый кот и модный ошейник"):
// --------------------------------------------------------------------
//
//	MatchDocument(Sequential, "кот ошейник", 0)        → ["кот", "ошейник"], ACTUAL
//	MatchDocument(Sequential, "кот ошейник -белый", 0) → [],                 ACTUAL
//
// Membership tests run against the per-token roaring bitmaps, so each
// word costs O(1) regardless of how many documents contain it.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// MatchDocument reports which plus words of the query occur in the given
// document, together with the document's status.
//
// The returned words are sorted ascending and deduplicated. They are
// substrings of rawQuery.
func (s *SearchServer) MatchDocument(policy Policy, rawQuery string, documentID int) ([]string, DocumentStatus, error) {
	if !s.store.Contains(documentID) {
		return nil, 0, ErrUnknownDocument
	}
	query, err := s.ParseQuery(rawQuery)
	if err != nil {
		return nil, 0, err
	}
	data, _ := s.store.Lookup(documentID)

	var matched []string
	if policy == Parallel {
		matched = s.matchWordsParallel(query, documentID)
	} else {
		matched = s.matchWords(query, documentID)
	}
	return matched, data.Status, nil
}

// matchWords is the sequential matcher: minus scan first, then plus
// collection. ParseQuery already sorted and deduplicated both sets, so the
// collected subset is sorted by construction.
func (s *SearchServer) matchWords(query Query, documentID int) []string {
	for _, word := range query.MinusWords {
		if s.index.Contains(word, documentID) {
			return []string{}
		}
	}
	matched := make([]string, 0, len(query.PlusWords))
	for _, word := range query.PlusWords {
		if s.index.Contains(word, documentID) {
			matched = append(matched, word)
		}
	}
	return matched
}

// matchWordsParallel runs the minus scan as a parallel any-match and the
// plus collection as a parallel copy-if.
//
// The minus phase publishes a hit through an atomic flag; workers that
// start after the flag is set bail out immediately. The plus phase writes
// hits into per-word slots of a preallocated slice, so workers never share
// a write target, then compacts the slots in order. Compaction preserves
// the sorted order of the plus set.
func (s *SearchServer) matchWordsParallel(query Query, documentID int) []string {
	var minusHit atomic.Bool
	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, word := range query.MinusWords {
		word := word
		group.Go(func() error {
			if minusHit.Load() {
				return nil
			}
			if s.index.Contains(word, documentID) {
				minusHit.Store(true)
			}
			return nil
		})
	}
	_ = group.Wait() // workers never fail
	if minusHit.Load() {
		return []string{}
	}

	slots := make([]string, len(query.PlusWords))
	group = new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, word := range query.PlusWords {
		i, word := i, word
		group.Go(func() error {
			if s.index.Contains(word, documentID) {
				slots[i] = word
			}
			return nil
		})
	}
	_ = group.Wait()

	matched := make([]string, 0, len(slots))
	for _, word := range slots {
		if word != "" {
			matched = append(matched, word)
		}
	}
	sort.Strings(matched)
	return matched
}
