// ═══════════════════════════════════════════════════════════════════════════════
// SEARCH SERVER: Document Lifecycle
// ═══════════════════════════════════════════════════════════════════════════════
// SearchServer ties the pieces together:
//
//	SearchServer
//	├── stopWords: the immutable stop word set (fixed at construction)
//	├── store:     metadata, live id set, text arena     (store.go)
//	└── index:     forward + inverted tf postings        (index.go)
//
// LIFECYCLE:
// ----------
// A document is born in AddDocument, never changes, and dies in
// RemoveDocument. There is no update: mutate by removing and re-adding
// under the same id.
//
// THREADING CONTRACT (single writer):
// -----------------------------------
// The server is NOT safe for mixed reads and writes. Callers must not
// overlap AddDocument or RemoveDocument with any other call on the same
// server. Concurrent read-only calls (find / match / frequencies) are fine,
// and the parallel operations spawn their own internal workers within a
// single call.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SearchServer is an in-memory document search engine with tf-idf ranking,
// minus-word exclusion and status/predicate filtering.
type SearchServer struct {
	stopWords stopWordSet
	store     *DocumentStore
	index     *InvertedIndex
}

// emptyWordFrequencies is the shared map returned by GetWordFrequencies for
// ids that are not live. Never written to.
var emptyWordFrequencies = map[string]float64{}

// New creates a server with the given stop words.
//
// Every stop word must be free of control characters; otherwise
// construction fails with ErrInvalidChar and the server is unusable.
func New(stopWords ...string) (*SearchServer, error) {
	set, err := newStopWordSet(stopWords)
	if err != nil {
		return nil, err
	}
	return &SearchServer{
		stopWords: set,
		store:     NewDocumentStore(),
		index:     NewInvertedIndex(),
	}, nil
}

// NewFromText creates a server from a single space-joined stop word string.
//
// EXAMPLE:
// --------
//
//	server, err := NewFromText("and in at")
func NewFromText(stopWordsText string) (*SearchServer, error) {
	return New(splitIntoWords(stopWordsText)...)
}

// AddDocument indexes a new document.
//
// STEP-BY-STEP:
// -------------
//  1. Reject negative ids (ErrNegativeID) and ids already live
//     (ErrDuplicateID).
//  2. Copy the body into the text arena. Tokens are sliced from the stored
//     copy, so every index entry aliases arena memory and stays valid for
//     the server's whole lifetime.
//  3. Split the stored copy, drop stop words, validate what remains
//     (ErrInvalidChar). Validation happens before any index mutation, so a
//     failed add leaves no partial state behind.
//  4. Post each token occurrence with weight 1/n (n = surviving token
//     count). Occurrences of the same token sum to occurrences/n, the
//     term frequency.
//  5. Record {average rating, status} in the store and mark the id live.
//
// A body that is empty or all stop words indexes no tokens but the document
// still becomes live with its metadata.
func (s *SearchServer) AddDocument(documentID int, text string, status DocumentStatus, ratings []int) error {
	if documentID < 0 {
		return ErrNegativeID
	}
	if s.store.Contains(documentID) {
		return ErrDuplicateID
	}

	stored := s.store.Intern(text)
	words := s.splitIntoWordsNoStop(stored)
	for _, word := range words {
		if !isValidWord(word) {
			return ErrInvalidChar
		}
	}

	if len(words) > 0 {
		invWordCount := 1.0 / float64(len(words))
		for _, word := range words {
			s.index.Add(word, documentID, invWordCount)
		}
	}

	s.store.Insert(documentID, DocumentData{
		Rating: computeAverageRating(ratings),
		Status: status,
	})

	slog.Info("document added",
		slog.Int("documentID", documentID),
		slog.Int("tokens", len(words)))
	return nil
}

// RemoveDocument deletes a live document under the given policy.
//
// Both policies fail with ErrUnknownDocument when the id is not live, and
// both leave the same state behind: the document's postings are erased from
// the inverted index, tokens whose posting list became empty are dropped
// entirely, and the store forgets the id. The text arena keeps the body;
// token views of other documents are never invalidated by a removal.
//
// The parallel policy erases the per-token postings across worker
// goroutines. Each worker owns a distinct token, so the workers touch
// disjoint inner maps; the outer map cleanup runs after they join.
func (s *SearchServer) RemoveDocument(policy Policy, documentID int) error {
	if !s.store.Contains(documentID) {
		return ErrUnknownDocument
	}

	forward := s.index.Forward[documentID]
	words := make([]string, 0, len(forward))
	for word := range forward {
		words = append(words, word)
	}

	if policy == Parallel && len(words) > 1 {
		group := new(errgroup.Group)
		group.SetLimit(runtime.GOMAXPROCS(0))
		for _, word := range words {
			word := word
			group.Go(func() error {
				s.index.erasePosting(word, documentID)
				return nil
			})
		}
		_ = group.Wait() // workers never fail
	} else {
		for _, word := range words {
			s.index.erasePosting(word, documentID)
		}
	}
	s.index.dropEmptyTokens(words)
	s.index.dropForward(documentID)
	s.store.Remove(documentID)

	slog.Info("document removed", slog.Int("documentID", documentID))
	return nil
}

// GetWordFrequencies returns the token → term frequency map of a document.
//
// For an id that is not live it returns a shared empty map. The returned
// map is the server's own table either way: callers must not modify it.
func (s *SearchServer) GetWordFrequencies(documentID int) map[string]float64 {
	if !s.store.Contains(documentID) {
		return emptyWordFrequencies
	}
	return s.index.Forward[documentID]
}

// GetDocumentCount returns the number of live documents.
func (s *SearchServer) GetDocumentCount() int {
	return s.store.Count()
}

// GetDocumentID returns the index-th live id in ascending order, rejecting
// any index outside [0, GetDocumentCount()) with ErrOutOfRange.
func (s *SearchServer) GetDocumentID(index int) (int, error) {
	return s.store.IDAt(index)
}

// EachDocumentID walks the live ids in ascending order, stopping early if
// fn returns false.
func (s *SearchServer) EachDocumentID(fn func(documentID int) bool) {
	s.store.EachID(fn)
}

// DocumentIDs returns the live ids in ascending order.
func (s *SearchServer) DocumentIDs() []int {
	return s.store.IDs()
}

// splitIntoWordsNoStop splits text and drops stop words, keeping everything
// else (including still-invalid words, which the caller validates).
func (s *SearchServer) splitIntoWordsNoStop(text string) []string {
	var words []string
	for _, word := range splitIntoWords(text) {
		if !s.stopWords.contains(word) {
			words = append(words, word)
		}
	}
	return words
}
