package ember

import (
	"errors"
	"math"
	"testing"
)

// mustAdd adds a document or fails the test.
func mustAdd(t *testing.T, server *SearchServer, id int, text string, status DocumentStatus, ratings []int) {
	t.Helper()
	if err := server.AddDocument(id, text, status, ratings); err != nil {
		t.Fatalf("AddDocument(%d, %q) error = %v", id, text, err)
	}
}

// checkIndexInvariants verifies the structural invariants that must hold
// after every lifecycle operation:
//
//   - forward and inverted postings mirror each other exactly, with
//     identical term frequencies
//   - the per-token bitmaps carry exactly the posting key sets
//   - no token has an empty posting list
//   - a live document's term frequencies sum to one
//   - the live id set, the store and the forward map agree
func checkIndexInvariants(t *testing.T, server *SearchServer) {
	t.Helper()
	idx := server.index

	for token, postings := range idx.Postings {
		if len(postings) == 0 {
			t.Errorf("token %q has an empty posting list", token)
		}
		bitmap, ok := idx.DocBitmaps[token]
		if !ok {
			t.Errorf("token %q has postings but no bitmap", token)
			continue
		}
		if int(bitmap.GetCardinality()) != len(postings) {
			t.Errorf("token %q bitmap has %d docs, postings have %d",
				token, bitmap.GetCardinality(), len(postings))
		}
		for documentID, tf := range postings {
			if got := idx.Forward[documentID][token]; got != tf {
				t.Errorf("forward[%d][%q] = %v, inverted = %v", documentID, token, got, tf)
			}
			if !bitmap.Contains(uint32(documentID)) {
				t.Errorf("bitmap for %q misses document %d", token, documentID)
			}
		}
	}

	for documentID, forward := range idx.Forward {
		if !server.store.Contains(documentID) {
			t.Errorf("forward entry for non-live document %d", documentID)
		}
		sum := 0.0
		for token, tf := range forward {
			if got := idx.Postings[token][documentID]; got != tf {
				t.Errorf("inverted[%q][%d] = %v, forward = %v", token, documentID, got, tf)
			}
			sum += tf
		}
		if len(forward) > 0 && math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("document %d term frequencies sum to %v, want 1", documentID, sum)
		}
	}

	for _, documentID := range server.DocumentIDs() {
		if _, ok := server.store.Lookup(documentID); !ok {
			t.Errorf("live id %d has no store entry", documentID)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// CONSTRUCTION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestNew_RejectsInvalidStopWords(t *testing.T) {
	if _, err := New("in", "a\x10t"); !errors.Is(err, ErrInvalidChar) {
		t.Errorf("New() error = %v, want ErrInvalidChar", err)
	}
	if _, err := NewFromText("in a\x10t"); !errors.Is(err, ErrInvalidChar) {
		t.Errorf("NewFromText() error = %v, want ErrInvalidChar", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// ADD DOCUMENT TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestAddDocument_Errors(t *testing.T) {
	server := newTestServer(t, "")
	mustAdd(t, server, 1, "white cat", StatusActual, nil)

	tests := []struct {
		name string
		id   int
		text string
		want error
	}{
		{"negative id", -1, "cat", ErrNegativeID},
		{"duplicate id", 1, "cat", ErrDuplicateID},
		{"control character", 2, "ca\x02t", ErrInvalidChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := server.AddDocument(tt.id, tt.text, StatusActual, nil); !errors.Is(err, tt.want) {
				t.Errorf("AddDocument() error = %v, want %v", err, tt.want)
			}
		})
	}

	// The failed adds must not have become live or touched the index.
	if got := server.GetDocumentCount(); got != 1 {
		t.Errorf("document count after failed adds = %d, want 1", got)
	}
	checkIndexInvariants(t, server)
}

func TestAddDocument_TermFrequencies(t *testing.T) {
	server := newTestServer(t, "и")
	mustAdd(t, server, 2, "пушистый кот пушистый хвост", StatusActual, nil)

	freqs := server.GetWordFrequencies(2)
	want := map[string]float64{"пушистый": 0.5, "кот": 0.25, "хвост": 0.25}
	if len(freqs) != len(want) {
		t.Fatalf("got %d distinct tokens, want %d", len(freqs), len(want))
	}
	for token, tf := range want {
		if math.Abs(freqs[token]-tf) > 1e-9 {
			t.Errorf("tf(%q) = %v, want %v", token, freqs[token], tf)
		}
	}
	checkIndexInvariants(t, server)
}

func TestAddDocument_AllStopWordsBody(t *testing.T) {
	server := newTestServer(t, "and in")
	mustAdd(t, server, 0, "and in and", StatusActual, []int{3})

	// The document is live with metadata even though nothing was indexed.
	if got := server.GetDocumentCount(); got != 1 {
		t.Errorf("document count = %d, want 1", got)
	}
	if got := len(server.GetWordFrequencies(0)); got != 0 {
		t.Errorf("word frequencies = %d entries, want 0", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// RATING TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestComputeAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    int
	}{
		{"positive average", []int{8, -4}, 2},
		{"single rating", []int{9}, 9},
		{"no ratings", nil, 0},
		{"truncating division", []int{8, -3}, 2},
		{"negative floor", []int{-3, -4}, -4},
		{"exact negative", []int{-2, -4}, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeAverageRating(tt.ratings); got != tt.want {
				t.Errorf("computeAverageRating(%v) = %d, want %d", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestAddDocument_RatingVisibleInResults(t *testing.T) {
	server := newTestServer(t, "")
	mustAdd(t, server, 7, "white cat", StatusActual, []int{8, -4})

	docs, err := server.FindTopDocuments(Sequential, "cat", nil)
	if err != nil {
		t.Fatalf("FindTopDocuments() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Rating != 2 {
		t.Errorf("results = %v, want one document with rating 2", docs)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// WORD FREQUENCY TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestGetWordFrequencies_UnknownDocument(t *testing.T) {
	server := newTestServer(t, "")
	mustAdd(t, server, 0, "white cat", StatusActual, nil)

	freqs := server.GetWordFrequencies(99)
	if len(freqs) != 0 {
		t.Errorf("frequencies for unknown id = %v, want empty", freqs)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// REMOVE DOCUMENT TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestRemoveDocument(t *testing.T) {
	for _, policy := range []Policy{Sequential, Parallel} {
		name := "sequential"
		if policy == Parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			server := newTestServer(t, "and with")
			texts := []string{
				"funny pet and nasty rat",
				"funny pet with curly hair",
				"funny pet and not very nasty rat",
				"pet with rat and rat and rat",
				"nasty rat with curly hair",
			}
			for i, text := range texts {
				mustAdd(t, server, i+1, text, StatusActual, []int{1, 2})
			}

			if err := server.RemoveDocument(policy, 5); err != nil {
				t.Fatalf("RemoveDocument(5) error = %v", err)
			}
			if got := server.GetDocumentCount(); got != 4 {
				t.Errorf("document count = %d, want 4", got)
			}
			checkIndexInvariants(t, server)

			// "curly" and "hair" occur only in docs 2 and 5. With doc 5
			// gone they survive through doc 2; removing doc 2 as well must
			// drop their posting entries entirely.
			if err := server.RemoveDocument(policy, 2); err != nil {
				t.Fatalf("RemoveDocument(2) error = %v", err)
			}
			if _, ok := server.index.PostingsFor("curly"); ok {
				t.Error("token 'curly' should have no posting list after both holders were removed")
			}
			if _, ok := server.index.PostingsFor("hair"); ok {
				t.Error("token 'hair' should have no posting list after both holders were removed")
			}
			checkIndexInvariants(t, server)

			docs, err := server.FindTopDocuments(Sequential, "curly", nil)
			if err != nil {
				t.Fatalf("FindTopDocuments() error = %v", err)
			}
			if len(docs) != 0 {
				t.Errorf("search for removed-only token = %v, want none", docs)
			}
		})
	}
}

func TestRemoveDocument_UnknownID(t *testing.T) {
	server := newTestServer(t, "")
	mustAdd(t, server, 0, "white cat", StatusActual, nil)

	for _, policy := range []Policy{Sequential, Parallel} {
		if err := server.RemoveDocument(policy, 17); !errors.Is(err, ErrUnknownDocument) {
			t.Errorf("RemoveDocument(policy=%v, 17) error = %v, want ErrUnknownDocument", policy, err)
		}
	}
}

func TestRemoveDocument_IDIsReusable(t *testing.T) {
	server := newTestServer(t, "")
	mustAdd(t, server, 3, "white cat", StatusActual, []int{1})

	if err := server.RemoveDocument(Sequential, 3); err != nil {
		t.Fatalf("RemoveDocument() error = %v", err)
	}
	if err := server.AddDocument(3, "black dog", StatusActual, []int{2}); err != nil {
		t.Fatalf("re-AddDocument() error = %v", err)
	}

	docs, err := server.FindTopDocuments(Sequential, "dog", nil)
	if err != nil {
		t.Fatalf("FindTopDocuments() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != 3 {
		t.Errorf("results = %v, want the re-added document 3", docs)
	}
	checkIndexInvariants(t, server)
}

// Add then remove must restore every public observable.
func TestRemoveDocument_RestoresPriorState(t *testing.T) {
	server := newTestServer(t, "in")
	mustAdd(t, server, 0, "white cat", StatusActual, []int{1})

	mustAdd(t, server, 1, "fluffy dog", StatusActual, []int{5})
	if err := server.RemoveDocument(Parallel, 1); err != nil {
		t.Fatalf("RemoveDocument() error = %v", err)
	}

	if got := server.GetDocumentCount(); got != 1 {
		t.Errorf("document count = %d, want 1", got)
	}
	docs, err := server.FindTopDocuments(Sequential, "fluffy dog", nil)
	if err != nil {
		t.Fatalf("FindTopDocuments() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("results for removed document's words = %v, want none", docs)
	}
	checkIndexInvariants(t, server)
}

// ═══════════════════════════════════════════════════════════════════════════════
// ID ACCESS TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestGetDocumentID(t *testing.T) {
	server := newTestServer(t, "")
	for _, id := range []int{30, 10, 20} {
		mustAdd(t, server, id, "cat", StatusActual, nil)
	}

	wantOrder := []int{10, 20, 30}
	for index, want := range wantOrder {
		got, err := server.GetDocumentID(index)
		if err != nil {
			t.Fatalf("GetDocumentID(%d) error = %v", index, err)
		}
		if got != want {
			t.Errorf("GetDocumentID(%d) = %d, want %d", index, got, want)
		}
	}

	for _, index := range []int{-1, 3, 100} {
		if _, err := server.GetDocumentID(index); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("GetDocumentID(%d) error = %v, want ErrOutOfRange", index, err)
		}
	}
}

func TestEachDocumentID(t *testing.T) {
	server := newTestServer(t, "")
	for _, id := range []int{5, 1, 9} {
		mustAdd(t, server, id, "cat", StatusActual, nil)
	}

	var visited []int
	server.EachDocumentID(func(documentID int) bool {
		visited = append(visited, documentID)
		return true
	})
	want := []int{1, 5, 9}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v (ascending)", visited, want)
		}
	}

	// Early stop after the first id.
	count := 0
	server.EachDocumentID(func(int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("early-stopping walk visited %d ids, want 1", count)
	}
}
