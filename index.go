// Package ember implements an in-memory document search engine built around
// an inverted index and tf-idf ranking.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS AN INVERTED INDEX?
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index is like the index at the back of a book, but for search
// engines.
//
// Example: Given these documents:
//   Doc 0: "white cat fashionable collar"
//   Doc 1: "groomed dog expressive eyes"
//   Doc 2: "fluffy cat fluffy tail"
//
// The inverted index would look like:
//   "cat"    → {Doc0: 0.25, Doc2: 0.25}
//   "fluffy" → {Doc2: 0.50}
//   "eyes"   → {Doc1: 0.25}
//   ...
//
// where the value is the token's TERM FREQUENCY in that document: its number
// of occurrences divided by the document's total token count. Doc 2 has four
// tokens and "fluffy" twice, hence 2/4 = 0.50.
//
// This engine also keeps the FORWARD orientation of the same data:
//
//   Doc 2 → {"fluffy": 0.50, "cat": 0.25, "tail": 0.25}
//
// The two maps are mirror images: token t maps to document d in one exactly
// when d maps to t in the other, and both carry the identical frequency.
// The inverted map answers "who contains this word?" for the ranker; the
// forward map answers "what is in this document?" for the matcher, the
// remover and the duplicate sweep.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import "github.com/RoaringBitmap/roaring"

// ═══════════════════════════════════════════════════════════════════════════════
// CORE DATA STRUCTURE: InvertedIndex with HYBRID STORAGE
// ═══════════════════════════════════════════════════════════════════════════════
// The index keeps three structures per token/document:
//
//	InvertedIndex
//	├── Postings: map[string]map[int]float64   (token → doc id → tf)
//	├── Forward:  map[int]map[string]float64   (doc id → token → tf)
//	└── DocBitmaps: map[string]*roaring.Bitmap (token → set of doc ids)
//
// Why carry bitmaps next to the postings maps?
//   - Membership tests ("does doc 7 contain 'cat'?") are the hot operation
//     of the matcher, for plus and minus words alike. A bitmap answers in O(1)
//     on compressed chunks without touching the postings map.
//   - The bitmaps are derived data: they always contain exactly the key set
//     of the corresponding postings map.
//
// The maps are NOT internally synchronized. Lifecycle operations (add and
// remove) are single-writer by contract; searches and matches only read.
// ═══════════════════════════════════════════════════════════════════════════════
type InvertedIndex struct {
	// Postings maps a token to the term frequency of that token in every
	// document containing it.
	Postings map[string]map[int]float64

	// Forward maps a document id to the term frequency of every token the
	// document contains.
	Forward map[int]map[string]float64

	// DocBitmaps mirrors the key sets of Postings as roaring bitmaps for
	// O(1) membership tests.
	DocBitmaps map[string]*roaring.Bitmap
}

// NewInvertedIndex creates a new empty index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		Postings:   make(map[string]map[int]float64),
		Forward:    make(map[int]map[string]float64),
		DocBitmaps: make(map[string]*roaring.Bitmap),
	}
}

// Add accumulates tfDelta onto the (token, documentID) entry in both
// orientations and marks the document in the token's bitmap.
//
// AddDocument calls this once per token OCCURRENCE with delta 1/n, where n
// is the document's token count. Duplicate occurrences therefore sum to
// occurrences/n, which is exactly the term frequency.
func (idx *InvertedIndex) Add(token string, documentID int, tfDelta float64) {
	postings := idx.Postings[token]
	if postings == nil {
		postings = make(map[int]float64)
		idx.Postings[token] = postings
	}
	postings[documentID] += tfDelta

	forward := idx.Forward[documentID]
	if forward == nil {
		forward = make(map[string]float64)
		idx.Forward[documentID] = forward
	}
	forward[token] += tfDelta

	bitmap := idx.DocBitmaps[token]
	if bitmap == nil {
		bitmap = roaring.NewBitmap()
		idx.DocBitmaps[token] = bitmap
	}
	bitmap.Add(uint32(documentID))
}

// PostingsFor returns the doc id → tf map for a token, or ok=false when the
// token is absent from the index. Callers must treat the map as read-only.
func (idx *InvertedIndex) PostingsFor(token string) (map[int]float64, bool) {
	postings, ok := idx.Postings[token]
	return postings, ok
}

// TermFrequency returns the tf of token in documentID, or zero when either
// is absent.
func (idx *InvertedIndex) TermFrequency(token string, documentID int) float64 {
	return idx.Postings[token][documentID]
}

// Contains reports whether the document contains the token.
//
// This is the bitmap fast path used by the matcher and by minus-word
// processing.
func (idx *InvertedIndex) Contains(token string, documentID int) bool {
	bitmap, ok := idx.DocBitmaps[token]
	return ok && bitmap.Contains(uint32(documentID))
}

// DocumentCountFor returns how many documents contain the token. This is
// the document frequency the idf formula divides by.
func (idx *InvertedIndex) DocumentCountFor(token string) int {
	bitmap, ok := idx.DocBitmaps[token]
	if !ok {
		return 0
	}
	return int(bitmap.GetCardinality())
}

// erasePosting removes documentID from a single token's postings and
// bitmap WITHOUT dropping the token entry itself, even when it becomes
// empty.
//
// The parallel remover calls this concurrently for DISTINCT tokens: each
// call touches only that token's inner map and bitmap, so no two calls
// share mutable state. Dropping empty token entries mutates the outer maps
// and is deferred to dropEmptyTokens, which runs single-threaded.
func (idx *InvertedIndex) erasePosting(token string, documentID int) {
	if postings, ok := idx.Postings[token]; ok {
		delete(postings, documentID)
	}
	if bitmap, ok := idx.DocBitmaps[token]; ok {
		bitmap.Remove(uint32(documentID))
	}
}

// dropEmptyTokens removes the outer entries of every listed token whose
// posting map has become empty. No empty posting list survives a removal.
func (idx *InvertedIndex) dropEmptyTokens(tokens []string) {
	for _, token := range tokens {
		if postings, ok := idx.Postings[token]; ok && len(postings) == 0 {
			delete(idx.Postings, token)
			delete(idx.DocBitmaps, token)
		}
	}
}

// dropForward removes a document's forward entry.
func (idx *InvertedIndex) dropForward(documentID int) {
	delete(idx.Forward, documentID)
}
