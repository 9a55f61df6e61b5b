// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENT STORE: Metadata, Live IDs and the Text Arena
// ═══════════════════════════════════════════════════════════════════════════════
// The store owns everything about a document except its index postings:
//
//	DocumentStore
//	├── data:  map[int]DocumentData       (rating and status per id)
//	├── ids:   *roaring.Bitmap            (the ordered set of live ids)
//	└── arena: []string                   (every stored document body)
//
// WHY A ROARING BITMAP FOR THE ID SET?
// ------------------------------------
// The id set must answer four questions: how many live documents are there,
// is this id live, what is the k-th id in ascending order, and "walk the ids
// in order". A roaring bitmap answers all four directly:
//
//	count    → GetCardinality()      O(1)
//	member   → Contains(id)          O(1)
//	k-th id  → Select(k)             O(containers)
//	in order → Iterator()            compressed sequential walk
//
// and stays tiny even for dense id ranges thanks to run-length containers.
//
// THE TEXT ARENA:
// ---------------
// Every token the index stores is a substring of a document body. Substrings
// in Go alias their parent string, so as long as the parent stays reachable
// the tokens stay valid. The arena is that anchor: an append-only slice of
// stored bodies that is NEVER shrunk, not even when a document is removed.
// Removing a document only drops its postings; tokens of other documents
// that happen to equal its tokens keep working because string map keys
// compare by value, and the arena keeps all backing bytes alive.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// DocumentData is the per-document metadata the store owns.
type DocumentData struct {
	Rating int
	Status DocumentStatus
}

// DocumentStore holds document metadata, the live id set and the text arena.
type DocumentStore struct {
	data  map[int]DocumentData
	ids   *roaring.Bitmap
	arena []string
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		data: make(map[int]DocumentData),
		ids:  roaring.NewBitmap(),
	}
}

// Intern copies text into the arena and returns the stored copy.
//
// The returned string is the one to slice tokens from: it is owned by the
// store and outlives every document. strings.Clone detaches the copy from
// whatever larger buffer the caller's string may alias, so the arena never
// pins caller memory.
func (st *DocumentStore) Intern(text string) string {
	stored := strings.Clone(text)
	st.arena = append(st.arena, stored)
	return stored
}

// Insert records metadata for a new live document id.
func (st *DocumentStore) Insert(documentID int, data DocumentData) {
	st.data[documentID] = data
	st.ids.Add(uint32(documentID))
}

// Lookup returns the metadata for an id, and whether the id is live.
func (st *DocumentStore) Lookup(documentID int) (DocumentData, bool) {
	data, ok := st.data[documentID]
	return data, ok
}

// Contains reports whether the id is live.
func (st *DocumentStore) Contains(documentID int) bool {
	return documentID >= 0 && st.ids.Contains(uint32(documentID))
}

// Remove drops a document's metadata and id. The arena is untouched.
func (st *DocumentStore) Remove(documentID int) {
	delete(st.data, documentID)
	st.ids.Remove(uint32(documentID))
}

// Count returns the number of live documents.
func (st *DocumentStore) Count() int {
	return int(st.ids.GetCardinality())
}

// IDAt returns the index-th live id in ascending order.
//
// The valid range is [0, Count()); index == Count() is rejected like any
// other out-of-range index.
func (st *DocumentStore) IDAt(index int) (int, error) {
	if index < 0 || index >= st.Count() {
		return 0, ErrOutOfRange
	}
	id, err := st.ids.Select(uint32(index))
	if err != nil {
		return 0, ErrOutOfRange
	}
	return int(id), nil
}

// EachID walks the live ids in ascending order, stopping early if fn
// returns false.
func (st *DocumentStore) EachID(fn func(documentID int) bool) {
	iter := st.ids.Iterator()
	for iter.HasNext() {
		if !fn(int(iter.Next())) {
			return
		}
	}
}

// IDs returns the live ids in ascending order as a fresh slice.
func (st *DocumentStore) IDs() []int {
	ids := make([]int, 0, st.Count())
	st.EachID(func(documentID int) bool {
		ids = append(ids, documentID)
		return true
	})
	return ids
}
