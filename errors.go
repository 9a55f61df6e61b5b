package ember

import "errors"

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════
// We define errors as package-level variables so they can be compared with
// errors.Is. Every public operation that can fail returns exactly one of
// these; nothing is recovered internally.
//
// WHO RETURNS WHAT:
// -----------------
// AddDocument        → ErrNegativeID, ErrDuplicateID, ErrInvalidChar
// New/NewFromText    → ErrInvalidChar (bad stop word)
// query parsing      → ErrEmptyQueryTerm, ErrDoubleMinus, ErrInvalidChar
// MatchDocument      → ErrUnknownDocument (plus anything from parsing)
// RemoveDocument     → ErrUnknownDocument
// GetDocumentID      → ErrOutOfRange
// ═══════════════════════════════════════════════════════════════════════════════
var (
	// ErrNegativeID rejects documents with an id below zero.
	ErrNegativeID = errors.New("document id is negative")

	// ErrDuplicateID rejects a second AddDocument with an id that is
	// already live.
	ErrDuplicateID = errors.New("document id already exists")

	// ErrInvalidChar rejects any token containing an ASCII control
	// character (byte value below 0x20). Raised for stop words at
	// construction, document bodies at AddDocument, and query words.
	ErrInvalidChar = errors.New("word contains an invalid character")

	// ErrEmptyQueryTerm rejects a query containing a bare '-' with
	// nothing after it.
	ErrEmptyQueryTerm = errors.New("empty query term")

	// ErrDoubleMinus rejects a query token starting with '--'.
	ErrDoubleMinus = errors.New("query term has more than one leading minus")

	// ErrUnknownDocument is returned when an operation names a document
	// id that is not live.
	ErrUnknownDocument = errors.New("no document with the given id")

	// ErrOutOfRange is returned by GetDocumentID for an index outside
	// [0, GetDocumentCount()).
	ErrOutOfRange = errors.New("document index out of range")
)
