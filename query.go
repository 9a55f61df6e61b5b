// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSING: Plus Words and Minus Words
// ═══════════════════════════════════════════════════════════════════════════════
// A raw query is a space-separated list of words. Each word is either a
// PLUS word (the document should contain it) or a MINUS word (the document
// must NOT contain it), marked by a single leading '-':
//
//	"fluffy cat -collar"
//	 └──┬──┘ └┬┘  └──┬──┘
//	  plus   plus   minus
//
// PARSING RULES (per word):
// -------------------------
//  1. A leading '-' marks the word minus and is stripped.
//  2. Nothing left after stripping      → ErrEmptyQueryTerm  ("-")
//  3. A second leading '-'              → ErrDoubleMinus     ("--cat")
//  4. Any byte below 0x20 in the word   → ErrInvalidChar
//  5. Stop words are discarded silently (both plus and minus).
//
// Both result sets are sorted and deduplicated, so "cat cat -dog -dog"
// parses to exactly {cat} / {dog}. Sorting also pins the accumulation
// order of the ranker, which keeps floating-point sums reproducible.
//
// The parsed words are substrings of the raw query string; the query must
// outlive the parsed form, which it always does inside a single operation.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import "sort"

// Policy selects the execution mode of an operation.
//
// Every operation with a parallel variant (FindTopDocuments, MatchDocument,
// RemoveDocument) takes an explicit Policy. Sequential and Parallel always
// produce identical observable results; Parallel only changes how the work
// is scheduled internally.
type Policy int

const (
	// Sequential runs the operation on the calling goroutine.
	Sequential Policy = iota
	// Parallel distributes the operation's word loops across worker
	// goroutines.
	Parallel
)

// Query is a parsed query: deduplicated, sorted plus and minus word sets.
type Query struct {
	PlusWords  []string
	MinusWords []string
}

// queryWord is one classified word of a raw query.
type queryWord struct {
	data    string
	isMinus bool
	isStop  bool
}

// parseQueryWord classifies a single raw word.
func (s *SearchServer) parseQueryWord(text string) (queryWord, error) {
	isMinus := false
	if len(text) > 0 && text[0] == '-' {
		isMinus = true
		text = text[1:]
	}
	if len(text) == 0 {
		return queryWord{}, ErrEmptyQueryTerm
	}
	if text[0] == '-' {
		return queryWord{}, ErrDoubleMinus
	}
	if !isValidWord(text) {
		return queryWord{}, ErrInvalidChar
	}
	return queryWord{data: text, isMinus: isMinus, isStop: s.stopWords.contains(text)}, nil
}

// ParseQuery parses raw query text into sorted, deduplicated plus and minus
// word sets.
//
// EXAMPLE (stop words "and in at"):
// ---------------------------------
//
//	ParseQuery("fluffy cat and -collar cat")
//	→ Query{PlusWords: ["cat", "fluffy"], MinusWords: ["collar"]}
//
// The first invalid word aborts parsing with its error; words are examined
// in query order, so the reported error is deterministic.
func (s *SearchServer) ParseQuery(text string) (Query, error) {
	var query Query
	for _, word := range splitIntoWords(text) {
		parsed, err := s.parseQueryWord(word)
		if err != nil {
			return Query{}, err
		}
		if parsed.isStop {
			continue
		}
		if parsed.isMinus {
			query.MinusWords = append(query.MinusWords, parsed.data)
		} else {
			query.PlusWords = append(query.PlusWords, parsed.data)
		}
	}
	query.PlusWords = sortUnique(query.PlusWords)
	query.MinusWords = sortUnique(query.MinusWords)
	return query, nil
}

// sortUnique sorts words in place and drops adjacent duplicates.
func sortUnique(words []string) []string {
	if len(words) < 2 {
		return words
	}
	sort.Strings(words)
	unique := words[:1]
	for _, word := range words[1:] {
		if word != unique[len(unique)-1] {
			unique = append(unique, word)
		}
	}
	return unique
}
