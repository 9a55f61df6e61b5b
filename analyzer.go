// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Text analysis turns raw text into searchable tokens. The pipeline here is
// deliberately minimal because token identity must be exact:
//
//  1. Splitting          → break on runs of ASCII spaces
//  2. Validation         → reject tokens containing control characters
//  3. Stop word removal  → drop tokens from the caller-supplied stop set
//
// There is no lowercasing, no stemming and no Unicode normalization: a token
// is matched byte for byte. That is what makes the engine language neutral.
// A document written in Russian and a query written in Russian meet on equal
// terms, because neither side is ever rewritten.
//
// EXAMPLE (stop words "and in at"):
// ---------------------------------
// Input:  "cat in the city"
// Step 1: ["cat", "in", "the", "city"]
// Step 2: all valid
// Step 3: ["cat", "the", "city"]        ("in" is a stop word)
//
// ZERO-COPY SPLITTING:
// --------------------
// splitIntoWords never builds new strings. Each token it returns is a
// substring of the input, which in Go shares the input's backing array.
// The engine leans on this: document tokens are substrings of the stored
// body held in the text arena, so the index never owns token memory of
// its own.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import "strings"

// splitIntoWords splits text on runs of ASCII space (0x20) characters.
//
// Runs of spaces produce no empty tokens, and neither do leading or
// trailing spaces:
//
//	"  white  cat "  → ["white", "cat"]
//	""               → nil
//	"   "            → nil
//
// Only 0x20 separates words. Tabs and newlines are NOT separators; they are
// control characters and any token containing one fails validation later.
func splitIntoWords(text string) []string {
	var words []string
	for len(text) > 0 {
		space := strings.IndexByte(text, ' ')
		if space < 0 {
			words = append(words, text)
			break
		}
		if space > 0 {
			words = append(words, text[:space])
		}
		text = text[space+1:]
	}
	return words
}

// isValidWord reports whether a token is free of ASCII control characters.
//
// Bytes below 0x20 are disallowed everywhere a token can enter the engine:
// stop words at construction, document bodies at AddDocument and query words
// at parse time. The check is byte-wise, so multi-byte UTF-8 sequences pass
// untouched (every continuation byte is >= 0x80).
func isValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < ' ' {
			return false
		}
	}
	return true
}

// stopWordSet is the immutable set of words ignored everywhere.
//
// Stop words are fixed when the server is constructed. They are filtered
// out of document bodies before indexing and out of queries before
// matching, so they can never influence a result.
type stopWordSet map[string]struct{}

// newStopWordSet validates and deduplicates the given stop words.
//
// Empty strings are skipped (New may receive them from its caller;
// splitIntoWords never produces them); any word with a control character
// fails construction with ErrInvalidChar.
func newStopWordSet(words []string) (stopWordSet, error) {
	set := make(stopWordSet, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if !isValidWord(word) {
			return nil, ErrInvalidChar
		}
		set[word] = struct{}{}
	}
	return set, nil
}

// contains reports whether word is a stop word.
func (s stopWordSet) contains(word string) bool {
	_, ok := s[word]
	return ok
}
