// Package analysis extracts keywords and structural facts from structured
// (YAML) and rendered (Markdown) requirement documents.
package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinKeywordLength is the exclusive lower bound on keyword rune length.
const MinKeywordLength = 3

// KeywordSet is a set of lower-cased keyword tokens.
type KeywordSet map[string]struct{}

// Add tokenizes text and adds every qualifying token to the set.
func (s KeywordSet) Add(text string) {
	for _, tok := range Tokenize(text) {
		s[tok] = struct{}{}
	}
}

// Has reports whether the token is in the set.
func (s KeywordSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in lexical order.
func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Tokenize splits text on every rune that is neither a letter nor a digit,
// lower-cases the pieces and keeps those longer than MinKeywordLength runes.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > MinKeywordLength {
			tokens = append(tokens, strings.ToLower(f))
		}
	}
	return tokens
}
