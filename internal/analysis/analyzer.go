// Package analysis provides text tokenisation for the index writer. The
// whitespace analyzer preserves terms verbatim for deterministic test
// fixtures; the standard analyzer lower-cases input, removes stop-words,
// and applies a simple suffix-based stemmer for realistic corpora.
package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token represents a single term with its position and character offsets in
// the original text.
type Token struct {
	Term        string
	Position    int
	StartOffset int
	EndOffset   int
}

// Analyzer turns field text into a token stream.
type Analyzer interface {
	Name() string
	Tokenize(text string) []Token
}

// Whitespace splits on Unicode whitespace and keeps terms verbatim. It is
// the default analyzer for fixture documents, where exact term frequencies
// matter.
type Whitespace struct{}

func (Whitespace) Name() string { return "whitespace" }

func (Whitespace) Tokenize(text string) []Token {
	tokens := make([]Token, 0, 8)
	pos := 0
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{
					Term:        text[start:i],
					Position:    pos,
					StartOffset: start,
					EndOffset:   i,
				})
				pos++
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{
			Term:        text[start:],
			Position:    pos,
			StartOffset: start,
			EndOffset:   len(text),
		})
	}
	return tokens
}

// ByName returns the analyzer registered under the given config name,
// defaulting to Whitespace.
func ByName(name string) Analyzer {
	switch name {
	case "standard":
		return Standard{}
	default:
		return Whitespace{}
	}
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "what": {}, "when": {}, "where": {},
	"who": {}, "which": {}, "their": {}, "if": {}, "each": {},
	"do": {}, "not": {}, "no": {}, "so": {}, "can": {},
}

// Standard lower-cases, splits on non-alphanumeric boundaries, removes
// stop-words, and stems each term. Offsets refer to the original word span
// before stemming.
type Standard struct{}

func (Standard) Name() string { return "standard" }

func (Standard) Tokenize(text string) []Token {
	tokens := make([]Token, 0, 8)
	pos := 0
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := strings.ToLower(text[start:end])
		s := start
		start = -1
		if utf8.RuneCountInString(word) < 2 {
			return
		}
		if _, isStop := stopWords[word]; isStop {
			return
		}
		stemmed := stem(word)
		if stemmed == "" {
			return
		}
		tokens = append(tokens, Token{
			Term:        stemmed,
			Position:    pos,
			StartOffset: s,
			EndOffset:   end,
		})
		pos++
	}
	for i, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))
	return tokens
}

// stem applies a simple suffix-stripping stemmer to the given word.
func stem(word string) string {
	suffixes := []struct {
		suffix      string
		replacement string
		minLen      int
	}{
		{"ational", "ate", 2},
		{"tional", "tion", 2},
		{"encies", "ence", 2},
		{"ances", "ance", 2},
		{"ments", "ment", 2},
		{"izing", "ize", 2},
		{"ating", "ate", 2},
		{"iness", "y", 2},
		{"ously", "ous", 2},
		{"ively", "ive", 2},
		{"eness", "ene", 2},
		{"tion", "t", 3},
		{"sion", "s", 3},
		{"ying", "y", 2},
		{"ling", "l", 3},
		{"ies", "y", 2},
		{"ing", "", 3},
		{"ers", "er", 2},
		{"est", "", 3},
		{"ful", "", 3},
		{"ous", "", 3},
		{"ess", "", 3},
		{"ble", "", 3},
		{"ed", "", 3},
		{"er", "", 3},
		{"ly", "", 3},
		{"es", "", 3},
		{"ss", "ss", 2},
		{"s", "", 3},
	}
	for _, rule := range suffixes {
		if strings.HasSuffix(word, rule.suffix) {
			newWord := word[:len(word)-len(rule.suffix)] + rule.replacement
			if len(newWord) >= rule.minLen {
				return newWord
			}
		}
	}
	return word
}
