// Package language holds the pluggable text-analysis strategies the learning
// engine is configured with at startup: tokenization, stemming, the
// interrogative lexicon, and the category keyword rules. The engine itself is
// language-agnostic; everything language-specific lives in a Profile.
package language

import (
	"regexp"
	"strings"
	"unicode"
)

type Tokenizer interface {
	Tokenize(text string) []string
}

type Stemmer interface {
	Stem(token string) string
}

// Lexicon answers whether a token is an interrogative word ("qué", "cómo", ...)
// in the profile's language.
type Lexicon interface {
	IsInterrogative(token string) bool
}

// CategoryRule maps a category name to the keyword patterns that select it.
// Rules are evaluated in slice order; the first rule with a matching pattern
// wins.
type CategoryRule struct {
	Category string
	Patterns []*regexp.Regexp
}

// Profile bundles the strategies for one language.
type Profile struct {
	Tokenizer  Tokenizer
	Stemmer    Stemmer
	Lexicon    Lexicon
	Categories []CategoryRule
}

// Normalize lowercases and trims surrounding whitespace. Pattern keys,
// learner inputs, and matcher queries all pass through here first.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// WordTokenizer splits on any run of non-alphanumeric runes, so punctuation
// (including "¿" and "?") never reaches the token stream.
type WordTokenizer struct{}

func (WordTokenizer) Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

type setLexicon map[string]struct{}

func (l setLexicon) IsInterrogative(token string) bool {
	_, ok := l[token]
	return ok
}

// NewLexicon builds a Lexicon from a fixed word list.
func NewLexicon(words ...string) Lexicon {
	l := make(setLexicon, len(words))
	for _, w := range words {
		l[w] = struct{}{}
	}
	return l
}
