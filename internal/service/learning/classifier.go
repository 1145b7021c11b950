package learning

import (
	"strings"

	"github.com/franvarela/lorobot/internal/language"
)

// Classifier decides whether a message is a question. Pure, never errors.
type Classifier struct {
	profile *language.Profile
}

func NewClassifier(profile *language.Profile) *Classifier {
	return &Classifier{profile: profile}
}

// IsQuestion returns true when the text carries an interrogation mark (the
// ASCII closing "?" or the inverted opening "¿") or opens with a word from
// the profile's interrogative lexicon. Anything else is a statement.
func (c *Classifier) IsQuestion(text string) bool {
	clean := language.Normalize(text)

	if strings.ContainsAny(clean, "?¿") {
		return true
	}

	tokens := c.profile.Tokenizer.Tokenize(clean)
	if len(tokens) > 0 && c.profile.Lexicon.IsInterrogative(tokens[0]) {
		return true
	}

	return false
}
