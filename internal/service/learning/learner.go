package learning

import (
	"context"
	"time"

	"github.com/franvarela/lorobot/internal/core"
	"github.com/franvarela/lorobot/internal/language"
)

// Learner consolidates observed question→answer exchanges into the pattern
// store.
type Learner struct {
	patterns core.PatternsRepository
	profile  *language.Profile
	now      func() time.Time
}

func NewLearner(patterns core.PatternsRepository, profile *language.Profile) *Learner {
	return &Learner{
		patterns: patterns,
		profile:  profile,
		now:      time.Now,
	}
}

// Learn records one question→answer observation. Empty input (after
// normalization) is silently ignored; that is expected traffic, not an error.
func (l *Learner) Learn(ctx context.Context, question, answer string) error {
	q := language.Normalize(question)
	a := language.Normalize(answer)
	if q == "" || a == "" {
		return nil
	}

	return l.patterns.Upsert(ctx, core.PatternObservation{
		Pattern:    q,
		Answer:     a,
		Category:   l.categorize(q),
		Relevance:  l.relevance(a),
		ObservedAt: l.now(),
	})
}

// relevance scores an answer by its token count: one-word acknowledgements
// ("sí", "ok") carry far less reusable information than full sentences.
func (l *Learner) relevance(answer string) float64 {
	n := len(l.profile.Tokenizer.Tokenize(answer))
	switch {
	case n < 3:
		return 0.3
	case n < 8:
		return 0.6
	default:
		return 0.8
	}
}

// categorize tags a normalized question with the first category whose keyword
// rules match, falling back to "general".
func (l *Learner) categorize(question string) string {
	for _, rule := range l.profile.Categories {
		for _, re := range rule.Patterns {
			if re.MatchString(question) {
				return rule.Category
			}
		}
	}
	return core.CategoryGeneral
}
