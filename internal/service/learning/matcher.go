package learning

import (
	"context"
	"fmt"

	"github.com/franvarela/lorobot/internal/core"
	"github.com/franvarela/lorobot/internal/language"
)

const exactMatchConfidence = 0.9

// Matcher retrieves the best-matching learned pattern for a query. Patterns
// below the frequency threshold are invisible to retrieval regardless of
// their relevance score: repetition, not a single good exchange, is what
// makes a pattern trustworthy.
type Matcher struct {
	patterns           core.PatternsRepository
	profile            *language.Profile
	frequencyThreshold int64
	relevanceThreshold float64
}

func NewMatcher(patterns core.PatternsRepository, profile *language.Profile, frequencyThreshold int, relevanceThreshold float64) *Matcher {
	return &Matcher{
		patterns:           patterns,
		profile:            profile,
		frequencyThreshold: int64(frequencyThreshold),
		relevanceThreshold: relevanceThreshold,
	}
}

// FindBestMatch returns the stored answer for the query, or nil when nothing
// qualifies. An exact hit on the normalized query short-circuits with fixed
// confidence; otherwise the single highest Jaccard score strictly above the
// relevance threshold wins. Candidates are scanned most-frequent first, so
// among equal scores the most frequent pattern is kept.
func (m *Matcher) FindBestMatch(ctx context.Context, query string) (*core.MatchResult, error) {
	q := language.Normalize(query)

	exact, err := m.patterns.GetByText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exact pattern: %w", err)
	}
	if exact != nil && exact.Frequency >= m.frequencyThreshold {
		return &core.MatchResult{
			Answer:     exact.Answer,
			Confidence: exactMatchConfidence,
			Kind:       core.MatchExact,
		}, nil
	}

	candidates, err := m.patterns.ListByFrequency(ctx, m.frequencyThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate patterns: %w", err)
	}

	var best *core.Pattern
	var bestScore float64
	for i := range candidates {
		score := Similarity(m.profile, q, candidates[i].Pattern)
		if score > bestScore && score > m.relevanceThreshold {
			bestScore = score
			best = &candidates[i]
		}
	}

	if best == nil {
		return nil, nil
	}
	return &core.MatchResult{
		Answer:     best.Answer,
		Confidence: bestScore,
		Kind:       core.MatchSimilar,
	}, nil
}
