package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/franvarela/lorobot/internal/config"
	"github.com/franvarela/lorobot/internal/core"
	"github.com/franvarela/lorobot/internal/language"
	"github.com/franvarela/lorobot/pkg/keyed"
	"github.com/franvarela/lorobot/pkg/log"
)

// Engine is the outward face of the learning core. Transports push inbound
// messages through Process; the HTTP layer and the operator commands read
// through FindBestMatch, Patterns, Messages, and Stats.
type Engine struct {
	classifier *Classifier
	linker     *Linker
	tracker    *Tracker
	matcher    *Matcher

	messages core.MessagesRepository
	patterns core.PatternsRepository
	contexts core.ContextsRepository

	// chats serializes the link→learn→insert→touch sequence per chat id.
	// Messages from different chats proceed fully in parallel.
	chats   *keyed.Mutex
	enabled bool
	now     func() time.Time
}

func NewEngine(
	cfg *config.LearningConfig,
	profile *language.Profile,
	messages core.MessagesRepository,
	patterns core.PatternsRepository,
	contexts core.ContextsRepository,
) *Engine {
	learner := NewLearner(patterns, profile)
	return &Engine{
		classifier: NewClassifier(profile),
		linker:     NewLinker(messages, learner),
		tracker:    NewTracker(contexts, cfg.ContextMessages),
		matcher:    NewMatcher(patterns, profile, cfg.FrequencyThreshold, cfg.RelevanceThreshold),
		messages:   messages,
		patterns:   patterns,
		contexts:   contexts,
		chats:      keyed.NewMutex(),
		enabled:    cfg.Enabled,
		now:        time.Now,
	}
}

// Process runs the full ingest path for one inbound message: classify, link
// to a preceding question (learning the pattern if so), persist the message,
// and refresh the chat's context window. Callers treat it as fire-and-forget;
// storage faults are logged, the affected operation is lost, and processing
// of other messages is unaffected.
func (e *Engine) Process(ctx context.Context, ev core.MessageEvent) {
	if !e.enabled {
		return
	}
	logger := log.FromCtx(ctx)

	isQuestion := e.classifier.IsQuestion(ev.Text)

	unlock := e.chats.Lock(ev.ChatID)
	defer unlock()

	linkedID, err := e.linker.Link(ctx, ev.ChatID, ev.Text)
	if err != nil {
		// The pattern observation is lost; the message itself is still
		// worth storing, just unlinked.
		logger.Error().Err(err).Str("chat", ev.ChatID).Msg("linking failed")
		linkedID = nil
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = e.now()
	}

	_, err = e.messages.Insert(ctx, core.StoredMessage{
		Sender:           ev.SenderID,
		ChatID:           ev.ChatID,
		Text:             ev.Text,
		Timestamp:        ts,
		IsQuestion:       isQuestion,
		IsAnswer:         linkedID != nil,
		LinkedQuestionID: linkedID,
		Processed:        true,
	})
	if err != nil {
		logger.Error().Err(err).Str("chat", ev.ChatID).Msg("failed to store message")
		return
	}

	if err := e.tracker.Touch(ctx, ev.ChatID, ev.Text); err != nil {
		logger.Error().Err(err).Str("chat", ev.ChatID).Msg("failed to update chat context")
	}

	logger.Debug().
		Str("chat", ev.ChatID).
		Bool("question", isQuestion).
		Bool("answer", linkedID != nil).
		Msg("message learned")
}

// FindBestMatch retrieves the best stored answer for an arbitrary query.
func (e *Engine) FindBestMatch(ctx context.Context, query string) (*core.MatchResult, error) {
	return e.matcher.FindBestMatch(ctx, query)
}

// Patterns returns every learned pattern, most frequent first.
func (e *Engine) Patterns(ctx context.Context) ([]core.Pattern, error) {
	return e.patterns.ListByFrequency(ctx, 0)
}

// Messages returns up to limit stored messages, newest first.
func (e *Engine) Messages(ctx context.Context, limit int) ([]core.StoredMessage, error) {
	return e.messages.ListRecent(ctx, limit)
}

// Stats counts the rows of the three learning tables. Storage faults
// propagate; there is nothing sensible to degrade to here.
func (e *Engine) Stats(ctx context.Context) (core.LearningStats, error) {
	var stats core.LearningStats
	var err error

	if stats.Messages, err = e.messages.Count(ctx); err != nil {
		return stats, fmt.Errorf("failed to count messages: %w", err)
	}
	if stats.Patterns, err = e.patterns.Count(ctx); err != nil {
		return stats, fmt.Errorf("failed to count patterns: %w", err)
	}
	if stats.Contexts, err = e.contexts.Count(ctx); err != nil {
		return stats, fmt.Errorf("failed to count chat contexts: %w", err)
	}
	stats.Timestamp = e.now()
	return stats, nil
}
