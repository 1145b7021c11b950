package learning

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franvarela/lorobot/internal/config"
	"github.com/franvarela/lorobot/internal/core"
	"github.com/franvarela/lorobot/internal/language"
	"github.com/franvarela/lorobot/internal/storage/memstore"
)

type engineFixture struct {
	engine   *Engine
	messages *memstore.Messages
	patterns *memstore.Patterns
	contexts *memstore.Contexts
}

func newEngineFixture(cfg *config.LearningConfig) *engineFixture {
	if cfg == nil {
		cfg = &config.LearningConfig{
			Enabled:            true,
			ContextMessages:    10,
			RelevanceThreshold: 0.5,
			FrequencyThreshold: 5,
		}
	}
	messages := memstore.NewMessages()
	patterns := memstore.NewPatterns()
	contexts := memstore.NewContexts()
	return &engineFixture{
		engine:   NewEngine(cfg, language.Spanish(), messages, patterns, contexts),
		messages: messages,
		patterns: patterns,
		contexts: contexts,
	}
}

func event(chatID, text string) core.MessageEvent {
	return core.MessageEvent{
		SenderID:  "user-1",
		ChatID:    chatID,
		Text:      text,
		Timestamp: time.Now(),
	}
}

func TestProcessLearnsQuestionAnswerExchange(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(nil)

	f.engine.Process(ctx, event("chat-a", "¿Cuál es el precio?"))
	f.engine.Process(ctx, event("chat-a", "Cuesta 100 pesos"))

	p, err := f.patterns.GetByText(ctx, "¿cuál es el precio?")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "cuesta 100 pesos", p.Answer)
	assert.Equal(t, int64(1), p.Frequency)
	assert.Equal(t, 0.6, p.Relevance)
	assert.Equal(t, core.CategoryProducto, p.Category)

	// The answer message is linked back to the question.
	msgs, err := f.messages.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	answer, question := msgs[0], msgs[1]
	assert.True(t, question.IsQuestion)
	assert.False(t, question.IsAnswer)
	assert.Nil(t, question.LinkedQuestionID)
	assert.True(t, question.Processed)

	assert.False(t, answer.IsQuestion)
	assert.True(t, answer.IsAnswer)
	require.NotNil(t, answer.LinkedQuestionID)
	assert.Equal(t, question.ID, *answer.LinkedQuestionID)
	assert.Greater(t, answer.ID, question.ID)
}

func TestProcessFirstMessageNeverLinks(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(nil)

	f.engine.Process(ctx, event("chat-a", "Cuesta 100 pesos"))

	msgs, err := f.messages.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].IsAnswer)
	assert.Nil(t, msgs[0].LinkedQuestionID)

	count, err := f.patterns.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProcessStatementThenStatementLearnsNothing(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(nil)

	f.engine.Process(ctx, event("chat-a", "hola buenas"))
	f.engine.Process(ctx, event("chat-a", "te escribo por el pedido"))

	count, err := f.patterns.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProcessOnlyImmediatePredecessorCounts(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(nil)

	f.engine.Process(ctx, event("chat-a", "¿Cuál es el precio?"))
	f.engine.Process(ctx, event("chat-a", "hola, perdón la demora"))
	// The question is now two messages back; no link, no pattern.
	f.engine.Process(ctx, event("chat-a", "Cuesta 100 pesos"))

	count, err := f.patterns.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count) // only "hola, perdón la demora" answered the question

	p, err := f.patterns.GetByText(ctx, "¿cuál es el precio?")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "hola, perdón la demora", p.Answer)
	assert.Equal(t, int64(1), p.Frequency)
}

func TestProcessRepeatedExchangeBecomesRetrievable(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(nil)

	for i := 0; i < 5; i++ {
		chat := fmt.Sprintf("chat-%d", i)
		f.engine.Process(ctx, event(chat, "¿Cuál es el precio?"))
		f.engine.Process(ctx, event(chat, "Cuesta 100 pesos"))
	}

	res, err := f.engine.FindBestMatch(ctx, "¿cuál es el precio?")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "cuesta 100 pesos", res.Answer)
	assert.Equal(t, 0.9, res.Confidence)
	assert.Equal(t, core.MatchExact, res.Kind)
}

func TestProcessUpdatesChatContext(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(&config.LearningConfig{
		Enabled:            true,
		ContextMessages:    10,
		RelevanceThreshold: 0.5,
		FrequencyThreshold: 5,
	})

	for i := 1; i <= 11; i++ {
		f.engine.Process(ctx, event("chat-a", fmt.Sprintf("mensaje %d", i)))
	}

	cc, err := f.contexts.Get(ctx, "chat-a")
	require.NoError(t, err)
	require.NotNil(t, cc)
	require.Len(t, cc.Recent, 10)
	assert.Equal(t, "mensaje 2", cc.Recent[0].Text)
	assert.Equal(t, "mensaje 11", cc.Recent[9].Text)
}

func TestProcessDisabledEngineIsInert(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(&config.LearningConfig{
		Enabled:            false,
		ContextMessages:    10,
		RelevanceThreshold: 0.5,
		FrequencyThreshold: 5,
	})

	f.engine.Process(ctx, event("chat-a", "¿Cuál es el precio?"))

	stats, err := f.engine.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Messages)
	assert.Zero(t, stats.Contexts)
}

func TestProcessConcurrentChats(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(nil)

	const chats = 20
	var wg sync.WaitGroup
	for i := 0; i < chats; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chat := fmt.Sprintf("chat-%d", i)
			f.engine.Process(ctx, event(chat, "¿Cuál es el precio?"))
			f.engine.Process(ctx, event(chat, "Cuesta 100 pesos"))
		}(i)
	}
	wg.Wait()

	// Every chat contributed exactly one observation of the same pattern.
	p, err := f.patterns.GetByText(ctx, "¿cuál es el precio?")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(chats), p.Frequency)

	stats, err := f.engine.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(chats*2), stats.Messages)
	assert.Equal(t, int64(1), stats.Patterns)
	assert.Equal(t, int64(chats), stats.Contexts)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(nil)

	f.engine.Process(ctx, event("chat-a", "¿Cuál es el precio?"))
	f.engine.Process(ctx, event("chat-a", "Cuesta 100 pesos"))
	f.engine.Process(ctx, event("chat-b", "hola"))

	stats, err := f.engine.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Messages)
	assert.Equal(t, int64(1), stats.Patterns)
	assert.Equal(t, int64(2), stats.Contexts)
	assert.False(t, stats.Timestamp.IsZero())
}
