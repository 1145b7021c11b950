package learning

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franvarela/lorobot/internal/storage/memstore"
)

func TestTouchCreatesContext(t *testing.T) {
	ctx := context.Background()
	contexts := memstore.NewContexts()
	tr := NewTracker(contexts, 10)

	require.NoError(t, tr.Touch(ctx, "chat-a", "hola"))

	cc, err := contexts.Get(ctx, "chat-a")
	require.NoError(t, err)
	require.NotNil(t, cc)
	require.Len(t, cc.Recent, 1)
	assert.Equal(t, "hola", cc.Recent[0].Text)
	assert.False(t, cc.LastInteraction.IsZero())
	assert.Empty(t, cc.Topic)
}

func TestTouchEvictsOldestBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	contexts := memstore.NewContexts()
	tr := NewTracker(contexts, 10)

	for i := 1; i <= 11; i++ {
		require.NoError(t, tr.Touch(ctx, "chat-a", fmt.Sprintf("mensaje %d", i)))
	}

	cc, err := contexts.Get(ctx, "chat-a")
	require.NoError(t, err)
	require.NotNil(t, cc)
	require.Len(t, cc.Recent, 10)

	// Message 1 evicted; 2..11 present in order.
	for i, entry := range cc.Recent {
		assert.Equal(t, fmt.Sprintf("mensaje %d", i+2), entry.Text)
	}
}

func TestTouchKeepsChatsSeparate(t *testing.T) {
	ctx := context.Background()
	contexts := memstore.NewContexts()
	tr := NewTracker(contexts, 3)

	require.NoError(t, tr.Touch(ctx, "chat-a", "para a"))
	require.NoError(t, tr.Touch(ctx, "chat-b", "para b"))

	a, err := contexts.Get(ctx, "chat-a")
	require.NoError(t, err)
	require.Len(t, a.Recent, 1)
	assert.Equal(t, "para a", a.Recent[0].Text)

	b, err := contexts.Get(ctx, "chat-b")
	require.NoError(t, err)
	require.Len(t, b.Recent, 1)
	assert.Equal(t, "para b", b.Recent[0].Text)

	count, err := contexts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTouchUpdatesLastInteraction(t *testing.T) {
	ctx := context.Background()
	contexts := memstore.NewContexts()
	tr := NewTracker(contexts, 10)

	first := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	tr.now = func() time.Time { return first }
	require.NoError(t, tr.Touch(ctx, "chat-a", "uno"))

	tr.now = func() time.Time { return second }
	require.NoError(t, tr.Touch(ctx, "chat-a", "dos"))

	cc, err := contexts.Get(ctx, "chat-a")
	require.NoError(t, err)
	assert.Equal(t, second, cc.LastInteraction)
	require.Len(t, cc.Recent, 2)
	assert.Equal(t, first, cc.Recent[0].Timestamp)
	assert.Equal(t, second, cc.Recent[1].Timestamp)
}
