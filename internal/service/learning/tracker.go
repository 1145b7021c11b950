package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/franvarela/lorobot/internal/core"
)

// Tracker maintains the bounded rolling window of recent messages per chat.
type Tracker struct {
	contexts core.ContextsRepository
	capacity int
	now      func() time.Time
}

func NewTracker(contexts core.ContextsRepository, capacity int) *Tracker {
	return &Tracker{
		contexts: contexts,
		capacity: capacity,
		now:      time.Now,
	}
}

// Touch appends text to the chat's window, evicting from the front once the
// window exceeds capacity, and refreshes the last-interaction timestamp.
// Callers must serialize Touch per chat id; the read-modify-write here is not
// atomic on its own.
func (t *Tracker) Touch(ctx context.Context, chatID, text string) error {
	cc, err := t.contexts.Get(ctx, chatID)
	if err != nil {
		return fmt.Errorf("failed to load chat context: %w", err)
	}
	if cc == nil {
		cc = &core.ChatContext{ChatID: chatID}
	}

	now := t.now()
	cc.Recent = append(cc.Recent, core.ContextEntry{Text: text, Timestamp: now})
	if len(cc.Recent) > t.capacity {
		cc.Recent = cc.Recent[len(cc.Recent)-t.capacity:]
	}
	cc.LastInteraction = now

	if err := t.contexts.Save(ctx, *cc); err != nil {
		return fmt.Errorf("failed to save chat context: %w", err)
	}
	return nil
}
