package core

import "context"

type MessagesRepository interface {
	// Insert stores a message and returns its store-assigned id.
	Insert(ctx context.Context, msg StoredMessage) (int64, error)
	// LatestByChat returns the most recently stored message for a chat,
	// or nil when the chat has no history.
	LatestByChat(ctx context.Context, chatID string) (*StoredMessage, error)
	// ListRecent returns up to limit messages, newest first.
	ListRecent(ctx context.Context, limit int) ([]StoredMessage, error)
	Count(ctx context.Context) (int64, error)
}

type PatternsRepository interface {
	// Upsert records one observation. The read-modify-write for a given
	// pattern key must be atomic: implementations either use a single
	// conflict-aware statement or serialize per key.
	Upsert(ctx context.Context, obs PatternObservation) error
	// GetByText looks a pattern up by its normalized text, nil when absent.
	GetByText(ctx context.Context, pattern string) (*Pattern, error)
	// ListByFrequency returns patterns with frequency >= minFrequency,
	// ordered by frequency descending.
	ListByFrequency(ctx context.Context, minFrequency int64) ([]Pattern, error)
	Count(ctx context.Context) (int64, error)
}

type ContextsRepository interface {
	// Get returns the chat's context, or nil when none exists yet.
	Get(ctx context.Context, chatID string) (*ChatContext, error)
	// Save creates or replaces the chat's context.
	Save(ctx context.Context, cc ChatContext) error
	Count(ctx context.Context) (int64, error)
}
