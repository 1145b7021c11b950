package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/franvarela/lorobot/internal/core"
)

type ContextsRepo struct {
	db *sql.DB
}

func NewContextsRepo(db *sql.DB) *ContextsRepo {
	return &ContextsRepo{db: db}
}

func (r *ContextsRepo) Get(ctx context.Context, chatID string) (*core.ChatContext, error) {
	query := `SELECT chat_id, recent_messages, last_interaction, detected_topic
		FROM chat_contexts WHERE chat_id = ?`

	var cc core.ChatContext
	var recent string
	var topic sql.NullString

	err := r.db.QueryRowContext(ctx, query, chatID).Scan(&cc.ChatID, &recent, &cc.LastInteraction, &topic)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chat context: %w", err)
	}

	if recent != "" {
		if err := json.Unmarshal([]byte(recent), &cc.Recent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recent messages: %w", err)
		}
	}
	cc.Topic = topic.String
	return &cc, nil
}

func (r *ContextsRepo) Save(ctx context.Context, cc core.ChatContext) error {
	recent, err := json.Marshal(cc.Recent)
	if err != nil {
		return fmt.Errorf("failed to marshal recent messages: %w", err)
	}

	query := `INSERT INTO chat_contexts (chat_id, recent_messages, last_interaction)
		VALUES (?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			recent_messages = excluded.recent_messages,
			last_interaction = excluded.last_interaction`

	if _, err := r.db.ExecContext(ctx, query, cc.ChatID, string(recent), cc.LastInteraction); err != nil {
		return fmt.Errorf("failed to save chat context: %w", err)
	}
	return nil
}

func (r *ContextsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_contexts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chat contexts: %w", err)
	}
	return count, nil
}
