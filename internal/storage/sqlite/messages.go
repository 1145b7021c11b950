package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/franvarela/lorobot/internal/core"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) Insert(ctx context.Context, msg core.StoredMessage) (int64, error) {
	var linked sql.NullInt64
	if msg.LinkedQuestionID != nil {
		linked = sql.NullInt64{Int64: *msg.LinkedQuestionID, Valid: true}
	}

	query := `INSERT INTO messages (sender, chat_id, text, timestamp, is_question, is_answer, linked_question_id, processed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		msg.Sender, msg.ChatID, msg.Text, msg.Timestamp,
		msg.IsQuestion, msg.IsAnswer, linked, msg.Processed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *MessagesRepo) LatestByChat(ctx context.Context, chatID string) (*core.StoredMessage, error) {
	query := `SELECT id, sender, chat_id, text, timestamp, is_question, is_answer, linked_question_id, processed
		FROM messages WHERE chat_id = ? ORDER BY id DESC LIMIT 1`

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, chatID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest message: %w", err)
	}
	return msg, nil
}

func (r *MessagesRepo) ListRecent(ctx context.Context, limit int) ([]core.StoredMessage, error) {
	query := `SELECT id, sender, chat_id, text, timestamp, is_question, is_answer, linked_question_id, processed
		FROM messages ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.StoredMessage
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

func (r *MessagesRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*core.StoredMessage, error) {
	var msg core.StoredMessage
	var linked sql.NullInt64

	if err := row.Scan(
		&msg.ID, &msg.Sender, &msg.ChatID, &msg.Text, &msg.Timestamp,
		&msg.IsQuestion, &msg.IsAnswer, &linked, &msg.Processed,
	); err != nil {
		return nil, err
	}
	if linked.Valid {
		msg.LinkedQuestionID = &linked.Int64
	}
	return &msg, nil
}
