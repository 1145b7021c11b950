package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/franvarela/lorobot/internal/core"
)

type PatternsRepo struct {
	db *sql.DB
}

func NewPatternsRepo(db *sql.DB) *PatternsRepo {
	return &PatternsRepo{db: db}
}

// Upsert records one observation in a single conflict-aware statement, so the
// frequency increment and the relevance running-max stay atomic per pattern
// key even when two chats land the same normalized question at once. Category
// is only written on first insert; the stored value sticks afterwards.
func (r *PatternsRepo) Upsert(ctx context.Context, obs core.PatternObservation) error {
	query := `INSERT INTO patterns (pattern, answer, frequency, last_updated, category, relevance)
		VALUES (?, ?, 1, ?, ?, ?)
		ON CONFLICT(pattern) DO UPDATE SET
			answer = excluded.answer,
			frequency = frequency + 1,
			last_updated = excluded.last_updated,
			relevance = max(relevance, excluded.relevance)`

	_, err := r.db.ExecContext(ctx, query,
		obs.Pattern, obs.Answer, obs.ObservedAt, obs.Category, obs.Relevance,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pattern: %w", err)
	}
	return nil
}

func (r *PatternsRepo) GetByText(ctx context.Context, pattern string) (*core.Pattern, error) {
	query := `SELECT id, pattern, answer, frequency, last_updated, category, relevance
		FROM patterns WHERE pattern = ?`

	var p core.Pattern
	err := r.db.QueryRowContext(ctx, query, pattern).Scan(
		&p.ID, &p.Pattern, &p.Answer, &p.Frequency, &p.LastUpdated, &p.Category, &p.Relevance,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pattern: %w", err)
	}
	return &p, nil
}

func (r *PatternsRepo) ListByFrequency(ctx context.Context, minFrequency int64) ([]core.Pattern, error) {
	query := `SELECT id, pattern, answer, frequency, last_updated, category, relevance
		FROM patterns WHERE frequency >= ? ORDER BY frequency DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, minFrequency)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer rows.Close()

	var patterns []core.Pattern
	for rows.Next() {
		var p core.Pattern
		if err := rows.Scan(&p.ID, &p.Pattern, &p.Answer, &p.Frequency, &p.LastUpdated, &p.Category, &p.Relevance); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func (r *PatternsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patterns`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count patterns: %w", err)
	}
	return count, nil
}
