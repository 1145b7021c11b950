// Package memstore implements the repository interfaces on plain maps.
// It backs unit tests and the `start --memory` throwaway mode; semantics
// (ordering, upsert atomicity per key) mirror the sqlite implementation.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/franvarela/lorobot/internal/core"
)

type Messages struct {
	mu     sync.RWMutex
	nextID int64
	rows   []core.StoredMessage
}

func NewMessages() *Messages {
	return &Messages{nextID: 1}
}

func (m *Messages) Insert(ctx context.Context, msg core.StoredMessage) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, msg)
	return msg.ID, nil
}

func (m *Messages) LatestByChat(ctx context.Context, chatID string) (*core.StoredMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].ChatID == chatID {
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (m *Messages) ListRecent(ctx context.Context, limit int) ([]core.StoredMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []core.StoredMessage
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

func (m *Messages) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.rows)), nil
}

type Patterns struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]*core.Pattern
}

func NewPatterns() *Patterns {
	return &Patterns{nextID: 1, rows: make(map[string]*core.Pattern)}
}

// Upsert is atomic per pattern key: the whole read-modify-write runs under
// one lock, the same guarantee the sqlite repo gets from ON CONFLICT.
func (p *Patterns) Upsert(ctx context.Context, obs core.PatternObservation) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if row, ok := p.rows[obs.Pattern]; ok {
		row.Frequency++
		row.Answer = obs.Answer
		row.LastUpdated = obs.ObservedAt
		if obs.Relevance > row.Relevance {
			row.Relevance = obs.Relevance
		}
		// Category is sticky: first observation wins.
		return nil
	}

	p.rows[obs.Pattern] = &core.Pattern{
		ID:          p.nextID,
		Pattern:     obs.Pattern,
		Answer:      obs.Answer,
		Frequency:   1,
		LastUpdated: obs.ObservedAt,
		Category:    obs.Category,
		Relevance:   obs.Relevance,
	}
	p.nextID++
	return nil
}

func (p *Patterns) GetByText(ctx context.Context, pattern string) (*core.Pattern, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	row, ok := p.rows[pattern]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (p *Patterns) ListByFrequency(ctx context.Context, minFrequency int64) ([]core.Pattern, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []core.Pattern
	for _, row := range p.rows {
		if row.Frequency >= minFrequency {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (p *Patterns) Count(ctx context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int64(len(p.rows)), nil
}

type Contexts struct {
	mu   sync.RWMutex
	rows map[string]core.ChatContext
}

func NewContexts() *Contexts {
	return &Contexts{rows: make(map[string]core.ChatContext)}
}

func (c *Contexts) Get(ctx context.Context, chatID string) (*core.ChatContext, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row, ok := c.rows[chatID]
	if !ok {
		return nil, nil
	}
	cp := row
	cp.Recent = append([]core.ContextEntry(nil), row.Recent...)
	return &cp, nil
}

func (c *Contexts) Save(ctx context.Context, cc core.ChatContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cc.Recent = append([]core.ContextEntry(nil), cc.Recent...)
	c.rows[cc.ChatID] = cc
	return nil
}

func (c *Contexts) Count(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.rows)), nil
}
