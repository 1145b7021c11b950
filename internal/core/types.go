package core

import "time"

const (
	LoroName    = "LoroBot"
	LoroVersion = "0.1.0"
)

// MessageEvent is the single inbound shape pushed by a transport, once per
// received message, in send order per chat.
type MessageEvent struct {
	SenderID  string    `json:"sender_id"`
	ChatID    string    `json:"chat_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// StoredMessage is one persisted inbound message. Immutable once written.
// LinkedQuestionID, when set, references an earlier question in the same chat.
type StoredMessage struct {
	ID               int64     `json:"id"`
	Sender           string    `json:"sender"`
	ChatID           string    `json:"chat_id"`
	Text             string    `json:"text"`
	Timestamp        time.Time `json:"timestamp"`
	IsQuestion       bool      `json:"is_question"`
	IsAnswer         bool      `json:"is_answer"`
	LinkedQuestionID *int64    `json:"linked_question_id,omitempty"`
	Processed        bool      `json:"processed"`
}

const (
	CategoryProducto = "producto"
	CategorySoporte  = "soporte"
	CategoryInfo     = "info"
	CategoryGeneral  = "general"
)

// Pattern is a learned question→answer association, keyed by the normalized
// question text. Answer holds the latest observation, Relevance the running
// maximum, Frequency the observation count.
type Pattern struct {
	ID          int64     `json:"id"`
	Pattern     string    `json:"pattern"`
	Answer      string    `json:"answer"`
	Frequency   int64     `json:"frequency"`
	LastUpdated time.Time `json:"last_updated"`
	Category    string    `json:"category"`
	Relevance   float64   `json:"relevance"`
}

// PatternObservation is one question→answer sighting handed to the pattern
// store. Category and Relevance only apply on first insert; updates keep the
// stored category and take the max of the relevances.
type PatternObservation struct {
	Pattern    string
	Answer     string
	Category   string
	Relevance  float64
	ObservedAt time.Time
}

// ContextEntry is one message inside a chat's rolling window.
type ContextEntry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatContext is the bounded FIFO window of recent messages for one chat.
// Topic is reserved and never set by the current logic.
type ChatContext struct {
	ChatID          string         `json:"chat_id"`
	Recent          []ContextEntry `json:"recent"`
	LastInteraction time.Time      `json:"last_interaction"`
	Topic           string         `json:"topic,omitempty"`
}

type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchSimilar MatchKind = "similar"
)

// MatchResult is the outcome of a best-match lookup against the pattern store.
type MatchResult struct {
	Answer     string    `json:"answer"`
	Confidence float64   `json:"confidence"`
	Kind       MatchKind `json:"kind"`
}

// LearningStats aggregates row counts across the three learning tables.
type LearningStats struct {
	Messages  int64     `json:"messages"`
	Patterns  int64     `json:"patterns"`
	Contexts  int64     `json:"contexts"`
	Timestamp time.Time `json:"timestamp"`
}
