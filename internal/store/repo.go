package store

import (
	"context"
	"errors"
	"time"
)

// MaxHighScores is the number of entries kept on the leaderboard.
const MaxHighScores = 10

// MaxNameLength bounds stored player names.
const MaxNameLength = 50

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
	Kind      EventKind // exact match when set
}

// HighScoreEntry is one leaderboard row.
type HighScoreEntry struct {
	ID         string
	Name       string
	Score      int
	Difficulty string
	Timestamp  time.Time
}

// ScoreRepo manages the bounded high-score list.
type ScoreRepo interface {
	// Save inserts an entry and trims the list to MaxHighScores.
	Save(ctx context.Context, e HighScoreEntry) error

	// Top returns up to n entries ordered by score descending. Ties keep
	// insertion order. n <= 0 returns the whole list.
	Top(ctx context.Context, n int) (HighScores, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// SettingsRepo stores JSON-encoded settings keyed by category and key.
type SettingsRepo interface {
	// Get returns the raw JSON value, or ErrNotFound.
	Get(ctx context.Context, category, key string) ([]byte, error)

	// Set inserts or replaces a value.
	Set(ctx context.Context, category, key string, value []byte) error

	// Category returns all stored keys of a category.
	Category(ctx context.Context, category string) (map[string][]byte, error)

	// Reset deletes every stored setting.
	Reset(ctx context.Context) error
}

// EventKind classifies duel events.
type EventKind string

const (
	EventSessionStart EventKind = "session_start"
	EventRound        EventKind = "round"
	EventSessionEnd   EventKind = "session_end"
)

// DuelEventData captures one duel event.
type DuelEventData struct {
	SessionID   string
	Kind        EventKind
	Role        string
	Tier        string
	Category    string
	Problem     string
	Correct     bool
	TimedOut    bool
	LocalScore  int
	RemoteScore int
	Rounds      int
	Peer        string
}

// DuelEvent is a stored DuelEventData with its ordering metadata.
type DuelEvent struct {
	Sequence  int64
	Timestamp time.Time
	DuelEventData
}

// EventRepo provides append and query access to duel events.
type EventRepo interface {
	AppendDuelEvent(ctx context.Context, data DuelEventData) error
	QueryDuelEvents(ctx context.Context, opts QueryOpts) ([]DuelEvent, error)
}
