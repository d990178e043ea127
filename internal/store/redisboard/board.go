// Package redisboard keeps the high-score list in a Redis sorted set so
// several machines on a LAN can share one leaderboard.
package redisboard

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/mathblat/internal/store"
)

// DefaultKey is the sorted set holding the board.
const DefaultKey = "mathblat:highscores"

// member is the JSON payload stored in each sorted set member.
type member struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Timestamp  int64  `json:"ts"`
}

// Board implements store.ScoreRepo on a Redis sorted set.
type Board struct {
	client *redis.Client
	key    string
}

var _ store.ScoreRepo = (*Board)(nil)

// New returns a board stored under key. An empty key uses DefaultKey.
func New(client *redis.Client, key string) *Board {
	if key == "" {
		key = DefaultKey
	}
	return &Board{client: client, key: key}
}

func (b *Board) seqKey() string {
	return b.key + ":seq"
}

// Ping checks connectivity.
func (b *Board) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Save adds an entry and trims the set to store.MaxHighScores.
func (b *Board) Save(ctx context.Context, e store.HighScoreEntry) error {
	e = store.NormalizeEntry(e)

	seq, err := b.client.Incr(ctx, b.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("next score sequence: %w", err)
	}
	payload, err := json.Marshal(member{
		ID:         e.ID,
		Name:       e.Name,
		Difficulty: e.Difficulty,
		Timestamp:  e.Timestamp.Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}

	// Members with equal scores sort lexicographically; the inverted
	// sequence prefix puts earlier entries first in descending order.
	m := fmt.Sprintf("%019d|%s", math.MaxInt64-seq, payload)

	_, err = b.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, b.key, redis.Z{Score: float64(e.Score), Member: m})
		p.ZRemRangeByRank(ctx, b.key, 0, int64(-(store.MaxHighScores + 1)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

// Top returns up to n entries, best first.
func (b *Board) Top(ctx context.Context, n int) (store.HighScores, error) {
	if n <= 0 || n > store.MaxHighScores {
		n = store.MaxHighScores
	}
	zs, err := b.client.ZRevRangeWithScores(ctx, b.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("query high scores: %w", err)
	}

	out := make(store.HighScores, 0, len(zs))
	for _, z := range zs {
		raw, _ := z.Member.(string)
		_, payload, ok := strings.Cut(raw, "|")
		if !ok {
			return nil, fmt.Errorf("malformed score member %q", raw)
		}
		var m member
		if err := json.Unmarshal([]byte(payload), &m); err != nil {
			return nil, fmt.Errorf("decode score member: %w", err)
		}
		out = append(out, store.HighScoreEntry{
			ID:         m.ID,
			Name:       m.Name,
			Score:      int(z.Score),
			Difficulty: m.Difficulty,
			Timestamp:  time.Unix(m.Timestamp, 0),
		})
	}
	return out, nil
}

// Clear removes the board and its sequence counter.
func (b *Board) Clear(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key, b.seqKey()).Err(); err != nil {
		return fmt.Errorf("clear high scores: %w", err)
	}
	return nil
}
