package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/mathblat/internal/store"
)

// SaveScore records a finished game and returns the rank it took, or 0
// if it did not make the board.
func (s *System) SaveScore(ctx context.Context, name string, score int, difficulty string) Result[int] {
	board, err := s.scores.Top(ctx, 0)
	if err != nil {
		s.track("save_score", err)
		return failed(0, err)
	}
	if !board.Qualifies(score) {
		s.track("save_score", nil)
		return ok(0)
	}
	rank := board.Rank(score)
	err = s.scores.Save(ctx, store.HighScoreEntry{
		Name:       name,
		Score:      score,
		Difficulty: difficulty,
		Timestamp:  s.clock.Now(),
	})
	s.track("save_score", err)
	if err != nil {
		return failed(0, err)
	}
	return ok(rank)
}

// LoadHighScores returns the whole board, best first. On failure the
// value is an empty board.
func (s *System) LoadHighScores(ctx context.Context) Result[store.HighScores] {
	return s.TopScores(ctx, 0)
}

// TopScores returns up to n entries. n <= 0 returns the whole board.
func (s *System) TopScores(ctx context.Context, n int) Result[store.HighScores] {
	board, err := s.scores.Top(ctx, n)
	s.track("load_high_scores", err)
	if err != nil {
		return failed(store.HighScores{}, err)
	}
	if len(board) == 0 {
		return defaulted(store.HighScores{})
	}
	return ok(board)
}

// IsHighScore reports whether score would enter the board.
func (s *System) IsHighScore(ctx context.Context, score int) Result[bool] {
	r := s.LoadHighScores(ctx)
	if r.Err != nil {
		return failed(false, r.Err)
	}
	return ok(r.Value.Qualifies(score))
}

// Rank returns the 1-based position score would take.
func (s *System) Rank(ctx context.Context, score int) Result[int] {
	r := s.LoadHighScores(ctx)
	if r.Err != nil {
		return failed(0, r.Err)
	}
	return ok(r.Value.Rank(score))
}

// PlayerBest returns the best board entry for name. Defaulted is set when
// the player has no entry.
func (s *System) PlayerBest(ctx context.Context, name string) Result[store.HighScoreEntry] {
	r := s.LoadHighScores(ctx)
	if r.Err != nil {
		return failed(store.HighScoreEntry{}, r.Err)
	}
	e, found := r.Value.PlayerBest(name)
	if !found {
		return defaulted(store.HighScoreEntry{})
	}
	return ok(e)
}

// ClearScores empties the board.
func (s *System) ClearScores(ctx context.Context) Result[bool] {
	err := s.scores.Clear(ctx)
	s.track("clear_scores", err)
	if err != nil {
		return failed(false, err)
	}
	return ok(true)
}

// ExportScoresCSV writes the board to path as CSV and returns the number
// of rows written.
func (s *System) ExportScoresCSV(ctx context.Context, path string) Result[int] {
	r := s.LoadHighScores(ctx)
	if r.Err != nil {
		return failed(0, r.Err)
	}
	err := writeCSVFile(path, r.Value)
	s.track("export_scores", err)
	if err != nil {
		return failed(0, err)
	}
	return ok(len(r.Value))
}

func writeCSVFile(path string, board store.HighScores) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := board.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
