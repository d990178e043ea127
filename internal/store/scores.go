package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// HighScores is a leaderboard ordered by score descending.
type HighScores []HighScoreEntry

// Rank returns the 1-based position score would take on the board.
// Equal scores rank after existing entries.
func (h HighScores) Rank(score int) int {
	for i, e := range h {
		if score > e.Score {
			return i + 1
		}
	}
	return len(h) + 1
}

// Qualifies reports whether score would enter the board.
func (h HighScores) Qualifies(score int) bool {
	if len(h) < MaxHighScores {
		return true
	}
	return score > h[len(h)-1].Score
}

// PlayerBest returns the best entry for a player name, compared
// case-insensitively.
func (h HighScores) PlayerBest(name string) (HighScoreEntry, bool) {
	for _, e := range h {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return HighScoreEntry{}, false
}

// FilterDifficulty returns the entries recorded at a difficulty.
func (h HighScores) FilterDifficulty(difficulty string) HighScores {
	var out HighScores
	for _, e := range h {
		if strings.EqualFold(e.Difficulty, difficulty) {
			out = append(out, e)
		}
	}
	return out
}

// WriteCSV writes the board with a "Rank,Player,Score,Difficulty,Date" header.
func (h HighScores) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Rank", "Player", "Score", "Difficulty", "Date"}); err != nil {
		return err
	}
	for i, e := range h {
		rec := []string{
			strconv.Itoa(i + 1),
			e.Name,
			strconv.Itoa(e.Score),
			e.Difficulty,
			e.Timestamp.Local().Format(time.DateTime),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// NormalizeEntry trims the name, applies defaults and assigns an ID.
func NormalizeEntry(e HighScoreEntry) HighScoreEntry {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		e.Name = "Player"
	}
	if r := []rune(e.Name); len(r) > MaxNameLength {
		e.Name = string(r[:MaxNameLength])
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return e
}

type scoreRepo struct {
	db *sql.DB
}

func (r *scoreRepo) Save(ctx context.Context, e HighScoreEntry) error {
	e = NormalizeEntry(e)

	ins := builder().Insert(highScoresTable).
		Columns("entry_id", "name", "score", "difficulty", "created_at").
		Values(e.ID, e.Name, e.Score, e.Difficulty, e.Timestamp.Unix())
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return r.prune(ctx)
}

// prune deletes entries beyond MaxHighScores.
func (r *scoreRepo) prune(ctx context.Context) error {
	sel := builder().Select("id").
		From(entsql.Table(highScoresTable)).
		OrderBy(entsql.Desc("score"), entsql.Asc("id"))
	rows, err := runQuery(ctx, r.db, sel)
	if err != nil {
		return fmt.Errorf("list high scores: %w", err)
	}
	var extra []any
	for i := 0; rows.Next(); i++ {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan high score id: %w", err)
		}
		if i >= MaxHighScores {
			extra = append(extra, id)
		}
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if len(extra) == 0 {
		return nil
	}

	del := builder().Delete(highScoresTable).Where(entsql.In("id", extra...))
	if _, err := execQuery(ctx, r.db, del); err != nil {
		return fmt.Errorf("prune high scores: %w", err)
	}
	return nil
}

func (r *scoreRepo) Top(ctx context.Context, n int) (HighScores, error) {
	if n <= 0 || n > MaxHighScores {
		n = MaxHighScores
	}
	sel := builder().Select("entry_id", "name", "score", "difficulty", "created_at").
		From(entsql.Table(highScoresTable)).
		OrderBy(entsql.Desc("score"), entsql.Asc("id")).
		Limit(n)
	rows, err := runQuery(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query high scores: %w", err)
	}
	defer rows.Close()

	var out HighScores
	for rows.Next() {
		var (
			e  HighScoreEntry
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Difficulty, &ts); err != nil {
			return nil, fmt.Errorf("scan high score: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *scoreRepo) Clear(ctx context.Context) error {
	if _, err := execQuery(ctx, r.db, builder().Delete(highScoresTable)); err != nil {
		return fmt.Errorf("clear high scores: %w", err)
	}
	return nil
}
