package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathblat.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if err := s.ScoreRepo().Save(ctx, HighScoreEntry{Name: "Ada", Score: 40, Difficulty: "EASY"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	s.Close()

	// Reopen: data and schema survive.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	top, err := s.ScoreRepo().Top(ctx, 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].Name != "Ada" {
		t.Fatalf("unexpected scores after reopen: %+v", top)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpen_FileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestScores_SaveTopAndTrim(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		err := repo.Save(ctx, HighScoreEntry{Name: fmt.Sprintf("p%d", i), Score: i * 10, Difficulty: "EASY"})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	top, err := repo.Top(ctx, 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != MaxHighScores {
		t.Fatalf("expected %d entries, got %d", MaxHighScores, len(top))
	}
	if top[0].Score != 120 || top[len(top)-1].Score != 30 {
		t.Errorf("unexpected order: first=%d last=%d", top[0].Score, top[len(top)-1].Score)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("scores not descending at %d", i)
		}
	}

	three, err := repo.Top(ctx, 3)
	if err != nil {
		t.Fatalf("top 3: %v", err)
	}
	if len(three) != 3 || three[2].Score != 100 {
		t.Errorf("unexpected top 3: %+v", three)
	}
}

func TestScores_TiesKeepInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if err := repo.Save(ctx, HighScoreEntry{Name: name, Score: 50, Difficulty: "HARD"}); err != nil {
			t.Fatal(err)
		}
	}
	top, err := repo.Top(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := []string{top[0].Name, top[1].Name, top[2].Name}
	if strings.Join(got, ",") != "first,second,third" {
		t.Errorf("tie order = %v", got)
	}
}

func TestScores_NameTruncatedAndDefaulted(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, HighScoreEntry{Name: strings.Repeat("n", 80), Score: 10}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, HighScoreEntry{Name: "   ", Score: 5}); err != nil {
		t.Fatal(err)
	}
	top, err := repo.Top(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top[0].Name) != MaxNameLength {
		t.Errorf("name length = %d, want %d", len(top[0].Name), MaxNameLength)
	}
	if top[1].Name != "Player" {
		t.Errorf("blank name stored as %q", top[1].Name)
	}
	if top[0].ID == "" {
		t.Error("expected entry ID to be assigned")
	}
}

func TestScores_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ScoreRepo()
	ctx := context.Background()

	_ = repo.Save(ctx, HighScoreEntry{Name: "a", Score: 10})
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	top, err := repo.Top(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 0 {
		t.Fatalf("expected empty board, got %d", len(top))
	}
}

func TestHighScores_Helpers(t *testing.T) {
	board := HighScores{
		{Name: "Ada", Score: 90, Difficulty: "HARD"},
		{Name: "bob", Score: 60, Difficulty: "EASY"},
		{Name: "ada", Score: 40, Difficulty: "EASY"},
	}

	if r := board.Rank(100); r != 1 {
		t.Errorf("Rank(100) = %d", r)
	}
	if r := board.Rank(60); r != 3 {
		t.Errorf("Rank(60) = %d, want 3", r)
	}
	if r := board.Rank(1); r != 4 {
		t.Errorf("Rank(1) = %d, want 4", r)
	}
	if !board.Qualifies(1) {
		t.Error("short board should accept any score")
	}

	full := make(HighScores, MaxHighScores)
	for i := range full {
		full[i] = HighScoreEntry{Score: 100 - i}
	}
	if full.Qualifies(91) {
		t.Error("score equal to the lowest entry should not qualify")
	}
	if !full.Qualifies(92) {
		t.Error("score above the lowest entry should qualify")
	}

	best, ok := board.PlayerBest("ADA")
	if !ok || best.Score != 90 {
		t.Errorf("PlayerBest(ADA) = %+v, %v", best, ok)
	}
	if _, ok := board.PlayerBest("carol"); ok {
		t.Error("unexpected best for unknown player")
	}

	if easy := board.FilterDifficulty("easy"); len(easy) != 2 {
		t.Errorf("FilterDifficulty(easy) = %d entries", len(easy))
	}
}

func TestHighScores_WriteCSV(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	board := HighScores{
		{Name: "Ada, the Great", Score: 90, Difficulty: "HARD", Timestamp: ts},
		{Name: "Bob", Score: 60, Difficulty: "EASY", Timestamp: ts},
	}
	var buf bytes.Buffer
	if err := board.WriteCSV(&buf); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	want := "Rank,Player,Score,Difficulty,Date\n" +
		"1,\"Ada, the Great\",90,HARD,2026-03-01 12:00:00\n" +
		"2,Bob,60,EASY,2026-03-01 12:00:00\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestSettings_SetGetCategoryReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "Game", "Difficulty"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Set(ctx, "Game", "Difficulty", []byte(`"EASY"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "Game", "Difficulty", []byte(`"HARD"`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := repo.Set(ctx, "Game", "Volume", []byte(`0.5`)); err != nil {
		t.Fatalf("set volume: %v", err)
	}

	got, err := repo.Get(ctx, "Game", "Difficulty")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `"HARD"` {
		t.Errorf("got %s", got)
	}

	cat, err := repo.Category(ctx, "Game")
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if len(cat) != 2 || string(cat["Volume"]) != "0.5" {
		t.Errorf("unexpected category: %v", cat)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := repo.Get(ctx, "Game", "Volume"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after reset, got %v", err)
	}
}

func TestDuelEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []DuelEventData{
		{SessionID: "s1", Kind: EventSessionStart, Role: "HOST", Tier: "EASY", Category: "ARITHMETIC"},
		{SessionID: "s1", Kind: EventRound, Role: "HOST", Problem: "7 + 3 = ?", Correct: true, LocalScore: 10},
		{SessionID: "s1", Kind: EventRound, Role: "HOST", Problem: "9 - 4 = ?", TimedOut: true, LocalScore: 10},
		{SessionID: "s1", Kind: EventSessionEnd, Role: "HOST", LocalScore: 10, RemoteScore: 0, Rounds: 2, Peer: "127.0.0.1:5000"},
		{SessionID: "s2", Kind: EventSessionStart, Role: "SOLO"},
	}
	for _, e := range events {
		if err := repo.AppendDuelEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryDuelEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence <= all[i-1].Sequence {
			t.Fatalf("sequence not increasing at %d", i)
		}
	}
	if !all[1].Correct || !all[2].TimedOut || all[3].Peer != "127.0.0.1:5000" {
		t.Errorf("fields not round-tripped: %+v", all[1:4])
	}

	rounds, err := repo.QueryDuelEvents(ctx, QueryOpts{SessionID: "s1", Kind: EventRound})
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 2 {
		t.Errorf("expected 2 rounds, got %d", len(rounds))
	}

	after, err := repo.QueryDuelEvents(ctx, QueryOpts{After: all[2].Sequence, Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 || after[0].Kind != EventSessionEnd {
		t.Errorf("unexpected page: %+v", after)
	}

	stats := ComputeStats(all)
	if stats.Sessions != 2 || stats.Rounds != 2 || stats.Correct != 1 || stats.TimedOut != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.NetworkedDuel != 1 || stats.Wins != 1 || stats.BestScore != 10 {
		t.Errorf("unexpected duel stats: %+v", stats)
	}
	if stats.Accuracy() != 0.5 {
		t.Errorf("accuracy = %v", stats.Accuracy())
	}
}
