package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathblat/internal/config"
	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/store"
	"github.com/abhisek/mathblat/internal/system"
	"github.com/abhisek/mathblat/internal/transport"
)

func TestJoinTarget(t *testing.T) {
	c := config.Default()
	assert.Equal(t, "10.0.0.2:12345", joinTarget("10.0.0.2", c))
	assert.Equal(t, "10.0.0.2:4000", joinTarget(" 10.0.0.2:4000 ", c))
	assert.Equal(t, "ws://h:1/duel", joinTarget("ws://h:1/duel", c))

	c.Network.Transport = config.TransportWebSocket
	assert.Equal(t, "ws://box:12345/duel", joinTarget("box", c))
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.String("log-level", "", "")
	f.String("name", "", "")
	f.String("difficulty", "", "")
	f.String("db", "", "")
	require.NoError(t, f.Set("name", "Ada"))
	require.NoError(t, f.Set("difficulty", "HARD"))

	c := config.Default()
	applyFlags(cmd, &c)
	assert.Equal(t, "Ada", c.Game.PlayerName)
	assert.Equal(t, "HARD", c.Game.Difficulty)
	assert.Equal(t, "info", c.Log.Level)
	assert.Empty(t, c.Storage.DBPath)
}

func TestIsTUI(t *testing.T) {
	assert.True(t, isTUI(rootCmd))
	assert.True(t, isTUI(hostCmd))
	assert.False(t, isTUI(scoresCmd))
	assert.False(t, isTUI(generateCmd))
}

func TestPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	printBoard(&buf, nil)
	assert.Contains(t, buf.String(), "No high scores yet.")

	buf.Reset()
	printBoard(&buf, store.HighScores{
		{Name: "Ada", Score: 120, Difficulty: "HARD", Timestamp: time.Now()},
		{Name: "A very long player name indeed", Score: 40, Difficulty: "EASY", Timestamp: time.Now()},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Ada")
	assert.Contains(t, lines[1], "120")
	assert.Contains(t, lines[2], "…")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, "Ada",
		store.DuelStats{Sessions: 2, Rounds: 10, Correct: 7, NetworkedDuel: 1, Wins: 1, BestScore: 50},
		system.PlayerTotals{GamesPlayed: 2, TotalScore: 70})
	out := buf.String()
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "7 (70%)")
	assert.Contains(t, out, "2 (1 networked, 1 won)")
	assert.NotContains(t, out, "Last played")
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, system.Status{
		ScoresBackend: config.BackendRedis,
		Failures:      1,
		RecentErrors:  []system.ErrorRecord{{Op: "save_score", Err: "boom", Time: time.Now()}},
	})
	out := buf.String()
	assert.Contains(t, out, "redis (offline)")
	assert.Contains(t, out, "save_score")
}

func quizProblem() problemgen.Problem {
	return problemgen.Problem{
		Text:     "7 + 3 = ?",
		Category: problemgen.CategoryArithmetic,
		Tier:     problemgen.TierEasy,
		Answer:   10,
		Options:  []int{12, 10, 9, 4},
		Points:   10,
	}
}

func TestRunQuiz(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("10\n#1\n\n")
	batch := []problemgen.Problem{quizProblem(), quizProblem(), quizProblem()}

	require.NoError(t, runQuiz(&out, in, problemgen.TierEasy, problemgen.CategoryArithmetic, batch))
	s := out.String()
	assert.Equal(t, 1, strings.Count(s, "Correct!"))
	assert.Contains(t, s, "Wrong.")
	assert.Contains(t, s, "(skipped)")
	assert.Contains(t, s, "1/3 correct, 10 points")
}

func TestRunQuiz_InputClosed(t *testing.T) {
	var out bytes.Buffer
	batch := []problemgen.Problem{quizProblem(), quizProblem()}

	require.NoError(t, runQuiz(&out, strings.NewReader("#2\n"), problemgen.TierEasy, problemgen.CategoryArithmetic, batch))
	assert.Contains(t, out.String(), "(input closed)")
	assert.Contains(t, out.String(), "1/1 correct")
}

func TestAnswerText(t *testing.T) {
	p := quizProblem()
	assert.Equal(t, "10", answerText(p))

	p.Category = problemgen.CategoryLongDivision
	p.Remainder = 3
	assert.Equal(t, "10 R3", answerText(p))
}

func TestGenerateCommand(t *testing.T) {
	var out bytes.Buffer
	generateCmd.SetOut(&out)
	t.Cleanup(func() { generateCmd.SetOut(nil) })

	f := generateCmd.Flags()
	require.NoError(t, f.Set("count", "3"))
	require.NoError(t, f.Set("seed", "42"))
	require.NoError(t, f.Set("category", "LONG_DIVISION"))
	t.Cleanup(func() {
		f.Set("count", "5")
		f.Set("seed", "0")
		f.Set("category", "ARITHMETIC")
	})

	require.NoError(t, runGenerate(generateCmd, nil))
	s := out.String()
	assert.Contains(t, s, "FOUNDATIONAL · LONG_DIVISION · 3 problems")
	assert.Contains(t, s, "Problem 3/3")
	assert.Equal(t, 3, strings.Count(s, "── Problem"))
	assert.Contains(t, s, "Answer:")
}

func testDeps(t *testing.T) *appDeps {
	t.Helper()
	st, err := store.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sys, err := system.New(system.Options{
		Generator: problemgen.New(problemgen.WithSeed(1, 2)),
		Scores:    st.ScoreRepo(),
		Settings:  st.SettingsRepo(),
		Events:    st.EventRepo(),
	})
	require.NoError(t, err)
	return &appDeps{sys: sys, player: "Ada", tier: problemgen.TierEasy, close: func() {}}
}

func TestNewSession_ClosesPeerOnError(t *testing.T) {
	rt := testDeps(t)
	local, remote := transport.Pipe()
	defer remote.Close()

	dc := rt.sessionConfig(duel.RoleClient, problemgen.Tier(99), problemgen.CategoryArithmetic)
	_, err := rt.newSession(context.Background(), dc, local)
	require.Error(t, err)
	assert.True(t, local.Closed())
}

func TestNewSession_KeepsPeerOnSuccess(t *testing.T) {
	rt := testDeps(t)
	local, remote := transport.Pipe()
	defer remote.Close()

	dc := rt.sessionConfig(duel.RoleClient, problemgen.TierEasy, problemgen.CategoryArithmetic)
	s, err := rt.newSession(context.Background(), dc, local)
	require.NoError(t, err)
	assert.False(t, local.Closed())
	assert.Equal(t, duel.RoleClient, s.Role())
	s.End(duel.ReasonQuit)
}
