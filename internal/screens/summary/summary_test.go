package summary

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/store"
	"github.com/abhisek/mathblat/internal/system"
)

func testSummary(role duel.Role, local, remote int) duel.Summary {
	return duel.Summary{
		SessionID:   "s-1",
		Role:        role,
		Tier:        problemgen.TierMedium,
		Category:    problemgen.CategoryArithmetic,
		LocalScore:  local,
		RemoteScore: remote,
		Rounds:      5,
		Correct:     2,
		TimedOut:    1,
		Duration:    95 * time.Second,
		PeerName:    "bob",
	}
}

func testSystem(t *testing.T) *system.System {
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
	return sys
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(duel.RoleSolo, 40, 0), nil, "Ada")
	assert.Equal(t, "Results", s.Title())
}

func TestSummaryScreen_SoloDisplay(t *testing.T) {
	s := New(testSummary(duel.RoleSolo, 40, 0), nil, "Ada")
	view := s.View(100, 30)
	assert.Contains(t, view, "Session complete!")
	assert.Contains(t, view, "YOU 40")
	assert.Contains(t, view, "1:35")
	assert.NotContains(t, view, "BOB")
}

func TestSummaryScreen_DuelDisplay(t *testing.T) {
	assert.Contains(t, New(testSummary(duel.RoleHost, 40, 20), nil, "Ada").View(100, 30), "You win!")
	assert.Contains(t, New(testSummary(duel.RoleClient, 10, 20), nil, "Ada").View(100, 30), "You lose")

	view := New(testSummary(duel.RoleClient, 20, 20), nil, "Ada").View(100, 30)
	assert.Contains(t, view, "It's a draw")
	assert.Contains(t, view, "BOB 20")
}

func TestSummaryScreen_NoSystemGoesHome(t *testing.T) {
	s := New(testSummary(duel.RoleSolo, 40, 0), nil, "Ada")
	assert.Len(t, s.KeyHints(), 1)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.IsType(t, router.PopToRootMsg{}, runCmd(t, cmd))
}

func TestSummaryScreen_SavesQualifyingScore(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()
	s := New(testSummary(duel.RoleSolo, 40, 0), sys, "Ada")
	require.Len(t, s.KeyHints(), 2)
	assert.Contains(t, s.View(100, 30), "New high score!")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, s.Rank())
	assert.Contains(t, s.View(100, 30), "Saved at rank #1")

	board := sys.LoadHighScores(ctx)
	require.NoError(t, board.Err)
	require.Len(t, board.Value, 1)
	assert.Equal(t, "Ada", board.Value[0].Name)
	assert.Equal(t, 40, board.Value[0].Score)
	assert.Equal(t, "MEDIUM", board.Value[0].Difficulty)

	name := system.LoadSetting(ctx, sys, system.CategoryGame, "LastPlayerName", "")
	assert.Equal(t, "Ada", name.Value)

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	assert.IsType(t, router.PopToRootMsg{}, runCmd(t, cmd))
}

func TestSummaryScreen_EscSkipsSaving(t *testing.T) {
	sys := testSystem(t)
	s := New(testSummary(duel.RoleSolo, 40, 0), sys, "Ada")

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	assert.IsType(t, router.PopToRootMsg{}, runCmd(t, cmd))

	board := sys.LoadHighScores(context.Background())
	assert.Empty(t, board.Value)
}

func TestSummaryScreen_ZeroScoreNotOffered(t *testing.T) {
	sys := testSystem(t)
	s := New(testSummary(duel.RoleSolo, 0, 0), sys, "Ada")
	assert.Len(t, s.KeyHints(), 1)
	assert.NotContains(t, s.View(100, 30), "New high score!")
}
