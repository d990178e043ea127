package scores

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/store"
	"github.com/abhisek/mathblat/internal/system"
)

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

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestScoresScreen_Empty(t *testing.T) {
	s := New(testSystem(t))
	assert.Equal(t, "High Scores", s.Title())
	assert.Empty(t, s.Board())
	assert.Contains(t, s.View(100, 40), "No scores yet")
}

func TestScoresScreen_ListsBoard(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()
	require.NoError(t, sys.SaveScore(ctx, "Ada", 70, "HARD").Err)
	require.NoError(t, sys.SaveScore(ctx, "Bob", 30, "EASY").Err)

	s := New(sys)
	require.Len(t, s.Board(), 2)
	assert.Equal(t, "Ada", s.Board()[0].Name)

	view := s.View(100, 40)
	assert.Contains(t, view, "Ada")
	assert.Contains(t, view, "Bob")
}

func TestScoresScreen_ReloadPicksUpNewScores(t *testing.T) {
	sys := testSystem(t)
	s := New(sys)
	require.NoError(t, sys.SaveScore(context.Background(), "Cy", 10, "EASY").Err)

	s.Update(keyPress('r'))
	assert.Len(t, s.Board(), 1)
}

func TestScoresScreen_ClearNeedsConfirmation(t *testing.T) {
	sys := testSystem(t)
	require.NoError(t, sys.SaveScore(context.Background(), "Ada", 70, "HARD").Err)
	s := New(sys)

	s.Update(keyPress('c'))
	assert.Len(t, s.KeyHints(), 2)
	s.Update(keyPress('n'))
	assert.Len(t, s.Board(), 1)

	s.Update(keyPress('c'))
	s.Update(keyPress('y'))
	assert.Empty(t, s.Board())
}

func TestScoresScreen_EscPops(t *testing.T) {
	s := New(testSystem(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
