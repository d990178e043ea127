package session

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/screens/summary"
)

// fixedSource always returns the same problem.
type fixedSource struct{}

func (fixedSource) Generate(problemgen.Tier, problemgen.Category) problemgen.Problem {
	return problemgen.Problem{
		Text:       "7 + 3 = ?",
		Expression: "7 + 3",
		Category:   problemgen.CategoryArithmetic,
		Tier:       problemgen.TierEasy,
		Operator:   "+",
		Operands:   []int{7, 3},
		Answer:     10,
		Options:    []int{12, 10, 9, 4},
		Points:     10,
		Steps:      []string{"Add: 7 + 3 = 10"},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSessionScreen(t *testing.T, cfg duel.Config) (*SessionScreen, *duel.Session, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s, err := duel.New(cfg, duel.Deps{Source: fixedSource{}, Clock: clock})
	require.NoError(t, err)
	t.Cleanup(func() { s.End(duel.ReasonQuit) })

	scr := New(s, nil, "Ada")
	require.NotNil(t, scr.Init())
	return scr, s, clock
}

func TestSessionScreen_InitStartsRound(t *testing.T) {
	scr, s, _ := testSessionScreen(t, duel.DefaultConfig())

	snap := s.Snapshot()
	assert.Equal(t, duel.StateAwaitingAnswer, snap.State)
	assert.Equal(t, "Solo Practice", scr.Title())
	assert.Equal(t, "EASY · ARITHMETIC", scr.Badge())

	assert.Contains(t, scr.View(100, 30), "7 + 3 = ?")
	sb, ok := scr.Scoreboard()
	require.True(t, ok)
	assert.False(t, sb.Duel)
	assert.Equal(t, 1, sb.Round)
	assert.Contains(t, sb.Render(), "SCORE 0")
}

func TestSessionScreen_DigitAnswers(t *testing.T) {
	scr, s, _ := testSessionScreen(t, duel.DefaultConfig())

	scr.Update(keyPress('2'))

	snap := s.Snapshot()
	assert.Equal(t, duel.StateResolving, snap.State)
	assert.Equal(t, 10, snap.LocalScore)
	assert.True(t, scr.choices.Revealed)
	sb, _ := scr.Scoreboard()
	assert.Equal(t, 10, sb.Local)
	assert.Equal(t, 1, sb.Correct)
	assert.Contains(t, scr.View(100, 30), duel.StatusCorrect)
}

func TestSessionScreen_WrongAnswerShowsCorrection(t *testing.T) {
	scr, s, _ := testSessionScreen(t, duel.DefaultConfig())

	scr.Update(keyPress('1'))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.LocalScore)
	assert.Equal(t, duel.OutcomeWrong, snap.Outcome)
	assert.Contains(t, scr.View(100, 30), "Answer: 10")
}

func TestSessionScreen_SecondAnswerIgnored(t *testing.T) {
	scr, s, _ := testSessionScreen(t, duel.DefaultConfig())

	scr.Update(keyPress('2'))
	scr.Update(keyPress('2'))

	assert.Equal(t, 10, s.Snapshot().LocalScore)
}

func TestSessionScreen_TickAdvancesRounds(t *testing.T) {
	scr, s, clock := testSessionScreen(t, duel.DefaultConfig())

	scr.Update(keyPress('2'))
	clock.Advance(1100 * time.Millisecond)
	_, cmd := scr.Update(tickMsg(clock.Now()))
	assert.NotNil(t, cmd)

	snap := s.Snapshot()
	assert.Equal(t, duel.StateAwaitingAnswer, snap.State)
	assert.Equal(t, 1, snap.Rounds)
	assert.False(t, scr.choices.Revealed)
}

func TestSessionScreen_TeacherStepsAfterResolve(t *testing.T) {
	cfg := duel.DefaultConfig()
	cfg.Tier = problemgen.TierFoundational
	cfg.Category = problemgen.CategoryPEMDAS
	scr, _, _ := testSessionScreen(t, cfg)
	assert.Equal(t, "Teacher Mode", scr.Title())
	assert.NotContains(t, scr.View(100, 30), "Add: 7 + 3 = 10")

	scr.Update(keyPress('2'))
	assert.Contains(t, scr.View(100, 30), "Add: 7 + 3 = 10")
}

func TestSessionScreen_QuitConfirmation(t *testing.T) {
	scr, s, _ := testSessionScreen(t, duel.DefaultConfig())

	scr.Update(specialKey(tea.KeyEscape))
	assert.Contains(t, scr.View(100, 30), "End this session?")
	assert.Len(t, scr.KeyHints(), 2)

	scr.Update(keyPress('n'))
	assert.Equal(t, duel.StateAwaitingAnswer, s.Snapshot().State)

	scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &summary.SummaryScreen{}, msg.Screen)
	assert.Equal(t, duel.StateEnded, s.Snapshot().State)
}

func TestSessionScreen_ExternalEndShowsSummary(t *testing.T) {
	scr, s, clock := testSessionScreen(t, duel.DefaultConfig())

	s.End(duel.ReasonCanceled)
	_, cmd := scr.Update(tickMsg(clock.Now()))
	require.NotNil(t, cmd)
	assert.IsType(t, router.ReplaceScreenMsg{}, cmd())

	// Further ticks are ignored once finished.
	_, cmd = scr.Update(tickMsg(clock.Now()))
	assert.Nil(t, cmd)
}

func TestSessionScreen_CloseEndsSession(t *testing.T) {
	scr, s, _ := testSessionScreen(t, duel.DefaultConfig())

	scr.Close()

	assert.Equal(t, duel.StateEnded, s.Snapshot().State)
	select {
	case <-s.Done():
	default:
		t.Fatal("session not done after Close")
	}
}

func TestSessionScreen_HostWaitsForOpponent(t *testing.T) {
	cfg := duel.DefaultConfig()
	cfg.Role = duel.RoleHost
	scr, _, _ := testSessionScreen(t, cfg)

	assert.Equal(t, "Duel · Host", scr.Title())
	sb, _ := scr.Scoreboard()
	assert.True(t, sb.Duel)
	assert.True(t, sb.Waiting)
	assert.Contains(t, sb.Render(), "waiting for opponent")
}
