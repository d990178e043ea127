package scores

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/screen"
	"github.com/abhisek/mathblat/internal/store"
	"github.com/abhisek/mathblat/internal/system"
	"github.com/abhisek/mathblat/internal/ui/components"
	"github.com/abhisek/mathblat/internal/ui/layout"
	"github.com/abhisek/mathblat/internal/ui/theme"
)

// ScoresScreen lists the high-score board and lifetime duel statistics.
type ScoresScreen struct {
	sys          *system.System
	board        store.HighScores
	stats        store.DuelStats
	errMsg       string
	confirmClear bool
}

var _ screen.Screen = (*ScoresScreen)(nil)
var _ screen.KeyHintProvider = (*ScoresScreen)(nil)

// New creates the scores screen and loads the board.
func New(sys *system.System) *ScoresScreen {
	s := &ScoresScreen{sys: sys}
	s.reload()
	return s
}

func (s *ScoresScreen) reload() {
	ctx := context.Background()
	s.errMsg = ""

	board := s.sys.LoadHighScores(ctx)
	if !board.OK() {
		s.errMsg = board.Err.Error()
	}
	s.board = board.Value
	s.stats = s.sys.DuelStats(ctx).Value
}

// Board returns the loaded entries.
func (s *ScoresScreen) Board() store.HighScores {
	return s.board
}

func (s *ScoresScreen) Init() tea.Cmd {
	return nil
}

func (s *ScoresScreen) Title() string {
	return "High Scores"
}

func (s *ScoresScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear board"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Reload"},
		{Key: "C", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScoresScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.confirmClear {
		switch kmsg.String() {
		case "y", "Y":
			s.confirmClear = false
			if res := s.sys.ClearScores(context.Background()); !res.OK() {
				s.errMsg = res.Err.Error()
				return s, nil
			}
			s.reload()
		case "n", "N", "esc":
			s.confirmClear = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "r":
		s.reload()
	case "c":
		s.confirmClear = true
	case "esc", "enter", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ScoresScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, components.Centered(
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("★ HIGH SCORES ★"), cw))

	if s.confirmClear {
		sections = append(sections, components.Centered(
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Clear every high score? [Y/N]"), cw))
	}

	sections = append(sections, components.ArcadeCard(renderBoard(s.board), cw))
	sections = append(sections, components.ArcadeCard(renderStats(s.stats), cw))

	if s.errMsg != "" {
		sections = append(sections, components.Centered(
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func renderBoard(board store.HighScores) string {
	if len(board) == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("No scores yet. Go play!")
	}

	header := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%-4s %-16s %6s  %-8s %-10s", "#", "PLAYER", "SCORE", "LEVEL", "DATE"))
	lines := []string{header}
	for i, e := range board {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == 0 {
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%-4d %-16s %6d  %-8s %-10s",
			i+1, truncate(e.Name, 16), e.Score, e.Difficulty, e.Timestamp.Local().Format(time.DateOnly))))
	}
	return strings.Join(lines, "\n")
}

func renderStats(st store.DuelStats) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	row := func(label string, v any) string {
		return dim.Render(fmt.Sprintf("%-14s", label)) + val.Render(fmt.Sprint(v))
	}
	return strings.Join([]string{
		row("Sessions", st.Sessions),
		row("Rounds", st.Rounds),
		row("Accuracy", fmt.Sprintf("%.0f%%", st.Accuracy()*100)),
		row("Best session", st.BestScore),
		row("Duels won", fmt.Sprintf("%d/%d", st.Wins, st.NetworkedDuel)),
	}, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
