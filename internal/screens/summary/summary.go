package summary

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/screen"
	"github.com/abhisek/mathblat/internal/store"
	"github.com/abhisek/mathblat/internal/system"
	"github.com/abhisek/mathblat/internal/ui/components"
	"github.com/abhisek/mathblat/internal/ui/layout"
	"github.com/abhisek/mathblat/internal/ui/theme"
)

// SummaryScreen shows the results of an ended session and, when the score
// makes the high-score board, asks for a name to save it under.
type SummaryScreen struct {
	summary duel.Summary
	sys     *system.System

	qualifies bool
	input     components.NameInput
	saved     bool
	rank      int
	saveErr   string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. sys may be nil.
func New(sum duel.Summary, sys *system.System, player string) *SummaryScreen {
	s := &SummaryScreen{summary: sum, sys: sys}
	if sys != nil && sum.LocalScore > 0 {
		s.qualifies = sys.IsHighScore(context.Background(), sum.LocalScore).Value
	}
	if s.qualifies {
		s.input = components.NewNameInput(player, store.MaxNameLength)
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.awaitingName() {
		return s.input.Init()
	}
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.awaitingName() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save score"},
			{Key: "Esc", Description: "Skip"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

// Rank is the board position of the saved score, or 0.
func (s *SummaryScreen) Rank() int {
	return s.rank
}

func (s *SummaryScreen) awaitingName() bool {
	return s.qualifies && !s.saved
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !s.awaitingName() {
		if ok && (kmsg.String() == "enter" || kmsg.String() == "esc") {
			return s, home
		}
		return s, nil
	}

	if ok {
		switch kmsg.String() {
		case "enter":
			s.save()
			return s, nil
		case "esc":
			return s, home
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) save() {
	ctx := context.Background()
	name := s.input.Value()
	res := s.sys.SaveScore(ctx, name, s.summary.LocalScore, s.summary.Tier.String())
	s.saved = true
	if !res.OK() {
		s.saveErr = res.Err.Error()
		return
	}
	s.rank = res.Value
	if name != "" {
		s.sys.SaveSetting(ctx, system.CategoryGame, "LastPlayerName", name)
	}
}

func home() tea.Msg {
	return router.PopToRootMsg{}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(outcomeColor(sum.Outcome())).Bold(true).Render(headline(sum)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %s · %d:%02d", sum.Tier, sum.Category, mins, secs)))
	b.WriteString("\n\n")

	score := theme.LocalScore.Render(fmt.Sprintf("YOU %d", sum.LocalScore))
	if sum.Role != duel.RoleSolo {
		opp := sum.PeerName
		if opp == "" {
			opp = "OPPONENT"
		}
		score += "    " + theme.RemoteScore.Render(fmt.Sprintf("%s %d", strings.ToUpper(opp), sum.RemoteScore))
	}
	b.WriteString(center.Render(score))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"Rounds: %d        Correct: %d        Time up: %d        Accuracy: %.0f%%",
		sum.Rounds, sum.Correct, sum.TimedOut, sum.Accuracy()*100)))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	switch {
	case s.awaitingName():
		prompt := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("New high score!") +
			"\n\n" + s.input.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(prompt, cw)))
	case s.saveErr != "":
		b.WriteString(center.Foreground(theme.Error).Render("Could not save score: " + s.saveErr))
	case s.rank > 0:
		b.WriteString(center.Foreground(theme.ArcadeYellow).Bold(true).Render(
			fmt.Sprintf("Saved at rank #%d", s.rank)))
	}
	return b.String()
}

func headline(sum duel.Summary) string {
	switch sum.Outcome() {
	case "WIN":
		return "You win!"
	case "LOSS":
		return "You lose"
	case "DRAW":
		return "It's a draw"
	}
	return "Session complete!"
}

func outcomeColor(outcome string) color.Color {
	switch outcome {
	case "WIN":
		return theme.Success
	case "LOSS":
		return theme.Error
	case "DRAW":
		return theme.Accent
	default:
		return theme.Primary
	}
}
