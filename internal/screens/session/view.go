package session

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/ui/components"
	"github.com/abhisek/mathblat/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	p := s.snap.Problem
	if p == nil {
		b.WriteString(renderWaiting(width, s.snap))
		return b.String()
	}

	if s.snap.State == duel.StateAwaitingAnswer {
		bar := components.NewTimerBar(s.snap.TimeRemaining, s.sess.Config().RoundSeconds, min(width-8, 50))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(p.Text))
	b.WriteString("\n\n")

	b.WriteString(s.choices.View(min(width-4, 60)))
	b.WriteString("\n\n")

	if status := s.renderStatus(width); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	if s.snap.State == duel.StateResolving && len(p.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(renderSteps(width, p.Steps))
	}

	if s.snap.Notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.snap.Notice))
	}

	return b.String()
}

func (s *SessionScreen) renderStatus(width int) string {
	text := s.snap.Status
	if text == "" {
		return ""
	}
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Bold(true)
	switch s.snap.Outcome {
	case duel.OutcomeCorrect:
		style = style.Foreground(theme.Success)
	case duel.OutcomeWrong:
		style = style.Foreground(theme.Error)
	case duel.OutcomeTimedOut:
		style = style.Foreground(theme.Accent)
	default:
		style = style.Foreground(theme.TextDim).Bold(false)
	}
	return style.Render(text)
}

func renderSteps(width int, steps []string) string {
	block := lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 2).
		Render(strings.Join(steps, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func renderWaiting(width int, snap duel.Snapshot) string {
	text := snap.Status
	if text == "" {
		text = duel.StatusWaiting
	}
	out := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + text)
	if snap.Notice != "" {
		out += "\n\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(snap.Notice)
	}
	return out
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End this session?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your score so far will be kept."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end it"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep playing"))
	return b.String()
}
