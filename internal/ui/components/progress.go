package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/ui/theme"
)

// TimerBar shows the seconds left in a round as a shrinking bar.
type TimerBar struct {
	Remaining int
	Total     int
	Width     int
}

// NewTimerBar creates a timer bar.
func NewTimerBar(remaining, total, width int) TimerBar {
	return TimerBar{Remaining: remaining, Total: total, Width: width}
}

// Fraction is the share of the round left, clamped to [0, 1].
func (b TimerBar) Fraction() float64 {
	if b.Total <= 0 {
		return 0
	}
	f := float64(b.Remaining) / float64(b.Total)
	return min(max(f, 0), 1)
}

// View renders the bar followed by the seconds left.
func (b TimerBar) View() string {
	suffix := fmt.Sprintf(" %2ds", max(b.Remaining, 0))
	barWidth := max(b.Width-lipgloss.Width(suffix), 4)

	filled := int(float64(barWidth) * b.Fraction())
	empty := barWidth - filled

	var fill color.Color = theme.Secondary
	switch {
	case b.Remaining <= 3:
		fill = theme.Error
	case b.Remaining <= 7:
		fill = theme.Accent
	}

	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(fill).Bold(true).Render(suffix)
}
