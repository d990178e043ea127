package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/ui/theme"
)

// ContentWidth is the shared inner width of arcade boxes so stacked
// sections line up.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame wraps content in the double-border cabinet, centered in
// the given area.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded card of content width cw.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// Centered renders s centered on a line of width w.
func Centered(s string, w int) string {
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(s)
}
