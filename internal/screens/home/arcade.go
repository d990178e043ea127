package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/ui/components"
	"github.com/abhisek/mathblat/internal/ui/theme"
)

const arcadeTitleFull = ` __  __    _    _____  _  _  ___  _       _    _____
|  \/  |  /_\  |_   _|| || || _ )| |     /_\  |_   _|
| |\/| | / _ \   | |  | __ || _ \| |__  / _ \   | |
|_|  |_|/_/ \_\  |_|  |_||_||___/|____|/_/ \_\  |_|`

const arcadeTitleCompact = "M · A · T · H · B · L · A · T"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)
	if compact {
		return components.Centered(style.Render(arcadeTitleCompact), cw)
	}
	return components.Centered(style.Render(arcadeTitleFull), cw)
}

// renderStatsBar shows lifetime totals and the board leader.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	games := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	total := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	best := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			games.Render(fmt.Sprintf("▶%d", d.gamesPlayed)),
			total.Render(fmt.Sprintf("Σ%d", d.totalScore)),
			best.Render(fmt.Sprintf("★%d", d.bestScore)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			games.Render(fmt.Sprintf("▶ %d GAMES", d.gamesPlayed)),
			total.Render(fmt.Sprintf("Σ %d POINTS", d.totalScore)),
			best.Render(fmt.Sprintf("★ %d HI", d.bestScore)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, base.Foreground(theme.TextDim).Render(label))
		case i == selected:
			buttons = append(buttons, base.
				Bold(true).
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				BorderForeground(theme.ArcadeYellow).
				Render("▸ "+label))
		default:
			buttons = append(buttons, base.Foreground(theme.Text).Render(label))
		}
	}
	return components.Centered(strings.Join(buttons, "\n"), cw)
}

// renderArcadeMenuCompact renders menu items as plain lines for terminals
// too short for bordered buttons.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		switch {
		case disabled[i]:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+label))
		case i == selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
		}
	}
	return components.Centered(strings.Join(lines, "\n"), cw)
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return components.Centered(RenderMascot(variant), cw)
}

func renderNote(text string, cw int, warn bool) string {
	fg := theme.TextDim
	if warn {
		fg = theme.Accent
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
