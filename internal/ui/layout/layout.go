// Package layout draws the frame around every screen: a header bar with the
// title and live scoreboard, the content area and a key-hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Scoreboard is the live score shown on the right of the header while a
// session runs.
type Scoreboard struct {
	Local  int
	Remote int

	// Duel selects the two-player layout. Otherwise the round and correct
	// counts are shown next to the local score.
	Duel     bool
	Opponent string
	Waiting  bool

	// RemoteAnswered marks the opponent as done with the current round.
	RemoteAnswered bool

	Round   int
	Correct int
}

// Render formats the scoreboard on one line.
func (s Scoreboard) Render() string {
	if !s.Duel {
		return theme.LocalScore.Render(fmt.Sprintf("SCORE %d", s.Local)) +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("  R%d ✓%d", s.Round, s.Correct))
	}

	you := theme.LocalScore.Render(fmt.Sprintf("YOU %d", s.Local))
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render(" ─ ")
	if s.Waiting {
		return you + sep + lipgloss.NewStyle().Foreground(theme.TextDim).Render("waiting for opponent")
	}
	opp := s.Opponent
	if opp == "" {
		opp = "OPPONENT"
	}
	mark := ""
	if s.RemoteAnswered {
		mark = " ✓"
	}
	return you + sep + theme.RemoteScore.Render(fmt.Sprintf("%s %d%s", strings.ToUpper(opp), s.Remote, mark))
}

// Header is the content of the header bar.
type Header struct {
	Title string

	// Badge follows the app name, typically the active tier and category.
	Badge string

	// Score, when set, takes the right of the bar.
	Score *Scoreboard
}

// RenderHeader renders the application header bar.
func RenderHeader(h Header, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("▲ MATHBLAT")
	if h.Badge != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + h.Badge)
	}
	center := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Title)
	right := ""
	if h.Score != nil {
		right = h.Score.Render()
	}

	return bar(width).Render(spread(max(width-4, 0), left, center, right))
}

// RenderFooter renders the footer with key hints as key caps.
func RenderFooter(hints []KeyHint, width int) string {
	capStyle := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeCyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, capStyle.Render(" "+h.Key+" ")+" "+descStyle.Render(h.Description))
	}
	return bar(width).Render(" " + strings.Join(parts, "  "))
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeYellow).
		Foreground(theme.Text).
		Padding(0, 2).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("INSERT MORE COLUMNS\n\nNeed %d x %d\nHave %d x %d",
			MinWidth, MinHeight, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// spread lays out three segments on one line of the given width: left
// aligned, centered and right aligned. The center moves aside rather than
// overlap its neighbours.
func spread(width int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((width-cw)/2-lw, 1)
	rightGap := max(width-lw-leftGap-cw-rw, 1)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}
