package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/ui/theme"
)

// MultiChoice renders the numbered answer options of a problem and tracks
// the highlighted one. Choosing is reported through Update's second result
// so the caller decides what an answer means.
type MultiChoice struct {
	Options  []int
	Selected int

	// Revealed marks the correct option and the chosen one after a
	// round resolves.
	Revealed bool
	Answer   int
	Chosen   int
}

// NewMultiChoice creates a picker over options with the first one
// highlighted.
func NewMultiChoice(options []int) MultiChoice {
	return MultiChoice{
		Options: append([]int(nil), options...),
		Chosen:  -1,
	}
}

// Update moves the highlight with the arrow keys. It returns the index
// picked by a digit key or Enter, or -1.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.Revealed {
		return m, -1
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left", "h":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, -1
	case "down", "j", "right", "l":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, -1
	case "enter", "space":
		return m.choose(m.Selected)
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
		return m.choose(n - 1)
	}
	return m, -1
}

func (m MultiChoice) choose(i int) (MultiChoice, int) {
	m.Selected = i
	m.Chosen = i
	return m, i
}

// Reveal switches the picker to feedback mode.
func (m *MultiChoice) Reveal(answer int) {
	m.Revealed = true
	m.Answer = answer
}

// View renders the options as a two-column grid.
func (m MultiChoice) View(width int) string {
	cell := max(width/2-2, 12)
	var rows []string
	for i := 0; i < len(m.Options); i += 2 {
		left := m.renderOption(i, cell)
		right := ""
		if i+1 < len(m.Options) {
			right = m.renderOption(i+1, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n"))
}

func (m MultiChoice) renderOption(i, cell int) string {
	label := fmt.Sprintf("%d)  %d", i+1, m.Options[i])
	style := lipgloss.NewStyle().
		Width(cell).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text)

	switch {
	case m.Revealed && m.Options[i] == m.Answer:
		style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
	case m.Revealed && i == m.Chosen:
		style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
	case m.Revealed:
		style = style.Foreground(theme.TextDim)
	case i == m.Selected:
		style = style.BorderForeground(theme.ArcadeYellow).Foreground(theme.ArcadeYellow).Bold(true)
		label = "▸ " + label
	}
	return style.Render(label)
}
