package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_DigitPicks(t *testing.T) {
	m := NewMultiChoice([]int{12, 10, 9, 4})

	m, picked := m.Update(keyPress('2'))
	assert.Equal(t, 1, picked)
	assert.Equal(t, 1, m.Chosen)

	_, picked = m.Update(keyPress('5'))
	assert.Equal(t, -1, picked)
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]int{12, 10, 9, 4})

	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyUp))
	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 0, m.Selected)

	_, picked := m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, 0, picked)
}

func TestMultiChoice_RevealedIgnoresKeys(t *testing.T) {
	m := NewMultiChoice([]int{12, 10, 9, 4})
	m.Reveal(10)

	_, picked := m.Update(keyPress('1'))
	assert.Equal(t, -1, picked)
	assert.Contains(t, m.View(60), "10")
}

func TestMultiChoice_CopiesOptions(t *testing.T) {
	opts := []int{1, 2, 3, 4}
	m := NewMultiChoice(opts)
	opts[0] = 99
	assert.Equal(t, 1, m.Options[0])
}

func TestMenu_NavigationSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)
	assert.Equal(t, map[int]bool{0: true, 2: true}, m.DisabledSet())
	assert.Equal(t, []string{"A", "B", "C", "D"}, m.Labels())
}

func TestMenu_ShortcutActivates(t *testing.T) {
	hit := ""
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			hit = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Solo", Key: "s", Action: action("solo")},
		{Label: "Scores", Key: "h", Action: action("scores")},
	})

	m, _ = m.Update(keyPress('h'))
	assert.Equal(t, "scores", hit)
	assert.Equal(t, 1, m.Selected)

	_, _ = m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "scores", hit)
}

func TestTimerBar_Fraction(t *testing.T) {
	assert.InDelta(t, 1.0, NewTimerBar(15, 15, 40).Fraction(), 1e-9)
	assert.InDelta(t, 0.2, NewTimerBar(3, 15, 40).Fraction(), 1e-9)
	assert.Zero(t, NewTimerBar(-1, 15, 40).Fraction())
	assert.Zero(t, NewTimerBar(5, 0, 40).Fraction())
}

func TestTimerBar_ViewShowsSeconds(t *testing.T) {
	v := NewTimerBar(7, 15, 30).View()
	require.NotEmpty(t, v)
	assert.Contains(t, v, "7s")
}

func TestNameInput_Trims(t *testing.T) {
	n := NewNameInput("  Ada ", 50)
	assert.Equal(t, "Ada", n.Value())
}
