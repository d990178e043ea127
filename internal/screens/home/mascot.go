package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota
	MascotChampion               // the player holds the top score
	MascotAlert                  // storage is unavailable
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ +-×÷│
└─────┘`

const mascotChampion = `┌─────┐
│ ★ ★ │
│  ▿  │
│ +-×÷│
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ~  │
│ +-×÷│
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotChampion:
		art, fg = mascotChampion, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
