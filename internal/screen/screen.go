package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathblat/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns the stack of screens and
// forwards messages only to the top one.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BadgeProvider lets a screen put a short status next to the app name in
// the header.
type BadgeProvider interface {
	Badge() string
}

// ScoreProvider lets a screen show a live scoreboard in the header. ok is
// false when there is nothing to show.
type ScoreProvider interface {
	Scoreboard() (sb layout.Scoreboard, ok bool)
}

// Closer is implemented by screens that hold resources, such as a running
// duel. The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// Resumer is implemented by screens that refresh when they become the top
// of the stack again after the screens above them are popped.
type Resumer interface {
	Resume() tea.Cmd
}
