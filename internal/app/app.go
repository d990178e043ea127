package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/screen"
	"github.com/abhisek/mathblat/internal/screens/home"
	sessionscreen "github.com/abhisek/mathblat/internal/screens/session"
	"github.com/abhisek/mathblat/internal/system"
	"github.com/abhisek/mathblat/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	System     *system.System
	Launch     home.Launcher
	PlayerName string
	Tier       problemgen.Tier

	// Session opens the app directly in a duel, as the host and join
	// commands do. Leaving its summary lands on the home screen.
	Session *duel.Session
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		System:     opts.System,
		Launch:     opts.Launch,
		PlayerName: opts.PlayerName,
		Tier:       opts.Tier,
	})
	m := AppModel{router: router.New(homeScreen)}
	if opts.Session != nil {
		m.initCmd = m.router.Push(sessionscreen.New(opts.Session, opts.System, opts.PlayerName))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(headerFor(active), m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	if len(hints) == 0 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// headerFor collects the header content the active screen provides.
func headerFor(active screen.Screen) layout.Header {
	var h layout.Header
	if active == nil {
		return h
	}
	h.Title = active.Title()
	if bp, ok := active.(screen.BadgeProvider); ok {
		h.Badge = bp.Badge()
	}
	if sp, ok := active.(screen.ScoreProvider); ok {
		if sb, ok := sp.Scoreboard(); ok {
			h.Score = &sb
		}
	}
	return h
}

// Run starts the TUI and blocks until the user quits. Every screen is
// closed on the way out so a running session releases its connection.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.router.CloseAll()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
