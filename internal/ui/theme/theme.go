package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Arcade colors are reserved for the cabinet chrome and the
// scoreboard; the rest is shared by every screen.
var (
	Primary      = lipgloss.Color("#8B5CF6") // Purple
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F97316") // Orange
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Text         = lipgloss.Color("#F8FAFC")
	TextDim      = lipgloss.Color("#94A3B8")
	BgDark       = lipgloss.Color("#0F172A")
	BgCard       = lipgloss.Color("#1E293B")
	Border       = lipgloss.Color("#334155")
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Answer feedback.
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Scoreboard.
var (
	LocalScore = lipgloss.NewStyle().
			Foreground(ArcadeYellow).
			Bold(true)

	RemoteScore = lipgloss.NewStyle().
			Foreground(ArcadeCyan).
			Bold(true)
)
