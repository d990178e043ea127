package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/screen"
	"github.com/abhisek/mathblat/internal/screens/scores"
	sessionscreen "github.com/abhisek/mathblat/internal/screens/session"
	"github.com/abhisek/mathblat/internal/system"
	"github.com/abhisek/mathblat/internal/ui/components"
	"github.com/abhisek/mathblat/internal/ui/layout"
)

// Launcher creates an unstarted solo session.
type Launcher func(tier problemgen.Tier, cat problemgen.Category) (*duel.Session, error)

// Deps are the collaborators of the home screen. System may be nil, in
// which case the dashboard stays empty and scores are not offered.
type Deps struct {
	System     *system.System
	Launch     Launcher
	PlayerName string
	Tier       problemgen.Tier
}

const (
	itemSolo = iota
	itemTeacher
	itemScores
	itemExit
)

// dashboard is the stats bar content.
type dashboard struct {
	gamesPlayed int
	totalScore  int
	bestScore   int
	leader      string
	degraded    bool
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	tierIdx int
	catIdx  int
	dash    dashboard
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	for i, t := range problemgen.StandardTiers {
		if t == deps.Tier.Standard() {
			h.tierIdx = i
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Key: "s", Action: func() tea.Cmd { return h.launch(false) }},
		{Key: "t", Action: func() tea.Cmd { return h.launch(true) }},
		{Key: "h", Disabled: deps.System == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: scores.New(deps.System)}
			}
		}},
		{Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refreshLabels()
	h.dash = loadDashboard(context.Background(), deps.System)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads the dashboard after a game or the scores screen.
func (h *HomeScreen) Resume() tea.Cmd {
	h.dash = loadDashboard(context.Background(), h.deps.System)
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

// Tier is the selected standard difficulty.
func (h *HomeScreen) Tier() problemgen.Tier {
	return problemgen.StandardTiers[h.tierIdx]
}

// TeacherCategory is the selected teacher-mode topic.
func (h *HomeScreen) TeacherCategory() problemgen.Category {
	return problemgen.TeacherCategories[h.catIdx]
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		h.errMsg = ""
		switch kmsg.String() {
		case "left", "right":
			step := 1
			if kmsg.String() == "left" {
				step = -1
			}
			h.cycle(step)
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) cycle(step int) {
	switch h.menu.Selected {
	case itemSolo:
		n := len(problemgen.StandardTiers)
		h.tierIdx = (h.tierIdx + step + n) % n
	case itemTeacher:
		n := len(problemgen.TeacherCategories)
		h.catIdx = (h.catIdx + step + n) % n
	}
	h.refreshLabels()
}

func (h *HomeScreen) refreshLabels() {
	h.menu.Items[itemSolo].Label = "SOLO · " + h.Tier().String()
	h.menu.Items[itemTeacher].Label = "TEACHER · " + strings.ReplaceAll(h.TeacherCategory().String(), "_", " ")
	h.menu.Items[itemScores].Label = "HIGH SCORES"
	h.menu.Items[itemExit].Label = "EXIT"
}

func (h *HomeScreen) launch(teacher bool) tea.Cmd {
	if h.deps.Launch == nil {
		h.errMsg = "no session launcher configured"
		return nil
	}
	tier, cat := h.Tier(), problemgen.CategoryArithmetic
	if teacher {
		tier, cat = tier.Teacher(), h.TeacherCategory()
	}
	s, err := h.deps.Launch(tier, cat)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	next := sessionscreen.New(s, h.deps.System, h.deps.PlayerName)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.dash, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	}

	switch {
	case h.errMsg != "":
		sections = append(sections, renderNote(h.errMsg, cw, true))
	case h.dash.degraded:
		sections = append(sections, renderNote("Score storage unavailable", cw, true))
	default:
		sections = append(sections, renderNote("Duel a friend: mathblat host  ·  mathblat join HOST:PORT", cw, false))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.dash.degraded:
		return MascotAlert
	case h.dash.leader != "" && strings.EqualFold(h.dash.leader, h.deps.PlayerName):
		return MascotChampion
	default:
		return MascotIdle
	}
}

func loadDashboard(ctx context.Context, sys *system.System) dashboard {
	var d dashboard
	if sys == nil {
		return d
	}

	totals := sys.LoadPlayerTotals(ctx)
	d.gamesPlayed = totals.Value.GamesPlayed
	d.totalScore = totals.Value.TotalScore

	top := sys.TopScores(ctx, 1)
	if !top.OK() {
		d.degraded = true
		return d
	}
	if len(top.Value) > 0 {
		d.bestScore = top.Value[0].Score
		d.leader = top.Value[0].Name
	}
	return d
}
