package session

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/router"
	"github.com/abhisek/mathblat/internal/screen"
	"github.com/abhisek/mathblat/internal/system"
	"github.com/abhisek/mathblat/internal/ui/components"
	"github.com/abhisek/mathblat/internal/ui/layout"
)

// SessionScreen plays a duel.Session: it drives Step from a tick, renders
// snapshots and forwards answers.
type SessionScreen struct {
	sess   *duel.Session
	sys    *system.System
	player string

	snap        duel.Snapshot
	choices     components.MultiChoice
	roundKey    int
	confirmQuit bool
	finished    bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BadgeProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)
var _ screen.ScoreProvider = (*SessionScreen)(nil)

// New creates a screen for s. The session may already be started, as a
// host is when it begins playing before the client connects. sys may be
// nil, in which case scores are not offered for saving.
func New(s *duel.Session, sys *system.System, player string) *SessionScreen {
	return &SessionScreen{
		sess:     s,
		sys:      sys,
		player:   player,
		roundKey: -1,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	if err := s.sess.Start(context.Background()); err != nil && !errors.Is(err, duel.ErrAlreadyStarted) {
		log.Warn().Err(err).Str("session_id", s.sess.ID()).Msg("start session")
	}
	s.sync()
	return s.tick()
}

// Close ends the session when the screen leaves the stack.
func (s *SessionScreen) Close() {
	s.sess.End(duel.ReasonQuit)
}

func (s *SessionScreen) Title() string {
	switch s.sess.Role() {
	case duel.RoleHost:
		return "Duel · Host"
	case duel.RoleClient:
		return "Duel · Client"
	}
	if s.sess.Config().Category.IsTeacher() {
		return "Teacher Mode"
	}
	return "Solo Practice"
}

func (s *SessionScreen) Badge() string {
	cfg := s.sess.Config()
	return cfg.Tier.String() + " · " + cfg.Category.String()
}

// Scoreboard reports both players in a duel, and the round count in solo
// play or after the opponent is gone.
func (s *SessionScreen) Scoreboard() (layout.Scoreboard, bool) {
	snap := s.snap
	sb := layout.Scoreboard{
		Local:   snap.LocalScore,
		Round:   snap.Rounds + 1,
		Correct: snap.Correct,
	}
	if snap.Role != duel.RoleSolo && !snap.Degraded {
		sb.Duel = true
		sb.Remote = snap.RemoteScore
		sb.Opponent = snap.PeerName
		sb.Waiting = !snap.Connected
		sb.RemoteAnswered = snap.RemoteAnswered
	}
	return sb, true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Move"},
		{Key: "Enter", Description: "Pick"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	switch msg := msg.(type) {
	case tickMsg:
		s.sess.Step()
		s.sync()
		if s.snap.State == duel.StateEnded {
			return s, s.finish()
		}
		return s, s.tick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.sess.End(duel.ReasonQuit)
			s.sync()
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.snap.State != duel.StateAwaitingAnswer || s.snap.Answered {
		return s, nil
	}

	var picked int
	s.choices, picked = s.choices.Update(msg)
	if picked < 0 {
		return s, nil
	}
	if _, err := s.sess.AnswerIndex(picked); err != nil {
		log.Debug().Err(err).Int("index", picked).Msg("answer rejected")
	}
	s.sync()
	return s, nil
}

// sync copies the session state into the screen and keeps the option
// picker in step with the current round.
func (s *SessionScreen) sync() {
	s.snap = s.sess.Snapshot()
	p := s.snap.Problem
	if p == nil {
		return
	}
	switch s.snap.State {
	case duel.StateAwaitingAnswer:
		if s.snap.Rounds != s.roundKey {
			s.roundKey = s.snap.Rounds
			s.choices = components.NewMultiChoice(p.Options)
		}
	case duel.StateResolving:
		if !s.choices.Revealed {
			s.choices.Reveal(p.Answer)
		}
	}
}

// finish replaces this screen with the session summary.
func (s *SessionScreen) finish() tea.Cmd {
	s.finished = true
	next := newSummaryScreen(s.sess.Summary(), s.sys, s.player)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SessionScreen) tick() tea.Cmd {
	return tea.Tick(s.sess.Config().TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
