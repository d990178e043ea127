package duel

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/timer"
	"github.com/abhisek/mathblat/internal/transport"
)

// Config controls a session.
type Config struct {
	Role     Role
	Tier     problemgen.Tier
	Category problemgen.Category

	// RoundSeconds is the countdown length of each round.
	RoundSeconds int

	// ResolveDelay is how long a resolved round stays on screen.
	ResolveDelay time.Duration

	// TickInterval is the scheduling period used by Run.
	TickInterval time.Duration

	// PlayerName is announced to the peer in the hello message.
	PlayerName string

	// SessionID identifies the session in logs and the event log.
	// Generated when empty.
	SessionID string
}

// DefaultConfig returns a solo EASY arithmetic session.
func DefaultConfig() Config {
	return Config{
		Role:         RoleSolo,
		Tier:         problemgen.TierEasy,
		Category:     problemgen.CategoryArithmetic,
		RoundSeconds: timer.DefaultSeconds,
		ResolveDelay: time.Second,
		TickInterval: 100 * time.Millisecond,
		PlayerName:   "Player",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RoundSeconds <= 0 {
		c.RoundSeconds = d.RoundSeconds
	}
	if c.ResolveDelay < 0 {
		c.ResolveDelay = 0
	}
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.PlayerName == "" {
		c.PlayerName = d.PlayerName
	}
	return c
}

// Deps are the collaborators of a session. Only Source is required.
type Deps struct {
	Source problemgen.Source

	// Peer is the connection to the other player. A HOST may start
	// without one and Attach it later.
	Peer transport.Conn

	Clock    clockwork.Clock
	Recorder Recorder
	Logger   *zerolog.Logger
}
