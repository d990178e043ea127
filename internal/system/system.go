// Package system bundles the collaborators a duel needs beyond the
// network: problem generation, high scores, settings and the duel event
// log. A System is constructed once by the entry point and passed to
// whatever needs it.
package system

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/store"
)

// MaxRecentErrors bounds the error history kept for Status.
const MaxRecentErrors = 20

// Options are the collaborators of a System. Generator and Scores are
// required; the rest degrade to defaults when nil.
type Options struct {
	Generator *problemgen.Generator
	Scores    store.ScoreRepo
	Settings  store.SettingsRepo
	Events    store.EventRepo

	// ScoresBackend names the score store for status reports.
	ScoresBackend string

	Clock  clockwork.Clock
	Logger *zerolog.Logger
}

// ErrorRecord is one failed operation.
type ErrorRecord struct {
	Op   string
	Err  string
	Time time.Time
}

// System is the shared application context.
type System struct {
	gen      *problemgen.Generator
	scores   store.ScoreRepo
	settings store.SettingsRepo
	events   store.EventRepo
	backend  string
	clock    clockwork.Clock
	logger   zerolog.Logger

	mu      sync.Mutex
	ops     int64
	failed  int64
	recent  []ErrorRecord
	started time.Time
}

// New builds a System.
func New(opts Options) (*System, error) {
	if opts.Generator == nil {
		return nil, errors.New("system: generator is required")
	}
	if opts.Scores == nil {
		return nil, errors.New("system: score repository is required")
	}
	s := &System{
		gen:      opts.Generator,
		scores:   opts.Scores,
		settings: opts.Settings,
		events:   opts.Events,
		backend:  opts.ScoresBackend,
		clock:    opts.Clock,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.backend == "" {
		s.backend = "sqlite"
	}
	base := log.Logger
	if opts.Logger != nil {
		base = *opts.Logger
	}
	s.logger = base.With().Str("component", "system").Logger()
	s.started = s.clock.Now()
	return s, nil
}

// Generator returns the problem generator.
func (s *System) Generator() *problemgen.Generator { return s.gen }

// Events returns the duel event log, or nil when none is configured.
func (s *System) Events() store.EventRepo { return s.events }

// track counts an operation and remembers it if it failed.
func (s *System) track(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops++
	if err == nil {
		return
	}
	s.failed++
	s.recent = append(s.recent, ErrorRecord{Op: op, Err: err.Error(), Time: s.clock.Now()})
	if len(s.recent) > MaxRecentErrors {
		s.recent = s.recent[len(s.recent)-MaxRecentErrors:]
	}
	s.logger.Warn().Err(err).Str("op", op).Msg("operation failed")
}
