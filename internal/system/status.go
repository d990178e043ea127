package system

import (
	"context"
	"time"

	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/store"
)

// pinger is implemented by score backends that can check connectivity.
type pinger interface {
	Ping(ctx context.Context) error
}

// Status is a health report of the persistence collaborators.
type Status struct {
	Healthy       bool
	ScoresBackend string
	ScoresOnline  bool
	SettingsReady bool
	EventsReady   bool
	Operations    int64
	Failures      int64
	Uptime        time.Duration
	Generator     problemgen.Stats
	RecentErrors  []ErrorRecord
}

// Status checks the score backend and reports counters and recent errors.
func (s *System) Status(ctx context.Context) Status {
	online := true
	if p, isPinger := s.scores.(pinger); isPinger {
		if err := p.Ping(ctx); err != nil {
			online = false
			s.track("ping_scores", err)
		}
	} else if _, err := s.scores.Top(ctx, 1); err != nil {
		online = false
		s.track("ping_scores", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Healthy:       online && s.failed == 0,
		ScoresBackend: s.backend,
		ScoresOnline:  online,
		SettingsReady: s.settings != nil,
		EventsReady:   s.events != nil,
		Operations:    s.ops,
		Failures:      s.failed,
		Uptime:        s.clock.Since(s.started),
		Generator:     s.gen.Stats(),
		RecentErrors:  append([]ErrorRecord(nil), s.recent...),
	}
}

// RecentErrors returns the bounded error history, oldest first.
func (s *System) RecentErrors() []ErrorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ErrorRecord(nil), s.recent...)
}

// DuelStats aggregates the duel event log.
func (s *System) DuelStats(ctx context.Context) Result[store.DuelStats] {
	if s.events == nil {
		return defaulted(store.DuelStats{})
	}
	events, err := s.events.QueryDuelEvents(ctx, store.QueryOpts{})
	s.track("duel_stats", err)
	if err != nil {
		return failed(store.DuelStats{}, err)
	}
	return ok(store.ComputeStats(events))
}
