package duel

import "context"

// Run starts the session if needed and drives Step on a ticker until the
// session ends or ctx is canceled. Cancellation ends the session.
func (s *Session) Run(ctx context.Context) error {
	if s.Snapshot().State == StateIdle {
		if err := s.Start(ctx); err != nil {
			return err
		}
	}

	ticker := s.clock.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			s.End(ReasonCanceled)
			return ctx.Err()
		case <-ticker.Chan():
			s.Step()
		}
	}
}
