package system

import (
	"context"

	"github.com/abhisek/mathblat/internal/duel"
	"github.com/abhisek/mathblat/internal/store"
)

// Recorder persists duel milestones to the event log and updates the
// player's lifetime totals when a session ends.
type Recorder struct {
	sys *System
	ctx context.Context
}

var _ duel.Recorder = (*Recorder)(nil)

// DuelRecorder returns a Recorder bound to ctx.
func (s *System) DuelRecorder(ctx context.Context) *Recorder {
	return &Recorder{sys: s, ctx: ctx}
}

func (r *Recorder) append(data store.DuelEventData) {
	if r.sys.events == nil {
		return
	}
	r.sys.track("append_event", r.sys.events.AppendDuelEvent(r.ctx, data))
}

func (r *Recorder) SessionStarted(info duel.SessionInfo) {
	r.append(store.DuelEventData{
		SessionID: info.SessionID,
		Kind:      store.EventSessionStart,
		Role:      info.Role.String(),
		Tier:      info.Tier.String(),
		Category:  info.Category.String(),
		Peer:      info.PeerAddr,
	})
}

func (r *Recorder) RoundResolved(res duel.RoundResult) {
	r.append(store.DuelEventData{
		SessionID:   res.SessionID,
		Kind:        store.EventRound,
		Role:        res.Role.String(),
		Problem:     res.Problem,
		Correct:     res.Correct,
		TimedOut:    res.TimedOut,
		LocalScore:  res.LocalScore,
		RemoteScore: res.RemoteScore,
		Rounds:      res.Round,
	})
}

func (r *Recorder) SessionEnded(sum duel.Summary) {
	r.append(store.DuelEventData{
		SessionID:   sum.SessionID,
		Kind:        store.EventSessionEnd,
		Role:        sum.Role.String(),
		Tier:        sum.Tier.String(),
		Category:    sum.Category.String(),
		LocalScore:  sum.LocalScore,
		RemoteScore: sum.RemoteScore,
		Rounds:      sum.Rounds,
		Peer:        sum.PeerAddr,
	})
	r.sys.RecordPlayerTotals(r.ctx, sum.LocalScore)
}
