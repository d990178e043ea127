package duel

import (
	"time"

	"github.com/abhisek/mathblat/internal/problemgen"
)

// SessionInfo is reported when a session starts.
type SessionInfo struct {
	SessionID string
	Role      Role
	Tier      problemgen.Tier
	Category  problemgen.Category
	PeerAddr  string
	StartedAt time.Time
}

// RoundResult is reported each time the local player resolves a round.
type RoundResult struct {
	SessionID   string
	Role        Role
	Round       int
	Problem     string
	Correct     bool
	TimedOut    bool
	LocalScore  int
	RemoteScore int
}

// Recorder observes session milestones. Calls are made outside the
// session lock, in order, from whichever goroutine drove the change.
type Recorder interface {
	SessionStarted(info SessionInfo)
	RoundResolved(r RoundResult)
	SessionEnded(sum Summary)
}

// NopRecorder ignores everything.
type NopRecorder struct{}

func (NopRecorder) SessionStarted(SessionInfo) {}
func (NopRecorder) RoundResolved(RoundResult)  {}
func (NopRecorder) SessionEnded(Summary)       {}
