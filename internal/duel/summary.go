package duel

import (
	"time"

	"github.com/abhisek/mathblat/internal/problemgen"
)

// Summary holds the results shown when a session ends.
type Summary struct {
	SessionID   string
	Role        Role
	Tier        problemgen.Tier
	Category    problemgen.Category
	LocalScore  int
	RemoteScore int
	Rounds      int
	Correct     int
	TimedOut    int
	Duration    time.Duration
	PeerName    string
	PeerAddr    string
	Reason      string
}

// Accuracy is the fraction of resolved rounds answered correctly.
func (s Summary) Accuracy() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Rounds)
}

// Outcome is "WIN", "LOSS" or "DRAW" for networked sessions and "" for
// solo practice.
func (s Summary) Outcome() string {
	if s.Role == RoleSolo {
		return ""
	}
	switch {
	case s.LocalScore > s.RemoteScore:
		return "WIN"
	case s.LocalScore < s.RemoteScore:
		return "LOSS"
	default:
		return "DRAW"
	}
}
