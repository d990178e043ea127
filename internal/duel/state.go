package duel

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathblat/internal/problemgen"
)

// Role is the part a session plays in a duel. It is fixed for the
// lifetime of a Session.
type Role int

const (
	RoleSolo   Role = iota // local practice, no peer
	RoleHost               // authoritative problem source
	RoleClient             // plays problems received from the host
)

func (r Role) String() string {
	switch r {
	case RoleSolo:
		return "SOLO"
	case RoleHost:
		return "HOST"
	case RoleClient:
		return "CLIENT"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SOLO":
		return RoleSolo, nil
	case "HOST":
		return RoleHost, nil
	case "CLIENT":
		return RoleClient, nil
	}
	return RoleSolo, fmt.Errorf("unknown role %q", s)
}

// State is a DuelSession state.
type State int

const (
	StateIdle State = iota
	StateAwaitingProblem
	StateAwaitingAnswer
	StateResolving
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingProblem:
		return "AWAITING_PROBLEM"
	case StateAwaitingAnswer:
		return "AWAITING_ANSWER"
	case StateResolving:
		return "RESOLVING"
	case StateEnded:
		return "ENDED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status texts shown after a round resolves or the peer changes.
const (
	StatusCorrect      = "Correct!"
	StatusTimeUp       = "Time up!"
	StatusWaiting      = "Waiting for opponent..."
	StatusDisconnected = "Opponent disconnected"
)

// RoundOutcome describes how the current round resolved.
type RoundOutcome int

const (
	OutcomePending RoundOutcome = iota
	OutcomeCorrect
	OutcomeWrong
	OutcomeTimedOut
)

// Snapshot is a copy of the observable session state. It shares no
// memory with the session.
type Snapshot struct {
	SessionID string
	Role      Role
	State     State
	Tier      problemgen.Tier
	Category  problemgen.Category

	// Problem is nil outside AWAITING_ANSWER and RESOLVING.
	Problem       *problemgen.Problem
	TimeRemaining int
	Answered      bool
	Outcome       RoundOutcome

	// RemoteAnswered is set once the peer reports on the current round.
	RemoteAnswered bool

	LocalScore  int
	RemoteScore int
	Rounds      int
	Correct     int

	// Status describes the current round; Notice persists across rounds.
	Status    string
	Notice    string
	PeerName  string
	PeerAddr  string
	Connected bool

	// Degraded is set when a networked session lost its peer.
	Degraded bool
}
