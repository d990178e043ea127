// Package duel implements the session state machine that keeps a host and
// a client in step: problem issuance, answer exchange, score
// reconciliation and round timing.
package duel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/mathblat/internal/problemgen"
	"github.com/abhisek/mathblat/internal/protocol"
	"github.com/abhisek/mathblat/internal/timer"
	"github.com/abhisek/mathblat/internal/transport"
)

var (
	// ErrEnded is returned by operations on an ended session.
	ErrEnded = errors.New("session ended")

	// ErrNotAnswering is returned when an answer arrives outside
	// AWAITING_ANSWER or after the round was already answered.
	ErrNotAnswering = errors.New("no round awaiting an answer")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrPeerAttached is returned when a live peer is already attached.
	ErrPeerAttached = errors.New("peer already attached")

	// ErrInvalidOption is returned by AnswerIndex for an out-of-range index.
	ErrInvalidOption = errors.New("option index out of range")
)

// End reasons.
const (
	ReasonQuit     = "quit"
	ReasonCanceled = "canceled"
)

// Session is one duel from start to quit. All state mutation happens under
// a single mutex, so Step, Answer, Attach, End and Snapshot may be called
// from different goroutines. A Session is not reusable once ended.
type Session struct {
	cfg    Config
	src    problemgen.Source
	clock  clockwork.Clock
	rec    Recorder
	logger zerolog.Logger

	mu         sync.Mutex
	state      State
	peer       transport.Conn
	peerAddr   string
	peerName   string
	degraded   bool
	problem    *problemgen.Problem
	pending    *problemgen.Problem
	countdown  *timer.Countdown
	nextSecond time.Time
	resolveAt  time.Time
	answered   bool
	remoteSeen bool
	outcome    RoundOutcome
	local      int
	remote     int
	rounds     int
	correct    int
	timedOut   int
	status     string
	notice     string
	startedAt  time.Time
	endReason  string
	notes      []func()
	done       chan struct{}
	peerClosed bool
}

// New creates a session in IDLE.
func New(cfg Config, deps Deps) (*Session, error) {
	if deps.Source == nil {
		return nil, errors.New("duel: problem source is required")
	}
	cfg = cfg.withDefaults()
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	if !cfg.Tier.Valid() {
		return nil, fmt.Errorf("duel: invalid tier %d", int(cfg.Tier))
	}
	if cfg.Role == RoleSolo && deps.Peer != nil {
		return nil, errors.New("duel: solo session cannot have a peer")
	}

	s := &Session{
		cfg:       cfg,
		src:       deps.Source,
		clock:     deps.Clock,
		rec:       deps.Recorder,
		countdown: timer.NewCountdown(cfg.RoundSeconds),
		done:      make(chan struct{}),
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.rec == nil {
		s.rec = NopRecorder{}
	}
	base := log.Logger
	if deps.Logger != nil {
		base = *deps.Logger
	}
	s.logger = base.With().
		Str("component", "duel").
		Str("session_id", cfg.SessionID).
		Stringer("role", cfg.Role).
		Logger()

	if deps.Peer != nil {
		s.peer = deps.Peer
		s.peerAddr = deps.Peer.RemoteAddr()
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.cfg.SessionID }

// Role returns the session role.
func (s *Session) Role() Role { return s.cfg.Role }

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }

// Start leaves IDLE and begins the first round (or, for a client, starts
// waiting for one).
func (s *Session) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	switch s.state {
	case StateEnded:
		s.mu.Unlock()
		return ErrEnded
	case StateIdle:
	default:
		s.mu.Unlock()
		return ErrAlreadyStarted
	}

	s.startedAt = s.clock.Now()
	s.local, s.remote = 0, 0
	info := SessionInfo{
		SessionID: s.cfg.SessionID,
		Role:      s.cfg.Role,
		Tier:      s.cfg.Tier,
		Category:  s.cfg.Category,
		PeerAddr:  s.peerAddr,
		StartedAt: s.startedAt,
	}
	s.note(func() { s.rec.SessionStarted(info) })
	s.logger.Info().
		Stringer("tier", s.cfg.Tier).
		Stringer("category", s.cfg.Category).
		Str("peer", s.peerAddr).
		Msg("session started")

	if s.peer != nil {
		s.sendLocked(protocol.NewHello(s.cfg.PlayerName))
	}
	s.enterAwaitingProblemLocked()
	s.unlockAndFlush()
	return nil
}

// Attach hands a connected peer to the session. A host typically starts
// playing while it waits for the client and attaches the connection once
// it has been accepted. A host that is mid-round resends the current
// problem so the client can join immediately.
func (s *Session) Attach(peer transport.Conn) error {
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		peer.Close()
		return ErrEnded
	}
	if s.cfg.Role == RoleSolo {
		s.mu.Unlock()
		return errors.New("duel: solo session cannot attach a peer")
	}
	if s.peer != nil && !s.peer.Closed() {
		s.mu.Unlock()
		return ErrPeerAttached
	}

	s.peer = peer
	s.peerAddr = peer.RemoteAddr()
	s.peerName = ""
	s.peerClosed = false
	s.degraded = false
	s.notice = ""
	s.logger.Info().Str("peer", s.peerAddr).Msg("peer attached")

	if s.state != StateIdle {
		s.sendLocked(protocol.NewHello(s.cfg.PlayerName))
		if s.cfg.Role == RoleHost && s.state == StateAwaitingAnswer && s.problem != nil {
			s.sendLocked(protocol.NewProblem(*s.problem))
		}
	}
	s.unlockAndFlush()
	return nil
}

// Answer submits the local player's choice for the current round and
// reports whether it was correct.
func (s *Session) Answer(value int) (bool, error) {
	s.mu.Lock()
	if err := s.answerableLocked(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	correct := problemgen.CheckAnswer(s.problem, value)
	s.resolveLocked(correct, false)
	s.unlockAndFlush()
	return correct, nil
}

// AnswerIndex submits the option at position i of the current problem.
func (s *Session) AnswerIndex(i int) (bool, error) {
	s.mu.Lock()
	if err := s.answerableLocked(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	if i < 0 || i >= len(s.problem.Options) {
		s.mu.Unlock()
		return false, ErrInvalidOption
	}
	correct := problemgen.CheckAnswer(s.problem, s.problem.Options[i])
	s.resolveLocked(correct, false)
	s.unlockAndFlush()
	return correct, nil
}

func (s *Session) answerableLocked() error {
	if s.state == StateEnded {
		return ErrEnded
	}
	if s.state != StateAwaitingAnswer || s.answered || s.problem == nil {
		return ErrNotAnswering
	}
	return nil
}

// Step performs one scheduling tick: it drains inbound messages, advances
// the countdown for every whole second elapsed since the round began and
// moves RESOLVING on once the display delay has passed.
func (s *Session) Step() {
	s.mu.Lock()
	if s.state == StateIdle || s.state == StateEnded {
		s.mu.Unlock()
		return
	}

	s.pollPeerLocked()
	now := s.clock.Now()

	for s.state == StateAwaitingAnswer && !s.answered && !now.Before(s.nextSecond) {
		s.nextSecond = s.nextSecond.Add(time.Second)
		if s.countdown.Tick() {
			s.resolveLocked(false, true)
		}
	}

	if s.state == StateResolving && !now.Before(s.resolveAt) {
		s.state = StateAwaitingProblem
	}
	if s.state == StateAwaitingProblem {
		s.enterAwaitingProblemLocked()
	}
	s.unlockAndFlush()
}

// Notify sets a notice that stays visible across rounds, e.g. to explain
// a fallback to solo play.
func (s *Session) Notify(msg string) {
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

// End terminates the session from any state. The peer connection is
// closed exactly once. Calling End again returns the same summary.
func (s *Session) End(reason string) Summary {
	s.mu.Lock()
	if s.state == StateEnded {
		sum := s.summaryLocked()
		s.mu.Unlock()
		return sum
	}
	s.state = StateEnded
	s.endReason = reason
	s.countdown.Cancel()
	s.problem = nil
	s.pending = nil
	s.closePeerLocked()
	close(s.done)

	sum := s.summaryLocked()
	if !s.startedAt.IsZero() {
		s.note(func() { s.rec.SessionEnded(sum) })
	}
	s.logger.Info().
		Str("reason", reason).
		Int("local_score", sum.LocalScore).
		Int("remote_score", sum.RemoteScore).
		Int("rounds", sum.Rounds).
		Msg("session ended")
	s.unlockAndFlush()
	return sum
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:      s.cfg.SessionID,
		Role:           s.cfg.Role,
		State:          s.state,
		Tier:           s.cfg.Tier,
		Category:       s.cfg.Category,
		TimeRemaining:  s.countdown.Remaining(),
		Answered:       s.answered,
		Outcome:        s.outcome,
		RemoteAnswered: s.remoteSeen,
		LocalScore:     s.local,
		RemoteScore:    s.remote,
		Rounds:         s.rounds,
		Correct:        s.correct,
		Status:         s.status,
		Notice:         s.notice,
		PeerName:       s.peerName,
		PeerAddr:       s.peerAddr,
		Connected:      s.peer != nil && !s.peer.Closed(),
		Degraded:       s.degraded,
	}
	if s.problem != nil {
		p := s.problem.Clone()
		snap.Problem = &p
	}
	return snap
}

// Summary returns the results so far.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	var d time.Duration
	if !s.startedAt.IsZero() {
		d = s.clock.Since(s.startedAt)
	}
	return Summary{
		SessionID:   s.cfg.SessionID,
		Role:        s.cfg.Role,
		Tier:        s.cfg.Tier,
		Category:    s.cfg.Category,
		LocalScore:  s.local,
		RemoteScore: s.remote,
		Rounds:      s.rounds,
		Correct:     s.correct,
		TimedOut:    s.timedOut,
		Duration:    d,
		PeerName:    s.peerName,
		PeerAddr:    s.peerAddr,
		Reason:      s.endReason,
	}
}

// enterAwaitingProblemLocked sets AWAITING_PROBLEM and starts the next
// round if a problem is available for this role.
func (s *Session) enterAwaitingProblemLocked() {
	s.state = StateAwaitingProblem
	s.problem = nil

	switch s.cfg.Role {
	case RoleSolo, RoleHost:
		s.beginRoundLocked(s.src.Generate(s.cfg.Tier, s.cfg.Category))
	case RoleClient:
		switch {
		case s.pending != nil:
			p := *s.pending
			s.pending = nil
			s.beginRoundLocked(p)
		case !s.peerAlive():
			// Degraded: the host is gone, keep playing locally.
			s.beginRoundLocked(s.src.Generate(s.cfg.Tier, s.cfg.Category))
		default:
			s.status = StatusWaiting
		}
	}
}

func (s *Session) beginRoundLocked(p problemgen.Problem) {
	s.problem = &p
	s.answered = false
	s.remoteSeen = false
	s.outcome = OutcomePending
	s.status = ""
	s.countdown.Start(s.cfg.RoundSeconds)
	s.nextSecond = s.clock.Now().Add(time.Second)
	s.state = StateAwaitingAnswer

	if s.cfg.Role == RoleHost {
		s.sendLocked(protocol.NewProblem(p))
	}
	s.logger.Debug().Str("problem", p.Text).Msg("round started")
}

// resolveLocked scores the current round and enters RESOLVING.
func (s *Session) resolveLocked(correct, timedOut bool) {
	s.answered = true
	s.countdown.Cancel()
	s.rounds++

	switch {
	case correct:
		s.local += s.problem.Points
		s.correct++
		s.outcome = OutcomeCorrect
		s.status = StatusCorrect
	case timedOut:
		s.timedOut++
		s.outcome = OutcomeTimedOut
		s.status = StatusTimeUp
	default:
		s.outcome = OutcomeWrong
		s.status = wrongStatus(s.problem.Answer)
	}

	s.sendLocked(protocol.NewAnswer(correct, s.local))
	s.state = StateResolving
	s.resolveAt = s.clock.Now().Add(s.cfg.ResolveDelay)

	res := RoundResult{
		SessionID:   s.cfg.SessionID,
		Role:        s.cfg.Role,
		Round:       s.rounds,
		Problem:     s.problem.Text,
		Correct:     correct,
		TimedOut:    timedOut,
		LocalScore:  s.local,
		RemoteScore: s.remote,
	}
	s.note(func() { s.rec.RoundResolved(res) })
}

func wrongStatus(answer int) string {
	return fmt.Sprintf("Wrong! Answer: %d", answer)
}

// pollPeerLocked drains every complete inbound frame and notices a lost
// connection.
func (s *Session) pollPeerLocked() {
	if s.peer == nil {
		return
	}
	for {
		frame, ok := s.peer.TryReceive()
		if !ok {
			break
		}
		s.handleFrameLocked(frame)
	}
	if s.peer.Closed() && !s.degraded {
		s.degraded = true
		s.notice = StatusDisconnected
		s.logger.Warn().Str("peer", s.peerAddr).Msg("peer connection lost, continuing locally")
	}
}

func (s *Session) handleFrameLocked(frame []byte) {
	msg, err := protocol.Decode(frame)
	if err != nil {
		s.logger.Debug().Err(err).Msg("discarding inbound frame")
		return
	}

	switch m := msg.(type) {
	case protocol.ProblemMessage:
		if s.cfg.Role != RoleClient {
			s.logger.Debug().Msg("ignoring problem from peer: not a client")
			return
		}
		p, err := m.ToProblem(s.cfg.Tier)
		if err != nil {
			s.logger.Warn().Err(err).Msg("discarding invalid problem")
			return
		}
		if s.state == StateAwaitingProblem {
			s.beginRoundLocked(p)
			return
		}
		s.pending = &p

	case protocol.AnswerMessage:
		s.remoteSeen = true
		if m.Correct {
			s.remote += s.cfg.Tier.Points()
		}
		s.logger.Debug().
			Bool("correct", m.Correct).
			Int("reported_score", m.Score).
			Int("remote_score", s.remote).
			Msg("peer answered")

	case protocol.HelloMessage:
		s.peerName = m.Name
		if err := protocol.CheckVersion(m.Version); err != nil {
			s.logger.Warn().Err(err).Str("peer", s.peerAddr).Msg("protocol version mismatch")
		}
		s.logger.Info().Str("peer_name", m.Name).Str("peer_version", m.Version).Msg("peer hello")
	}
}

// sendLocked queues a message to the peer. Failures are logged and
// otherwise ignored; the session keeps running on local state.
func (s *Session) sendLocked(m protocol.Message) {
	if !s.peerAlive() {
		return
	}
	frame, err := protocol.Encode(m)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode message")
		return
	}
	if err := s.peer.Send(frame); err != nil {
		s.logger.Debug().Err(err).Stringer("type", typeStringer(m.MessageType())).Msg("send failed")
	}
}

func (s *Session) peerAlive() bool {
	return s.peer != nil && !s.peer.Closed()
}

func (s *Session) closePeerLocked() {
	if s.peer == nil || s.peerClosed {
		return
	}
	s.peerClosed = true
	if err := s.peer.Close(); err != nil {
		s.logger.Debug().Err(err).Msg("close peer")
	}
}

// note queues a recorder call to run after the lock is released.
func (s *Session) note(fn func()) {
	s.notes = append(s.notes, fn)
}

func (s *Session) unlockAndFlush() {
	notes := s.notes
	s.notes = nil
	s.mu.Unlock()
	for _, fn := range notes {
		fn()
	}
}

type typeStringer protocol.Type

func (t typeStringer) String() string { return string(t) }
