// Package transport carries framed messages between duel peers. Every
// connection runs its reads and writes on background goroutines so Send
// and TryReceive never block the caller.
package transport

import (
	"bytes"
	"errors"
	"net"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxFrameSize bounds a single inbound frame. A larger frame is a fatal
// read error for that connection.
const MaxFrameSize = 64 << 10

const (
	sendQueueSize = 64
	recvQueueSize = 64
)

var (
	// ErrClosed is returned by Send once the connection is closed.
	ErrClosed = errors.New("connection closed")

	// ErrQueueFull is returned by Send when the writer cannot keep up.
	ErrQueueFull = errors.New("send queue full")

	// ErrFrameHasNewline is returned for frames that would break line framing.
	ErrFrameHasNewline = errors.New("frame contains a newline")
)

// Conn is a bidirectional message pipe to one peer.
type Conn interface {
	// Send queues one frame for delivery. It never blocks.
	Send(frame []byte) error

	// TryReceive returns the next complete frame, if one is available.
	// Frames received before the connection closed are still returned.
	TryReceive() ([]byte, bool)

	// Closed reports whether the connection has been torn down.
	Closed() bool

	// Close releases the connection. Only the first call has an effect.
	Close() error

	// RemoteAddr describes the peer.
	RemoteAddr() string
}

// framer reads and writes whole frames on an underlying connection.
type framer interface {
	ReadFrame() ([]byte, error)
	WriteFrame(frame []byte) error
	Close() error
	RemoteAddr() net.Addr
}

// pumpConn adapts a framer to Conn with a reader and a writer goroutine.
type pumpConn struct {
	f      framer
	logger zerolog.Logger

	in   chan []byte
	out  chan []byte
	done chan struct{}

	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

func newPumpConn(f framer, kind string) *pumpConn {
	c := &pumpConn{
		f:    f,
		in:   make(chan []byte, recvQueueSize),
		out:  make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
		logger: log.With().
			Str("component", "transport").
			Str("kind", kind).
			Str("peer", addrString(f.RemoteAddr())).
			Logger(),
	}
	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop()
	return c
}

func (c *pumpConn) readLoop() {
	defer c.wg.Done()
	for {
		frame, err := c.f.ReadFrame()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Debug().Err(err).Msg("read loop stopped")
				_ = c.Close()
			}
			return
		}
		frame = bytes.TrimSpace(frame)
		if len(frame) == 0 {
			continue
		}
		select {
		case c.in <- frame:
		case <-c.done:
			return
		}
	}
}

func (c *pumpConn) writeLoop() {
	defer c.wg.Done()
	for {
		select {
		case frame := <-c.out:
			if err := c.f.WriteFrame(frame); err != nil {
				c.logger.Debug().Err(err).Msg("write failed")
				_ = c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *pumpConn) Send(frame []byte) error {
	if bytes.ContainsRune(frame, '\n') {
		return ErrFrameHasNewline
	}
	if c.Closed() {
		return ErrClosed
	}
	buf := append([]byte(nil), frame...)
	select {
	case c.out <- buf:
		return nil
	case <-c.done:
		return ErrClosed
	default:
		return ErrQueueFull
	}
}

func (c *pumpConn) TryReceive() ([]byte, bool) {
	select {
	case frame := <-c.in:
		return frame, true
	default:
		return nil, false
	}
}

func (c *pumpConn) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *pumpConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.closeErr = c.f.Close()
		c.logger.Debug().Msg("connection closed")
	})
	return c.closeErr
}

func (c *pumpConn) RemoteAddr() string {
	return addrString(c.f.RemoteAddr())
}

// wait blocks until both pump goroutines have exited.
func (c *pumpConn) wait() {
	c.wg.Wait()
}

func addrString(a net.Addr) string {
	if a == nil {
		return "unknown"
	}
	return a.String()
}
