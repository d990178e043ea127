package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/rs/zerolog/log"
)

// Listener accepts exactly one inbound duel connection.
type Listener struct {
	ln        net.Listener
	closeOnce sync.Once
}

// Listen binds a TCP listener. Use ":port" to bind all interfaces.
func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &Listener{ln: ln}, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Accept waits for one peer, then stops listening. It returns early with
// the context's error when ctx is cancelled.
func (l *Listener) Accept(ctx context.Context) (Conn, error) {
	stop := context.AfterFunc(ctx, func() { _ = l.Close() })
	defer stop()

	nc, err := l.ln.Accept()
	_ = l.Close()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("accept: %w", err)
	}
	log.Info().Str("peer", nc.RemoteAddr().String()).Msg("peer connected")
	return NewStreamConn(nc), nil
}

// Close stops listening. It is safe to call more than once.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() { err = l.ln.Close() })
	return err
}

// DialOptions bounds an outbound connection attempt.
type DialOptions struct {
	// Timeout is the deadline for each connect attempt.
	Timeout time.Duration

	// Attempts is the total number of connect attempts.
	Attempts int

	// Backoff is the delay before the second attempt. It doubles on each
	// following attempt.
	Backoff time.Duration
}

// DefaultDialOptions returns the connect policy used by the CLI.
func DefaultDialOptions() DialOptions {
	return DialOptions{
		Timeout:  10 * time.Second,
		Attempts: 3,
		Backoff:  250 * time.Millisecond,
	}
}

func (o DialOptions) withDefaults() DialOptions {
	d := DefaultDialOptions()
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.Attempts <= 0 {
		o.Attempts = d.Attempts
	}
	if o.Backoff <= 0 {
		o.Backoff = d.Backoff
	}
	return o
}

// newRetrier builds the connect retry policy. Failed attempts, including
// per-attempt timeouts, are retried until ctx is done.
func newRetrier[T any](ctx context.Context, o DialOptions) retry.Retry[T] {
	return retry.New[T](retry.Config{
		MaxAttempts:   o.Attempts,
		InitialDelay:  o.Backoff,
		MaxDelay:      4 * o.Backoff,
		Multiplier:    2.0,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable: func(error) bool {
			return ctx.Err() == nil
		},
	})
}

// connect runs attempt under the retry policy for opts.
func connect[T any](ctx context.Context, opts DialOptions, attempt func(context.Context) (T, error)) (T, error) {
	return newRetrier[T](ctx, opts).Do(ctx, attempt)
}

// Dial connects to a hosting peer at addr ("host:port").
func Dial(ctx context.Context, addr string, opts DialOptions) (Conn, error) {
	opts = opts.withDefaults()
	nc, err := connect(ctx, opts, func(ctx context.Context) (net.Conn, error) {
		d := net.Dialer{Timeout: opts.Timeout}
		nc, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			log.Debug().Err(err).Str("addr", addr).Msg("connect attempt failed")
		}
		return nc, err
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	log.Info().Str("peer", nc.RemoteAddr().String()).Msg("connected to host")
	return NewStreamConn(nc), nil
}
