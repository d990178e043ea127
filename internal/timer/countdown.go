// Package timer provides the per-round countdown. It owns no goroutine or
// clock; the caller advances it once per elapsed second.
package timer

// DefaultSeconds is the standard round length.
const DefaultSeconds = 15

// Countdown counts whole seconds down to zero and reports expiry exactly
// once per armed round.
//
// Countdown is not safe for concurrent use; callers serialize access.
type Countdown struct {
	remaining int
	active    bool
}

// NewCountdown returns an armed countdown. A non-positive value uses
// DefaultSeconds.
func NewCountdown(seconds int) *Countdown {
	c := &Countdown{}
	c.Start(seconds)
	return c
}

// Start re-arms the countdown for a new round.
func (c *Countdown) Start(seconds int) {
	if seconds <= 0 {
		seconds = DefaultSeconds
	}
	c.remaining = seconds
	c.active = true
}

// Tick advances the countdown by one second. It returns true on the tick
// that reaches zero and false on every other call, including ticks after
// expiry or cancellation.
func (c *Countdown) Tick() bool {
	if !c.active {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.active = false
	return true
}

// Cancel stops the countdown without firing. Calling it again, or after
// expiry, has no effect.
func (c *Countdown) Cancel() {
	c.active = false
}

// Remaining is the number of whole seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Active reports whether the countdown can still expire.
func (c *Countdown) Active() bool { return c.active }
