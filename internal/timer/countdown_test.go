package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_FiresOnceOnLastTick(t *testing.T) {
	c := NewCountdown(15)
	for i := 1; i < 15; i++ {
		assert.False(t, c.Tick(), "tick %d fired early", i)
		assert.Equal(t, 15-i, c.Remaining())
	}
	assert.True(t, c.Tick(), "15th tick should fire")
	assert.Equal(t, 0, c.Remaining())
	assert.False(t, c.Active())

	for range 30 {
		assert.False(t, c.Tick(), "expiry must fire only once")
	}
}

func TestCountdown_CancelPreventsExpiry(t *testing.T) {
	c := NewCountdown(3)
	c.Tick()
	c.Cancel()
	c.Cancel()
	for range 10 {
		assert.False(t, c.Tick())
	}
	assert.Equal(t, 2, c.Remaining())
}

func TestCountdown_CancelAfterExpiryIsNoop(t *testing.T) {
	c := NewCountdown(1)
	assert.True(t, c.Tick())
	c.Cancel()
	assert.False(t, c.Active())
	assert.False(t, c.Tick())
}

func TestCountdown_RestartRearms(t *testing.T) {
	c := NewCountdown(2)
	c.Cancel()
	c.Start(2)
	assert.True(t, c.Active())
	assert.Equal(t, 2, c.Remaining())
	assert.False(t, c.Tick())
	assert.True(t, c.Tick())
}

func TestCountdown_DefaultSeconds(t *testing.T) {
	c := NewCountdown(0)
	assert.Equal(t, DefaultSeconds, c.Remaining())
}
