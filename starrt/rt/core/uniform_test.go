package core

import (
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestFrameUniform_Size(t *testing.T) {
	assert.Equal(t, uintptr(16), unsafe.Sizeof(FrameUniform{}))
}

func TestNewFrameUniform(t *testing.T) {
	u := NewFrameUniform(1500*time.Millisecond, 1280, 720)
	assert.InDelta(t, 1.5, u.Time, 1e-6)
	assert.InDelta(t, 0.5625, u.Aspect, 1e-6)
}

func TestAspect_ZeroSize(t *testing.T) {
	assert.Equal(t, float32(1), Aspect(0, 720))
	assert.Equal(t, float32(1), Aspect(1280, 0))
}

func TestClock_Elapsed(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	clock := NewClockAt(func() time.Time { return now })

	assert.Equal(t, time.Duration(0), clock.Elapsed())

	now = base.Add(2 * time.Second)
	assert.Equal(t, 2*time.Second, clock.Elapsed())

	// wall clock stepped backwards
	now = base.Add(-time.Second)
	assert.Equal(t, time.Duration(0), clock.Elapsed())
}

func TestClock_Pause(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	clock := NewClockAt(func() time.Time { return now })

	now = base.Add(time.Second)
	clock.SetPaused(true)
	assert.True(t, clock.Paused())

	now = base.Add(5 * time.Second)
	assert.Equal(t, time.Second, clock.Elapsed(), "paused clock stands still")

	clock.SetPaused(true)
	now = base.Add(6 * time.Second)
	assert.Equal(t, time.Second, clock.Elapsed(), "pausing twice keeps the first pause instant")

	clock.SetPaused(false)
	assert.False(t, clock.Paused())
	assert.Equal(t, time.Second, clock.Elapsed())

	now = base.Add(8 * time.Second)
	assert.Equal(t, 3*time.Second, clock.Elapsed())
}
