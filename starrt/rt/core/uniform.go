package core

import "time"

// FrameUniform matches the Frame struct in star.wgsl (group 0, binding 0).
// Padded to 16 bytes.
type FrameUniform struct {
	Time   float32 // seconds since the clock started
	Aspect float32 // height / width of the surface
	Pad0   float32
	Pad1   float32
}

func NewFrameUniform(elapsed time.Duration, width, height uint32) FrameUniform {
	return FrameUniform{
		Time:   float32(elapsed.Seconds()),
		Aspect: Aspect(width, height),
	}
}

// Aspect returns height/width, or 1 when either side is zero.
func Aspect(width, height uint32) float32 {
	if width == 0 || height == 0 {
		return 1
	}
	return float32(height) / float32(width)
}

// Clock is the only state that survives between frames: the wall-clock
// instant the renderer started, shifted forward by any time spent paused.
type Clock struct {
	start    time.Time
	now      func() time.Time
	paused   bool
	pausedAt time.Time
}

func NewClock() *Clock {
	return NewClockAt(time.Now)
}

// NewClockAt starts a clock that reads time from now.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{start: now(), now: now}
}

// Elapsed is the running time since the clock started. It stands still while
// the clock is paused and is never negative.
func (c *Clock) Elapsed() time.Duration {
	end := c.now()
	if c.paused {
		end = c.pausedAt
	}
	d := end.Sub(c.start)
	if d < 0 {
		return 0
	}
	return d
}

func (c *Clock) Paused() bool {
	return c.paused
}

func (c *Clock) SetPaused(paused bool) {
	if paused == c.paused {
		return
	}
	if paused {
		c.pausedAt = c.now()
	} else {
		c.start = c.start.Add(c.now().Sub(c.pausedAt))
	}
	c.paused = paused
}
