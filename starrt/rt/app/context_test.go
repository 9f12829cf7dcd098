package app

import (
	"testing"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/core"
	"github.com/gekko3d/starfield/starrt/rt/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, opts Options) *Context {
	t.Helper()
	c := NewContext(nil, opts)
	c.Config = &wgpu.SurfaceConfiguration{Width: 800, Height: 600}
	return c
}

func TestNewContext(t *testing.T) {
	c := NewContext(nil, Options{Seed: 7})
	assert.Len(t, c.ID, 36)
	assert.Equal(t, int64(7), c.Seed())
	assert.Equal(t, core.DefaultStarCount, c.Options.StarCount)
	assert.NotNil(t, c.Profiler)
}

func TestContext_DrawBeforeInit(t *testing.T) {
	c := NewContext(nil, Options{Seed: 1})
	assert.ErrorIs(t, c.Draw(), ErrNotInitialized)
}

func TestContext_BuildFrame(t *testing.T) {
	c := testContext(t, Options{Seed: 42, StarCount: 64})
	clk := &fakeClock{t: time.Unix(10, 0)}
	c.Clock = core.NewClockAt(clk.now)
	clk.advance(1500 * time.Millisecond)

	frame := c.BuildFrame()
	require.NoError(t, frame.Validate())
	assert.Len(t, frame.Vertices, core.OutlineVertexCount+1)
	assert.Equal(t, uint32(core.StarIndexCount), frame.IndexCount())
	assert.Equal(t, uint32(64), frame.InstanceCount())
	assert.InDelta(t, 1.5, frame.Uniform.Time, 1e-6)
	assert.InDelta(t, 0.75, frame.Uniform.Aspect, 1e-6)
}

func TestContext_BuildFrameIsStableAcrossFrames(t *testing.T) {
	c := testContext(t, Options{Seed: 3, StarCount: 16})
	first := c.BuildFrame()
	second := c.BuildFrame()
	assert.Equal(t, first.Instances, second.Instances)

	c.Reseed(4)
	third := c.BuildFrame()
	assert.NotEqual(t, first.Instances, third.Instances)
}

func TestContext_ReseedZeroIsIgnored(t *testing.T) {
	c := testContext(t, Options{Seed: 5})
	c.Reseed(0)
	assert.Equal(t, int64(5), c.Seed())
}

func TestContext_BuildFrameWithoutClock(t *testing.T) {
	c := NewContext(nil, Options{Seed: 1, StarCount: 2})
	frame := c.BuildFrame()
	assert.Zero(t, frame.Uniform.Time)
	assert.Equal(t, float32(1), frame.Uniform.Aspect)
}

func TestContext_HudLines(t *testing.T) {
	c := testContext(t, Options{Seed: 11, StarCount: 8})
	lines := c.hudLines(c.BuildFrame())
	require.Len(t, lines, 4)
	assert.Equal(t, "FPS: 0.0", lines[0].Text)
	assert.Equal(t, "Stars: 8", lines[1].Text)
	assert.Equal(t, "Seed: 11", lines[3].Text)
	assert.Less(t, lines[0].Position[1], lines[1].Position[1])
}

func TestContext_HudLinesShowPhaseTimings(t *testing.T) {
	c := testContext(t, Options{Seed: 11, StarCount: 8})
	clk := &fakeClock{t: time.Unix(0, 0)}
	c.Profiler = newProfilerAt(clk.now)
	c.Profiler.BeginScope("upload")
	clk.advance(1500 * time.Microsecond)
	c.Profiler.EndScope("upload")

	lines := c.hudLines(c.BuildFrame())
	require.Len(t, lines, 5)
	timing := lines[4]
	assert.Equal(t, "upload 1.50 ms", timing.Text)
	assert.Equal(t, float32(800-hudMargin), timing.Position[0], "right-aligned without an atlas to measure")
	assert.Equal(t, lines[0].Position[1], timing.Position[1])
}

func TestContext_HudLinesRightAlignWithAtlas(t *testing.T) {
	c := testContext(t, Options{Seed: 1})
	atlas, err := core.NewDefaultGlyphAtlas(16)
	require.NoError(t, err)
	c.Hud = &gpu.HudPass{Atlas: atlas}
	c.Profiler.BeginScope("encode")
	c.Profiler.EndScope("encode")

	lines := c.hudLines(c.BuildFrame())
	timing := lines[len(lines)-1]
	w, _ := atlas.Measure(timing.Text, 1)
	require.Greater(t, w, float32(0))
	assert.InDelta(t, 800-hudMargin-w, timing.Position[0], 1e-3)
}

func TestContext_Pause(t *testing.T) {
	c := testContext(t, Options{Seed: 2})
	assert.False(t, c.Paused())
	assert.NotPanics(t, func() { c.SetPaused(true) }, "no clock before Init")

	clk := &fakeClock{t: time.Unix(50, 0)}
	c.Clock = core.NewClockAt(clk.now)
	clk.advance(time.Second)
	c.SetPaused(true)
	clk.advance(10 * time.Second)

	frame := c.BuildFrame()
	assert.InDelta(t, 1.0, frame.Uniform.Time, 1e-6)
	assert.True(t, c.Stats().Paused)
	lines := c.hudLines(frame)
	assert.Equal(t, "Paused", lines[4].Text)

	c.SetPaused(false)
	clk.advance(time.Second)
	assert.InDelta(t, 2.0, c.BuildFrame().Uniform.Time, 1e-6)
}

func TestContext_SetDebugWithoutDevice(t *testing.T) {
	c := testContext(t, Options{Seed: 1})
	c.SetDebug(true)
	assert.True(t, c.Options.Debug)
	assert.Nil(t, c.Hud)
}

func TestContext_ResizeClampsAndReleaseIsSafe(t *testing.T) {
	c := NewContext(nil, Options{Seed: 1})
	assert.NotPanics(t, func() { c.Resize(0, 0) })
	assert.NotPanics(t, c.Release)
	assert.Equal(t, uint32(1), clampDim(-3))
	assert.Equal(t, uint32(640), clampDim(640))
}

func TestContext_Stats(t *testing.T) {
	c := testContext(t, Options{Seed: 9})
	c.Profiler.SetCount("stars", 1000)
	c.Profiler.BeginScope("submit")
	c.Profiler.EndScope("submit")
	s := c.Stats()
	assert.Equal(t, 1000, s.Stars)
	assert.Equal(t, int64(9), s.Seed)
	assert.Contains(t, s.Report, "submit")
	assert.Contains(t, s.Report, "stars   : 1000")
}
