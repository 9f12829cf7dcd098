package app

import (
	"fmt"

	"github.com/gekko3d/starfield/starrt/rt/core"
	"github.com/gekko3d/starfield/starrt/rt/gpu"
)

const (
	hudMargin     = 10
	hudLineHeight = 20
)

var (
	hudColor    = [4]float32{1, 1, 1, 1}
	hudDimColor = [4]float32{0.85, 0.85, 0.85, 1}
)

// Stats is a snapshot of what the context drew last.
type Stats struct {
	FPS     float64
	Stars   int
	Indices int
	Elapsed float32
	Seed    int64
	Paused  bool
	// Report is the profiler's per-phase CPU timings and counters.
	Report string
}

func (c *Context) Stats() Stats {
	s := Stats{
		FPS:     c.Profiler.FPS(),
		Stars:   c.Profiler.Counts["stars"],
		Indices: c.Profiler.Counts["indices"],
		Seed:    c.seed,
		Paused:  c.Paused(),
		Report:  c.Profiler.GetStatsString(),
	}
	if c.Clock != nil {
		s.Elapsed = float32(c.Clock.Elapsed().Seconds())
	}
	return s
}

// hudLines lays out the overlay: frame stats on the left, phase timings
// right-aligned against the surface edge.
func (c *Context) hudLines(frame gpu.FrameData) []core.HudLine {
	left := []string{
		fmt.Sprintf("FPS: %.1f", c.Profiler.FPS()),
		fmt.Sprintf("Stars: %d", frame.InstanceCount()),
		fmt.Sprintf("Time: %.2fs", frame.Uniform.Time),
		fmt.Sprintf("Seed: %d", c.seed),
	}
	if c.Paused() {
		left = append(left, "Paused")
	}

	out := make([]core.HudLine, 0, len(left)+len(c.Profiler.Order))
	for i, text := range left {
		out = append(out, core.HudLine{
			Text:     text,
			Position: [2]float32{hudMargin, hudMargin + float32(i)*hudLineHeight},
			Scale:    1,
			Color:    hudColor,
		})
	}

	var atlas *core.GlyphAtlas
	if c.Hud != nil {
		atlas = c.Hud.Atlas
	}
	var width float32
	if c.Config != nil {
		width = float32(c.Config.Width)
	}
	for i, name := range c.Profiler.Order {
		text := fmt.Sprintf("%s %.2f ms", name, float64(c.Profiler.Scopes[name].Microseconds())/1000.0)
		w, _ := atlas.Measure(text, 1)
		out = append(out, core.HudLine{
			Text:     text,
			Position: [2]float32{max(hudMargin, width-w-hudMargin), hudMargin + float32(i)*hudLineHeight},
			Scale:    1,
			Color:    hudDimColor,
		})
	}
	return out
}
