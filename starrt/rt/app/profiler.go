package app

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Profiler keeps the last CPU duration of each named frame phase plus a few
// counters, and derives frames per second from EndFrame calls.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string

	now         func() time.Time
	fps         float64
	frames      int
	windowStart time.Time
}

func NewProfiler() *Profiler {
	return newProfilerAt(time.Now)
}

func newProfilerAt(now func() time.Time) *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		now:        now,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = p.now()
	if !slices.Contains(p.Order, name) {
		p.Order = append(p.Order, name)
	}
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = p.now().Sub(start)
		delete(p.StartTimes, name)
	}
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

// EndFrame counts a presented frame; FPS is refreshed about once a second.
func (p *Profiler) EndFrame() {
	now := p.now()
	if p.windowStart.IsZero() {
		p.windowStart = now
		return
	}
	p.frames++
	if elapsed := now.Sub(p.windowStart); elapsed >= time.Second {
		p.fps = float64(p.frames) / elapsed.Seconds()
		p.frames = 0
		p.windowStart = now
	}
}

func (p *Profiler) FPS() float64 {
	return p.fps
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder

	sb.WriteString("Timings (CPU):\n")
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf("  %-8s: %.2f ms\n", name, ms))
	}

	sb.WriteString("Stats:\n")
	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-8s: %d\n", k, p.Counts[k]))
	}
	return sb.String()
}
