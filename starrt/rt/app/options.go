package app

import (
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/core"
)

// Logger is the subset of the application logger the render context uses.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Options configures a render Context.
type Options struct {
	StarCount   int
	Seed        int64 // 0 picks a seed from the clock
	Shape       core.StarShape
	ClearColor  wgpu.Color
	PresentMode wgpu.PresentMode
	Power       wgpu.PowerPreference
	Debug       bool
	HudFontSize float64
	Logger      Logger
}

var DefaultClearColor = wgpu.Color{R: 0, G: 1, B: 0, A: 1}

func DefaultOptions() Options {
	return Options{
		StarCount:   core.DefaultStarCount,
		Shape:       core.DefaultStarShape(),
		ClearColor:  DefaultClearColor,
		PresentMode: wgpu.PresentModeFifo,
		Power:       wgpu.PowerPreferenceHighPerformance,
		HudFontSize: 16,
	}
}

// Normalize replaces unset or invalid fields with defaults.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if o.StarCount <= 0 {
		o.StarCount = def.StarCount
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Shape.OuterRadius <= 0 {
		o.Shape.OuterRadius = def.Shape.OuterRadius
	}
	if o.Shape.InnerRadius <= 0 {
		o.Shape.InnerRadius = def.Shape.InnerRadius
	}
	if o.ClearColor == (wgpu.Color{}) {
		o.ClearColor = def.ClearColor
	}
	if o.PresentMode == 0 {
		o.PresentMode = def.PresentMode
	}
	if o.Power == 0 {
		o.Power = def.Power
	}
	if o.HudFontSize <= 0 {
		o.HudFontSize = def.HudFontSize
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	return o
}
