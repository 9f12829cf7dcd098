package app

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/core"
	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, core.DefaultStarCount, o.StarCount)
	assert.Equal(t, wgpu.Color{R: 0, G: 1, B: 0, A: 1}, o.ClearColor)
	assert.Equal(t, wgpu.PresentModeFifo, o.PresentMode)
	assert.Equal(t, core.DefaultStarShape(), o.Shape)
}

func TestOptions_NormalizeFillsZeroValue(t *testing.T) {
	o := Options{}.Normalize()
	assert.Equal(t, core.DefaultStarCount, o.StarCount)
	assert.NotZero(t, o.Seed)
	assert.Equal(t, DefaultClearColor, o.ClearColor)
	assert.Equal(t, float32(core.DefaultOuterRadius), o.Shape.OuterRadius)
	assert.Equal(t, float32(core.DefaultInnerRadius), o.Shape.InnerRadius)
	assert.NotNil(t, o.Logger)
	assert.Equal(t, 16.0, o.HudFontSize)
}

func TestOptions_NormalizeKeepsExplicitValues(t *testing.T) {
	o := Options{
		StarCount:  12,
		Seed:       99,
		Shape:      core.StarShape{OuterRadius: 2, InnerRadius: 0.5},
		ClearColor: wgpu.Color{R: 1, A: 1},
		Debug:      true,
	}.Normalize()
	assert.Equal(t, 12, o.StarCount)
	assert.Equal(t, int64(99), o.Seed)
	assert.Equal(t, float32(2), o.Shape.OuterRadius)
	assert.Equal(t, wgpu.Color{R: 1, A: 1}, o.ClearColor)
	assert.True(t, o.Debug)
}

func TestOptions_NormalizeNegativeStarCount(t *testing.T) {
	o := Options{StarCount: -5}.Normalize()
	assert.Equal(t, core.DefaultStarCount, o.StarCount)
}
