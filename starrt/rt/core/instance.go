package core

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultStarCount = 1000

	// TicksPerSecond converts elapsed seconds into the tick unit that the
	// per-instance speeds are expressed in.
	TicksPerSecond float32 = 60
)

// StarInstance matches the per-instance inputs of star.wgsl (locations 2..6).
// Field order and sizes define the instance buffer layout; see gpu.StarInstanceLayout.
type StarInstance struct {
	Position        [2]float32
	Scale           float32
	InitialRotation float32
	Speed           [2]float32
	RotationSpeed   float32
}

// Range is a half-open [Min, Max) interval.
type Range struct {
	Min float32
	Max float32
}

func (r Range) sample(rng *rand.Rand) float32 {
	return r.Min + (r.Max-r.Min)*rng.Float32()
}

func (r Range) Contains(v float32) bool {
	return v >= r.Min && v < r.Max
}

// InstanceRanges bounds every randomized instance attribute.
type InstanceRanges struct {
	Position        Range
	Scale           Range
	InitialRotation Range
	Speed           Range
	RotationSpeed   Range
}

func DefaultInstanceRanges() InstanceRanges {
	return InstanceRanges{
		Position:        Range{Min: -1, Max: 1},
		Scale:           Range{Min: 0.01, Max: 0.05},
		InitialRotation: Range{Min: 0, Max: math.Pi},
		Speed:           Range{Min: -0.01, Max: 0.01},
		RotationSpeed:   Range{Min: -0.01, Max: 0.01},
	}
}

// NewStarInstances draws n instances from rng using the default ranges.
func NewStarInstances(rng *rand.Rand, n int) []StarInstance {
	return DefaultInstanceRanges().Generate(rng, n)
}

func (r InstanceRanges) Generate(rng *rand.Rand, n int) []StarInstance {
	if n <= 0 {
		return nil
	}
	instances := make([]StarInstance, n)
	for i := range instances {
		instances[i] = StarInstance{
			Position:        [2]float32{r.Position.sample(rng), r.Position.sample(rng)},
			Scale:           r.Scale.sample(rng),
			InitialRotation: r.InitialRotation.sample(rng),
			Speed:           [2]float32{r.Speed.sample(rng), r.Speed.sample(rng)},
			RotationSpeed:   r.RotationSpeed.sample(rng),
		}
	}
	return instances
}

// wrapUnit folds v back into [-1, 1).
func wrapUnit(v float32) float32 {
	t := (v + 1) / 2
	t -= float32(math.Floor(float64(t)))
	return t*2 - 1
}

// Center returns the instance centre after elapsed seconds.
func (s StarInstance) Center(elapsed float32) mgl32.Vec2 {
	ticks := elapsed * TicksPerSecond
	return mgl32.Vec2{
		wrapUnit(s.Position[0] + s.Speed[0]*ticks),
		wrapUnit(s.Position[1] + s.Speed[1]*ticks),
	}
}

// Angle returns the instance rotation in radians after elapsed seconds.
func (s StarInstance) Angle(elapsed float32) float32 {
	return s.InitialRotation + s.RotationSpeed*elapsed*TicksPerSecond
}

// AnimateVertex is the CPU counterpart of vertexMain in star.wgsl and must be
// kept in sync with it.
func AnimateVertex(v StarVertex, s StarInstance, u FrameUniform) mgl32.Vec2 {
	local := mgl32.Vec2{v.Position[0], v.Position[1]}.Mul(s.Scale)
	rotated := mgl32.Rotate2D(s.Angle(u.Time)).Mul2x1(local)
	aspect := u.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c := s.Center(u.Time)
	return mgl32.Vec2{c.X() + rotated.X()*aspect, c.Y() + rotated.Y()}
}
