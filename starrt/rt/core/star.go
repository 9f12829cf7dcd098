package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	StarPoints         = 5
	OutlineVertexCount = StarPoints * 2
	// CenterIndex is the index of the centre vertex appended after the outline.
	CenterIndex = OutlineVertexCount
	// StarIndexCount is the length of the index list built by StarIndices.
	StarIndexCount = OutlineVertexCount * 4

	DefaultOuterRadius float32 = 1.0
	DefaultInnerRadius float32 = 0.38
)

// StarVertex matches the per-vertex input of star.wgsl (location 0).
type StarVertex struct {
	Position [2]float32
}

// StarShape describes the outline radii of a star. Zero radii fall back to
// the defaults.
type StarShape struct {
	OuterRadius float32
	InnerRadius float32
}

func DefaultStarShape() StarShape {
	return StarShape{
		OuterRadius: DefaultOuterRadius,
		InnerRadius: DefaultInnerRadius,
	}
}

func (s StarShape) normalized() StarShape {
	if s.OuterRadius <= 0 {
		s.OuterRadius = DefaultOuterRadius
	}
	if s.InnerRadius <= 0 {
		s.InnerRadius = DefaultInnerRadius
	}
	return s
}

// OutlinePoint returns the i-th outline point. Even points sit on the outer
// radius, odd points on the inner one.
func (s StarShape) OutlinePoint(i int) mgl32.Vec2 {
	s = s.normalized()
	radius := s.InnerRadius
	if i%2 == 0 {
		radius = s.OuterRadius
	}
	angle := float64(i) * math.Pi / StarPoints
	return mgl32.Vec2{
		float32(math.Cos(angle)) * radius,
		float32(math.Sin(angle)) * radius,
	}
}

// Vertices returns the outline followed by the centre vertex.
func (s StarShape) Vertices() []StarVertex {
	vertices := make([]StarVertex, 0, OutlineVertexCount+1)
	for i := 0; i < OutlineVertexCount; i++ {
		p := s.OutlinePoint(i)
		vertices = append(vertices, StarVertex{Position: [2]float32{p.X(), p.Y()}})
	}
	vertices = append(vertices, StarVertex{})
	return vertices
}

// StarIndices builds the pentagram strip: for every outline point it emits the
// point, the opposite point, the next point and the centre.
func StarIndices() []uint16 {
	indices := make([]uint16, 0, StarIndexCount)
	for i := 0; i < OutlineVertexCount; i++ {
		indices = append(indices,
			uint16(i),
			uint16((i+StarPoints)%OutlineVertexCount),
			uint16((i+1)%OutlineVertexCount),
			uint16(CenterIndex),
		)
	}
	return indices
}
