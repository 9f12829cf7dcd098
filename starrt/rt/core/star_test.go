package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarVertices_Default(t *testing.T) {
	vertices := DefaultStarShape().Vertices()
	require.Len(t, vertices, OutlineVertexCount+1)

	for i := 0; i < OutlineVertexCount; i++ {
		p := vertices[i].Position
		r := math.Hypot(float64(p[0]), float64(p[1]))
		if i%2 == 0 {
			assert.InDelta(t, DefaultOuterRadius, r, 1e-5, "outer point %d", i)
		} else {
			assert.InDelta(t, DefaultInnerRadius, r, 1e-5, "inner point %d", i)
		}
		angle := math.Atan2(float64(p[1]), float64(p[0]))
		want := float64(i) * math.Pi / StarPoints
		if want > math.Pi {
			want -= 2 * math.Pi
		}
		assert.InDelta(t, want, angle, 1e-5, "angle of point %d", i)
	}

	assert.Equal(t, [2]float32{0, 0}, vertices[CenterIndex].Position)
	assert.InDelta(t, 1.0, vertices[0].Position[0], 1e-6)
	assert.InDelta(t, 0.0, vertices[0].Position[1], 1e-6)
}

func TestStarVertices_CustomRadii(t *testing.T) {
	shape := StarShape{OuterRadius: 2, InnerRadius: 0.5}
	vertices := shape.Vertices()

	assert.InDelta(t, 2.0, vertices[0].Position[0], 1e-6)
	assert.InDelta(t, 0.5, math.Hypot(float64(vertices[1].Position[0]), float64(vertices[1].Position[1])), 1e-6)
}

func TestStarShape_ZeroRadiiFallBack(t *testing.T) {
	assert.Equal(t, DefaultStarShape().Vertices(), StarShape{}.Vertices())
}

func TestStarIndices(t *testing.T) {
	indices := StarIndices()
	require.Len(t, indices, StarIndexCount)

	assert.Equal(t, []uint16{0, 5, 1, 10}, indices[0:4])
	assert.Equal(t, []uint16{4, 9, 5, 10}, indices[16:20])
	assert.Equal(t, []uint16{9, 4, 0, 10}, indices[36:40])

	for i, idx := range indices {
		assert.LessOrEqual(t, int(idx), CenterIndex, "index %d out of range", i)
	}
	for i := 3; i < len(indices); i += 4 {
		assert.Equal(t, uint16(CenterIndex), indices[i])
	}
}
