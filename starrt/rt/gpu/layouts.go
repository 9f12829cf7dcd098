package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/core"
)

// Vertex buffer slots used by the star pipeline.
const (
	StarVertexSlot   uint32 = 0
	StarInstanceSlot uint32 = 1
)

// StarVertexLayout describes the star outline buffer: one float32x2 position
// per vertex at shader location 0.
func StarVertexLayout() wgpu.VertexBufferLayout {
	var v core.StarVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(v)),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(v.Position)), ShaderLocation: 0},
		},
	}
}

// StarInstanceLayout describes core.StarInstance, advanced once per instance.
func StarInstanceLayout() wgpu.VertexBufferLayout {
	var s core.StarInstance
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(s)),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(s.Position)), ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32, Offset: uint64(unsafe.Offsetof(s.Scale)), ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32, Offset: uint64(unsafe.Offsetof(s.InitialRotation)), ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(s.Speed)), ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32, Offset: uint64(unsafe.Offsetof(s.RotationSpeed)), ShaderLocation: 6},
		},
	}
}

func HudVertexLayout() wgpu.VertexBufferLayout {
	var v core.HudVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(v)),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(v.Pos)), ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: uint64(unsafe.Offsetof(v.UV)), ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(v.Color)), ShaderLocation: 2},
		},
	}
}
