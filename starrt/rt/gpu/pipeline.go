package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/shaders"
)

// AlphaBlend blends colour by source alpha and accumulates alpha additively.
func AlphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// StarPrimitiveState draws the pentagram index list as a uint16 triangle strip.
func StarPrimitiveState() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:         wgpu.PrimitiveTopologyTriangleStrip,
		StripIndexFormat: wgpu.IndexFormatUint16,
		FrontFace:        wgpu.FrontFaceCCW,
		CullMode:         wgpu.CullModeNone,
	}
}

func singleSample() wgpu.MultisampleState {
	return wgpu.MultisampleState{
		Count: 1,
		Mask:  0xFFFFFFFF,
	}
}

// StarPipelineDescriptor builds the star pipeline description around an
// already compiled shader module. The layout is derived from the shader.
func StarPipelineDescriptor(label string, shader *wgpu.ShaderModule, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label: label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: shaders.StarVertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{StarVertexLayout(), StarInstanceLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: shaders.StarFragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     AlphaBlend(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive:    StarPrimitiveState(),
		DepthStencil: nil,
		Multisample:  singleSample(),
	}
}

// CreateStarPipeline compiles star.wgsl and builds the star render pipeline
// for the given surface format.
func CreateStarPipeline(device *wgpu.Device, format wgpu.TextureFormat, label string) (*wgpu.RenderPipeline, error) {
	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.StarWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("star shader: %w", err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(StarPipelineDescriptor(label, shader, format))
	if err != nil {
		return nil, fmt.Errorf("star pipeline: %w", err)
	}
	return pipeline, nil
}

func HudPipelineDescriptor(label string, shader *wgpu.ShaderModule, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label: label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: shaders.HudVertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{HudVertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: shaders.HudFragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     AlphaBlend(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: singleSample(),
	}
}

func CreateHudPipeline(device *wgpu.Device, format wgpu.TextureFormat, label string) (*wgpu.RenderPipeline, error) {
	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.HudWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("hud shader: %w", err)
	}
	defer shader.Release()

	pipeline, err := device.CreateRenderPipeline(HudPipelineDescriptor(label, shader, format))
	if err != nil {
		return nil, fmt.Errorf("hud pipeline: %w", err)
	}
	return pipeline, nil
}
