package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/core"
)

// HudPass draws overlay text from a glyph atlas on top of the star field.
type HudPass struct {
	Pipeline  *wgpu.RenderPipeline
	Atlas     *core.GlyphAtlas
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup
}

func NewHudPass(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, atlas *core.GlyphAtlas, label string) (*HudPass, error) {
	h := &HudPass{Atlas: atlas}
	var err error

	h.Pipeline, err = CreateHudPipeline(device, format, label+" HUD")
	if err != nil {
		return nil, err
	}

	w, ht := atlas.Image.Bounds().Dx(), atlas.Image.Bounds().Dy()
	h.texture, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " HUD Atlas",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(ht), DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		h.Release()
		return nil, fmt.Errorf("hud atlas texture: %w", err)
	}
	if err := uploadAtlas(queue, h.texture.AsImageCopy(), atlas.Image); err != nil {
		h.Release()
		return nil, err
	}

	h.view, err = h.texture.CreateView(nil)
	if err != nil {
		h.Release()
		return nil, fmt.Errorf("hud atlas view: %w", err)
	}

	h.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		h.Release()
		return nil, fmt.Errorf("hud sampler: %w", err)
	}

	layout := h.Pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	h.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: h.view},
			{Binding: 1, Sampler: h.sampler},
		},
	})
	if err != nil {
		h.Release()
		return nil, fmt.Errorf("hud bind group: %w", err)
	}
	return h, nil
}

type textureWriter interface {
	WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, dataLayout *wgpu.TextureDataLayout, writeSize *wgpu.Extent3D) error
}

// uploadAtlas copies the single-channel atlas into dst, one byte per texel.
func uploadAtlas(queue textureWriter, dst *wgpu.ImageCopyTexture, img *image.Alpha) error {
	b := img.Bounds()
	extent := wgpu.Extent3D{Width: uint32(b.Dx()), Height: uint32(b.Dy()), DepthOrArrayLayers: 1}
	err := queue.WriteTexture(dst, img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: uint32(b.Dy()),
	}, &extent)
	if err != nil {
		return fmt.Errorf("hud atlas upload: %w", err)
	}
	return nil
}

// Upload builds the overlay vertices for the current surface size. A nil
// buffer with no error means there is nothing to draw.
func (h *HudPass) Upload(device *wgpu.Device, lines []core.HudLine, width, height uint32) (*wgpu.Buffer, uint32, error) {
	vertices := h.Atlas.Vertices(lines, width, height)
	if len(vertices) == 0 {
		return nil, 0, nil
	}
	buf, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "HUD Vertices",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("hud vertex buffer: %w", err)
	}
	return buf, uint32(len(vertices)), nil
}

func (h *HudPass) Encode(pass *wgpu.RenderPassEncoder, vertices *wgpu.Buffer, count uint32) {
	if vertices == nil || count == 0 {
		return
	}
	pass.SetPipeline(h.Pipeline)
	pass.SetBindGroup(0, h.bindGroup, nil)
	pass.SetVertexBuffer(0, vertices, 0, wgpu.WholeSize)
	pass.Draw(count, 1, 0, 0)
}

func (h *HudPass) Release() {
	if h == nil {
		return
	}
	if h.bindGroup != nil {
		h.bindGroup.Release()
		h.bindGroup = nil
	}
	if h.sampler != nil {
		h.sampler.Release()
		h.sampler = nil
	}
	if h.view != nil {
		h.view.Release()
		h.view = nil
	}
	if h.texture != nil {
		h.texture.Release()
		h.texture = nil
	}
	if h.Pipeline != nil {
		h.Pipeline.Release()
		h.Pipeline = nil
	}
}
