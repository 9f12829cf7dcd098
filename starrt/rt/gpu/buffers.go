package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/core"
)

var (
	ErrEmptyFrame      = errors.New("frame has no geometry or instances")
	ErrIndexOutOfRange = errors.New("index addresses a missing vertex")
)

// FrameData is everything the star draw needs for one frame, CPU side.
type FrameData struct {
	Vertices  []core.StarVertex
	Indices   []uint16
	Instances []core.StarInstance
	Uniform   core.FrameUniform
}

func (d FrameData) IndexCount() uint32    { return uint32(len(d.Indices)) }
func (d FrameData) InstanceCount() uint32 { return uint32(len(d.Instances)) }

func (d FrameData) Validate() error {
	if len(d.Vertices) == 0 || len(d.Indices) == 0 || len(d.Instances) == 0 {
		return ErrEmptyFrame
	}
	for i, idx := range d.Indices {
		if int(idx) >= len(d.Vertices) {
			return fmt.Errorf("index %d = %d with %d vertices: %w", i, idx, len(d.Vertices), ErrIndexOutOfRange)
		}
	}
	return nil
}

// FrameBuffers holds the GPU buffers allocated for a single frame.
// They are released once the frame has been submitted.
type FrameBuffers struct {
	Vertex    *wgpu.Buffer
	Index     *wgpu.Buffer
	Instance  *wgpu.Buffer
	Uniform   *wgpu.Buffer
	BindGroup *wgpu.BindGroup

	IndexCount    uint32
	InstanceCount uint32
}

// UploadFrame allocates and fills the frame buffers and binds the uniform to
// group 0 of pipeline.
func UploadFrame(device *wgpu.Device, pipeline *wgpu.RenderPipeline, data FrameData, label string) (*FrameBuffers, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	fb := &FrameBuffers{
		IndexCount:    data.IndexCount(),
		InstanceCount: data.InstanceCount(),
	}
	var err error

	fb.Vertex, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Vertices",
		Contents: wgpu.ToBytes(data.Vertices),
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("vertex buffer: %w", err)
	}

	fb.Index, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Indices",
		Contents: wgpu.ToBytes(data.Indices),
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("index buffer: %w", err)
	}

	fb.Instance, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Instances",
		Contents: wgpu.ToBytes(data.Instances),
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("instance buffer: %w", err)
	}

	fb.Uniform, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Frame Uniform",
		Contents: wgpu.ToBytes([]core.FrameUniform{data.Uniform}),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("uniform buffer: %w", err)
	}

	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	fb.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Frame BindGroup",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: fb.Uniform, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		fb.Release()
		return nil, fmt.Errorf("frame bind group: %w", err)
	}

	return fb, nil
}

// Encode records the instanced star draw into pass.
func (fb *FrameBuffers) Encode(pass *wgpu.RenderPassEncoder, pipeline *wgpu.RenderPipeline) {
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, fb.BindGroup, nil)
	pass.SetVertexBuffer(StarVertexSlot, fb.Vertex, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(StarInstanceSlot, fb.Instance, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(fb.Index, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(fb.IndexCount, fb.InstanceCount, 0, 0, 0)
}

func (fb *FrameBuffers) Release() {
	if fb == nil {
		return
	}
	if fb.BindGroup != nil {
		fb.BindGroup.Release()
		fb.BindGroup = nil
	}
	for _, b := range []**wgpu.Buffer{&fb.Uniform, &fb.Instance, &fb.Index, &fb.Vertex} {
		if *b != nil {
			(*b).Release()
			*b = nil
		}
	}
}
