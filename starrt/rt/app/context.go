package app

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/starfield/starrt/rt/core"
	"github.com/gekko3d/starfield/starrt/rt/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"
)

var (
	ErrNotInitialized  = errors.New("render context not initialized")
	ErrNoSurfaceFormat = errors.New("surface reports no supported formats")
	// ErrFrameSkipped is returned by Draw when the surface could not provide
	// a texture. The surface has been reconfigured and the next Draw retries.
	ErrFrameSkipped = errors.New("frame skipped")
)

// Context owns the surface, device, queue and the star pipeline for one window.
type Context struct {
	ID     string
	Window *glfw.Window

	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Pipeline *wgpu.RenderPipeline
	Hud      *gpu.HudPass

	Options  Options
	Clock    *core.Clock
	Profiler *Profiler

	seed int64
	log  Logger
}

func NewContext(window *glfw.Window, opts Options) *Context {
	opts = opts.Normalize()
	return &Context{
		ID:       uuid.NewString(),
		Window:   window,
		Options:  opts,
		Profiler: NewProfiler(),
		seed:     opts.Seed,
		log:      opts.Logger,
	}
}

func (c *Context) label(name string) string {
	return fmt.Sprintf("%s [%s]", name, c.ID[:8])
}

// Init acquires the GPU objects and builds the star pipeline. It blocks
// until the adapter and device are available.
func (c *Context) Init() error {
	c.Instance = wgpu.CreateInstance(nil)
	c.Surface = c.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(c.Window))

	adapter, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.Surface,
		PowerPreference:   c.Options.Power,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	c.Adapter = adapter

	c.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: c.label("Star Device"),
	})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	c.Queue = c.Device.GetQueue()

	caps := c.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return ErrNoSurfaceFormat
	}
	alphaMode := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alphaMode = caps.AlphaModes[0]
	}

	width, height := c.Window.GetFramebufferSize()
	c.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       clampDim(width),
		Height:      clampDim(height),
		PresentMode: c.Options.PresentMode,
		AlphaMode:   alphaMode,
	}
	c.Surface.Configure(c.Adapter, c.Device, c.Config)

	c.Pipeline, err = gpu.CreateStarPipeline(c.Device, c.Config.Format, c.label("Star Pipeline"))
	if err != nil {
		return err
	}

	if c.Options.Debug {
		c.enableHud()
	}

	c.Clock = core.NewClock()
	c.log.Infof("render context %s ready: %dx%d format=%v stars=%d seed=%d",
		c.ID, c.Config.Width, c.Config.Height, c.Config.Format, c.Options.StarCount, c.seed)
	return nil
}

func (c *Context) enableHud() {
	if c.Hud != nil || c.Device == nil {
		return
	}
	atlas, err := core.NewDefaultGlyphAtlas(c.Options.HudFontSize)
	if err != nil {
		c.log.Warnf("hud disabled: %v", err)
		return
	}
	c.Hud, err = gpu.NewHudPass(c.Device, c.Queue, c.Config.Format, atlas, c.label("Star"))
	if err != nil {
		c.log.Warnf("hud disabled: %v", err)
		c.Hud = nil
	}
}

func clampDim(v int) uint32 {
	if v < 1 {
		return 1
	}
	return uint32(v)
}

// Resize reconfigures the surface. Zero or negative sizes (a minimized
// window) are clamped to 1.
func (c *Context) Resize(width, height int) {
	if c.Config == nil {
		return
	}
	c.Config.Width = clampDim(width)
	c.Config.Height = clampDim(height)
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
	c.log.Debugf("surface resized to %dx%d", c.Config.Width, c.Config.Height)
}

// Reseed switches to a different random star field. Zero keeps the current one.
func (c *Context) Reseed(seed int64) {
	if seed == 0 {
		return
	}
	c.seed = seed
	c.log.Infof("star field reseeded: %d", seed)
}

func (c *Context) Seed() int64 {
	return c.seed
}

func (c *Context) Debug() bool {
	return c.Options.Debug
}

func (c *Context) SetDebug(enabled bool) {
	c.Options.Debug = enabled
	if enabled {
		c.enableHud()
	}
}

// Paused reports whether star motion is frozen. Frames keep being drawn.
func (c *Context) Paused() bool {
	return c.Clock != nil && c.Clock.Paused()
}

func (c *Context) SetPaused(paused bool) {
	if c.Clock == nil {
		return
	}
	c.Clock.SetPaused(paused)
	c.log.Debugf("star motion paused=%v", paused)
}

func (c *Context) FPS() float64 {
	return c.Profiler.FPS()
}

// BuildFrame assembles the CPU side of the next frame. The instance field is
// regenerated from the seed so consecutive frames agree and only the time
// uniform moves the stars.
func (c *Context) BuildFrame() gpu.FrameData {
	var width, height uint32
	if c.Config != nil {
		width, height = c.Config.Width, c.Config.Height
	}
	var u core.FrameUniform
	if c.Clock != nil {
		u = core.NewFrameUniform(c.Clock.Elapsed(), width, height)
	} else {
		u = core.NewFrameUniform(0, width, height)
	}
	rng := rand.New(rand.NewSource(c.seed))
	return gpu.FrameData{
		Vertices:  c.Options.Shape.Vertices(),
		Indices:   core.StarIndices(),
		Instances: core.NewStarInstances(rng, c.Options.StarCount),
		Uniform:   u,
	}
}

// Draw renders one frame: fresh per-frame buffers, one indexed instanced
// draw, submit and present.
func (c *Context) Draw() error {
	if c.Device == nil || c.Pipeline == nil {
		return ErrNotInitialized
	}

	c.Profiler.BeginScope("build")
	frame := c.BuildFrame()
	c.Profiler.EndScope("build")

	c.Profiler.BeginScope("upload")
	buffers, err := gpu.UploadFrame(c.Device, c.Pipeline, frame, c.label("Star"))
	c.Profiler.EndScope("upload")
	if err != nil {
		return fmt.Errorf("upload frame: %w", err)
	}
	defer buffers.Release()

	var hudVertices *wgpu.Buffer
	var hudCount uint32
	if c.Options.Debug && c.Hud != nil {
		hudVertices, hudCount, err = c.Hud.Upload(c.Device, c.hudLines(frame), c.Config.Width, c.Config.Height)
		if err != nil {
			c.log.Warnf("%v", err)
		}
		if hudVertices != nil {
			defer hudVertices.Release()
		}
	}

	nextTexture, err := c.Surface.GetCurrentTexture()
	if err != nil {
		c.log.Warnf("get current texture: %v; reconfiguring surface", err)
		c.Surface.Configure(c.Adapter, c.Device, c.Config)
		return fmt.Errorf("%w: %v", ErrFrameSkipped, err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	c.Profiler.BeginScope("encode")
	encoder, err := c.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: c.label("Star Encoder")})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: c.Options.ClearColor,
		}},
	})
	buffers.Encode(pass, c.Pipeline)
	c.Hud.Encode(pass, hudVertices, hudCount)
	if err := pass.End(); err != nil {
		pass.Release()
		return fmt.Errorf("end render pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	c.Profiler.EndScope("encode")
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()

	c.Profiler.BeginScope("submit")
	c.Queue.Submit(cmd)
	c.Surface.Present()
	c.Profiler.EndScope("submit")

	c.Profiler.SetCount("stars", int(frame.InstanceCount()))
	c.Profiler.SetCount("indices", int(frame.IndexCount()))
	c.Profiler.EndFrame()
	return nil
}

// Release frees GPU objects in reverse order of creation. The window is owned
// by the caller.
func (c *Context) Release() {
	if c.Hud != nil {
		c.Hud.Release()
		c.Hud = nil
	}
	if c.Pipeline != nil {
		c.Pipeline.Release()
		c.Pipeline = nil
	}
	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}
	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}
	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}
	if c.Instance != nil {
		c.Instance.Release()
		c.Instance = nil
	}
	c.log.Debugf("render context %s released", c.ID)
}
