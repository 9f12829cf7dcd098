package starfield

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	app_rt "github.com/gekko3d/starfield/starrt/rt/app"
)

// maxFrameFailures consecutive draw errors stop the app.
const maxFrameFailures = 60

type StarRtModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	Options      app_rt.Options
}

type starRenderer interface {
	Resize(width, height int)
	Draw() error
	Reseed(seed int64)
	Debug() bool
	SetDebug(enabled bool)
	Paused() bool
	SetPaused(paused bool)
	Stats() app_rt.Stats
	Release()
}

// newStarRenderer is swapped in tests that run without a GPU.
var newStarRenderer = func(ws *WindowState, opts app_rt.Options) (starRenderer, error) {
	ctx := app_rt.NewContext(ws.windowGlfw, opts)
	if err := ctx.Init(); err != nil {
		ctx.Release()
		return nil, err
	}
	return ctx, nil
}

type StarRtState struct {
	renderer   starRenderer
	failures   int
	lastReport time.Duration
}

func (s *StarRtState) Stats() app_rt.Stats {
	if s == nil || s.renderer == nil {
		return app_rt.Stats{}
	}
	return s.renderer.Stats()
}

func (s *StarRtState) FPS() float64 {
	return s.Stats().FPS
}

func (s *StarRtState) IsDebug() bool {
	return s != nil && s.renderer != nil && s.renderer.Debug()
}

func (s *StarRtState) Release() {
	if s.renderer != nil {
		s.renderer.Release()
		s.renderer = nil
	}
}

func (m StarRtModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererStars))
	ensureWindowResource(app, m.WindowWidth, m.WindowHeight, m.WindowTitle)
	if _, ok := Resource[Input](app); !ok {
		app.UseModules(InputModule{})
	}
	if _, ok := Resource[Time](app); !ok {
		app.UseModules(TimeModule{})
	}

	ws, _ := Resource[WindowState](app)
	opts := m.Options
	if opts.Logger == nil {
		opts.Logger = app.Logger()
	}
	renderer, err := newStarRenderer(ws, opts)
	if err != nil {
		app.Logger().Errorf("star renderer init failed: %v", err)
		panic(err)
	}
	cmd.AddResources(&StarRtState{renderer: renderer})

	app.UseSystem(
		System(starControlSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(starResizeSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(starRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	app.UseSystem(
		System(starStatsSystem).
			InStage(PostRender).
			RunAlways(),
	)
}

// starControlSystem: Escape closes, R reseeds, F1 toggles the debug HUD,
// Space pauses star motion.
func starControlSystem(input *Input, state *StarRtState, log Logger, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Exit()
	}
	if input.JustPressed[KeyR] {
		state.renderer.Reseed(rand.Int63() | 1)
	}
	if input.JustPressed[KeyF1] {
		debug := !state.renderer.Debug()
		state.renderer.SetDebug(debug)
		log.SetDebug(debug)
	}
	if input.JustPressed[KeySpace] {
		state.renderer.SetPaused(!state.renderer.Paused())
	}
}

func starResizeSystem(ws *WindowState, state *StarRtState) {
	if width, height, ok := ws.TakeResize(); ok {
		state.renderer.Resize(width, height)
	}
}

func starRenderSystem(state *StarRtState, cmd *Commands) {
	err := state.renderer.Draw()
	switch {
	case err == nil:
		state.failures = 0
	case errors.Is(err, app_rt.ErrFrameSkipped):
		cmd.Logger().Debugf("%v", err)
	default:
		state.failures++
		cmd.Logger().Errorf("draw failed (%d in a row): %v", state.failures, err)
		if state.failures >= maxFrameFailures {
			cmd.Exit()
		}
	}
}

// starStatsSystem shows FPS in the window title once a second and, with
// debug logging on, the per-phase frame timings.
func starStatsSystem(t *Time, ws *WindowState, state *StarRtState, log Logger) {
	if t.Elapsed-state.lastReport < time.Second {
		return
	}
	state.lastReport = t.Elapsed
	stats := state.Stats()
	ws.SetTitle(fmt.Sprintf("%s - %.0f FPS", ws.Title(), stats.FPS))
	if !log.DebugEnabled() {
		return
	}
	log.Debugf("fps=%.1f stars=%d indices=%d t=%.1fs seed=%d paused=%v\n%s",
		stats.FPS, stats.Stars, stats.Indices, stats.Elapsed, stats.Seed, stats.Paused, stats.Report)
}
