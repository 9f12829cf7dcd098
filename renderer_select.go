package starfield

import (
	"reflect"

	app_rt "github.com/gekko3d/starfield/starrt/rt/app"
)

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererStars RendererName = "stars"
)

// createWindow is swapped in tests that run without a display.
var createWindow = createWindowState

// ensureWindowResource guarantees a single shared WindowState resource exists.
func ensureWindowResource(app *App, width, height int, title string) {
	if app.hasResource(reflect.TypeOf((*WindowState)(nil)).Elem()) {
		return
	}
	width, height, title = windowDefaults(width, height, title)
	ws := createWindow(width, height, title)
	app.addResources(ws)
	app.UseSystem(System(windowEventsSystem).InStage(Prelude).RunAlways())
	app.Logger().Infof("Created shared window (%dx%d) '%s'", width, height, title)
}

// UseRenderer installs exactly one renderer module and ensures a shared
// window exists.
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	return app.UseRendererWithWindow(name, mod, 0, 0, "")
}

// UseRendererWithWindow installs the renderer and ensures a shared window with explicit size/title.
func (app *App) UseRendererWithWindow(name RendererName, mod Module, width, height int, title string) *App {
	ensureSingleRenderer(app, string(name))
	ensureWindowResource(app, width, height, title)
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UseStars selects the star renderer with the given window and render options.
func (app *App) UseStars(width, height int, title string, opts app_rt.Options) *App {
	return app.UseRendererWithWindow(RendererStars, StarRtModule{
		WindowWidth:  width,
		WindowHeight: height,
		WindowTitle:  title,
		Options:      opts,
	}, width, height, title)
}
