package starfield

import (
	"fmt"
	"reflect"
)

// RendererTag records which renderer owns the shared window. The star
// renderer draws straight to the window surface, so a second renderer would
// fight it for the swap chain.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer claims the window for name. Installing the same
// renderer twice is a no-op; installing a different one panics.
func ensureSingleRenderer(app *App, name string) {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	res, ok := app.resources[reflect.TypeOf((*RendererTag)(nil)).Elem()]
	if !ok {
		app.addResources(&RendererTag{Name: name})
		return
	}
	tag, ok := res.(*RendererTag)
	if !ok {
		panic(fmt.Sprintf("renderer tag has unexpected type %T", res))
	}
	if tag.Name != name {
		msg := fmt.Sprintf("window surface already owned by the %q renderer, cannot install %q", tag.Name, name)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}
}
