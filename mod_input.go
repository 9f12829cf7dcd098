package starfield

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Key int

const (
	KeyEscape Key = iota
	KeyR
	KeyF1
	KeySpace
	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func (in *Input) update(key Key, down bool) {
	in.JustPressed[key] = down && !in.Pressed[key]
	in.JustReleased[key] = !down && in.Pressed[key]
	in.Pressed[key] = down
}

func inputSystem(s *WindowState, input *Input) {
	if s.windowGlfw == nil {
		return
	}
	for key, glfwKey := range keyToGlfw {
		input.update(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
}

var keyToGlfw = map[Key]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeyR:      glfw.KeyR,
	KeyF1:     glfw.KeyF1,
	KeySpace:  glfw.KeySpace,
}
