package starfield

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
	defaultWindowTitle  = "Starfield"
)

// WindowState is the shared GLFW window. Width and height track the
// framebuffer, which is what the surface is sized from.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	resized bool
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer and input modules.
// Install is idempotent.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	width, height, title = windowDefaults(width, height, title)
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func windowDefaults(width, height int, title string) (int, int, string) {
	if width <= 0 {
		width = defaultWindowWidth
	}
	if height <= 0 {
		height = defaultWindowHeight
	}
	if title == "" {
		title = defaultWindowTitle
	}
	return width, height, title
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	ensureWindowResource(app, m.Width, m.Height, m.Title)
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // the surface comes from wgpu, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	ws := &WindowState{
		windowGlfw:  win,
		windowTitle: windowTitle,
	}
	ws.WindowWidth, ws.WindowHeight = win.GetFramebufferSize()
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		ws.onFramebufferSize(width, height)
	})
	return ws
}

func (s *WindowState) onFramebufferSize(width, height int) {
	if width == s.WindowWidth && height == s.WindowHeight {
		return
	}
	s.WindowWidth = width
	s.WindowHeight = height
	s.resized = true
}

// TakeResize returns the new framebuffer size once per resize.
func (s *WindowState) TakeResize() (int, int, bool) {
	if !s.resized {
		return 0, 0, false
	}
	s.resized = false
	return s.WindowWidth, s.WindowHeight, true
}

func (s *WindowState) Title() string {
	return s.windowTitle
}

func (s *WindowState) SetTitle(title string) {
	if s.windowGlfw != nil {
		s.windowGlfw.SetTitle(title)
	}
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw != nil && s.windowGlfw.ShouldClose()
}

func (s *WindowState) Release() {
	if s.windowGlfw == nil {
		return
	}
	s.windowGlfw.Destroy()
	s.windowGlfw = nil
	glfw.Terminate()
}

// windowEventsSystem pumps the GLFW event queue and turns a close request
// into an app exit.
func windowEventsSystem(s *WindowState, cmd *Commands) {
	if s.windowGlfw == nil {
		return
	}
	glfw.PollEvents()
	if s.ShouldClose() {
		cmd.Logger().Infof("window close requested")
		cmd.Exit()
	}
}
