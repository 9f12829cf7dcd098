package main

import (
	"errors"
	"flag"
	"log"
	"math/rand"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/starrt/rt/app"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	title := flag.String("title", "Starfield", "Window title")
	stars := flag.Int("stars", 1000, "Number of star instances")
	seed := flag.Int64("seed", 0, "Star field seed (0 = random)")
	debug := flag.Bool("debug", false, "Enable debug logging and the stats overlay")
	vsync := flag.Bool("vsync", true, "Wait for vertical sync when presenting")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	sugar := logger.Sugar()

	if err := glfw.Init(); err != nil {
		sugar.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(*width, *height, *title, nil, nil)
	if err != nil {
		sugar.Fatalf("create window: %v", err)
	}
	defer window.Destroy()

	opts := app.DefaultOptions()
	opts.StarCount = *stars
	opts.Seed = *seed
	opts.Debug = *debug
	opts.Logger = sugar
	if !*vsync {
		opts.PresentMode = wgpu.PresentModeImmediate
	}

	ctx := app.NewContext(window, opts)
	if err := ctx.Init(); err != nil {
		sugar.Fatalf("init render context: %v", err)
	}
	defer ctx.Release()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ctx.Resize(width, height)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyR:
			ctx.Reseed(rand.Int63() | 1)
		case glfw.KeyF1:
			ctx.SetDebug(!ctx.Debug())
		case glfw.KeySpace:
			ctx.SetPaused(!ctx.Paused())
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := ctx.Draw(); err != nil && !errors.Is(err, app.ErrFrameSkipped) {
			sugar.Errorf("draw: %v", err)
		}
	}
}
