package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/scenerender/config"
	"github.com/gekko3d/scenerender/logging"
	"github.com/gekko3d/scenerender/rt/app"
	"github.com/gekko3d/scenerender/rt/render"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.FromArgs(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.New(logging.Options{
		Prefix:  "sceneview",
		Level:   cfg.Logging.Level,
		LogFile: cfg.Logging.LogFile,
		Console: true,
	})
	defer log.Close()

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	application := app.NewApp(window, cfg, log)
	if err := application.Init(); err != nil {
		panic(err)
	}
	defer application.Release()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		application.Resize(width, height)
	})

	var lastX, lastY float64
	firstMove := true
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !application.MouseCaptured {
			firstMove = true
			return
		}
		if !firstMove {
			application.SpinPlayer(float32(xpos-lastX), float32(ypos-lastY))
		}
		lastX, lastY = xpos, ypos
		firstMove = false
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		held := action != glfw.Release
		switch key {
		case glfw.KeyW:
			application.Input.Forward = held
		case glfw.KeyS:
			application.Input.Backward = held
		case glfw.KeyA:
			application.Input.Left = held
		case glfw.KeyD:
			application.Input.Right = held
		case glfw.KeySpace:
			application.Input.Up = held
		case glfw.KeyLeftControl:
			application.Input.Down = held
		case glfw.KeyLeftShift:
			application.Input.Fast = held
		}

		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyTab:
			application.MouseCaptured = !application.MouseCaptured
			if application.MouseCaptured {
				w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled) // Use Disabled for relative movement
			} else {
				w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			}
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyR:
			application.ResetPlayer()
		case glfw.Key1:
			if err := application.SwitchRenderMode(render.ModeUnlit); err != nil {
				log.Errorf("switch mode: %v", err)
			}
		case glfw.Key2:
			if err := application.SwitchRenderMode(render.ModeWireframe); err != nil {
				log.Errorf("switch mode: %v", err)
			}
		case glfw.KeyDelete:
			application.RemoveSelected()
		case glfw.KeyF3:
			log.SetDebug(!log.DebugEnabled())
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		application.HandleClick(button, action, mods)
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		application.Frame()
	}
}
