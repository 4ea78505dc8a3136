package app

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gekko3d/scenerender/config"
	"github.com/gekko3d/scenerender/logging"
	"github.com/gekko3d/scenerender/rt/asset"
	"github.com/gekko3d/scenerender/rt/core"
	"github.com/gekko3d/scenerender/rt/editor"
	"github.com/gekko3d/scenerender/rt/gpu"
	"github.com/gekko3d/scenerender/rt/render"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	statsInterval = time.Second

	scopeFrame = "frame"
	scopePick  = render.ScopePick
)

// App wires the device, assets, scene, renderer and editor together and
// exposes the commands the host binds to input.
type App struct {
	Window *glfw.Window
	Config *config.Config
	Log    logging.Logger

	Context  *gpu.Context
	Assets   *asset.Registry
	Scene    *core.Scene
	Renderer *render.Renderer
	Editor   *editor.State
	Profiler *Profiler

	Input         Input
	MouseCaptured bool

	lastPick  core.PickResult
	lastStats time.Time
}

func NewApp(window *glfw.Window, cfg *config.Config, log logging.Logger) *App {
	log = logging.OrNop(log)
	return &App{
		Window:   window,
		Config:   cfg,
		Log:      log,
		Assets:   asset.NewRegistry(log),
		Scene:    core.NewScene(cfg.Render.MaxObjects),
		Editor:   editor.NewState(log),
		Profiler: NewProfiler(),
		lastPick: core.NoPick,
	}
}

// Init acquires the device, builds the renderer and loads the configured
// scene. Any failure aborts startup.
func (a *App) Init() error {
	ctx, err := gpu.NewContext(a.Window)
	if err != nil {
		a.Log.Errorf("gpu: %v", err)
		return err
	}
	a.Context = ctx

	mode, err := render.ParseMode(a.Config.Render.Mode)
	if err != nil {
		return err
	}
	a.Renderer = render.New(ctx, a.Assets, a.Log, render.Options{
		Mode:       mode,
		FOVDegrees: a.Config.Render.FOVDegrees,
		Near:       a.Config.Render.Near,
		Far:        a.Config.Render.Far,
		Meshes:     a.Config.Scene.Meshes,
		Textures:   a.Config.Scene.Textures,
		BlankSeed:  a.Config.Render.BlankSeed,
		Profiler:   a.Profiler,
	})
	if err := a.Renderer.Init(); err != nil {
		return err
	}

	if a.Config.Scene.Path != "" {
		return a.InitScene(a.Config.Scene.Path)
	}
	return nil
}

// InitScene replaces the scene with the description at path. The current
// scene is kept when loading fails.
func (a *App) InitScene(path string) error {
	data, err := core.LoadSceneData(path)
	if err != nil {
		a.Log.Errorf("scene %s: %v", path, err)
		return err
	}

	scene := core.NewScene(a.Config.Render.MaxObjects)
	if err := scene.InitFromData(data, a.Assets); err != nil {
		a.Log.Errorf("scene %s: %v", path, err)
		return err
	}
	a.Scene = scene
	a.Editor.SetHighlighted(nil)
	a.Editor.ResetSelected()

	if a.Renderer != nil {
		if bg, ok := data.BackgroundColor(); ok {
			a.Renderer.SetBackground(&wgpu.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]})
		} else {
			a.Renderer.SetBackground(nil)
		}
	}
	a.Log.Infof("loaded scene %s: %d objects (author %q, version %q)", path, len(scene.Renderables()), data.Author, data.Version)
	return nil
}

func (a *App) UpdateScene() {
	a.Scene.Update()
}

func (a *App) MovePlayer(forward, right, up float32) {
	a.Scene.MovePlayer(forward, right, up)
}

// SpinPlayer applies a mouse delta in pixels scaled by the configured sensitivity.
func (a *App) SpinPlayer(dx, dy float32) {
	s := a.Config.Controls.MouseSensitivity
	a.Scene.SpinPlayer(dx*s, dy*s)
}

func (a *App) ResetPlayer() {
	a.Scene.ResetPlayer()
}

// RemoveObject drops the renderable at draw slot i from the scene and the
// editor state.
func (a *App) RemoveObject(i int) bool {
	rs := a.Scene.Renderables()
	if i < 0 || i >= len(rs) {
		return false
	}
	r := rs[i]
	if !a.Scene.RemoveRenderable(i) {
		return false
	}
	a.Editor.Forget(r)
	a.lastPick = core.NoPick
	a.Log.Infof("removed object %q from slot %d", r.Name, i)
	return true
}

// RemoveSelected removes every selected object and reports how many went.
func (a *App) RemoveSelected() int {
	n := 0
	for _, r := range slices.Clone(a.Editor.Selected()) {
		if i := slices.Index(a.Scene.Renderables(), r); i >= 0 && a.RemoveObject(i) {
			n++
		}
	}
	return n
}

func (a *App) SwitchRenderMode(m render.Mode) error {
	return a.Renderer.SwitchMode(m)
}

// Frame advances one frame: held movement, transforms, then drawing.
func (a *App) Frame() {
	a.Profiler.BeginScope(scopeFrame)
	if a.Input.Moving() {
		f, r, u := a.Input.Axes(a.Config.Controls.MoveSpeed, a.Config.Controls.Acceleration)
		a.MovePlayer(f, r, u)
	}
	a.UpdateScene()
	a.Render()
	a.Profiler.EndScope(scopeFrame)

	a.logStats(time.Now())
}

// Render draws the current snapshot and records the object under the crosshair.
func (a *App) Render() {
	snap := a.Scene.Snapshot()
	a.lastPick = a.Renderer.Render(snap)
	if a.lastPick.Hit {
		a.Editor.SetHighlighted(snap.Renderables[a.lastPick.Index])
	} else {
		a.Editor.SetHighlighted(nil)
	}
}

func (a *App) logStats(now time.Time) {
	if a.lastStats.IsZero() {
		a.lastStats = now
		return
	}
	elapsed := now.Sub(a.lastStats)
	if elapsed < statsInterval {
		return
	}
	if a.Log.DebugEnabled() {
		fps := float64(a.Profiler.Frames()) / elapsed.Seconds()
		a.Log.Debugf("fps=%.1f %s", fps, a.Profiler.GetStatsString())
		a.Log.Debugf("%s", Describe(a.Scene, a.Editor))
	}
	a.lastStats = now
	a.Profiler.Reset()
}

// HandleClick selects on left click. With the mouse captured it selects the
// object under the crosshair, otherwise the object under the cursor. Shift
// adds to the selection.
func (a *App) HandleClick(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || action != glfw.Press {
		return
	}

	if !a.MouseCaptured {
		x, y := a.Window.GetCursorPos()
		w, h := a.Window.GetSize()
		ray := editor.CursorRay(x, y, w, h, a.Scene.Player(), a.Renderer.FOVDegrees())
		snap := a.Scene.Snapshot()
		if hit := editor.PickAt(snap, ray); hit.Hit {
			a.Editor.SetHighlighted(snap.Renderables[hit.Index])
		} else {
			a.Editor.SetHighlighted(nil)
		}
	}

	if mods&glfw.ModShift != 0 {
		a.Editor.PushHighlighted()
	} else if !a.Editor.SelectFromHighlighted() {
		a.Editor.ResetSelected()
	}
}

func (a *App) Resize(width, height int) {
	if a.Renderer == nil {
		return
	}
	if err := a.Renderer.Resize(width, height); err != nil {
		a.Log.Errorf("resize %dx%d: %v", width, height, err)
	}
}

func (a *App) Release() {
	if a.Renderer != nil {
		a.Renderer.Release()
	}
	a.Assets.Release()
	if a.Context != nil {
		a.Context.Release()
	}
}

// Describe summarises the camera, highlight and selection for debug output.
func Describe(scene *core.Scene, ed *editor.State) string {
	cam := scene.Player()
	rot := core.VecsToRotation(cam.Forward, cam.Up)

	var sb strings.Builder
	fmt.Fprintf(&sb, "camera pos=(%.2f, %.2f, %.2f) rot=(%.1f, %.1f, %.1f)",
		cam.Position.X(), cam.Position.Y(), cam.Position.Z(), rot.X(), rot.Y(), rot.Z())

	if h, ok := ed.Highlighted(); ok {
		fmt.Fprintf(&sb, " highlight=%s", h.Name)
	}
	if sel := ed.Selected(); len(sel) > 0 {
		names := make([]string, len(sel))
		for i, r := range sel {
			names[i] = r.Name
		}
		fmt.Fprintf(&sb, " selection=%s", strings.Join(names, ","))
	}
	return sb.String()
}
