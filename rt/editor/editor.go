package editor

import (
	"math"
	"slices"

	"github.com/gekko3d/scenerender/logging"
	"github.com/gekko3d/scenerender/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// State tracks the object under the crosshair and the current selection.
type State struct {
	highlighted *core.Renderable
	selected    []*core.Renderable

	log logging.Logger
}

func NewState(log logging.Logger) *State {
	return &State{log: logging.OrNop(log)}
}

func (s *State) Highlighted() (*core.Renderable, bool) {
	return s.highlighted, s.highlighted != nil
}

// SetHighlighted records the renderable hit this frame, or nil for none.
func (s *State) SetHighlighted(r *core.Renderable) {
	s.highlighted = r
}

// Selected returns the selection in the order objects were added.
func (s *State) Selected() []*core.Renderable {
	return s.selected
}

// SelectFromHighlighted replaces the selection with the highlighted object.
func (s *State) SelectFromHighlighted() bool {
	if s.highlighted == nil {
		s.log.Debugf("select: nothing highlighted")
		return false
	}
	s.selected = []*core.Renderable{s.highlighted}
	return true
}

// PushHighlighted adds the highlighted object to the selection unless it is
// already selected.
func (s *State) PushHighlighted() bool {
	if s.highlighted == nil || slices.Contains(s.selected, s.highlighted) {
		s.log.Debugf("push: nothing new highlighted")
		return false
	}
	s.selected = append(s.selected, s.highlighted)
	return true
}

func (s *State) ResetSelected() {
	s.selected = nil
}

// Forget drops r from the highlight and the selection, for objects leaving
// the scene.
func (s *State) Forget(r *core.Renderable) {
	if s.highlighted == r {
		s.highlighted = nil
	}
	s.selected = slices.DeleteFunc(s.selected, func(x *core.Renderable) bool { return x == r })
}

// CursorRay builds the world-space ray through a window pixel for a camera
// with the given vertical field of view.
func CursorRay(mouseX, mouseY float64, width, height int, camera *core.Camera, fovDegrees float32) core.Ray {
	if width <= 0 || height <= 0 {
		return camera.Ray()
	}
	// Normalized Device Coordinates
	nx := (2.0*float32(mouseX))/float32(width) - 1.0
	ny := 1.0 - (2.0*float32(mouseY))/float32(height) // Flip Y for NDC

	aspect := float32(width) / float32(height)
	tanHalfFov := float32(math.Tan(float64(mgl32.DegToRad(fovDegrees) / 2.0)))

	dir := camera.Forward.
		Add(camera.Right.Mul(nx * aspect * tanHalfFov)).
		Add(camera.Up.Mul(ny * tanHalfFov)).
		Normalize()

	return core.Ray{Origin: camera.Position, Direction: dir}
}

// PickAt picks against the snapshot's transforms along ray instead of the
// camera's forward ray.
func PickAt(snap core.FrameSnapshot, ray core.Ray) core.PickResult {
	snap.Eye = ray
	return core.Pick(snap)
}
