package graphics

import (
	"cylinder-lab/internal/primitives"
	"cylinder-lab/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options configures the window. The size is fixed at startup.
type Options struct {
	Title      string
	Width      int
	Height     int
	TargetFPS  int
	Fullscreen bool
}

var (
	axisX = rl.NewColor(220, 60, 60, 255)
	axisY = rl.NewColor(60, 200, 60, 255)
	axisZ = rl.NewColor(60, 90, 220, 255)
)

// Surface is the raylib window the scene renders into. Frame callbacks run
// first each frame, then overlays (2D UI) on top. Orbit input is taken from
// left-button drags that start outside the UI.
type Surface struct {
	opts     Options
	open     bool
	frames   []func()
	overlays []func()
	controls *scene.OrbitControls
	meshes   *primitives.Registry

	// ownsPointer reports whether the UI claims the pointer at x, y.
	ownsPointer func(x, y float32) bool
	orbiting    bool
}

// NewSurface returns a surface; the window is created by Open.
func NewSurface(opts Options) *Surface {
	return &Surface{opts: opts, meshes: primitives.NewRegistry()}
}

// Open creates the window and GL context. ESC is left to the UI.
func (s *Surface) Open() {
	if s.open {
		return
	}
	if s.opts.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), s.opts.Title)
	} else {
		rl.SetConfigFlags(rl.FlagMsaa4xHint)
		rl.InitWindow(int32(s.opts.Width), int32(s.opts.Height), s.opts.Title)
	}
	rl.SetExitKey(rl.KeyNull)
	if s.opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(s.opts.TargetFPS))
	}
	s.open = true
}

// Close releases GPU resources and closes the window.
func (s *Surface) Close() {
	if !s.open {
		return
	}
	s.meshes.Unload()
	rl.CloseWindow()
	s.open = false
}

// Size returns the window size in pixels.
func (s *Surface) Size() (int, int) {
	if !s.open {
		return s.opts.Width, s.opts.Height
	}
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// OnFrame registers fn to run every frame inside BeginDrawing/EndDrawing.
func (s *Surface) OnFrame(fn func()) {
	s.frames = append(s.frames, fn)
}

// OnOverlay registers fn to draw 2D content after the frame callbacks.
func (s *Surface) OnOverlay(fn func()) {
	s.overlays = append(s.overlays, fn)
}

// AttachControls routes pointer drags to c.
func (s *Surface) AttachControls(c *scene.OrbitControls) {
	s.controls = c
}

// SetPointerOwner installs the UI hit test used to keep slider drags from
// orbiting the camera.
func (s *Surface) SetPointerOwner(fn func(x, y float32) bool) {
	s.ownsPointer = fn
}

// Meshes returns the GPU mesh cache.
func (s *Surface) Meshes() *primitives.Registry { return s.meshes }

// Run drives the frame loop until the window is closed.
func (s *Surface) Run() {
	for !rl.WindowShouldClose() {
		s.handlePointer()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		for _, fn := range s.frames {
			fn()
		}
		for _, fn := range s.overlays {
			fn()
		}
		rl.EndDrawing()
	}
}

func (s *Surface) handlePointer() {
	if s.controls == nil {
		return
	}
	pos := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		s.orbiting = s.ownsPointer == nil || !s.ownsPointer(pos.X, pos.Y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		s.orbiting = false
	}
	if s.orbiting && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		s.controls.Rotate(d.X, d.Y, float32(rl.GetScreenHeight()))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && (s.ownsPointer == nil || !s.ownsPointer(pos.X, pos.Y)) {
		s.controls.Zoom(wheel)
	}
}

// Render draws scn from cam. The camera's own projection matrix replaces
// raylib's so its fov, aspect and clip planes apply.
func (s *Surface) Render(scn *scene.Scene, cam *scene.PerspectiveCamera) {
	rlCam := rl.Camera3D{
		Position:   rl.NewVector3(cam.Position[0], cam.Position[1], cam.Position[2]),
		Target:     rl.NewVector3(cam.Target[0], cam.Target[1], cam.Target[2]),
		Up:         rl.NewVector3(cam.Up[0], cam.Up[1], cam.Up[2]),
		Fovy:       cam.Fov,
		Projection: rl.CameraPerspective,
	}
	rl.BeginMode3D(rlCam)
	rl.SetMatrixProjection(primitives.ToMatrix(cam.ProjectionMatrix))

	s.meshes.SetLights(cam.Position, scn.Lights())
	for _, n := range scn.Children() {
		switch n := n.(type) {
		case *scene.AxesHelper:
			drawAxes(n.Size)
		case *scene.Mesh:
			s.meshes.DrawMesh(n)
		}
	}
	rl.EndMode3D()
}

// drawAxes draws the three positive half-axes from the origin.
func drawAxes(size float32) {
	origin := rl.NewVector3(0, 0, 0)
	rl.DrawLine3D(origin, rl.NewVector3(size, 0, 0), axisX)
	rl.DrawLine3D(origin, rl.NewVector3(0, size, 0), axisY)
	rl.DrawLine3D(origin, rl.NewVector3(0, 0, size), axisZ)
}
