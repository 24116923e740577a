// Package store owns the cylinder scene and the transform UI state. Views
// read state through State and Subscribe and change it only through the
// action methods; the actions mutate the live scene nodes in place.
package store

import (
	"errors"
	"fmt"

	"cylinder-lab/internal/geometry"
	"cylinder-lab/internal/scene"
	"cylinder-lab/internal/transform"
	"cylinder-lab/internal/tweak"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoTransformationValue is returned by TransformMatrix while the
	// numeric field is empty. The matrix is left untouched.
	ErrNoTransformationValue = errors.New("store: transformation value is empty")
	// ErrNilSurface is returned by InitScene when no surface is given.
	ErrNilSurface = errors.New("store: nil render surface")
)

// Surface is the drawing surface the scene is rendered into.
type Surface interface {
	// Size reports the drawable size in pixels.
	Size() (width, height int)
	// OnFrame registers fn to run once per displayed frame.
	OnFrame(fn func())
	// AttachControls routes pointer input on the surface to c.
	AttachControls(c *scene.OrbitControls)
	// Render draws scn as seen from cam.
	Render(scn *scene.Scene, cam *scene.PerspectiveCamera)
}

// Logger receives one line per store action.
type Logger interface {
	Log(line string)
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

// State is the display state views render from.
type State struct {
	MaterialVisible bool
	SelectedAxis    transform.Axis
	// TransformationValue is nil while the numeric field is empty.
	TransformationValue *float32
	SnackbarVisible     bool
}

// CameraOptions configures the perspective camera.
type CameraOptions struct {
	Fov      float32
	Near     float32
	Far      float32
	Distance float32
}

// Options configures a Store.
type Options struct {
	Params geometry.Params
	Camera CameraOptions
	Log    Logger
}

// DefaultOptions returns the startup scene configuration.
func DefaultOptions() Options {
	return Options{
		Params: geometry.DefaultParams(),
		Camera: CameraOptions{Fov: 75, Near: 0.1, Far: 10000, Distance: 100},
	}
}

const (
	cylinderColor = scene.Color(0xeeff00)
	pointColor    = scene.Color(0xffff00)
	ambientColor  = scene.Color(0x404040)
	ambientPower  = 5
	axesSize      = 1000
)

type subscriber struct {
	id int
	fn func(State)
}

// Store is the scene graph store. It is not safe for concurrent use; all
// calls happen on the render goroutine.
type Store struct {
	params geometry.Params
	log    Logger

	scn      *scene.Scene
	camera   *scene.PerspectiveCamera
	light    *scene.Light
	ambient  *scene.Light
	axes     *scene.AxesHelper
	cylinder *scene.Mesh
	panel    *tweak.Panel
	controls *scene.OrbitControls

	initialized bool
	state       State

	subs    []subscriber
	nextSub int
}

// New builds the scene nodes. The ambient light and axes are in the scene
// right away; the point light and the cylinder are inserted by InitScene.
func New(opts Options) *Store {
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}
	cam := opts.Camera
	s := &Store{
		params: opts.Params,
		log:    log,
		scn:    scene.New(),
		panel:  tweak.New(),
		state:  State{MaterialVisible: true, SelectedAxis: transform.X},
	}

	s.cylinder = scene.NewMesh("cylinder", geometry.NewCylinder(s.params), &scene.Material{
		Color:       cylinderColor,
		FlatShading: true,
		Shininess:   30,
		Visible:     true,
	})
	s.light = scene.NewPointLight(pointColor, mgl32.Vec3{100, 100, 100})
	s.ambient = scene.NewAmbientLight(ambientColor, ambientPower)
	s.scn.Add(s.ambient)

	s.camera = scene.NewPerspectiveCamera(cam.Fov, 1, cam.Near, cam.Far)
	s.camera.Position = mgl32.Vec3{0, 0, cam.Distance}

	s.axes = scene.NewAxesHelper(axesSize)
	s.scn.Add(s.axes)
	return s
}

// InitScene inserts the remaining nodes, builds the tweak panel, attaches
// orbit controls to surface and starts the per-frame loop. Only the first
// successful call does anything.
func (s *Store) InitScene(surface Surface) error {
	if s.initialized {
		return nil
	}
	if surface == nil {
		return ErrNilSurface
	}
	if w, h := surface.Size(); h > 0 {
		s.camera.Aspect = float32(w) / float32(h)
	}

	s.scn.Add(s.light)
	s.scn.Add(s.cylinder)
	s.initGUI()

	s.controls = scene.NewOrbitControls(s.camera)
	s.controls.EnableZoom = false
	surface.AttachControls(s.controls)

	surface.OnFrame(func() {
		s.camera.UpdateProjectionMatrix()
		s.controls.Update()
		s.scn.UpdateMatrixWorld()
		surface.Render(s.scn, s.camera)
	})

	s.initialized = true
	s.log.Log("scene initialized")
	return nil
}

func (s *Store) initGUI() {
	cam := s.panel.AddFolder("camera projection")
	cam.Add("fov", &s.camera.Fov, 10, 500).Step(10)
	cam.Open()

	shape := s.panel.AddFolder("cylinder transform")
	shape.Add("radiusTop", &s.params.RadiusTop, 1, 50).OnChange(s.Redraw)
	shape.Add("radiusBottom", &s.params.RadiusBottom, 1, 50).OnChange(s.Redraw)
	shape.Add("height", &s.params.Height, 0, 100).OnChange(s.Redraw)
	shape.Add("radialSegments", &s.params.RadialSegments, 1, 50).OnChange(s.Redraw)
	shape.Open()

	pos := s.panel.AddFolder("cylinder position")
	for i, axis := range []string{"x", "y", "z"} {
		pos.Add(axis, &s.cylinder.Position[i], -100, 100)
	}
	pos.Open()

	rot := s.panel.AddFolder("cylinder rotation")
	for i, axis := range []string{"x", "y", "z"} {
		rot.Add(axis, &s.cylinder.Rotation[i], -2*math32.Pi, 2*math32.Pi).Step(0.1)
	}
	rot.Open()

	scale := s.panel.AddFolder("cylinder scale")
	for i, axis := range []string{"x", "y", "z"} {
		scale.Add(axis, &s.cylinder.Scale[i], 1, 10)
	}
	scale.Open()
}

// Initialized reports whether InitScene has run.
func (s *Store) Initialized() bool { return s.initialized }

// SetMaterialVisibility shows or hides the cylinder's solid material. The
// wireframe overlay and the geometry are unaffected.
func (s *Store) SetMaterialVisibility(visible bool) {
	s.state.MaterialVisible = visible
	s.cylinder.Material.Visible = visible
	s.emit()
}

// ChangeSelectedAxis selects the matrix row TransformMatrix writes to.
// Values outside X, Y, Z are ignored.
func (s *Store) ChangeSelectedAxis(axis transform.Axis) {
	if axis < transform.X || axis > transform.Z {
		return
	}
	s.state.SelectedAxis = axis
	s.emit()
}

// ChangeTransformationValue stores a copy of *v, or clears it when v is nil.
func (s *Store) ChangeTransformationValue(v *float32) {
	if v == nil {
		s.state.TransformationValue = nil
	} else {
		val := *v
		s.state.TransformationValue = &val
	}
	s.emit()
}

// Redraw regenerates the cylinder and its wireframe from the current
// parameters. The previous buffers are disposed so renderers free their GPU
// copies.
func (s *Store) Redraw() {
	s.cylinder.ReplaceGeometry(geometry.NewCylinder(s.params))
}

// Params returns the current shape.
func (s *Store) Params() geometry.Params { return s.params }

// SetParams replaces the shape and redraws.
func (s *Store) SetParams(p geometry.Params) {
	s.params = p
	s.Redraw()
	s.log.Log(fmt.Sprintf("shape set: top=%g bottom=%g height=%g segments=%d",
		p.RadiusTop, p.RadiusBottom, p.Height, p.Segments()))
}

// TransformMatrix turns off automatic recomposition for the cylinder, shows
// the snackbar, hides the tweak panel and writes the transformation value
// into the selected axis' bottom-row matrix element. Every other element keeps
// the value of the automatic compose; a second apply while the override is on
// recomposes first, so only the latest element holds a manual value.
func (s *Store) TransformMatrix() error {
	v := s.state.TransformationValue
	if v == nil {
		s.log.Log("transform skipped: empty value")
		return ErrNoTransformationValue
	}
	if !s.cylinder.MatrixAutoUpdate {
		s.cylinder.UpdateMatrix()
	}
	s.cylinder.MatrixAutoUpdate = false
	s.state.SnackbarVisible = true
	s.panel.Hide()

	axis := s.state.SelectedAxis
	s.cylinder.Matrix[axis.ElementIndex()] = *v
	s.emit()
	s.log.Log(fmt.Sprintf("transform applied: axis=%s element=%d value=%g", axis, axis.ElementIndex(), *v))
	return nil
}

// ResetMatrixTransformation turns automatic recomposition back on, hides the
// snackbar and shows the tweak panel. The overwritten element is not restored
// here; the next frame's recomposition replaces it.
func (s *Store) ResetMatrixTransformation() {
	s.cylinder.MatrixAutoUpdate = true
	s.state.SnackbarVisible = false
	s.panel.Show()
	s.emit()
	s.log.Log("transform reset")
}

// State returns a copy of the display state.
func (s *Store) State() State {
	st := s.state
	if st.TransformationValue != nil {
		v := *st.TransformationValue
		st.TransformationValue = &v
	}
	return st
}

// Subscribe registers fn to receive the state after every action. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit() {
	st := s.State()
	for _, sub := range append([]subscriber(nil), s.subs...) {
		sub.fn(st)
	}
}

// Scene returns the live scene graph.
func (s *Store) Scene() *scene.Scene { return s.scn }

// Camera returns the camera.
func (s *Store) Camera() *scene.PerspectiveCamera { return s.camera }

// Cylinder returns the cylinder mesh.
func (s *Store) Cylinder() *scene.Mesh { return s.cylinder }

// Panel returns the tweak panel. It is empty until InitScene.
func (s *Store) Panel() *tweak.Panel { return s.panel }

// Controls returns the orbit controls, nil until InitScene.
func (s *Store) Controls() *scene.OrbitControls { return s.controls }
