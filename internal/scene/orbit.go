package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const polarEpsilon = 1e-4

// OrbitControls swings a camera around its target. Input handlers queue
// rotation through Rotate and Zoom; Update applies the queue once per frame.
type OrbitControls struct {
	Camera      *PerspectiveCamera
	EnableZoom  bool
	RotateSpeed float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
}

// NewOrbitControls returns controls with zoom enabled and unit rotate speed.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{Camera: cam, EnableZoom: true, RotateSpeed: 1, scale: 1}
}

// Rotate queues a drag of dx, dy pixels. A drag across the full viewport
// height turns the camera by one full revolution.
func (c *OrbitControls) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	c.deltaTheta -= 2 * math32.Pi * dx / viewportHeight * c.RotateSpeed
	c.deltaPhi -= 2 * math32.Pi * dy / viewportHeight * c.RotateSpeed
}

// Zoom queues a dolly by steps wheel notches (positive moves closer).
// Ignored when EnableZoom is false.
func (c *OrbitControls) Zoom(steps float32) {
	if !c.EnableZoom || steps == 0 {
		return
	}
	c.scale *= math32.Pow(0.95, steps)
}

// Update applies the queued rotation and dolly and points the camera at its
// target. It reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	cam := c.Camera
	offset := cam.Position.Sub(cam.Target)
	radius := offset.Len()
	if radius == 0 {
		c.deltaTheta, c.deltaPhi, c.scale = 0, 0, 1
		return false
	}
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))

	moved := c.deltaTheta != 0 || c.deltaPhi != 0 || c.scale != 1
	theta += c.deltaTheta
	phi = mgl32.Clamp(phi+c.deltaPhi, polarEpsilon, math32.Pi-polarEpsilon)
	radius *= c.scale

	sinPhi := math32.Sin(phi)
	offset = mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
	cam.Position = cam.Target.Add(offset)
	c.deltaTheta, c.deltaPhi, c.scale = 0, 0, 1
	return moved
}
