package scene

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera looks from Position at Target. Fov is the vertical field
// of view in degrees; the tweak panel edits it live, so the projection is
// recomputed by UpdateProjectionMatrix every frame.
type PerspectiveCamera struct {
	Object3D
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	ProjectionMatrix mgl32.Mat4
}

// NewPerspectiveCamera returns a camera looking at the origin.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Object3D: NewObject3D("camera"),
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix rebuilds ProjectionMatrix from Fov, Aspect, Near, Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.ProjectionMatrix = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}
