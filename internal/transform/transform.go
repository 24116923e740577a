package transform

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis selects which row of the model matrix a manual edit targets.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists every axis in selector order.
var Axes = []Axis{X, Y, Z}

// String returns "X", "Y" or "Z".
func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ElementIndex returns the column-major matrix index written for this axis:
// 3 for X, 7 for Y, 11 for Z. These are the bottom-row (w) entries of the
// first three columns, so a non-zero value makes the transform projective.
func (a Axis) ElementIndex() int {
	return int(a)*4 + 3
}

// Next returns the axis after a, wrapping Z back to X.
func (a Axis) Next() Axis {
	return (a + 1) % 3
}

// ParseAxis accepts "x", "y", "z" in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	}
	return X, fmt.Errorf("unknown axis %q (use X, Y or Z)", s)
}

// Compose builds translate * rotateX * rotateY * rotateZ * scale, the same
// matrix a retained scene graph rebuilds from position, Euler XYZ rotation
// (radians) and scale when automatic recomposition is on.
func Compose(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(mgl32.HomogRotate3DX(rotation[0])).
		Mul4(mgl32.HomogRotate3DY(rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(rotation[2])).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Project applies m to p and divides by w, so projective edits written
// into the bottom row are visible for CPU-side geometry such as wireframes.
func Project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, m)
}
