package scene

import (
	"cylinder-lab/internal/geometry"
	"cylinder-lab/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a 0xRRGGBB value.
type Color uint32

// RGB returns the channels in 0..1.
func (c Color) RGB() [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

// Object3D is the transform part shared by every node. When MatrixAutoUpdate
// is true, UpdateMatrix rebuilds Matrix from Position, Rotation (Euler XYZ,
// radians) and Scale; when false, Matrix is left exactly as last written.
type Object3D struct {
	Name             string
	Position         mgl32.Vec3
	Rotation         mgl32.Vec3
	Scale            mgl32.Vec3
	Matrix           mgl32.Mat4
	MatrixAutoUpdate bool
}

// NewObject3D returns an object at the origin with unit scale and automatic
// recomposition on.
func NewObject3D(name string) Object3D {
	return Object3D{
		Name:             name,
		Scale:            mgl32.Vec3{1, 1, 1},
		Matrix:           mgl32.Ident4(),
		MatrixAutoUpdate: true,
	}
}

// Object returns o; it lets every node type satisfy Node.
func (o *Object3D) Object() *Object3D { return o }

// UpdateMatrix recomposes Matrix from position, rotation and scale.
func (o *Object3D) UpdateMatrix() {
	o.Matrix = transform.Compose(o.Position, o.Rotation, o.Scale)
}

// Node is anything that can be added to a Scene.
type Node interface {
	Object() *Object3D
}

// Material is a flat-shaded Phong surface.
type Material struct {
	Color       Color
	FlatShading bool
	Shininess   float32
	Visible     bool
}

// Mesh draws a triangle buffer and its wireframe overlay with one transform.
type Mesh struct {
	Object3D
	Geometry  *geometry.Buffer
	Wireframe *geometry.Buffer
	Material  *Material
	// WireColor tints the overlay.
	WireColor Color
}

// NewMesh wraps geom and derives its wireframe.
func NewMesh(name string, geom *geometry.Buffer, mtl *Material) *Mesh {
	return &Mesh{
		Object3D:  NewObject3D(name),
		Geometry:  geom,
		Wireframe: geometry.NewWireframe(geom),
		Material:  mtl,
		WireColor: 0x222222,
	}
}

// ReplaceGeometry disposes the current buffers and installs geom with a fresh
// wireframe. The old buffers are disposed before the references change.
func (m *Mesh) ReplaceGeometry(geom *geometry.Buffer) {
	if m.Geometry != nil {
		m.Geometry.Dispose()
	}
	if m.Wireframe != nil {
		m.Wireframe.Dispose()
	}
	m.Geometry = geom
	m.Wireframe = geometry.NewWireframe(geom)
}

// LightKind distinguishes light types.
type LightKind int

const (
	AmbientLight LightKind = iota
	PointLight
)

// Light is an ambient or point light. Ambient lights ignore Position.
type Light struct {
	Object3D
	Kind      LightKind
	Color     Color
	Intensity float32
}

// NewAmbientLight returns an ambient light.
func NewAmbientLight(c Color, intensity float32) *Light {
	return &Light{Object3D: NewObject3D("ambient"), Kind: AmbientLight, Color: c, Intensity: intensity}
}

// NewPointLight returns a point light at pos.
func NewPointLight(c Color, pos mgl32.Vec3) *Light {
	l := &Light{Object3D: NewObject3D("point"), Kind: PointLight, Color: c, Intensity: 1}
	l.Position = pos
	return l
}

// Radiance returns color * intensity per channel.
func (l *Light) Radiance() [3]float32 {
	rgb := l.Color.RGB()
	return [3]float32{rgb[0] * l.Intensity, rgb[1] * l.Intensity, rgb[2] * l.Intensity}
}

// AxesHelper draws the X (red), Y (green) and Z (blue) axes from the origin.
type AxesHelper struct {
	Object3D
	Size float32
}

// NewAxesHelper returns axes of the given length.
func NewAxesHelper(size float32) *AxesHelper {
	return &AxesHelper{Object3D: NewObject3D("axes"), Size: size}
}
