package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxSegments keeps vertex indices inside uint16.
const MaxSegments = 1024

// NewCylinder builds a closed cylinder (or truncated cone) centered on the
// origin with its axis along Y. The side is one height segment; caps are
// emitted only for radii above zero.
func NewCylinder(p Params) *Buffer {
	n := p.Segments()
	if n > MaxSegments {
		n = MaxSegments
	}
	b := newBuffer(Triangles)
	half := p.Height / 2

	// Side normals tilt by the cone slope. A zero-height cylinder is a disc,
	// so its side normals stay horizontal.
	var slope float32
	if p.Height != 0 {
		slope = (p.RadiusBottom - p.RadiusTop) / p.Height
	}

	var rows [2][]uint16
	for y := 0; y <= 1; y++ {
		v := float32(y)
		radius := v*(p.RadiusBottom-p.RadiusTop) + p.RadiusTop
		py := -v*p.Height + half
		rows[y] = make([]uint16, 0, n+1)
		for x := 0; x <= n; x++ {
			theta := float32(x) / float32(n) * 2 * math32.Pi
			sin, cos := math32.Sincos(theta)
			pos := mgl32.Vec3{radius * sin, py, radius * cos}
			norm := mgl32.Vec3{sin, slope, cos}.Normalize()
			rows[y] = append(rows[y], b.addVertex(pos, norm))
		}
	}
	for x := 0; x < n; x++ {
		a, bb := rows[0][x], rows[1][x]
		c, d := rows[1][x+1], rows[0][x+1]
		b.Indices = append(b.Indices, a, bb, d, bb, c, d)
	}

	if p.RadiusTop > 0 {
		addCap(b, n, p.RadiusTop, half, true)
	}
	if p.RadiusBottom > 0 {
		addCap(b, n, p.RadiusBottom, half, false)
	}
	return b
}

func addCap(b *Buffer, n int, radius, half float32, top bool) {
	sign := float32(1)
	if !top {
		sign = -1
	}
	norm := mgl32.Vec3{0, sign, 0}
	center := uint16(b.VertexCount())
	for x := 0; x < n; x++ {
		b.addVertex(mgl32.Vec3{0, half * sign, 0}, norm)
	}
	ring := uint16(b.VertexCount())
	for x := 0; x <= n; x++ {
		theta := float32(x) / float32(n) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		b.addVertex(mgl32.Vec3{radius * sin, half * sign, radius * cos}, norm)
	}
	for x := 0; x < n; x++ {
		c := center + uint16(x)
		i := ring + uint16(x)
		if top {
			b.Indices = append(b.Indices, i, i+1, c)
		} else {
			b.Indices = append(b.Indices, i+1, i, c)
		}
	}
}

// NewWireframe returns the unique edges of a triangle buffer as a line buffer
// with its own copy of the positions.
func NewWireframe(src *Buffer) *Buffer {
	w := newBuffer(Lines)
	w.Positions = append([]float32(nil), src.Positions...)
	seen := make(map[uint32]struct{}, len(src.Indices))
	edge := func(a, b uint16) {
		if a > b {
			a, b = b, a
		}
		key := uint32(a)<<16 | uint32(b)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		w.Indices = append(w.Indices, a, b)
	}
	for i := 0; i+2 < len(src.Indices); i += 3 {
		a, b, c := src.Indices[i], src.Indices[i+1], src.Indices[i+2]
		edge(a, b)
		edge(b, c)
		edge(c, a)
	}
	return w
}
