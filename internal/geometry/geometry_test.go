package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsFloorsAndClamps(t *testing.T) {
	assert.Equal(t, 8, Params{RadialSegments: 8.9}.Segments())
	assert.Equal(t, 1, Params{RadialSegments: 0.2}.Segments())
	assert.Equal(t, 1, Params{RadialSegments: -3}.Segments())
}

func TestCylinderCounts(t *testing.T) {
	p := DefaultParams()
	b := NewCylinder(p)
	n := p.Segments()

	side := (n + 1) * 2
	capVerts := n + (n + 1)
	assert.Equal(t, side+2*capVerts, b.VertexCount())
	assert.Equal(t, (2*n+2*n)*3, len(b.Indices))
	assert.Equal(t, b.VertexCount()*3, len(b.Normals))
	assert.Equal(t, Triangles, b.Mode)
}

func TestCylinderSkipsZeroRadiusCap(t *testing.T) {
	p := Params{RadiusTop: 0, RadiusBottom: 3, Height: 4, RadialSegments: 6}
	b := NewCylinder(p)
	n := 6
	assert.Equal(t, (n+1)*2+n+(n+1), b.VertexCount())
}

func TestCylinderBounds(t *testing.T) {
	p := Params{RadiusTop: 2, RadiusBottom: 6, Height: 20, RadialSegments: 16}
	b := NewCylinder(p)
	for i := 0; i < b.VertexCount(); i++ {
		v := b.Vertex(i)
		assert.LessOrEqual(t, v.Y(), float32(10)+1e-5)
		assert.GreaterOrEqual(t, v.Y(), float32(-10)-1e-5)
		r := mgl32.Vec2{v.X(), v.Z()}.Len()
		assert.LessOrEqual(t, r, float32(6)+1e-4)
	}
}

func TestCylinderSideFacesOutward(t *testing.T) {
	b := NewCylinder(Params{RadiusTop: 1, RadiusBottom: 1, Height: 2, RadialSegments: 12})
	// First 12 triangle pairs are the side; their geometric normal must point
	// away from the Y axis, which means counter-clockwise when seen from outside.
	for i := 0; i < 12*2*3; i += 3 {
		a, c, d := b.Vertex(int(b.Indices[i])), b.Vertex(int(b.Indices[i+1])), b.Vertex(int(b.Indices[i+2]))
		face := c.Sub(a).Cross(d.Sub(a))
		center := a.Add(c).Add(d).Mul(1.0 / 3)
		outward := mgl32.Vec3{center.X(), 0, center.Z()}
		assert.Greater(t, face.Dot(outward), float32(0), "triangle %d", i/3)
	}
}

func TestCylinderCapsFaceAlongY(t *testing.T) {
	b := NewCylinder(Params{RadiusTop: 1, RadiusBottom: 1, Height: 2, RadialSegments: 5})
	side := 5 * 2 * 3
	for i := side; i < len(b.Indices); i += 3 {
		a, c, d := b.Vertex(int(b.Indices[i])), b.Vertex(int(b.Indices[i+1])), b.Vertex(int(b.Indices[i+2]))
		face := c.Sub(a).Cross(d.Sub(a))
		// Cap vertices sit at y = +1 or -1; the face normal must share its sign.
		assert.Greater(t, face.Y()*a.Y(), float32(0), "triangle %d", i/3)
	}
}

func TestZeroHeightHasFiniteNormals(t *testing.T) {
	b := NewCylinder(Params{RadiusTop: 1, RadiusBottom: 2, Height: 0, RadialSegments: 4})
	for i := 0; i < b.VertexCount(); i++ {
		n := b.Normal(i)
		assert.InDelta(t, 1, n.Len(), 1e-5)
	}
}

func TestWireframeEdgesUnique(t *testing.T) {
	src := NewCylinder(DefaultParams())
	w := NewWireframe(src)
	require.Equal(t, Lines, w.Mode)
	require.Zero(t, len(w.Indices)%2)

	seen := map[[2]uint16]bool{}
	for i := 0; i < len(w.Indices); i += 2 {
		a, b := w.Indices[i], w.Indices[i+1]
		require.LessOrEqual(t, a, b)
		key := [2]uint16{a, b}
		assert.False(t, seen[key], "duplicate edge %v", key)
		seen[key] = true
	}
	assert.Equal(t, src.Positions, w.Positions)
	assert.NotSame(t, &src.Positions[0], &w.Positions[0])
}

func TestDisposeNotifiesOnce(t *testing.T) {
	b := NewCylinder(DefaultParams())
	calls := 0
	b.OnDispose(func(got *Buffer) {
		assert.Same(t, b, got)
		calls++
	})
	assert.False(t, b.Disposed())
	b.Dispose()
	b.Dispose()
	assert.True(t, b.Disposed())
	assert.Equal(t, 1, calls)

	late := 0
	b.OnDispose(func(*Buffer) { late++ })
	assert.Equal(t, 1, late)
}

func TestBufferIDsDistinct(t *testing.T) {
	a := NewCylinder(DefaultParams())
	b := NewCylinder(DefaultParams())
	assert.NotEqual(t, a.ID(), b.ID())
}
