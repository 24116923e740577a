package geometry

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode tells the renderer how Indices are grouped.
type Mode int

const (
	Triangles Mode = iota // three indices per face, counter-clockwise front
	Lines                 // two indices per edge
)

var nextID atomic.Uint64

// Buffer is CPU-side vertex data for one drawable. Renderers upload it lazily
// and must release their copy when the buffer is disposed; the store disposes
// a buffer before dropping the last reference to it.
type Buffer struct {
	Mode      Mode
	Positions []float32 // x, y, z per vertex
	Normals   []float32 // x, y, z per vertex; empty for Lines
	Indices   []uint16

	id        uint64
	disposed  bool
	listeners []func(*Buffer)
}

func newBuffer(mode Mode) *Buffer {
	return &Buffer{Mode: mode, id: nextID.Add(1)}
}

// ID is unique per buffer for the life of the process.
func (b *Buffer) ID() uint64 { return b.id }

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int { return len(b.Positions) / 3 }

// Vertex returns position i.
func (b *Buffer) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]}
}

// Normal returns normal i.
func (b *Buffer) Normal(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Normals[i*3], b.Normals[i*3+1], b.Normals[i*3+2]}
}

// OnDispose registers fn to run when the buffer is disposed. Registering on a
// disposed buffer runs fn immediately.
func (b *Buffer) OnDispose(fn func(*Buffer)) {
	if b.disposed {
		fn(b)
		return
	}
	b.listeners = append(b.listeners, fn)
}

// Dispose marks the buffer released and notifies listeners. Only the first
// call has an effect.
func (b *Buffer) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	listeners := b.listeners
	b.listeners = nil
	for _, fn := range listeners {
		fn(b)
	}
}

// Disposed reports whether Dispose has been called.
func (b *Buffer) Disposed() bool { return b.disposed }

func (b *Buffer) addVertex(p, n mgl32.Vec3) uint16 {
	idx := uint16(b.VertexCount())
	b.Positions = append(b.Positions, p[0], p[1], p[2])
	b.Normals = append(b.Normals, n[0], n[1], n[2])
	return idx
}
