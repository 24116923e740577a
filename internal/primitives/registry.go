package primitives

import (
	"unsafe"

	"cylinder-lab/internal/geometry"
	"cylinder-lab/internal/scene"
	"cylinder-lab/internal/transform"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// cached is the GPU copy of one triangle buffer.
type cached struct {
	mesh rl.Mesh
}

// Registry uploads triangle buffers on first draw and unloads them when the
// buffer is disposed. All calls must happen on the window goroutine after the
// GL context exists.
type Registry struct {
	cache   map[uint64]cached
	mtl     rl.Material
	ready   bool
	viewPos [3]float32
	ambient [3]float32
	light   pointLight
}

type pointLight struct {
	pos   [3]float32
	color [3]float32
}

// NewRegistry returns an empty registry. The shader is compiled lazily.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[uint64]cached)}
}

// Len returns the number of meshes currently on the GPU.
func (r *Registry) Len() int { return len(r.cache) }

func (r *Registry) ensureMaterial() {
	if r.ready {
		return
	}
	r.mtl = rl.LoadMaterialDefault()
	if sh := rl.LoadShaderFromMemory(litVS, flatFS); rl.IsShaderValid(sh) {
		r.mtl.Shader = sh
	}
	r.ready = true
}

// ensure uploads b if it is not on the GPU yet. Vertex data is copied into
// raylib-allocated memory so UnloadMesh can free it together with the VBOs.
func (r *Registry) ensure(b *geometry.Buffer) (rl.Mesh, bool) {
	if b == nil || b.Disposed() || b.Mode != geometry.Triangles || len(b.Indices) == 0 {
		return rl.Mesh{}, false
	}
	if c, ok := r.cache[b.ID()]; ok {
		return c.mesh, true
	}
	mesh := rl.Mesh{
		VertexCount:   int32(b.VertexCount()),
		TriangleCount: int32(len(b.Indices) / 3),
		Vertices:      cFloats(b.Positions),
		Normals:       cFloats(b.Normals),
		Indices:       cIndices(b.Indices),
	}
	rl.UploadMesh(&mesh, false)
	r.cache[b.ID()] = cached{mesh: mesh}
	b.OnDispose(r.release)
	return mesh, true
}

func (r *Registry) release(b *geometry.Buffer) {
	c, ok := r.cache[b.ID()]
	if !ok {
		return
	}
	rl.UnloadMesh(&c.mesh)
	delete(r.cache, b.ID())
}

func cFloats(src []float32) *float32 {
	p := (*float32)(rl.MemAlloc(uint32(len(src) * 4)))
	copy(unsafe.Slice(p, len(src)), src)
	return p
}

func cIndices(src []uint16) *uint16 {
	p := (*uint16)(rl.MemAlloc(uint32(len(src) * 2)))
	copy(unsafe.Slice(p, len(src)), src)
	return p
}

// SetLights takes the camera position and the scene's lights for this frame.
// Ambient lights add up; the first point light is used for diffuse and
// specular terms.
func (r *Registry) SetLights(viewPos mgl32.Vec3, lights []*scene.Light) {
	r.viewPos = [3]float32{viewPos[0], viewPos[1], viewPos[2]}
	r.ambient = [3]float32{}
	r.light = pointLight{}
	havePoint := false
	for _, l := range lights {
		rad := l.Radiance()
		switch l.Kind {
		case scene.AmbientLight:
			r.ambient[0] += rad[0]
			r.ambient[1] += rad[1]
			r.ambient[2] += rad[2]
		case scene.PointLight:
			if havePoint {
				continue
			}
			havePoint = true
			r.light = pointLight{pos: [3]float32{l.Position[0], l.Position[1], l.Position[2]}, color: rad}
		}
	}
}

// DrawMesh draws m's solid surface when its material is visible, then its
// wireframe. Both use m.Matrix as is, so a manual edit of the bottom row
// distorts them the same way. Must be called between BeginMode3D and EndMode3D.
func (r *Registry) DrawMesh(m *scene.Mesh) {
	if m.Material != nil && m.Material.Visible {
		r.ensureMaterial()
		if mesh, ok := r.ensure(m.Geometry); ok {
			r.setUniforms(m.Material)
			rl.DrawMesh(mesh, r.mtl, ToMatrix(m.Matrix))
		}
	}
	drawWireframe(m.Wireframe, m.Matrix, toColor(m.WireColor))
}

// drawWireframe projects each edge on the CPU; immediate-mode lines ignore
// the matrix bottom row, so the divide by w happens here.
func drawWireframe(w *geometry.Buffer, m mgl32.Mat4, c rl.Color) {
	if w == nil || w.Disposed() || w.Mode != geometry.Lines {
		return
	}
	for i := 0; i+1 < len(w.Indices); i += 2 {
		a := transform.Project(m, w.Vertex(int(w.Indices[i])))
		b := transform.Project(m, w.Vertex(int(w.Indices[i+1])))
		rl.DrawLine3D(toVector3(a), toVector3(b), c)
	}
}

func (r *Registry) setUniforms(mtl *scene.Material) {
	sh := r.mtl.Shader
	if !rl.IsShaderValid(sh) {
		return
	}
	rgb := mtl.Color.RGB()
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(uint8(rgb[0]*255), uint8(rgb[1]*255), uint8(rgb[2]*255), 255)
	}
	viewPos := r.viewPos
	ambient := r.ambient
	lightPos := r.light.pos
	lightColor := r.light.color
	if loc := rl.GetShaderLocation(sh, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(sh, "ambient"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, ambient[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(sh, "lightPos"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, lightPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(sh, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(sh, "shininess"); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{mtl.Shininess}, rl.ShaderUniformFloat)
	}
}

// Unload frees every cached mesh and the material with its shader. Call before closing the window.
func (r *Registry) Unload() {
	for id, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, id)
	}
	if r.ready {
		rl.UnloadMaterial(r.mtl)
	}
	r.ready = false
}

// ToMatrix converts a column-major matrix to raylib's layout; element n maps
// to field Mn.
func ToMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func toColor(c scene.Color) rl.Color {
	return rl.NewColor(uint8(c>>16), uint8(c>>8), uint8(c), 255)
}
