package scene

// Scene is the flat list of nodes drawn each frame, in insertion order.
type Scene struct {
	children []Node
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends n. Adding a node that is already present moves it to the end,
// so each node appears at most once.
func (s *Scene) Add(n Node) {
	s.Remove(n)
	s.children = append(s.children, n)
}

// Remove drops n if present.
func (s *Scene) Remove(n Node) {
	for i, c := range s.children {
		if c == n {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// Children returns the nodes in draw order. The slice must not be modified.
func (s *Scene) Children() []Node {
	return s.children
}

// UpdateMatrixWorld recomposes the matrix of every node that has automatic
// recomposition on. Nodes with it off keep their matrix untouched.
func (s *Scene) UpdateMatrixWorld() {
	for _, n := range s.children {
		o := n.Object()
		if o.MatrixAutoUpdate {
			o.UpdateMatrix()
		}
	}
}

// Meshes returns the mesh nodes in draw order.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	for _, n := range s.children {
		if m, ok := n.(*Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

// Lights returns the light nodes in draw order.
func (s *Scene) Lights() []*Light {
	var out []*Light
	for _, n := range s.children {
		if l, ok := n.(*Light); ok {
			out = append(out, l)
		}
	}
	return out
}
