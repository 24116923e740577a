// Package widgets lays out the control panel, the tweak panel, the snackbar
// and the matrix readout as flat lists of styled nodes, and turns pointer and
// keyboard input into view-model calls. Drawing is left to internal/ui.
package widgets

// Node types understood by the renderer.
const (
	TypePanel    = "panel"
	TypeLabel    = "label"
	TypeButton   = "button"
	TypeCheckbox = "checkbox"
	TypeOption   = "option"
	TypeField    = "field"
	TypeFolder   = "folder"
	TypeSlider   = "slider"
	TypeSnackbar = "snackbar"
	TypeCell     = "cell"
)

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether x, y lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Node is a single UI element. Class and ID are matched by the stylesheet;
// ID also names the element for input handling.
type Node struct {
	Type   string
	Class  string
	ID     string
	Bounds Rect
	Text   string
	// Value is the filled fraction of a slider.
	Value float32
	// On is checked for checkboxes, selected for options, focused for fields
	// and open for folders.
	On bool
}

// NewNode creates a node with type and optional class, id and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// Hit returns the topmost node with an ID under x, y, or nil. Later nodes are
// drawn on top of earlier ones.
func Hit(nodes []*Node, x, y float32) *Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.ID != "" && n.Bounds.Contains(x, y) {
			return n
		}
	}
	return nil
}

// Covers reports whether any panel or snackbar in nodes contains x, y.
func Covers(nodes []*Node, x, y float32) bool {
	for _, n := range nodes {
		if (n.Type == TypePanel || n.Type == TypeSnackbar) && n.Bounds.Contains(x, y) {
			return true
		}
	}
	return false
}

// Input is one frame of pointer and keyboard state.
type Input struct {
	X, Y     float32
	Pressed  bool
	Down     bool
	Released bool

	// Chars holds the characters typed this frame.
	Chars     []rune
	Backspace bool
	Enter     bool
	Escape    bool
}
