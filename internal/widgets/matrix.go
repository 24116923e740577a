package widgets

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	cellW = 86
	cellH = 26
)

// MatrixView is a small panel that shows the cylinder's model matrix in
// row-major reading order, with the manually written element highlighted.
type MatrixView struct {
	panel *Node
	title *Node
	cells [16]*Node
}

// NewMatrixView creates the readout nodes, styled by .matrix, .matrix-title
// and cell rules.
func NewMatrixView() *MatrixView {
	v := &MatrixView{
		panel: NewNode(TypePanel, "matrix", "", ""),
		title: NewNode(TypeLabel, "matrix-title", "", "Matrix"),
	}
	for i := range v.cells {
		v.cells[i] = NewNode(TypeCell, "", "", "")
	}
	return v
}

// AppendNodes appends the readout for m to dst when visible is true.
// highlight is the column-major index of the overridden element, or -1.
func (v *MatrixView) AppendNodes(dst []*Node, visible bool, sheet *Stylesheet, m mgl32.Mat4, highlight int, screenW, screenH float32) []*Node {
	if !visible {
		return dst
	}
	st := sheet.Style(v.panel)
	pad := float32(st.Padding)
	w := 2*pad + 4*cellW
	h := 2*pad + 5*cellH
	px, py := st.Place(w, h, screenW, screenH)
	v.panel.Bounds = Rect{px, py, w, h}
	v.title.Bounds = Rect{px + pad, py + pad, w - 2*pad, cellH}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			idx := col*4 + row
			c := v.cells[idx]
			c.Text = strconv.FormatFloat(float64(m[idx]), 'f', 3, 32)
			c.On = idx == highlight
			c.Bounds = Rect{px + pad + float32(col)*cellW, py + pad + float32(row+1)*cellH, cellW, cellH}
		}
	}
	dst = append(dst, v.panel, v.title)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			dst = append(dst, v.cells[col*4+row])
		}
	}
	return dst
}
