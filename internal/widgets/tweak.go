package widgets

import (
	"strconv"

	"cylinder-lab/internal/tweak"
)

const (
	tweakWidth  = 320
	tweakLabelW = 0.4
)

// FolderID and SliderID name the tweak panel elements.
func FolderID(folder string) string        { return "folder:" + folder }
func SliderID(folder, label string) string { return "slider:" + folder + "/" + label }

// TweakView lays out a tweak.Panel: one header per folder and, for open
// folders, one labelled slider per controller. Dragging a slider sets its
// value from the pointer position.
type TweakView struct {
	Panel *tweak.Panel

	nodes    []*Node
	folders  map[string]*tweak.Folder
	sliders  map[string]*tweak.Controller
	dragging *tweak.Controller
	dragRect Rect
}

// NewTweakView returns a view over p.
func NewTweakView(p *tweak.Panel) *TweakView {
	return &TweakView{Panel: p}
}

// Nodes returns the nodes of the last Layout call.
func (v *TweakView) Nodes() []*Node { return v.nodes }

// Dragging reports whether a slider drag is in progress.
func (v *TweakView) Dragging() bool { return v.dragging != nil }

// Layout builds the panel. A hidden panel has no nodes and cancels any drag.
func (v *TweakView) Layout(sheet *Stylesheet, screenW, screenH float32) []*Node {
	v.folders = make(map[string]*tweak.Folder)
	v.sliders = make(map[string]*tweak.Controller)
	if v.Panel.Hidden() {
		v.nodes = nil
		v.dragging = nil
		return nil
	}

	root := NewNode(TypePanel, "tweak", "", "")
	st := sheet.Style(root)
	pad := float32(st.Padding)
	rowH := float32(st.FontSize) + 2*pad
	w := float32(st.Width)
	if w <= 0 {
		w = tweakWidth
	}
	rows := 0
	for _, f := range v.Panel.Folders() {
		rows++
		if !f.Closed {
			rows += len(f.Controllers)
		}
	}
	h := 2*pad + float32(rows)*rowH
	px, py := st.Place(w, h, screenW, screenH)
	root.Bounds = Rect{px, py, w, h}
	nodes := []*Node{root}

	x0 := px + pad
	inner := w - 2*pad
	y := py + pad
	for _, f := range v.Panel.Folders() {
		id := FolderID(f.Name)
		v.folders[id] = f
		marker := "+ "
		if !f.Closed {
			marker = "- "
		}
		head := NewNode(TypeFolder, "", id, marker+f.Name)
		head.Bounds = Rect{x0, y, inner, rowH}
		head.On = !f.Closed
		nodes = append(nodes, head)
		y += rowH
		if f.Closed {
			continue
		}
		for _, c := range f.Controllers {
			lw := inner * tweakLabelW
			label := NewNode(TypeLabel, "", "", c.Label)
			label.Bounds = Rect{x0 + pad, y, lw - pad, rowH}
			sid := SliderID(f.Name, c.Label)
			slider := NewNode(TypeSlider, "", sid, FormatValue(c.Value(), c.StepSize()))
			slider.Bounds = Rect{x0 + lw, y + 2, inner - lw, rowH - 4}
			slider.Value = c.Fraction()
			v.sliders[sid] = c
			if c == v.dragging {
				v.dragRect = slider.Bounds
			}
			nodes = append(nodes, label, slider)
			y += rowH
		}
	}
	v.nodes = nodes
	return nodes
}

// Handle applies one frame of pointer input.
func (v *TweakView) Handle(in Input) {
	if in.Pressed {
		if hit := Hit(v.nodes, in.X, in.Y); hit != nil {
			if f, ok := v.folders[hit.ID]; ok {
				if f.Closed {
					f.Open()
				} else {
					f.Close()
				}
			}
			if c, ok := v.sliders[hit.ID]; ok {
				v.dragging = c
				v.dragRect = hit.Bounds
			}
		}
	}
	if v.dragging != nil && (in.Down || in.Pressed) && v.dragRect.W > 0 {
		v.dragging.SetFraction(clamp01((in.X - v.dragRect.X) / v.dragRect.W))
	}
	if in.Released {
		v.dragging = nil
	}
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// FormatValue prints v with as many decimals as step has, or two decimals
// when there is no step.
func FormatValue(v, step float32) string {
	if step <= 0 {
		return strconv.FormatFloat(float64(v), 'f', 2, 32)
	}
	decimals := 0
	for s := step; s < 0.999 && decimals < 6; s *= 10 {
		decimals++
	}
	return strconv.FormatFloat(float64(v), 'f', decimals, 32)
}
