package widgets

import (
	"cylinder-lab/internal/controls"
	"cylinder-lab/internal/transform"
)

// Element IDs of the control panel.
const (
	IDHiddenFaces = "hidden-faces"
	IDValue       = "value"
	IDApply       = "apply"
	IDReset       = "reset"
	IDSnackbar    = "snackbar"
)

// AxisID returns the ID of the selector option for a.
func AxisID(a transform.Axis) string { return "axis-" + a.String() }

const (
	controlsWidth = 480
	axisLabelW    = 60
	optionW       = 48
	valueLabelW   = 250
	fieldW        = 150
	buttonW       = 140
	rowGap        = 6
	snackbarW     = 480
)

// ControlsView lays out a controls.Panel and routes input to it. Handle works
// on the nodes of the last Layout call.
type ControlsView struct {
	Panel *controls.Panel
	nodes []*Node
}

// NewControlsView returns a view over p.
func NewControlsView(p *controls.Panel) *ControlsView {
	return &ControlsView{Panel: p}
}

// Nodes returns the nodes of the last Layout call.
func (v *ControlsView) Nodes() []*Node { return v.nodes }

// Layout builds the panel and, while the override is active, the snackbar.
func (v *ControlsView) Layout(sheet *Stylesheet, screenW, screenH float32) []*Node {
	p := v.Panel
	root := NewNode(TypePanel, "controls", "", "")
	st := sheet.Style(root)
	pad := float32(st.Padding)
	rowH := float32(st.FontSize) + 2*pad
	w := float32(st.Width)
	if w <= 0 {
		w = controlsWidth
	}
	h := 2*pad + 4*rowH + 3*rowGap
	px, py := st.Place(w, h, screenW, screenH)
	root.Bounds = Rect{px, py, w, h}
	nodes := []*Node{root}

	x0 := px + pad
	y := py + pad
	box := float32(st.FontSize)

	check := NewNode(TypeCheckbox, "", IDHiddenFaces, "")
	check.Bounds = Rect{x0, y + (rowH-box)/2, box, box}
	check.On = p.HiddenFacesChecked()
	label := NewNode(TypeLabel, "", IDHiddenFaces, controls.HiddenFacesLabel)
	label.Bounds = Rect{x0 + box + pad, y, w - 3*pad - box, rowH}
	nodes = append(nodes, check, label)
	y += rowH + rowGap

	axisLabel := NewNode(TypeLabel, "", "", controls.AxisLabel)
	axisLabel.Bounds = Rect{x0, y, axisLabelW, rowH}
	nodes = append(nodes, axisLabel)
	selected := p.Axis()
	for i, a := range transform.Axes {
		opt := NewNode(TypeOption, "", AxisID(a), a.String())
		opt.Bounds = Rect{x0 + axisLabelW + float32(i)*(optionW+rowGap), y, optionW, rowH}
		opt.On = a == selected
		nodes = append(nodes, opt)
	}
	y += rowH + rowGap

	valueLabel := NewNode(TypeLabel, "", "", controls.ValueLabel)
	valueLabel.Bounds = Rect{x0, y, valueLabelW, rowH}
	field := NewNode(TypeField, "", IDValue, p.Text())
	field.Bounds = Rect{x0 + valueLabelW, y, fieldW, rowH}
	field.On = p.Focused()
	nodes = append(nodes, valueLabel, field)
	y += rowH + rowGap

	apply := NewNode(TypeButton, "", IDApply, controls.ApplyLabel)
	apply.Bounds = Rect{x0, y, buttonW, rowH}
	reset := NewNode(TypeButton, "", IDReset, controls.ResetLabel)
	reset.Bounds = Rect{x0 + buttonW + pad, y, buttonW, rowH}
	nodes = append(nodes, apply, reset)

	if p.SnackbarVisible() {
		bar := NewNode(TypeSnackbar, "", IDSnackbar, controls.SnackbarText)
		bst := sheet.Style(bar)
		bw, bh := float32(bst.Width), float32(bst.Height)
		if bw <= 0 {
			bw = snackbarW
		}
		if bh <= 0 {
			bh = float32(bst.FontSize) + 2*float32(bst.Padding)
		}
		bx, by := bst.Place(bw, bh, screenW, screenH)
		bar.Bounds = Rect{bx, by, bw, bh}
		nodes = append(nodes, bar)
	}

	v.nodes = nodes
	return nodes
}

// Handle applies one frame of input. A press outside the focused field blurs
// it before the press itself is handled. The only error is the one Apply
// returns.
func (v *ControlsView) Handle(in Input) error {
	p := v.Panel
	var err error
	if in.Pressed {
		hit := Hit(v.nodes, in.X, in.Y)
		if p.Focused() && (hit == nil || hit.ID != IDValue) {
			p.Blur()
		}
		if hit != nil {
			err = v.press(hit.ID)
		}
	}
	if !p.Focused() {
		return err
	}
	text := p.Text()
	if len(in.Chars) > 0 {
		text += string(in.Chars)
	}
	if in.Backspace && text != "" {
		r := []rune(text)
		text = string(r[:len(r)-1])
	}
	if text != p.Text() {
		p.SetText(text)
	}
	if in.Enter || in.Escape {
		p.Blur()
	}
	return err
}

func (v *ControlsView) press(id string) error {
	p := v.Panel
	switch id {
	case IDHiddenFaces:
		p.SetHiddenFaces(!p.HiddenFacesChecked())
	case IDValue:
		p.Focus()
	case IDApply:
		return p.Apply()
	case IDReset:
		p.Reset()
	default:
		for _, a := range transform.Axes {
			if id == AxisID(a) {
				p.SelectAxis(a)
			}
		}
	}
	return nil
}
