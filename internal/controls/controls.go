// Package controls is the control panel view model: a hidden-faces checkbox,
// an axis selector, a numeric field and the apply/reset buttons. It holds only
// the field's text buffer; everything else is read from the store.
package controls

import (
	"strconv"
	"strings"

	"cylinder-lab/internal/store"
	"cylinder-lab/internal/transform"

	"github.com/chewxy/math32"
)

// Labels shown next to the widgets.
const (
	HiddenFacesLabel = "Сменить режим отображения невидимых граней"
	AxisLabel        = "Ось"
	ValueLabel       = "Значение трансформации"
	ApplyLabel       = "Применить"
	ResetLabel       = "Сбросить"
	SnackbarText     = "Матрица трансформации изменена вручную"
)

// Glyphs is every label concatenated; a font must cover it to draw the panel.
const Glyphs = HiddenFacesLabel + AxisLabel + ValueLabel + ApplyLabel + ResetLabel + SnackbarText

// Panel binds the widgets to a store.
type Panel struct {
	st      *store.Store
	text    string
	focused bool
}

// New returns a panel whose field shows the store's current value. While
// the field is not focused, value changes made on the store directly are
// mirrored into the field text.
func New(st *store.Store) *Panel {
	p := &Panel{st: st}
	p.syncText(st.State())
	st.Subscribe(p.onState)
	return p
}

func (p *Panel) onState(s store.State) {
	if p.focused {
		return
	}
	v, ok := parseValue(p.text)
	switch {
	case s.TransformationValue == nil && strings.TrimSpace(p.text) == "":
	case s.TransformationValue != nil && ok && v == *s.TransformationValue:
	default:
		p.syncText(s)
	}
}

// parseValue parses field text as a finite float32.
func parseValue(s string) (float32, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, false
	}
	f := float32(v)
	if math32.IsNaN(f) || math32.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (p *Panel) syncText(s store.State) {
	if s.TransformationValue == nil {
		p.text = ""
		return
	}
	p.text = strconv.FormatFloat(float64(*s.TransformationValue), 'g', -1, 32)
}

// HiddenFacesChecked is the checkbox state: checked while the solid material
// is hidden.
func (p *Panel) HiddenFacesChecked() bool {
	return !p.st.State().MaterialVisible
}

// SetHiddenFaces handles a checkbox change.
func (p *Panel) SetHiddenFaces(checked bool) {
	p.st.SetMaterialVisibility(!checked)
}

// Axis returns the selected axis.
func (p *Panel) Axis() transform.Axis {
	return p.st.State().SelectedAxis
}

// SelectAxis handles a selector change.
func (p *Panel) SelectAxis(a transform.Axis) {
	p.st.ChangeSelectedAxis(a)
}

// CycleAxis moves the selector to the next axis.
func (p *Panel) CycleAxis() {
	p.st.ChangeSelectedAxis(p.Axis().Next())
}

// Text returns the numeric field's contents.
func (p *Panel) Text() string { return p.text }

// Focused reports whether the numeric field has focus.
func (p *Panel) Focused() bool { return p.focused }

// Focus gives the numeric field keyboard focus.
func (p *Panel) Focus() { p.focused = true }

// SetText handles an edit of the numeric field. An empty field clears the
// store value; a finite number sets it; anything else, NaN and Inf
// included, stays in the buffer without touching the store.
func (p *Panel) SetText(s string) {
	p.text = s
	if strings.TrimSpace(s) == "" {
		p.st.ChangeTransformationValue(nil)
		return
	}
	f, ok := parseValue(s)
	if !ok {
		return
	}
	p.st.ChangeTransformationValue(&f)
}

// Blur removes focus. An empty value becomes 0; the text is resynced with
// the store value so a half-typed number does not linger.
func (p *Panel) Blur() {
	p.focused = false
	if p.st.State().TransformationValue == nil {
		zero := float32(0)
		p.st.ChangeTransformationValue(&zero)
	}
	p.syncText(p.st.State())
}

// Apply handles the apply button.
func (p *Panel) Apply() error {
	return p.st.TransformMatrix()
}

// Reset handles the reset button.
func (p *Panel) Reset() {
	p.st.ResetMatrixTransformation()
}

// SnackbarVisible reports whether the override notice is shown.
func (p *Panel) SnackbarVisible() bool {
	return p.st.State().SnackbarVisible
}
