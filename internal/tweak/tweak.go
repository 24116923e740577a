// Package tweak models a floating parameter panel: named folders of numeric
// sliders bound directly to fields elsewhere in the program. It holds no
// drawing code; internal/ui renders it.
package tweak

import "github.com/chewxy/math32"

// Controller is one slider bound to a float32 field.
type Controller struct {
	Label    string
	Min, Max float32

	step     float32
	get      func() float32
	set      func(float32)
	onChange []func()
}

// Value reads the bound field.
func (c *Controller) Value() float32 { return c.get() }

// SetValue snaps v to the step (if any), clamps it to [Min, Max], writes it
// to the bound field and runs the change hooks when the stored value changes.
func (c *Controller) SetValue(v float32) {
	if c.step > 0 {
		v = math32.Floor(v/c.step+0.5) * c.step
	}
	if v < c.Min {
		v = c.Min
	}
	if v > c.Max {
		v = c.Max
	}
	if v == c.get() {
		return
	}
	c.set(v)
	for _, fn := range c.onChange {
		fn()
	}
}

// Step sets the snapping increment and returns c for chaining.
func (c *Controller) Step(s float32) *Controller {
	c.step = s
	return c
}

// StepSize returns the snapping increment, 0 when unset.
func (c *Controller) StepSize() float32 { return c.step }

// OnChange adds a hook run after every effective change and returns c.
func (c *Controller) OnChange(fn func()) *Controller {
	c.onChange = append(c.onChange, fn)
	return c
}

// Fraction returns the value's position in [Min, Max] as 0..1.
func (c *Controller) Fraction() float32 {
	if c.Max == c.Min {
		return 0
	}
	f := (c.get() - c.Min) / (c.Max - c.Min)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// SetFraction sets the value from a 0..1 slider position.
func (c *Controller) SetFraction(f float32) {
	c.SetValue(c.Min + f*(c.Max-c.Min))
}

// Folder groups controllers under a collapsible title.
type Folder struct {
	Name        string
	Closed      bool
	Controllers []*Controller
}

// Add binds a slider to *field.
func (f *Folder) Add(label string, field *float32, min, max float32) *Controller {
	return f.AddFunc(label, func() float32 { return *field }, func(v float32) { *field = v }, min, max)
}

// AddFunc binds a slider through accessor functions.
func (f *Folder) AddFunc(label string, get func() float32, set func(float32), min, max float32) *Controller {
	c := &Controller{Label: label, Min: min, Max: max, get: get, set: set}
	f.Controllers = append(f.Controllers, c)
	return c
}

// Open expands the folder.
func (f *Folder) Open() { f.Closed = false }

// Close collapses the folder.
func (f *Folder) Close() { f.Closed = true }

// Panel is the whole tweak panel. It starts visible.
type Panel struct {
	folders []*Folder
	hidden  bool
}

// New returns an empty, visible panel.
func New() *Panel {
	return &Panel{}
}

// AddFolder appends a closed folder.
func (p *Panel) AddFolder(name string) *Folder {
	f := &Folder{Name: name, Closed: true}
	p.folders = append(p.folders, f)
	return f
}

// Folders returns folders in creation order.
func (p *Panel) Folders() []*Folder { return p.folders }

// Folder returns the folder with the given name, or nil.
func (p *Panel) Folder(name string) *Folder {
	for _, f := range p.folders {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Controller returns the controller labelled label inside folder, or nil.
func (p *Panel) Controller(folder, label string) *Controller {
	f := p.Folder(folder)
	if f == nil {
		return nil
	}
	for _, c := range f.Controllers {
		if c.Label == label {
			return c
		}
	}
	return nil
}

// Show makes the panel visible.
func (p *Panel) Show() { p.hidden = false }

// Hide hides the panel. Bound fields keep their values.
func (p *Panel) Hide() { p.hidden = true }

// Hidden reports whether the panel is hidden.
func (p *Panel) Hidden() bool { return p.hidden }
