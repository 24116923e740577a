package geometry

// Params holds the cylinder shape. Tweak sliders bind to these fields and
// call the owner's redraw hook after every change.
type Params struct {
	RadiusTop      float32 `yaml:"radius_top" env:"RADIUS_TOP"`
	RadiusBottom   float32 `yaml:"radius_bottom" env:"RADIUS_BOTTOM"`
	Height         float32 `yaml:"height" env:"HEIGHT"`
	RadialSegments float32 `yaml:"radial_segments" env:"RADIAL_SEGMENTS"`
}

// DefaultParams returns the shape shown at startup.
func DefaultParams() Params {
	return Params{
		RadiusTop:      2,
		RadiusBottom:   6,
		Height:         20,
		RadialSegments: 8,
	}
}

// Segments returns RadialSegments floored to an integer, at least 1.
// Sliders move in fractional steps, so the stored value is a float.
func (p Params) Segments() int {
	n := int(p.RadialSegments)
	if n < 1 {
		return 1
	}
	return n
}
