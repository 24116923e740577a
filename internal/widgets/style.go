package widgets

import (
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Transparent = Color{}
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
)

// Style holds resolved values used for layout and drawing.
// LeftPct/TopPct: 0-100 for percentage positioning; -1 means use Left/Top as pixels.
type Style struct {
	Background Color
	Color      Color
	Border     Color
	HasBorder  bool
	// Accent fills sliders, checkmarks and the selected option.
	Accent   Color
	Width    int32
	Height   int32
	Left     int32
	Top      int32
	LeftPct  int32
	TopPct   int32
	Padding  int32
	FontSize int32
}

// DefaultStyle returns transparent background, white text, no border and zero size.
func DefaultStyle() Style {
	return Style{
		Color:    White,
		Border:   Black,
		Accent:   Color{47, 161, 214, 255},
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 18,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return Black, false
	}
	hex := s[1:]
	var b [4]uint8
	b[3] = 255
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			v, ok := hexNibble(hex[i])
			if !ok {
				return Black, false
			}
			b[i] = v * 17
		}
	case 6, 8:
		for i := 0; i < len(hex)/2; i++ {
			hi, ok1 := hexNibble(hex[2*i])
			lo, ok2 := hexNibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return Black, false
			}
			b[i] = hi<<4 | lo
		}
	default:
		return Black, false
	}
	return Color{b[0], b[1], b[2], b[3]}, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number, with optional "px" suffix. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" with N in 0..100.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a Style from merged declarations.
func ResolveProps(props map[string]string) Style {
	out := DefaultStyle()
	for k, v := range props {
		switch k {
		case "background":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "accent":
			if c, ok := ParseHexColor(v); ok {
				out.Accent = c
			}
		case "border":
			if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// Place returns the top-left corner of a w x h box positioned by st on a
// screenW x screenH screen. A percentage of 0 pins the box to the left or top
// edge and 100 to the right or bottom edge.
func (st Style) Place(w, h, screenW, screenH float32) (x, y float32) {
	x, y = float32(st.Left), float32(st.Top)
	if st.LeftPct >= 0 {
		x = (screenW - w) * float32(st.LeftPct) / 100
	}
	if st.TopPct >= 0 {
		y = (screenH - h) * float32(st.TopPct) / 100
	}
	return x, y
}
