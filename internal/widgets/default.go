package widgets

import _ "embed"

//go:embed default.css
var defaultCSS string

// DefaultStylesheet returns a fresh copy of the built-in stylesheet.
func DefaultStylesheet() *Stylesheet {
	return MustParseCSS(defaultCSS)
}
