package ui

import (
	"fmt"
	"os"

	"cylinder-lab/internal/widgets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// fontBaseSize is the size glyphs are rasterized at; text is scaled from it.
const fontBaseSize = 32

// Engine draws widget nodes with raylib using the current stylesheet, and
// gathers per-frame input for the views. If a font is loaded (LoadFont), text
// is drawn with it; otherwise raylib's default font is used, which has no
// Cyrillic glyphs.
type Engine struct {
	sheet *widgets.Stylesheet
	font  rl.Font
}

// New creates an engine with the built-in stylesheet.
func New() *Engine {
	return &Engine{sheet: widgets.DefaultStylesheet()}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	sheet, err := widgets.ParseCSS(string(data))
	if err != nil {
		return fmt.Errorf("ui: %s: %w", path, err)
	}
	e.sheet = sheet
	return nil
}

// Stylesheet returns the current stylesheet.
func (e *Engine) Stylesheet() *widgets.Stylesheet { return e.sheet }

// glyphs lists the code points rasterized from a TTF: printable ASCII, Latin-1
// and Cyrillic.
func glyphs() []rune {
	var cps []rune
	for r := rune(0x20); r < 0x7f; r++ {
		cps = append(cps, r)
	}
	for r := rune(0xa0); r <= 0xff; r++ {
		cps = append(cps, r)
	}
	for r := rune(0x400); r <= 0x4ff; r++ {
		cps = append(cps, r)
	}
	return cps
}

// LoadFont loads a TTF or OTF font from path. If loading fails, the engine
// keeps its current font. Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, fontBaseSize, glyphs())
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: load font %s: %w", path, os.ErrNotExist)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when none is loaded.
func (e *Engine) Font() rl.Font { return e.font }

// Unload releases the font. Call before closing the window.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// PollInput reads this frame's pointer state and, unless the keyboard is
// captured elsewhere, the typed characters and editing keys.
func (e *Engine) PollInput(keyboardCaptured bool) widgets.Input {
	pos := rl.GetMousePosition()
	in := widgets.Input{
		X:        pos.X,
		Y:        pos.Y,
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Down:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
	}
	if keyboardCaptured {
		return in
	}
	for {
		c := rl.GetCharPressed()
		if c == 0 {
			break
		}
		in.Chars = append(in.Chars, rune(c))
	}
	in.Backspace = rl.IsKeyPressed(rl.KeyBackspace)
	in.Enter = rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)
	in.Escape = rl.IsKeyPressed(rl.KeyEscape)
	return in
}

// Draw draws nodes in order, each on top of the previous.
func (e *Engine) Draw(nodes []*widgets.Node) {
	for _, n := range nodes {
		e.drawNode(n, e.sheet.Style(n))
	}
}

func (e *Engine) drawNode(n *widgets.Node, st widgets.Style) {
	b := rect(n.Bounds)
	bg := toColor(st.Background)
	if n.Type == widgets.TypeOption && n.On {
		bg = toColor(st.Accent)
	}
	if bg.A > 0 {
		rl.DrawRectangleRec(b, bg)
	}
	switch n.Type {
	case widgets.TypeSlider:
		fill := b
		fill.Width *= n.Value
		rl.DrawRectangleRec(fill, toColor(st.Accent))
	case widgets.TypeCheckbox:
		if n.On {
			inset := b.Width / 4
			rl.DrawRectangleRec(rl.NewRectangle(b.X+inset, b.Y+inset, b.Width-2*inset, b.Height-2*inset), toColor(st.Accent))
		}
	}
	if st.HasBorder || (n.Type == widgets.TypeField && n.On) {
		border := toColor(st.Border)
		if n.Type == widgets.TypeField && n.On {
			border = toColor(st.Accent)
		}
		rl.DrawRectangleLinesEx(b, 1, border)
	}

	text := n.Text
	if n.Type == widgets.TypeField && n.On {
		text += "|"
	}
	if text == "" {
		return
	}
	color := toColor(st.Color)
	if n.Type == widgets.TypeCell && n.On {
		color = toColor(st.Accent)
	}
	size := float32(st.FontSize)
	pad := float32(st.Padding)
	y := b.Y + (b.Height-size)/2
	x := b.X + pad
	switch n.Type {
	case widgets.TypeButton, widgets.TypeOption, widgets.TypeSnackbar, widgets.TypeSlider:
		x = b.X + (b.Width-e.measure(text, size))/2
	}
	e.text(text, x, y, size, color)
}

func (e *Engine) measure(s string, size float32) float32 {
	if e.font.Texture.ID != 0 {
		return rl.MeasureTextEx(e.font, s, size, 1).X
	}
	return float32(rl.MeasureText(s, int32(size)))
}

func (e *Engine) text(s string, x, y, size float32, c rl.Color) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, s, rl.NewVector2(x, y), size, 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), int32(size), c)
}

func rect(r widgets.Rect) rl.Rectangle {
	return rl.NewRectangle(r.X, r.Y, r.W, r.H)
}

func toColor(c widgets.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
