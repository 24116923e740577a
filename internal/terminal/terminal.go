// Package terminal is the command console: a history pane over an input bar
// at the bottom of the window, toggled with the grave key.
package terminal

import (
	"unicode/utf8"

	"cylinder-lab/internal/commands"
	"cylinder-lab/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BarHeight is the height of the input bar in pixels.
const BarHeight = 40

const (
	prompt      = "> "
	textSize    = 20
	inset       = 8
	historyRows = 14
	rowHeight   = textSize + 4
	maxRunes    = 200
)

var (
	barColor     = rl.NewColor(40, 40, 40, 255)
	dividerColor = rl.NewColor(80, 80, 80, 255)
	historyColor = rl.NewColor(24, 24, 24, 240)
)

// Terminal echoes every submitted line to the log and runs "cmd ..." lines
// through a command registry. The log doubles as the history pane.
type Terminal struct {
	log  *logger.Logger
	reg  *commands.Registry
	line []rune
	open bool
	font rl.Font
}

// New returns a closed terminal.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen reports whether the terminal has the keyboard.
func (t *Terminal) IsOpen() bool { return t.open }

// SetFont switches the console font; a font without a texture means the
// raylib default.
func (t *Terminal) SetFont(font rl.Font) { t.font = font }

// Submit logs line and executes it if it is a command. Errors go to the log.
func (t *Terminal) Submit(line string) {
	t.log.Log(line)
	args, ok := commands.Parse(line)
	if !ok {
		t.log.Log(`not a command; try "cmd help"`)
		return
	}
	if err := t.reg.Execute(args); err != nil {
		t.log.Log(err.Error())
	}
}

// Update reads this frame's keys. Call once per frame before drawing.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		t.open = !t.open
		flushChars()
		return
	}
	if !t.open {
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		t.open = false
		return
	case pasteChord():
		t.line = append(t.line, []rune(rl.GetClipboardText())...)
		flushChars()
	default:
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.line = append(t.line, rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.line) > 0 {
		t.line = t.line[:len(t.line)-1]
	}
	if submitKey() && len(t.line) > 0 {
		line := string(t.line)
		t.line = t.line[:0]
		t.Submit(line)
	}
}

func pasteChord() bool {
	if !rl.IsKeyPressed(rl.KeyV) {
		return false
	}
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
}

func submitKey() bool {
	return rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)
}

// flushChars empties raylib's char queue so a toggle or paste key does not
// end up in the line.
func flushChars() {
	for rl.GetCharPressed() != 0 {
	}
}

// Draw paints the history pane and the input bar while open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	w := int32(rl.GetScreenWidth())
	barTop := int32(rl.GetScreenHeight()) - BarHeight

	paneTop := max(barTop-historyRows*rowHeight, 0)
	if barTop > paneTop {
		rl.DrawRectangle(0, paneTop, w, barTop-paneTop, historyColor)
	}
	for i, line := range tail(t.log.Lines(), historyRows) {
		t.print(clip(line), inset, paneTop+int32(i*rowHeight)+inset, rl.LightGray)
	}

	rl.DrawRectangle(0, barTop, w, BarHeight, barColor)
	rl.DrawRectangle(0, barTop, w, 1, dividerColor)
	t.print(prompt+string(t.line)+"|", inset, barTop+inset, rl.White)
}

func (t *Terminal) print(s string, x, y int32, c rl.Color) {
	if t.font.Texture.ID == 0 {
		rl.DrawText(s, x, y, textSize, c)
		return
	}
	rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), textSize, 1, c)
}

// tail returns the last n lines.
func tail(lines []string, n int) []string {
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

// clip shortens s to maxRunes runes with an ellipsis.
func clip(s string) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return string([]rune(s)[:maxRunes-3]) + "..."
}
