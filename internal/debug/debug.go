package debug

import (
	"fmt"
	"runtime"

	"cylinder-lab/internal/geometry"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Text is refreshed every updateInterval frames.
	updateInterval = 30
)

// Debug draws the FPS, heap and mesh counters in the top-right corner. All
// overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowMesh     bool

	// Mesh returns the buffer whose counts are shown.
	Mesh func() *geometry.Buffer

	font         rl.Font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
	d.lastFpsText = ""
}

// SetShowMemAlloc sets whether the heap counter is drawn under the FPS.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
	d.lastMemText = ""
}

// SetFont sets the font used for the overlay. A zero texture ID means the
// raylib default font.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// MeshText formats the vertex and triangle counts of b.
func MeshText(b *geometry.Buffer) string {
	if b == nil {
		return "Mesh: -"
	}
	return fmt.Sprintf("Mesh: %d verts, %d tris", b.VertexCount(), len(b.Indices)/3)
}

// Draw renders the enabled overlays. Call last in the 2D pass.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	y := float32(padding)

	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update || d.lastMemText == "" {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		d.drawRight(d.lastMemText, y)
		y += lineHeight
	}
	if d.ShowMesh && d.Mesh != nil {
		d.drawRight(MeshText(d.Mesh()), y)
	}
}

func (d *Debug) drawRight(text string, y float32) {
	screenW := float32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
		rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		return
	}
	w := float32(rl.MeasureText(text, fontSize))
	rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
}
