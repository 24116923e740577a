package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cylinder-lab/internal/commands"
	"cylinder-lab/internal/config"
	"cylinder-lab/internal/fonts"
	"cylinder-lab/internal/scene"
	"cylinder-lab/internal/store"
	"cylinder-lab/internal/widgets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	frames   []func()
	overlays []func()
	owner    func(x, y float32) bool
	renders  int
}

func (f *fakeSurface) Size() (int, int) { return 1280, 800 }

func (f *fakeSurface) OnFrame(fn func()) { f.frames = append(f.frames, fn) }

func (f *fakeSurface) OnOverlay(fn func()) { f.overlays = append(f.overlays, fn) }

func (f *fakeSurface) SetPointerOwner(fn func(x, y float32) bool) { f.owner = fn }

func (f *fakeSurface) AttachControls(*scene.OrbitControls) {}

func (f *fakeSurface) Render(*scene.Scene, *scene.PerspectiveCamera) { f.renders++ }

func (f *fakeSurface) tick() {
	for _, fn := range f.frames {
		fn()
	}
	for _, fn := range f.overlays {
		fn()
	}
}

type fakeRenderer struct {
	input  widgets.Input
	drawn  []*widgets.Node
	sheet  *widgets.Stylesheet
	polled []bool
}

func (r *fakeRenderer) PollInput(captured bool) widgets.Input {
	r.polled = append(r.polled, captured)
	in := r.input
	r.input = widgets.Input{}
	return in
}

func (r *fakeRenderer) Stylesheet() *widgets.Stylesheet { return r.sheet }

func (r *fakeRenderer) Draw(nodes []*widgets.Node) { r.drawn = nodes }

type fakeConsole struct {
	open    bool
	updates int
	draws   int
}

func (c *fakeConsole) Update()      { c.updates++ }
func (c *fakeConsole) Draw()        { c.draws++ }
func (c *fakeConsole) IsOpen() bool { return c.open }

type fakeStats struct {
	fps   []bool
	draws int
}

func (s *fakeStats) Draw()                { s.draws++ }
func (s *fakeStats) SetShowFPS(show bool) { s.fps = append(s.fps, show) }

type recordLog struct{ lines []string }

func (r *recordLog) Log(line string) { r.lines = append(r.lines, line) }

type fixture struct {
	app     *App
	surface *fakeSurface
	render  *fakeRenderer
	console *fakeConsole
	stats   *fakeStats
	log     *recordLog
	path    string
}

func mounted(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		surface: &fakeSurface{},
		render:  &fakeRenderer{sheet: widgets.DefaultStylesheet()},
		console: &fakeConsole{},
		stats:   &fakeStats{},
		log:     &recordLog{},
		path:    filepath.Join(t.TempDir(), "cfg", "cylinder-lab.yaml"),
	}
	f.app = New(config.Default(), f.path, f.log)
	require.NoError(t, f.app.Mount(f.surface, View{Renderer: f.render, Console: f.console, Stats: f.stats}))
	return f
}

func (f *fixture) node(typ, id string) *widgets.Node {
	for _, n := range f.render.drawn {
		if n.Type == typ && n.ID == id {
			return n
		}
	}
	return nil
}

func (f *fixture) click(t *testing.T, typ, id string) {
	t.Helper()
	n := f.node(typ, id)
	require.NotNil(t, n, id)
	f.render.input = widgets.Input{X: n.Bounds.X + 1, Y: n.Bounds.Y + 1, Pressed: true, Down: true}
	f.surface.tick()
}

func TestMountOnce(t *testing.T) {
	f := mounted(t)
	assert.True(t, f.app.Mounted())
	assert.Equal(t, []bool{false}, f.stats.fps)

	require.NoError(t, f.app.Mount(f.surface, View{}))
	require.NoError(t, f.app.Mount(&fakeSurface{}, View{}))
	assert.Len(t, f.surface.frames, 1)
	assert.Len(t, f.surface.overlays, 1)
	assert.Len(t, f.app.Store().Scene().Children(), 4)
}

func TestMountNilSurface(t *testing.T) {
	a := New(config.Default(), "", nil)
	err := a.Mount(nil, View{})
	assert.ErrorIs(t, err, store.ErrNilSurface)
	assert.False(t, a.Mounted())
}

func TestFrameDrawsAndRoutesInput(t *testing.T) {
	f := mounted(t)
	f.surface.tick()
	assert.Equal(t, 1, f.surface.renders)
	assert.Equal(t, 1, f.console.updates)
	assert.Equal(t, 1, f.console.draws)
	assert.Equal(t, 1, f.stats.draws)
	require.NotNil(t, f.node(widgets.TypeCheckbox, widgets.IDHiddenFaces))
	assert.Nil(t, f.node(widgets.TypeSnackbar, widgets.IDSnackbar))

	f.click(t, widgets.TypeCheckbox, widgets.IDHiddenFaces)
	assert.False(t, f.app.Store().State().MaterialVisible)
}

func TestSnackbarAndMatrixReadout(t *testing.T) {
	f := mounted(t)
	f.surface.tick()

	f.click(t, widgets.TypeField, widgets.IDValue)
	f.render.input = widgets.Input{Chars: []rune("0.01"), Enter: true}
	f.surface.tick()

	f.click(t, widgets.TypeButton, widgets.IDApply)
	assert.True(t, f.app.Store().State().SnackbarVisible)
	assert.True(t, f.app.Store().Panel().Hidden())

	f.surface.tick()
	bar := f.node(widgets.TypeSnackbar, widgets.IDSnackbar)
	require.NotNil(t, bar)
	assert.True(t, f.surface.owner(bar.Bounds.X+1, bar.Bounds.Y+1))

	var highlighted []*widgets.Node
	for _, n := range f.render.drawn {
		if n.Type == widgets.TypeCell && n.On {
			highlighted = append(highlighted, n)
		}
	}
	require.Len(t, highlighted, 1)
	assert.Equal(t, "0.010", highlighted[0].Text)

	// The manual value survives later frames.
	assert.Equal(t, float32(0.01), f.app.Store().Cylinder().Matrix[3])

	f.click(t, widgets.TypeButton, widgets.IDReset)
	f.surface.tick()
	assert.Nil(t, f.node(widgets.TypeSnackbar, widgets.IDSnackbar))
	assert.Equal(t, float32(0), f.app.Store().Cylinder().Matrix[3])
}

func TestApplyErrorIsLogged(t *testing.T) {
	f := mounted(t)
	f.surface.tick()
	f.click(t, widgets.TypeButton, widgets.IDApply)
	assert.Contains(t, f.log.lines, "apply: "+store.ErrNoTransformationValue.Error())
}

func TestConsoleCapturesKeyboard(t *testing.T) {
	f := mounted(t)
	f.console.open = true
	f.surface.tick()
	assert.Equal(t, []bool{true}, f.render.polled)
}

func TestPointerOwner(t *testing.T) {
	f := mounted(t)
	f.surface.tick()
	assert.True(t, f.surface.owner(20, 20))
	assert.False(t, f.surface.owner(640, 500))
}

func TestCommandsSaveAndFPS(t *testing.T) {
	f := mounted(t)
	run := func(line string) error {
		args, ok := commands.Parse(line)
		require.True(t, ok)
		return f.app.Commands().Execute(args)
	}

	require.NoError(t, run("cmd fps --show"))
	assert.Equal(t, []bool{false, true}, f.stats.fps)

	require.NoError(t, run("cmd shape --height 42"))
	require.NoError(t, run("cmd save"))

	cfg, err := config.Load(f.path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug.ShowFPS)
	assert.Equal(t, float32(42), cfg.Geometry.Height)
}

type fakeFetcher struct {
	calls chan [3]string
	err   error
}

func (f *fakeFetcher) FetchFamily(_ context.Context, family, dir string) (string, error) {
	f.calls <- [3]string{"family", family, dir}
	return filepath.Join(dir, "Family-Regular.ttf"), f.err
}

func (f *fakeFetcher) Install(_ context.Context, url, dir string) (string, error) {
	f.calls <- [3]string{"url", url, dir}
	return filepath.Join(dir, "Direct.ttf"), f.err
}

func TestFontCommand(t *testing.T) {
	f := mounted(t)
	fetch := &fakeFetcher{calls: make(chan [3]string, 1)}
	f.app.SetFontFetcher(fetch)
	var loaded []string
	f.app.view.LoadFont = func(path string) error {
		loaded = append(loaded, path)
		return nil
	}

	require.NoError(t, f.app.Commands().Execute([]string{"font"}))
	assert.Equal(t, [3]string{"family", fonts.DefaultFamily, fonts.BaseDirs()[0]}, <-fetch.calls)

	// A second download is refused until the first one lands.
	assert.Error(t, f.app.Commands().Execute([]string{"font", "Inter"}))

	f.app.applyFont(<-f.app.fontCh)
	assert.Equal(t, []string{filepath.Join(fonts.BaseDirs()[0], "Family-Regular.ttf")}, loaded)

	require.NoError(t, f.app.Commands().Execute([]string{"font", "--url", "https://example.com/x.ttf"}))
	assert.Equal(t, "url", (<-fetch.calls)[0])
	f.app.applyFont(<-f.app.fontCh)
	assert.Len(t, loaded, 2)

	fetch.err = errors.New("offline")
	require.NoError(t, f.app.Commands().Execute([]string{"font", "Inter"}))
	<-fetch.calls
	f.app.applyFont(<-f.app.fontCh)
	assert.Contains(t, f.log.lines, "font: offline")
	assert.Len(t, loaded, 2)
}
