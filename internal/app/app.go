// Package app is the root view: it owns the store, the control panel and the
// terminal commands, and composes the 2D overlay drawn over the scene.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cylinder-lab/internal/actions"
	"cylinder-lab/internal/commands"
	"cylinder-lab/internal/config"
	"cylinder-lab/internal/controls"
	"cylinder-lab/internal/fonts"
	"cylinder-lab/internal/store"
	"cylinder-lab/internal/widgets"
)

const fontTimeout = 2 * time.Minute

// Surface is what the root view mounts on: a render surface with a 2D
// overlay pass and a hook that keeps UI drags from orbiting the camera.
type Surface interface {
	store.Surface
	OnOverlay(fn func())
	SetPointerOwner(fn func(x, y float32) bool)
}

// Renderer gathers input and draws widget nodes.
type Renderer interface {
	PollInput(keyboardCaptured bool) widgets.Input
	Stylesheet() *widgets.Stylesheet
	Draw(nodes []*widgets.Node)
}

// Console is the command terminal.
type Console interface {
	Update()
	Draw()
	IsOpen() bool
}

// Stats is the debug overlay.
type Stats interface {
	Draw()
	SetShowFPS(show bool)
}

// View groups the drawing side of the overlay. Console, Stats and LoadFont
// may be nil.
type View struct {
	Renderer Renderer
	Console  Console
	Stats    Stats
	// LoadFont switches the overlay to the font file at path.
	LoadFont func(path string) error
}

// FontFetcher installs fonts; *fonts.Fetcher implements it.
type FontFetcher interface {
	FetchFamily(ctx context.Context, family, destDir string) (string, error)
	Install(ctx context.Context, rawURL, destDir string) (string, error)
}

type fontResult struct {
	path string
	err  error
}

// Logger is satisfied by *logger.Logger.
type Logger interface {
	Log(line string)
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

// App is the root view.
type App struct {
	cfg     config.Config
	cfgPath string
	log     Logger

	store    *store.Store
	panel    *controls.Panel
	commands *commands.Registry

	controlsView *widgets.ControlsView
	tweakView    *widgets.TweakView
	matrixView   *widgets.MatrixView
	nodes        []*widgets.Node

	surface Surface
	view    View
	mounted bool

	fetcher  FontFetcher
	fontDir  string
	fontCh   chan fontResult
	fetching bool
}

// New builds the store, the control panel and the command registry from cfg.
// cfgPath is where "cmd save" writes.
func New(cfg config.Config, cfgPath string, log Logger) *App {
	if log == nil {
		log = nopLogger{}
	}
	st := store.New(store.Options{
		Params: cfg.Geometry,
		Camera: store.CameraOptions{
			Fov:      cfg.Camera.Fov,
			Near:     cfg.Camera.Near,
			Far:      cfg.Camera.Far,
			Distance: cfg.Camera.Distance,
		},
		Log: log,
	})
	panel := controls.New(st)
	a := &App{
		cfg:          cfg,
		cfgPath:      cfgPath,
		log:          log,
		store:        st,
		panel:        panel,
		commands:     commands.NewRegistry(),
		controlsView: widgets.NewControlsView(panel),
		tweakView:    widgets.NewTweakView(st.Panel()),
		matrixView:   widgets.NewMatrixView(),
		fetcher:      fonts.NewFetcher(),
		fontDir:      cfg.FontDir,
		fontCh:       make(chan fontResult, 1),
	}
	if a.fontDir == "" {
		a.fontDir = fonts.BaseDirs()[0]
	}
	actions.Register(a.commands, st, panel, actions.Hooks{
		ShowFPS:   a.setShowFPS,
		Save:      a.Save,
		FetchFont: a.fetchFont,
		Print:     log.Log,
	})
	return a
}

// SetFontFetcher replaces the fetcher used by "cmd font".
func (a *App) SetFontFetcher(f FontFetcher) { a.fetcher = f }

// Store returns the scene graph store.
func (a *App) Store() *store.Store { return a.store }

// Panel returns the control panel view model.
func (a *App) Panel() *controls.Panel { return a.panel }

// Commands returns the terminal command registry.
func (a *App) Commands() *commands.Registry { return a.commands }

// Config returns the current preferences, including live shape and fov.
func (a *App) Config() config.Config {
	cfg := a.cfg
	cfg.Geometry = a.store.Params()
	cfg.Camera.Fov = a.store.Camera().Fov
	return cfg
}

// Mount initializes the scene on s and installs the overlay. Only the first
// call does anything; the scene is never initialized twice.
func (a *App) Mount(s Surface, v View) error {
	if a.mounted {
		return nil
	}
	if err := a.store.InitScene(s); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.surface = s
	a.view = v
	if v.Stats != nil {
		v.Stats.SetShowFPS(a.cfg.Debug.ShowFPS)
	}
	s.SetPointerOwner(a.ownsPointer)
	s.OnOverlay(a.Frame)
	a.mounted = true
	return nil
}

// Mounted reports whether Mount has succeeded.
func (a *App) Mounted() bool { return a.mounted }

// Frame handles this frame's input and draws the overlay.
func (a *App) Frame() {
	v := a.view
	if v.Console != nil {
		v.Console.Update()
	}
	consoleOpen := v.Console != nil && v.Console.IsOpen()
	if v.Renderer == nil {
		return
	}

	select {
	case r := <-a.fontCh:
		a.applyFont(r)
	default:
	}

	in := v.Renderer.PollInput(consoleOpen)
	if err := a.controlsView.Handle(in); err != nil {
		a.log.Log("apply: " + err.Error())
	}
	a.tweakView.Handle(in)

	w, h := a.surface.Size()
	a.nodes = a.Layout(v.Renderer.Stylesheet(), float32(w), float32(h), consoleOpen)
	v.Renderer.Draw(a.nodes)

	if v.Console != nil {
		v.Console.Draw()
	}
	if v.Stats != nil {
		v.Stats.Draw()
	}
}

// Layout builds the overlay nodes: control panel and snackbar, tweak panel,
// and the matrix readout while the terminal is open or the override is on.
func (a *App) Layout(sheet *widgets.Stylesheet, w, h float32, consoleOpen bool) []*widgets.Node {
	nodes := append([]*widgets.Node(nil), a.controlsView.Layout(sheet, w, h)...)
	nodes = append(nodes, a.tweakView.Layout(sheet, w, h)...)

	st := a.store.State()
	highlight := -1
	if st.SnackbarVisible {
		highlight = st.SelectedAxis.ElementIndex()
	}
	return a.matrixView.AppendNodes(nodes, consoleOpen || st.SnackbarVisible, sheet,
		a.store.Cylinder().Matrix, highlight, w, h)
}

// ownsPointer reports whether the overlay claims the pointer at x, y.
func (a *App) ownsPointer(x, y float32) bool {
	return a.tweakView.Dragging() || widgets.Covers(a.nodes, x, y)
}

func (a *App) setShowFPS(show bool) {
	a.cfg.Debug.ShowFPS = show
	if a.view.Stats != nil {
		a.view.Stats.SetShowFPS(show)
	}
}

// Save writes the current preferences to the config file.
func (a *App) Save() error {
	cfg := a.Config()
	if err := config.Save(a.cfgPath, cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.log.Log("preferences saved to " + a.cfgPath)
	return nil
}

// fetchFont installs a font in the background; the result is applied on the
// next frame. An empty family and url fetch fonts.DefaultFamily.
func (a *App) fetchFont(family, url string) error {
	if a.fetching {
		return errors.New("a font download is already running")
	}
	if family == "" && url == "" {
		family = fonts.DefaultFamily
	}
	a.fetching = true
	if url != "" {
		a.log.Log("fetching font from " + url)
	} else {
		a.log.Log("fetching font family " + family)
	}
	fetcher, dir := a.fetcher, a.fontDir
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fontTimeout)
		defer cancel()
		var r fontResult
		if url != "" {
			r.path, r.err = fetcher.Install(ctx, url, dir)
		} else {
			r.path, r.err = fetcher.FetchFamily(ctx, family, dir)
		}
		a.fontCh <- r
	}()
	return nil
}

func (a *App) applyFont(r fontResult) {
	a.fetching = false
	if r.err != nil {
		a.log.Log("font: " + r.err.Error())
		return
	}
	a.log.Log("font installed: " + r.path)
	if a.view.LoadFont == nil {
		return
	}
	if err := a.view.LoadFont(r.path); err != nil {
		a.log.Log("font: " + err.Error())
	}
}
