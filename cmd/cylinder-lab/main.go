package main

import (
	"os"

	"cylinder-lab/internal/app"
	"cylinder-lab/internal/config"
	"cylinder-lab/internal/controls"
	"cylinder-lab/internal/debug"
	"cylinder-lab/internal/fonts"
	"cylinder-lab/internal/geometry"
	"cylinder-lab/internal/graphics"
	"cylinder-lab/internal/logger"
	"cylinder-lab/internal/terminal"
	"cylinder-lab/internal/ui"
)

func main() {
	dotenvErr := config.LoadDotEnv(".env")

	cfgPath := os.Getenv(config.EnvPrefix + "CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, cfgErr := config.Load(cfgPath)

	log := logger.New(cfg.LogPath)
	if dotenvErr != nil {
		log.Log(dotenvErr.Error())
	}
	if cfgErr != nil {
		log.Log(cfgErr.Error() + "; using defaults")
	}

	surface := graphics.NewSurface(graphics.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		TargetFPS:  cfg.Window.TargetFPS,
		Fullscreen: cfg.Window.Fullscreen,
	})
	surface.Open()
	defer surface.Close()

	engine := ui.New()
	defer engine.Unload()
	if cfg.Stylesheet != "" {
		if err := engine.LoadCSS(cfg.Stylesheet); err != nil {
			log.Log(err.Error())
		}
	}

	root := app.New(cfg, cfgPath, log)
	term := terminal.New(log, root.Commands())
	stats := debug.New()
	stats.SetShowMemAlloc(cfg.Debug.ShowMemAlloc)
	stats.ShowMesh = cfg.Debug.ShowMesh
	stats.Mesh = func() *geometry.Buffer { return root.Store().Cylinder().Geometry }

	loadFont := func(path string) error {
		if err := engine.LoadFont(path); err != nil {
			return err
		}
		term.SetFont(engine.Font())
		stats.SetFont(engine.Font())
		log.Log("font: " + path)
		return nil
	}
	fontDirs := fonts.BaseDirs()
	if cfg.FontDir != "" {
		fontDirs = []string{cfg.FontDir}
	}
	path, ok := fonts.FindCovering(controls.Glyphs, fontDirs...)
	if !ok {
		if path, ok = fonts.Find(fontDirs...); ok {
			log.Log(path + " lacks Cyrillic glyphs; labels may not render")
		}
	}
	if ok {
		if err := loadFont(path); err != nil {
			log.Log(err.Error())
		}
	} else {
		log.Log(`no font found; labels need Cyrillic glyphs, run "cmd font" to download one`)
	}

	if err := root.Mount(surface, app.View{
		Renderer: engine,
		Console:  term,
		Stats:    stats,
		LoadFont: loadFont,
	}); err != nil {
		log.Log(err.Error())
		return
	}
	surface.Run()
}
