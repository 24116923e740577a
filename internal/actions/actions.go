// Package actions binds terminal subcommands to the store and the control
// panel.
package actions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cylinder-lab/internal/commands"
	"cylinder-lab/internal/controls"
	"cylinder-lab/internal/store"
	"cylinder-lab/internal/transform"
)

var errConflictingFlags = errors.New("flags are mutually exclusive")

// Hooks are the side effects that live outside the store.
type Hooks struct {
	// ShowFPS toggles the FPS overlay.
	ShowFPS func(show bool)
	// Save persists the current preferences.
	Save func() error
	// FetchFont starts installing a font from a family name or a direct URL.
	FetchFont func(family, url string) error
	// Print writes a line to the terminal history.
	Print func(line string)
}

// Register adds axis, value, apply, reset, faces, shape, fps, font, save and
// help to reg.
func Register(reg *commands.Registry, st *store.Store, panel *controls.Panel, hooks Hooks) {
	say := hooks.Print
	if say == nil {
		say = func(string) {}
	}

	reg.Register("axis", "select the edited axis: axis X|Y|Z", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: axis X|Y|Z")
		}
		a, err := transform.ParseAxis(args[0])
		if err != nil {
			return err
		}
		panel.SelectAxis(a)
		return nil
	})

	reg.Register("value", "set the transformation value; no argument clears it", nil, func(args []string) error {
		switch len(args) {
		case 0:
			panel.SetText("")
			return nil
		case 1:
			if _, err := strconv.ParseFloat(args[0], 32); err != nil {
				return fmt.Errorf("not a number: %q", args[0])
			}
			panel.SetText(args[0])
			return nil
		default:
			return errors.New("usage: value [n]")
		}
	})

	reg.Register("apply", "write the value into the matrix", nil, func([]string) error {
		return panel.Apply()
	})

	reg.Register("reset", "restore automatic matrix updates", nil, func([]string) error {
		panel.Reset()
		return nil
	})

	faces := commands.NewFlagSet("faces")
	hidden := faces.Bool("hidden", false, "hide the solid material")
	solid := faces.Bool("solid", false, "show the solid material")
	reg.Register("faces", "faces --hidden|--solid", faces, func([]string) error {
		switch {
		case *hidden && *solid:
			return errConflictingFlags
		case *hidden:
			panel.SetHiddenFaces(true)
		case *solid:
			panel.SetHiddenFaces(false)
		default:
			say(fmt.Sprintf("faces hidden: %t", panel.HiddenFacesChecked()))
		}
		return nil
	})

	shape := commands.NewFlagSet("shape")
	top := shape.Float64("top", -1, "top radius")
	bottom := shape.Float64("bottom", -1, "bottom radius")
	height := shape.Float64("height", -1, "height")
	segments := shape.Int("segments", 0, "radial segments")
	reg.Register("shape", "shape --top --bottom --height --segments", shape, func([]string) error {
		p := st.Params()
		changed := false
		if *top >= 0 {
			p.RadiusTop, changed = float32(*top), true
		}
		if *bottom >= 0 {
			p.RadiusBottom, changed = float32(*bottom), true
		}
		if *height >= 0 {
			p.Height, changed = float32(*height), true
		}
		if *segments > 0 {
			p.RadialSegments, changed = float32(*segments), true
		}
		if !changed {
			say(fmt.Sprintf("shape top=%g bottom=%g height=%g segments=%d",
				p.RadiusTop, p.RadiusBottom, p.Height, p.Segments()))
			return nil
		}
		st.SetParams(p)
		return nil
	})

	fps := commands.NewFlagSet("fps")
	show := fps.Bool("show", false, "show the FPS counter")
	hide := fps.Bool("hide", false, "hide the FPS counter")
	reg.Register("fps", "fps --show|--hide", fps, func([]string) error {
		if hooks.ShowFPS == nil {
			return errors.New("no FPS overlay")
		}
		switch {
		case *show && *hide:
			return errConflictingFlags
		case *show:
			hooks.ShowFPS(true)
		case *hide:
			hooks.ShowFPS(false)
		default:
			return errors.New("usage: fps --show|--hide")
		}
		return nil
	})

	font := commands.NewFlagSet("font")
	fontURL := font.String("url", "", "download a .ttf, .otf or .zip from this URL")
	reg.Register("font", "font [family] | font --url <url>", font, func(args []string) error {
		if hooks.FetchFont == nil {
			return errors.New("font download is not configured")
		}
		family := strings.Join(args, " ")
		if family != "" && *fontURL != "" {
			return errors.New("give a family or --url, not both")
		}
		return hooks.FetchFont(family, *fontURL)
	})

	reg.Register("save", "write preferences to the config file", nil, func([]string) error {
		if hooks.Save == nil {
			return errors.New("saving is not configured")
		}
		return hooks.Save()
	})

	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			say(line)
		}
		return nil
	})
}
