package fonts

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font/sfnt"
)

// Covers reports whether the font file at path has a glyph for every rune
// of text. Whitespace and control characters are not checked.
func Covers(path, text string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return false, fmt.Errorf("fonts: parse %s: %w", path, err)
	}
	var buf sfnt.Buffer
	for _, r := range text {
		if r <= ' ' {
			continue
		}
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return false, err
		}
		if idx == 0 {
			return false, nil
		}
	}
	return true, nil
}

// FindCovering is Find restricted to fonts that can render text. Fonts that
// fail to parse are skipped.
func FindCovering(text string, dirs ...string) (path string, ok bool) {
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	for _, dir := range dirs {
		found, err := ScanDir(dir)
		if err != nil {
			continue
		}
		for len(found) > 0 {
			name := preferRegular(found)
			candidate := filepath.Join(dir, filepath.FromSlash(name))
			if yes, err := Covers(candidate, text); err == nil && yes {
				return candidate, true
			}
			found = without(found, name)
		}
	}
	return "", false
}

func without(names []string, name string) []string {
	out := names[:0:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
