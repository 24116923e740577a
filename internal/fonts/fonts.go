package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories relative to the working
// directory, so the app finds its fonts from the repo root or from cmd/.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns slash-separated paths, relative to dir, of every font file
// under dir, sorted. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Find returns the first font found under the given directories, or under
// BaseDirs when none are given. Regular (non-italic, non-bold) faces are
// preferred. ok is false when no font exists.
func Find(dirs ...string) (path string, ok bool) {
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		found, err := ScanDir(dir)
		if err != nil || len(found) == 0 {
			continue
		}
		return filepath.Join(dir, filepath.FromSlash(preferRegular(found))), true
	}
	return "", false
}

// preferRegular returns the first name that is neither italic nor bold, or
// the first name. names must not be empty.
func preferRegular(names []string) string {
	for _, n := range names {
		lower := strings.ToLower(n)
		if !strings.Contains(lower, "italic") && !strings.Contains(lower, "bold") {
			return n
		}
	}
	return names[0]
}
