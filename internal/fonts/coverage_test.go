package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func writeGoFont(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func TestCovers(t *testing.T) {
	path := writeGoFont(t, t.TempDir(), "Go-Regular.ttf")

	ok, err := Covers(path, "Ось X")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Covers(path, "轴")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCoversRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Fake.ttf")
	require.NoError(t, os.WriteFile(path, []byte("glyphs"), 0o644))
	_, err := Covers(path, "a")
	assert.Error(t, err)
}

func TestFindCovering(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken-Regular.ttf"), []byte("glyphs"), 0o644))
	want := writeGoFont(t, dir, "sub/Go-Bold.ttf")

	path, ok := FindCovering("Применить", dir)
	require.True(t, ok)
	assert.Equal(t, want, path)

	_, ok = FindCovering("轴", dir)
	assert.False(t, ok)
}
