package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "c.yaml", `
window:
  width: 640
  height: 480
debug:
  show_fps: true
geometry:
  radius_top: 4
  radial_segments: 16
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.True(t, cfg.Debug.ShowFPS)
	assert.Equal(t, float32(4), cfg.Geometry.RadiusTop)
	assert.Equal(t, float32(16), cfg.Geometry.RadialSegments)
	// Untouched keys keep their defaults.
	assert.Equal(t, float32(6), cfg.Geometry.RadiusBottom)
	assert.Equal(t, "cylinder-lab", cfg.Window.Title)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "c.yaml", "window:\n  width: 640\n")
	t.Setenv("CYLINDER_LAB_WINDOW_WIDTH", "1024")
	t.Setenv("CYLINDER_LAB_GEOMETRY_HEIGHT", "33.5")
	t.Setenv("CYLINDER_LAB_DEBUG_SHOW_MEMALLOC", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, float32(33.5), cfg.Geometry.Height)
	assert.True(t, cfg.Debug.ShowMemAlloc)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeFile(t, "c.yaml", "window: [unclosed")
	cfg, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "config: parse "))
	assert.Equal(t, Default(), cfg)
}

func TestLoadBadEnvValue(t *testing.T) {
	t.Setenv("CYLINDER_LAB_WINDOW_TARGET_FPS", "fast")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Window.Width = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = cfg
	bad.Camera.Far = bad.Camera.Near
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = cfg
	bad.Window.TargetFPS = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "c.yaml")
	cfg := Default()
	cfg.Debug.ShowFPS = true
	cfg.Geometry.RadiusBottom = 9
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestParseDotEnv(t *testing.T) {
	vars, err := parseDotEnv(strings.NewReader(`
# comment
A=1
export B = "two words"
C='x'
=nokey
novalue
D=
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two words", "C": "x", "D": ""}, vars)
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	path := writeFile(t, ".env", "CYLINDER_LAB_TEST_KEEP=file\nCYLINDER_LAB_TEST_NEW=file\n")
	t.Setenv("CYLINDER_LAB_TEST_KEEP", "process")
	t.Setenv("CYLINDER_LAB_TEST_NEW", "")
	require.NoError(t, os.Unsetenv("CYLINDER_LAB_TEST_NEW"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "process", os.Getenv("CYLINDER_LAB_TEST_KEEP"))
	assert.Equal(t, "file", os.Getenv("CYLINDER_LAB_TEST_NEW"))
}

func TestLoadDotEnvMissing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
