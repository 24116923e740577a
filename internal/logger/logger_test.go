package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)
}

func TestLogWritesMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	l := New(path)
	l.now = fixedClock

	l.Log("hello")
	l.Logf("axis=%s value=%g", "Y", 42.0)

	want := []string{
		"[2026-10-14 09:30:00] hello",
		"[2026-10-14 09:30:00] axis=Y value=42",
	}
	assert.Equal(t, want, l.Lines())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, "\n")+"\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := New("")
	l.Log("x")
	assert.Len(t, l.Lines(), 1)
}

func TestHistoryIsBounded(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+20; i++ {
		l.Logf("line %d", i)
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[0], "line 20"))
}

func TestLinesReturnsCopy(t *testing.T) {
	l := New("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}
