package commands

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd axis Y")
	assert.True(t, ok)
	assert.Equal(t, []string{"axis", "Y"}, args)

	args, ok = Parse("cmd")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("hello there")
	assert.False(t, ok)
	_, ok = Parse("command axis")
	assert.False(t, ok)
}

func TestExecuteRunsWithPositionalArgs(t *testing.T) {
	r := NewRegistry()
	var got []string
	r.Register("value", "set value", nil, func(args []string) error {
		got = args
		return nil
	})
	require.NoError(t, r.Execute([]string{"value", "42"}))
	assert.Equal(t, []string{"42"}, got)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", "always fails", nil, func([]string) error { return boom })

	assert.ErrorIs(t, r.Execute(nil), ErrMissingSubcommand)
	assert.EqualError(t, r.Execute([]string{"nope"}), "unknown command: nope")
	assert.ErrorIs(t, r.Execute([]string{"fail"}), boom)

	fs := NewFlagSet("flagged")
	fs.Bool("on", false, "")
	r.Register("flagged", "has a flag", fs, func([]string) error { return nil })
	assert.Error(t, r.Execute([]string{"flagged", "--undefined"}))
}

func TestExecuteWithoutFlagsKeepsDashArgs(t *testing.T) {
	r := NewRegistry()
	var got []string
	r.Register("value", "set value", nil, func(args []string) error {
		got = args
		return nil
	})
	require.NoError(t, r.Execute([]string{"value", "-5"}))
	assert.Equal(t, []string{"-5"}, got)

	require.NoError(t, r.Execute([]string{"value", "--", "-1"}))
	assert.Equal(t, []string{"--", "-1"}, got)
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("fps")
	show := fs.Bool("show", false, "")
	var seen []bool
	r.Register("fps", "fps overlay", fs, func([]string) error {
		seen = append(seen, *show)
		return nil
	})
	require.NoError(t, r.Execute([]string{"fps", "--show"}))
	require.NoError(t, r.Execute([]string{"fps"}))
	assert.Equal(t, []bool{true, false}, seen)
}

func TestHelpSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("reset", "reset matrix", flag.NewFlagSet("reset", flag.ContinueOnError), func([]string) error { return nil })
	r.Register("apply", "apply matrix", nil, func([]string) error { return nil })
	assert.Equal(t, []string{"apply - apply matrix", "reset - reset matrix"}, r.Help())
}
