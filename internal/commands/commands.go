package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// ErrMissingSubcommand is returned by Execute for an empty argument list.
var ErrMissingSubcommand = errors.New("missing subcommand")

// Command is a subcommand with its own flags. Run receives the positional
// arguments left after flag parsing.
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a flag set that reports errors instead of exiting and
// prints nothing; parse errors come back from Execute.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "cmd". A nil fs
// gets an empty flag set.
func (r *Registry) Register(name, summary string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Summary: summary, FlagSet: fs, Run: run}
}

// Parse interprets line as a terminal line. If line starts with "cmd "
// (case-sensitive), the rest is split on whitespace and returned with ok true.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) && line != strings.TrimSpace(prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, strings.TrimSpace(prefix)))
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand args[0] with args[1:] as flags and positional
// arguments. A command without flags gets args[1:] verbatim, so "-5" stays a
// positional argument.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return ErrMissingSubcommand
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	// Flag sets are reused, so values from the previous run are reset first.
	defined := 0
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		defined++
		_ = f.Value.Set(f.DefValue)
	})
	rest := args[1:]
	if defined > 0 {
		if err := cmd.FlagSet.Parse(rest); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		rest = cmd.FlagSet.Args()
	}
	if err := cmd.Run(rest); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Help returns one "name - summary" line per command, sorted by name.
func (r *Registry) Help() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n+" - "+r.cmds[n].Summary)
	}
	return out
}
