// Package cleanup tidies a project directory right after a scaffolding tool
// has rendered it.
//
// Template options that are switched off leave empty placeholder files
// behind. The Cleaner removes those, drops files that only make sense next
// to a removed placeholder, reminds the user about go.mod, and finally
// removes its own executable. Each step re-checks the disk, so running a
// step against a tree where its target is already gone does nothing.
package cleanup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/postgen/internal/filesystem"
	"github.com/simonhull/firebird-suite/postgen/internal/operation"
	"github.com/simonhull/firebird-suite/postgen/internal/output"
	"github.com/spf13/afero"
)

// Paths recognized under the target root.
var (
	ReleaseConfigPath   = ".goreleaser.yml"
	ReleaseWorkflowPath = filepath.Join(".github", "workflows", "release.yml")
	CmdDir              = "cmd"
	EntryPointPattern   = "**/main.go"
)

// Options configures a Cleaner.
type Options struct {
	Fs             afero.Fs  // Defaults to the OS filesystem
	Root           string    // Absolute project root
	Self           string    // Absolute path removed last; skipped when empty
	RemoveEmptyCmd bool      // Also remove cmd/ when its entry point is blank
	DryRun         bool      // Report removals without performing them
	Out            io.Writer // Confirmation lines (defaults to os.Stdout)
}

// Cleaner runs the post-generation cleanup against one project root.
type Cleaner struct {
	fs      afero.Fs
	root    string
	self    string
	cmdStep bool
	dryRun  bool
	printer *output.Printer

	// paths removed (or, in a dry run, claimed) so far; later checks treat
	// them as gone
	removed map[string]bool
}

// New creates a Cleaner from opts.
func New(opts Options) *Cleaner {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Cleaner{
		fs:      fsys,
		root:    opts.Root,
		self:    opts.Self,
		cmdStep: opts.RemoveEmptyCmd,
		dryRun:  opts.DryRun,
		printer: output.NewPrinter(out),
		removed: make(map[string]bool),
	}
}

// step is one stage of the cleanup.
type step struct {
	name string
	run  func(ctx context.Context) error
}

func (c *Cleaner) steps() []step {
	steps := []step{
		{"release config", c.removeEmptyReleaseConfig},
		{"release workflow", c.removeOrphanReleaseWorkflow},
	}
	if c.cmdStep {
		steps = append(steps, step{"command directory", c.removeEmptyCmdDir})
	}
	return append(steps,
		step{"module reminder", c.remindModuleInit},
		step{"self removal", c.removeSelf},
	)
}

// Run executes every step in order. The first error aborts the run;
// removals already done are kept, and the executable is left in place.
func (c *Cleaner) Run(ctx context.Context) error {
	output.Verbose("starting cleanup", "root", c.root, "dry_run", c.dryRun, "cmd_step", c.cmdStep)

	for _, s := range c.steps() {
		if err := ctx.Err(); err != nil {
			return err
		}
		output.Verbose("running step", "step", s.name)
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

func (c *Cleaner) path(rel string) string {
	return filepath.Join(c.root, rel)
}

// exists reports whether path is on disk and not already removed this run.
func (c *Cleaner) exists(path string) (bool, error) {
	if c.removed[path] {
		return false, nil
	}
	return filesystem.Exists(c.fs, path)
}

// apply executes op (or reports it in dry-run mode) and records its path.
func (c *Cleaner) apply(ctx context.Context, path string, op operation.Operation, quiet bool) error {
	err := operation.Execute(ctx, []operation.Operation{op}, operation.ExecuteOptions{
		DryRun: c.dryRun,
		Writer: c.printer.Writer(),
		Quiet:  quiet,
	})
	if err != nil {
		return err
	}
	c.removed[path] = true
	return nil
}
