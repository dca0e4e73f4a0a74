package cleanup

import (
	"context"
	"errors"
	"fmt"

	"github.com/simonhull/firebird-suite/postgen/internal/filesystem"
	"github.com/simonhull/firebird-suite/postgen/internal/operation"
	"github.com/simonhull/firebird-suite/postgen/internal/output"
	"github.com/simonhull/firebird-suite/postgen/internal/project"
)

// removeEmptyReleaseConfig drops .goreleaser.yml when the template rendered
// it blank (goreleaser disabled).
func (c *Cleaner) removeEmptyReleaseConfig(ctx context.Context) error {
	path := c.path(ReleaseConfigPath)
	ok, err := c.exists(path)
	if err != nil || !ok {
		return err
	}

	blank, err := filesystem.IsBlank(c.fs, path)
	if err != nil {
		return err
	}
	if !blank {
		output.Verbose("keeping release config", "path", path)
		return nil
	}

	return c.apply(ctx, path, &operation.RemoveFileOp{
		Fs:    c.fs,
		Path:  path,
		Label: "Removed empty .goreleaser.yml",
	}, false)
}

// removeOrphanReleaseWorkflow drops the release workflow once this run has
// removed the goreleaser config it depends on. A project that never had a
// config keeps its workflow.
func (c *Cleaner) removeOrphanReleaseWorkflow(ctx context.Context) error {
	path := c.path(ReleaseWorkflowPath)
	ok, err := c.exists(path)
	if err != nil || !ok {
		return err
	}

	config := c.path(ReleaseConfigPath)
	if !c.removed[config] {
		output.Verbose("release config not removed, keeping workflow", "path", path)
		return nil
	}
	hasConfig, err := c.exists(config)
	if err != nil {
		return err
	}
	if hasConfig {
		return nil
	}

	return c.apply(ctx, path, &operation.RemoveFileOp{
		Fs:    c.fs,
		Path:  path,
		Label: "Removed release.yml (no goreleaser)",
	}, false)
}

// removeEmptyCmdDir drops cmd/ as a unit when the first entry point found
// below it is blank, meaning the project was generated as a library.
func (c *Cleaner) removeEmptyCmdDir(ctx context.Context) error {
	dir := c.path(CmdDir)

	entry, found, err := filesystem.FindFirst(c.fs, dir, EntryPointPattern)
	if err != nil {
		return err
	}
	if !found {
		output.Verbose("no entry point found", "dir", dir)
		return nil
	}

	blank, err := filesystem.IsBlank(c.fs, entry)
	if err != nil {
		return err
	}
	if !blank {
		output.Verbose("keeping command directory", "entry", entry)
		return nil
	}

	return c.apply(ctx, dir, &operation.RemoveTreeOp{
		Fs:    c.fs,
		Path:  dir,
		Label: "Removed cmd/ (empty main.go, library project)",
	}, false)
}

// remindModuleInit tells the user to run go mod init when the template did
// not produce a go.mod. It only reads.
func (c *Cleaner) remindModuleInit(ctx context.Context) error {
	info, err := project.DetectModule(c.fs, c.root)
	switch {
	case err == nil:
		output.Verbose("module detected", "path", info.Path, "go", info.GoVersion)
		return nil
	case !errors.Is(err, project.ErrNoModule):
		// go.mod exists; its content is not ours to judge.
		output.Warn("could not parse go.mod", "err", err)
		return nil
	}

	modulePath := "<module_path>"
	answers, err := project.LoadAnswers(c.fs, c.root)
	if err != nil {
		output.Warn("could not read template answers", "err", err)
	} else {
		modulePath = answers.ModulePathOr(modulePath)
	}

	c.printer.Info(fmt.Sprintf("Note: Run 'go mod init %s' to initialize the module", modulePath))
	return nil
}

// removeSelf deletes the postgen executable. It must be the last step.
func (c *Cleaner) removeSelf(ctx context.Context) error {
	if c.self == "" {
		output.Verbose("no self path configured, skipping self removal")
		return nil
	}

	err := c.apply(ctx, c.self, &operation.RemoveFileOp{
		Fs:    c.fs,
		Path:  c.self,
		Label: "Removed " + c.self,
	}, !c.dryRun)
	if err != nil {
		return err
	}
	if !c.dryRun {
		output.Verbose("removed self", "path", c.self)
	}
	return nil
}
