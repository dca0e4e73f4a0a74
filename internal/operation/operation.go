// Package operation runs validated filesystem removals with dry-run support.
package operation

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
)

// Operation represents a file system change that can be validated and executed.
//
// Validate checks the operation would succeed without performing it.
// Execute performs it and should only be called after Validate succeeds.
// Description returns the confirmation text printed once the operation is
// done (e.g. "Removed empty .goreleaser.yml").
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// RemoveFileOp deletes a single regular file.
type RemoveFileOp struct {
	Fs    afero.Fs
	Path  string // File to remove
	Label string // Confirmation text; defaults to "Removed <Path>"
}

func (op *RemoveFileOp) Validate(ctx context.Context) error {
	info, err := op.Fs.Stat(op.Path)
	if err != nil {
		return fmt.Errorf("cannot remove %s: %w", op.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot remove %s: is a directory", op.Path)
	}
	return nil
}

func (op *RemoveFileOp) Execute(ctx context.Context) error {
	if err := op.Fs.Remove(op.Path); err != nil {
		return fmt.Errorf("removing %s: %w", op.Path, err)
	}
	return nil
}

func (op *RemoveFileOp) Description() string {
	if op.Label != "" {
		return op.Label
	}
	return "Removed " + op.Path
}

// RemoveTreeOp deletes a directory and everything below it.
type RemoveTreeOp struct {
	Fs    afero.Fs
	Path  string // Directory to remove
	Label string // Confirmation text; defaults to "Removed <Path>/"
}

func (op *RemoveTreeOp) Validate(ctx context.Context) error {
	info, err := op.Fs.Stat(op.Path)
	if err != nil {
		return fmt.Errorf("cannot remove %s: %w", op.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot remove %s: not a directory", op.Path)
	}
	return nil
}

func (op *RemoveTreeOp) Execute(ctx context.Context) error {
	if err := op.Fs.RemoveAll(op.Path); err != nil {
		return fmt.Errorf("removing %s: %w", op.Path, err)
	}
	return nil
}

func (op *RemoveTreeOp) Description() string {
	if op.Label != "" {
		return op.Label
	}
	return "Removed " + op.Path + "/"
}
