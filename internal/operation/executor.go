package operation

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Writer io.Writer // Where confirmations go (defaults to os.Stdout)
	Quiet  bool      // Skip the confirmation line
}

// Execute validates every operation, then executes (or, in dry-run mode,
// reports) each one in order. The first failure stops the run; operations
// already executed are not undone.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.DryRun {
			if !opts.Quiet {
				fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			}
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		if !opts.Quiet {
			fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
		}
	}

	return nil
}
