// Package gen provides validated, transactional file operations for the
// scaffold generator.
package gen

import (
	"context"
	"fmt"

	"github.com/oakensoul/aida/internal/output"
)

// ExecuteOptions configures how staged operations run.
type ExecuteOptions struct {
	DryRun bool
	Force  bool
}

// Execute validates every operation before running any of them, so a
// conflict on the last file is caught before the first file is written.
// A dry run prints what would be written and touches nothing.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for _, op := range ops {
		if opts.DryRun {
			output.Step("[dry run] " + op.Description())
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		output.Verbose(op.Description())
	}

	return nil
}
