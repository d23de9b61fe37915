package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun   bool
	Resolver *Resolver // Decides conflicts; nil makes any changed file an error
	Writer   io.Writer // Where to write output (defaults to os.Stderr)
}

// Execute validates every operation, then commits all of their writes in a
// single transaction. Nothing is written if any validation fails.
//
// A dry run never consults opts.Resolver: changed files are reported as
// conflicts instead of being decided.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if opts.DryRun {
		opts.Resolver = NewResolverWithStrategy(pendingStrategy{}, io.Discard)
	}

	// Phase 1: Validate all operations
	for _, op := range ops {
		if err := op.Validate(ctx, opts.Resolver); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	// Phase 2: Report only
	if opts.DryRun {
		for _, op := range ops {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
		}
		return nil
	}

	// Phase 3: Commit atomically
	tx := NewTransaction()
	for _, op := range ops {
		op.Stage(tx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	for _, op := range ops {
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}
	return nil
}
