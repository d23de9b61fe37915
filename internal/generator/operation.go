package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Operation represents a file system change that is validated, then staged
// into a Transaction.
//
// Validate checks whether and how the operation should apply. It may consult
// the resolver when the target already exists with different content.
//
// Stage adds the operation's writes (if any) to the transaction.
//
// Description returns a human-readable description for output
// (e.g., "Create pyspark/ml/param/shared.py (24310 bytes)").
type Operation interface {
	Validate(ctx context.Context, resolver *Resolver) error
	Stage(tx *Transaction)
	Description() string
}

type writeAction int

const (
	actionCreate writeAction = iota
	actionOverwrite
	actionUnchanged
	actionSkip
	actionConflict
)

// WriteFileOp writes generated content to a file.
//
// Validation behavior:
//   - Rejects nil content (empty is OK)
//   - A missing file is created
//   - A file with identical content is left alone
//   - A file with different content is resolved by the Resolver; without a
//     resolver this is an error
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)

	action writeAction
}

func (op *WriteFileOp) Validate(ctx context.Context, resolver *Resolver) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	existing, err := os.ReadFile(op.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		op.action = actionCreate
		return nil
	case err != nil:
		return fmt.Errorf("cannot read %s: %w", op.Path, err)
	case bytes.Equal(existing, op.Content):
		op.action = actionUnchanged
		return nil
	case resolver == nil:
		return fmt.Errorf("file already exists: %s", op.Path)
	}

	resolution, err := resolver.ResolveConflict(op.Path, existing, op.Content)
	if err != nil {
		return err
	}
	switch resolution {
	case Overwrite:
		op.action = actionOverwrite
	case Skip:
		op.action = actionSkip
	case Pending:
		op.action = actionConflict
	default:
		return fmt.Errorf("%s: %w", op.Path, ErrCancelled)
	}
	return nil
}

func (op *WriteFileOp) Stage(tx *Transaction) {
	if op.Writes() {
		tx.AddFile(op.Path, op.Content, op.Mode)
	}
}

// Writes reports whether the validated operation changes the file on disk.
func (op *WriteFileOp) Writes() bool {
	return op.action == actionCreate || op.action == actionOverwrite
}

// Skipped reports whether the resolver chose to keep the existing file.
func (op *WriteFileOp) Skipped() bool {
	return op.action == actionSkip
}

func (op *WriteFileOp) Description() string {
	switch op.action {
	case actionOverwrite:
		return fmt.Sprintf("Overwrite %s (%d bytes)", op.Path, len(op.Content))
	case actionUnchanged:
		return fmt.Sprintf("Unchanged %s", op.Path)
	case actionSkip:
		return fmt.Sprintf("Skip %s (kept existing file)", op.Path)
	case actionConflict:
		return fmt.Sprintf("Would conflict %s (existing file differs)", op.Path)
	default:
		return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
	}
}
