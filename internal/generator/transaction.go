package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Transaction represents a set of file writes that are committed together.
// If any write fails, files written earlier in the same commit are restored
// to their previous content (or removed if they did not exist), and
// directories the commit created are removed again.
type Transaction struct {
	operations  []fileOperation
	applied     []snapshot
	createdDirs []string // in creation order, shallowest first
	committed   bool
}

// fileOperation represents a single staged file write
type fileOperation struct {
	path    string
	content []byte
	mode    fs.FileMode
}

// snapshot records what a path held before the transaction wrote it
type snapshot struct {
	path    string
	existed bool
	content []byte
	mode    fs.FileMode
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{
		operations: make([]fileOperation, 0),
	}
}

// AddFile stages a file write operation (doesn't write yet)
func (t *Transaction) AddFile(path string, content []byte, mode fs.FileMode) {
	t.operations = append(t.operations, fileOperation{
		path:    path,
		content: content,
		mode:    mode,
	})
}

// Len returns the number of staged writes.
func (t *Transaction) Len() int {
	return len(t.operations)
}

// Commit writes all staged files to disk, rolling back on the first failure.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		snap, err := takeSnapshot(op.path)
		if err != nil {
			t.rollback()
			return err
		}

		dir := filepath.Dir(op.path)
		t.createdDirs = append(t.createdDirs, missingDirs(dir)...)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.rollback()
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		t.applied = append(t.applied, snap)
		if err := os.WriteFile(op.path, op.content, op.mode); err != nil {
			t.rollback()
			return fmt.Errorf("failed to write file %s: %w", op.path, err)
		}
	}

	t.committed = true
	t.applied = nil
	t.createdDirs = nil
	return nil
}

// Rollback undoes the writes of an uncommitted transaction (for use in defer).
// It is a no-op once Commit has succeeded.
func (t *Transaction) Rollback() {
	if !t.committed {
		t.rollback()
	}
}

// rollback restores every applied snapshot, newest first. Best effort.
func (t *Transaction) rollback() {
	for i := len(t.applied) - 1; i >= 0; i-- {
		snap := t.applied[i]
		if snap.existed {
			_ = os.WriteFile(snap.path, snap.content, snap.mode)
		} else {
			_ = os.Remove(snap.path)
		}
	}
	t.applied = nil

	// Deepest first; os.Remove leaves any directory that is not empty.
	for i := len(t.createdDirs) - 1; i >= 0; i-- {
		_ = os.Remove(t.createdDirs[i])
	}
	t.createdDirs = nil
}

// missingDirs lists dir and its ancestors that do not exist yet,
// shallowest first
func missingDirs(dir string) []string {
	var missing []string
	for {
		if _, err := os.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
			break
		}
		missing = append([]string{dir}, missing...)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return missing
}

func takeSnapshot(path string) (snapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{path: path}, nil
	}
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return snapshot{path: path, existed: true, content: content, mode: info.Mode().Perm()}, nil
}
