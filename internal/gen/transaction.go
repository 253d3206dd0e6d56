package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// Transaction stages scaffold writes so a failed generation never leaves
// a half-built plugin behind.
type Transaction struct {
	staged    []stagedWrite
	committed bool
}

type stagedWrite struct {
	path    string
	content []byte
	mode    os.FileMode
}

func NewTransaction() *Transaction {
	return &Transaction{staged: make([]stagedWrite, 0)}
}

// AddFile stages a write; nothing touches the disk until Commit.
func (t *Transaction) AddFile(path string, content []byte, mode os.FileMode) {
	t.staged = append(t.staged, stagedWrite{path: path, content: content, mode: mode})
}

// Commit writes every staged file in order. When a write fails, the
// files written so far are removed and the error is returned.
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	written := make([]string, 0, len(t.staged))
	for _, w := range t.staged {
		dir := filepath.Dir(w.path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.remove(written)
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if err := os.WriteFile(w.path, w.content, w.mode); err != nil {
			t.remove(written)
			return fmt.Errorf("failed to write file %s: %w", w.path, err)
		}
		written = append(written, w.path)
	}

	t.committed = true
	return nil
}

// remove deletes the given paths, best effort.
func (t *Transaction) remove(paths []string) {
	for _, path := range paths {
		os.Remove(path)
	}
}

// Rollback removes whatever has landed on disk for this transaction.
// After a successful Commit it is a no-op, so it is safe to defer.
func (t *Transaction) Rollback() {
	if t.committed {
		return
	}
	paths := make([]string, 0, len(t.staged))
	for _, w := range t.staged {
		if _, err := os.Stat(w.path); err == nil {
			paths = append(paths, w.path)
		}
	}
	t.remove(paths)
}
