package gen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation is one staged scaffold write. Validate must pass before
// Execute is called; force disables the existing-file conflict check.
// Description feeds the dry-run listing, e.g. "Create Makefile (412 bytes)".
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes a single scaffold file. Empty content is valid
// (some generated files start blank), nil content is not.
type WriteFileOp struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Validate creates the parent directory (idempotent side effect) and,
// unless force is set, refuses to clobber an existing file.
func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}
