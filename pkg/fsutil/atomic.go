package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// ErrCommitted is returned when an AtomicFile is used after Commit or Abort.
var ErrCommitted = errors.New("atomic file already closed")

// AtomicFile is an output file that only appears at its final path once
// Commit succeeds. Until then writes go to a temp file in the same directory.
type AtomicFile struct {
	path string
	mode os.FileMode
	tmp  *os.File
	done bool
}

// CreateAtomic starts an atomic write to path. If mode is 0, DefaultFileMode is used.
func CreateAtomic(path string, mode os.FileMode) (*AtomicFile, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &AtomicFile{path: path, mode: mode, tmp: tmp}, nil
}

// Name returns the final path.
func (f *AtomicFile) Name() string {
	return f.path
}

// Write implements io.Writer.
func (f *AtomicFile) Write(p []byte) (int, error) {
	if f.done {
		return 0, ErrCommitted
	}
	return f.tmp.Write(p)
}

// Commit syncs the temp file, sets its mode and renames it into place.
// On failure the temp file is removed.
func (f *AtomicFile) Commit() error {
	if f.done {
		return ErrCommitted
	}
	f.done = true

	tmpPath := f.tmp.Name()
	fail := func(format string, err error) error {
		_ = f.tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf(format, err)
	}

	if err := f.tmp.Sync(); err != nil {
		return fail("sync temp file: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		return fail("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, f.mode); err != nil {
		return fail("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fail("rename temp file: %w", err)
	}
	return nil
}

// Abort discards everything written. It is a no-op after Commit, so it can
// be deferred.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}

// WriteAtomic writes content to path atomically using a temp file and rename.
// If mode is 0, DefaultFileMode (0644) is used. On error the original file
// remains untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	f, err := CreateAtomic(path, mode)
	if err != nil {
		return err
	}
	defer f.Abort()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return f.Commit()
}
