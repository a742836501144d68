package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/golift/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "blocks.tsv")
		content := []byte("chr1\t0\t10\tchr1B\t0\t10\t+\t60\n")

		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.ModTime.IsZero() {
			t.Error("ModTime should not be zero")
		}
		if len(info.Digest()) != 64 {
			t.Errorf("Digest() = %q, want 64 hex characters", info.Digest())
		}
	})

	t.Run("same content has same digest", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.tsv")
		b := filepath.Join(dir, "b.tsv")
		for _, p := range []string{a, b} {
			if err := os.WriteFile(p, []byte("same"), 0644); err != nil {
				t.Fatalf("setup: %v", err)
			}
		}

		_, infoA, errA := fsutil.ReadFile(context.Background(), a)
		_, infoB, errB := fsutil.ReadFile(context.Background(), b)
		if errA != nil || errB != nil {
			t.Fatalf("ReadFile() errors = %v, %v", errA, errB)
		}
		if infoA.Digest() != infoB.Digest() {
			t.Error("expected equal digests for equal content")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.tsv"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("expected ErrIsDirectory, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "any.tsv")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
