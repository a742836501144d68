package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golift/pkg/fsutil"
)

// output is a destination for records. Files are written atomically: they
// only replace the target once commit succeeds.
type output struct {
	io.Writer
	file *fsutil.AtomicFile
}

// openOutput returns stdout for an empty path or "-", otherwise an atomic file.
func openOutput(cmd *cobra.Command, path string) (*output, error) {
	if path == "" || path == stdinName {
		return &output{Writer: cmd.OutOrStdout()}, nil
	}
	f, err := fsutil.CreateAtomic(path, fsutil.DefaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return &output{Writer: f, file: f}, nil
}

// commit publishes a file output. It is a no-op for stdout.
func (o *output) commit() error {
	if o.file == nil {
		return nil
	}
	if err := o.file.Commit(); err != nil {
		return fmt.Errorf("write output %s: %w", o.file.Name(), err)
	}
	return nil
}

// abort discards an uncommitted file output.
func (o *output) abort() {
	if o.file != nil {
		o.file.Abort()
	}
}
