package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/golift/internal/logging"
	"github.com/yaklabco/golift/pkg/fsutil"
)

// stdinName is the input path that selects standard input.
const stdinName = "-"

// openInput returns the content source for path. An empty path or "-" reads
// the command's stdin; when that is a terminal a hint is logged so the user
// knows golift is waiting.
func openInput(ctx context.Context, cmd *cobra.Command, path string) (io.Reader, error) {
	if path == "" || path == stdinName {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			logging.FromContext(ctx).Info("reading queries from the terminal; end with Ctrl-D")
		}
		return in, nil
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	logging.FromContext(ctx).Debug("read input", logging.FieldInput, path, logging.FieldDigest, info.Digest())
	return bytes.NewReader(content), nil
}
