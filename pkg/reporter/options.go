package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout or an -o file).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output of the summary format.
	// Values: "auto" (default), "always", "never"
	Color string

	// Compact uses minified JSON.
	Compact bool

	// Title is the document title of HTML reports.
	Title string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatTSV,
		Color:  "auto",
		Title:  "golift report",
	}
}
