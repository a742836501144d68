// Package reporter writes lift, round-trip and check results in the
// supported output formats.
package reporter

import (
	"context"
	"fmt"
)

// Reporter formats and writes one report.
type Reporter interface {
	// Report writes formatted output for the given report.
	Report(ctx context.Context, report *Report) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Title == "" {
		opts.Title = defaults.Title
	}

	format := opts.Format
	if format == "" {
		format = FormatTSV
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	default:
		return NewTSVReporter(opts), nil
	}
}
