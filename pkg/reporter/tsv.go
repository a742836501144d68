package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// TSVReporter writes a header row and one tab-separated line per record.
type TSVReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewTSVReporter creates a new TSV reporter.
func NewTSVReporter(opts Options) *TSVReporter {
	return &TSVReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TSVReporter) Report(ctx context.Context, report *Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("write TSV: %w", flushErr)
		}
	}()

	if _, err := r.bw.WriteString(strings.Join(report.Columns, "\t") + "\n"); err != nil {
		return fmt.Errorf("write TSV: %w", err)
	}
	for i, row := range report.Rows {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if _, err := r.bw.WriteString(strings.Join(rowText(row), "\t") + "\n"); err != nil {
			return fmt.Errorf("write TSV: %w", err)
		}
	}
	return nil
}
