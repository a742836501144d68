package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/golift/internal/ui/pretty"
)

// SummaryReporter prints counters instead of records. Check reports are
// printed as a table of files.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, report *Report) error {
	var text string
	if report.Kind == KindCheck {
		text = r.checkTable(report)
	} else {
		text = r.styles.FormatSummary(report.Stats, report.Kind.RoundTrip())
	}
	if _, err := io.WriteString(r.out, text); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func (r *SummaryReporter) checkTable(report *Report) string {
	table := pretty.Table{
		// The error column is printed below the table.
		Headers: report.Columns[:len(report.Columns)-1],
		Align: []pretty.Align{
			pretty.AlignLeft, pretty.AlignRight, pretty.AlignRight, pretty.AlignRight, pretty.AlignLeft,
		},
		RowStyle: func(row []string) lipgloss.Style {
			switch row[4] {
			case CheckError:
				return r.styles.Failure
			case CheckOverlaps:
				return r.styles.Warning
			default:
				return r.styles.FilePath
			}
		},
	}

	var errs []string
	for _, row := range report.Rows {
		cells := rowText(row)
		table.Rows = append(table.Rows, cells[:len(cells)-1])
		if msg := cells[len(cells)-1]; msg != "" {
			errs = append(errs, r.styles.Error.Render("error")+"  "+msg)
		}
	}

	var builder strings.Builder
	builder.WriteString(table.Render(r.styles))
	for _, e := range errs {
		builder.WriteString(e + "\n")
	}
	return builder.String()
}
