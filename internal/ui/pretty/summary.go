package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats lift or round-trip statistics as a single line.
// Example: "120 records: 118 mapped (4 split pieces), 2 unmapped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, roundTrip bool) string {
	head := fmt.Sprintf("%d %s", stats.Total, plural(stats.Total, "record", "records"))
	if stats.Total == 0 {
		return s.Dim.Render("No records") + "\n"
	}

	var parts []string
	if roundTrip {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d passed", stats.Pass)))
		if stats.Fail > 0 {
			parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.Fail)))
		}
		return head + ": " + strings.Join(parts, ", ") + "\n"
	}

	mapped := fmt.Sprintf("%d mapped", stats.Mapped)
	if stats.Split > 0 {
		mapped += fmt.Sprintf(" (%d %s)", stats.Split, plural(stats.Split, "split piece", "split pieces"))
	}
	parts = append(parts, s.Success.Render(mapped))
	if missed := stats.Total - stats.Mapped; missed > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d unmapped", missed)))
	}
	return head + ": " + strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats statistics as a block with one line per status.
func (s *Styles) FormatSummary(stats runner.Stats, roundTrip bool) string {
	var builder strings.Builder

	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Records:   " + s.SummaryValue.Render(strconv.Itoa(stats.Total)) + "\n")
	if roundTrip {
		builder.WriteString("  Passed:    " + s.Success.Render(strconv.Itoa(stats.Pass)) + "\n")
		builder.WriteString("  Failed:    " + s.Failure.Render(strconv.Itoa(stats.Fail)) + "\n")
	} else {
		builder.WriteString("  Mapped:    " + s.Success.Render(strconv.Itoa(stats.Mapped)) + "\n")
		builder.WriteString("  Split:     " + s.SummaryValue.Render(strconv.Itoa(stats.Split)) + "\n")
	}

	statuses := stats.Statuses()
	if len(statuses) > 0 {
		builder.WriteString("\n")
		table := Table{
			Headers: []string{"Status", "Count"},
			Align:   []Align{AlignLeft, AlignRight},
			RowStyle: func(row []string) lipgloss.Style {
				return s.ForStatus(liftover.Status(row[0]))
			},
		}
		for _, status := range statuses {
			table.Rows = append(table.Rows, []string{status.String(), strconv.Itoa(stats.ByStatus[status])})
		}
		builder.WriteString(table.Render(s))
	}

	return builder.String()
}
