package pretty

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	columnGap      = 2
	heavySeparator = "="
	lightSeparator = "-"
	maxCellWidth   = 60
)

// Align is the horizontal alignment of a table column.
type Align uint8

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a plain-text table with a styled header. Column widths are taken
// from the widest cell; cells longer than maxCellWidth are truncated from the
// left so the end of long paths stays visible.
type Table struct {
	Headers []string
	Align   []Align
	Rows    [][]string

	// RowStyle, when set, picks a style for the first cell of each row.
	RowStyle func(row []string) lipgloss.Style
}

// Render formats the table with the given styles.
func (t *Table) Render(s *Styles) string {
	widths := t.columnWidths()

	var builder strings.Builder
	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = s.TableHeader.Render(pad(h, widths[i], t.align(i)))
	}
	builder.WriteString(strings.Join(header, strings.Repeat(" ", columnGap)))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(separator(widths, heavySeparator)))
	builder.WriteString("\n")

	for _, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = truncateLeft(row[i], maxCellWidth)
			}
			cells[i] = pad(cell, widths[i], t.align(i))
		}
		if t.RowStyle != nil && len(cells) > 0 {
			cells[0] = t.RowStyle(row).Render(cells[0])
		}
		builder.WriteString(strings.TrimRight(strings.Join(cells, strings.Repeat(" ", columnGap)), " "))
		builder.WriteString("\n")
	}

	builder.WriteString(s.TableSeparator.Render(separator(widths, lightSeparator)))
	builder.WriteString("\n")
	return builder.String()
}

func (t *Table) align(col int) Align {
	if col < len(t.Align) {
		return t.Align[col]
	}
	return AlignLeft
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], min(utf8.RuneCountInString(row[i]), maxCellWidth))
		}
	}
	return widths
}

func separator(widths []int, char string) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	total += columnGap * max(0, len(widths)-1)
	return strings.Repeat(char, total)
}

// pad pads s to width. This must be called BEFORE applying ANSI styles.
func pad(s string, width int, align Align) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if align == AlignRight {
		return fill + s
	}
	return s + fill
}

func truncateLeft(s string, maxLen int) string {
	n := utf8.RuneCountInString(s)
	if n <= maxLen {
		return s
	}
	runes := []rune(s)
	return "…" + string(runes[n-maxLen+1:])
}
