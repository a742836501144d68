// Package query parses coordinate queries: CHR:POS points, BED intervals and
// CHR:START-END regions. Malformed input never aborts a read; it produces a
// Query whose Err is set so the caller can emit a BAD_INPUT record.
package query

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format names an input syntax.
type Format string

const (
	// FormatChromPos is "contig:pos" with a 1-based position.
	FormatChromPos Format = "chrpos"
	// FormatBED is a tab-separated BED line, 0-based half-open.
	FormatBED Format = "bed"
	// FormatRegion is "contig:start-end", 1-based inclusive on both ends.
	FormatRegion Format = "region"
)

// ParseFormat validates a format name. An empty name means chrpos.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatChromPos:
		return FormatChromPos, nil
	case FormatBED:
		return FormatBED, nil
	case FormatRegion:
		return FormatRegion, nil
	default:
		return "", fmt.Errorf("unknown input format %q; valid formats: chrpos, bed, region", s)
	}
}

// IsInterval reports whether the format describes ranges rather than points.
func (f Format) IsInterval() bool {
	return f == FormatBED || f == FormatRegion
}

// ErrBadInput marks a query line that could not be parsed.
var ErrBadInput = errors.New("bad input")

// Query is one parsed input line. Start and End are 0-based; for points End is
// Start+1. Raw keeps the original text for error reporting.
type Query struct {
	Line   int
	Raw    string
	Contig string
	Start  uint64
	End    uint64
	Err    error
}

// OK reports whether the line parsed.
func (q Query) OK() bool {
	return q.Err == nil
}

// ParsePoint parses "contig:pos" with a 1-based pos and returns the 0-based position.
func ParsePoint(raw string) (string, uint64, error) {
	contig, pos, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || contig == "" || strings.Contains(pos, ":") {
		return "", 0, fmt.Errorf("%w: %q is not contig:position", ErrBadInput, raw)
	}
	oneBased, err := strconv.ParseUint(pos, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: position %q is not an integer", ErrBadInput, pos)
	}
	if oneBased < 1 {
		return "", 0, fmt.Errorf("%w: position must be >= 1", ErrBadInput)
	}
	return contig, oneBased - 1, nil
}

// ParseBED parses the first three columns of a BED line. Extra columns are ignored.
func ParseBED(raw string) (string, uint64, uint64, error) {
	f := strings.Split(strings.TrimRight(raw, "\r\n"), "\t")
	if len(f) < 3 || f[0] == "" {
		return "", 0, 0, fmt.Errorf("%w: BED line needs contig, start and end", ErrBadInput)
	}
	start, err := strconv.ParseUint(strings.TrimSpace(f[1]), 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: start %q is not a non-negative integer", ErrBadInput, f[1])
	}
	end, err := strconv.ParseUint(strings.TrimSpace(f[2]), 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: end %q is not a non-negative integer", ErrBadInput, f[2])
	}
	if start >= end {
		return "", 0, 0, fmt.Errorf("%w: start %d must be < end %d", ErrBadInput, start, end)
	}
	return f[0], start, end, nil
}

// ParseRegion parses "contig:start-end" (1-based, inclusive). Reversed ends are
// swapped. The result is converted to a 0-based half-open interval.
func ParseRegion(raw string) (string, uint64, uint64, error) {
	contig, span, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || contig == "" {
		return "", 0, 0, fmt.Errorf("%w: %q is not contig:start-end", ErrBadInput, raw)
	}
	lo, hi, ok := strings.Cut(span, "-")
	if !ok {
		return "", 0, 0, fmt.Errorf("%w: %q is not contig:start-end", ErrBadInput, raw)
	}
	a, errA := strconv.ParseUint(lo, 10, 64)
	b, errB := strconv.ParseUint(hi, 10, 64)
	if errA != nil || errB != nil {
		return "", 0, 0, fmt.Errorf("%w: region bounds in %q are not integers", ErrBadInput, raw)
	}
	if a < 1 || b < 1 {
		return "", 0, 0, fmt.Errorf("%w: region bounds must be >= 1", ErrBadInput)
	}
	if a > b {
		a, b = b, a
	}
	return contig, a - 1, b, nil
}

// Parse parses one line in the given format. It never returns an error;
// failures are recorded in Query.Err.
func Parse(format Format, raw string) Query {
	q := Query{Raw: raw}
	switch format {
	case FormatBED:
		q.Contig, q.Start, q.End, q.Err = ParseBED(raw)
	case FormatRegion:
		q.Contig, q.Start, q.End, q.Err = ParseRegion(raw)
	default:
		q.Contig, q.Start, q.Err = ParsePoint(raw)
		if q.Err == nil {
			q.End = q.Start + 1
		}
	}
	if q.Err != nil {
		// BED rows keep their contig so the output row can still name it.
		if format == FormatBED {
			q.Contig = firstField(raw)
		} else {
			q.Contig = ""
		}
		q.Start, q.End = 0, 0
	}
	return q
}

func firstField(raw string) string {
	head, _, _ := strings.Cut(raw, "\t")
	return strings.TrimSpace(head)
}

// skippable reports whether a line carries no query.
func skippable(format Format, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if format.IsInterval() {
		return strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "track ") ||
			strings.HasPrefix(trimmed, "browser ")
	}
	return false
}

// ReadAll parses every query in r. Only read errors are returned.
func ReadAll(r io.Reader, format Format) ([]Query, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var out []Query
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if skippable(format, line) {
			continue
		}
		q := Parse(format, line)
		q.Line = ln
		out = append(out, q)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return out, nil
}
