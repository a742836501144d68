package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatTSV     Format = "tsv"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
	FormatHTML    Format = "html"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "tsv", "":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	case "summary":
		return FormatSummary, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: tsv, json, summary, html", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatTSV, FormatJSON, FormatSummary, FormatHTML:
		return true
	default:
		return false
	}
}
