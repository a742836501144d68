package runner

import (
	"context"

	"github.com/yaklabco/golift/pkg/liftover"
)

// FileOutcome is the result of checking one block file.
type FileOutcome struct {
	Path     string
	Blocks   int
	Contigs  []liftover.ContigStats
	Overlaps []liftover.Overlap

	// Digest is the hex SHA-256 of the file content.
	Digest string

	// Error is set if the file could not be read or parsed.
	Error error
}

// CheckResult is the overall result of CheckFiles.
type CheckResult struct {
	// Files is ordered by path.
	Files []FileOutcome

	FilesErrored      int
	FilesWithOverlaps int
	BlocksTotal       int
}

// HasFailures reports whether any file failed to parse.
func (r *CheckResult) HasFailures() bool {
	return r != nil && r.FilesErrored > 0
}

// HasOverlaps reports whether any file has overlapping blocks.
func (r *CheckResult) HasOverlaps() bool {
	return r != nil && r.FilesWithOverlaps > 0
}

// CheckFiles discovers block files under opts.Paths, parses and indexes each
// one concurrently, and reports per-file statistics and overlaps.
func CheckFiles(ctx context.Context, opts Options) (*CheckResult, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	outcomes, err := Map(ctx, files, opts.Jobs, func(path string) FileOutcome {
		return CheckFile(ctx, path)
	})
	result := &CheckResult{Files: make([]FileOutcome, 0, len(outcomes))}
	for _, outcome := range outcomes {
		if outcome.Path == "" {
			continue
		}
		result.Files = append(result.Files, outcome)
		switch {
		case outcome.Error != nil:
			result.FilesErrored++
		case len(outcome.Overlaps) > 0:
			result.FilesWithOverlaps++
		}
		result.BlocksTotal += outcome.Blocks
	}
	return result, err
}

// CheckFile reads and indexes a single block file.
func CheckFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}
	idx, info, err := LoadIndex(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Digest = info.Digest()
	outcome.Blocks = idx.Len()
	outcome.Contigs = idx.Stats()
	outcome.Overlaps = idx.Overlaps()
	return outcome
}
