package liftover

// Status is the per-record outcome of a mapping call. Every input record gets
// exactly one; none of them is an error.
type Status string

const (
	StatusOK            Status = "OK"
	StatusBadInput      Status = "BAD_INPUT"
	StatusNoContig      Status = "NO_CONTIG"
	StatusUnmapped      Status = "UNMAPPED"
	StatusUnmappedStart Status = "UNMAPPED_START"
	StatusUnmappedSeg   Status = "UNMAPPED_SEG"
	StatusCrossesBlock  Status = "CROSSES_BLOCK"
	StatusSplit         Status = "SPLIT"

	// Stitching outcomes.
	StatusStitchedOK       Status = "STITCHED_OK"
	StatusStitchedWithGaps Status = "STITCHED_WITH_GAPS"
	StatusContigChange     Status = "CONTIG_CHANGE"
	StatusStrandChange     Status = "STRAND_CHANGE"
)

// String returns the status code as written to output files.
func (s Status) String() string {
	return string(s)
}

// Mapped reports whether the status carries mapped coordinates.
func (s Status) Mapped() bool {
	switch s {
	case StatusOK, StatusSplit, StatusStitchedOK, StatusStitchedWithGaps:
		return true
	default:
		return false
	}
}
