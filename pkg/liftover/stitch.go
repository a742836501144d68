package liftover

import (
	"fmt"
	"strings"

	"github.com/yaklabco/golift/pkg/block"
)

// GapKind classifies a discontinuity between two consecutive blocks.
type GapKind string

const (
	GapA            GapKind = "GAP_A"
	GapB            GapKind = "GAP_B"
	OverlapB        GapKind = "OVERLAP_B"
	GapContigChange GapKind = "CONTIG_CHANGE"
	GapStrandChange GapKind = "STRAND_CHANGE"
)

// Gap annotates the join between two consecutive blocks of a stitched interval.
//
// For GAP_A the range is on genome A; for GAP_B and OVERLAP_B it is on genome B.
// Ranges are 0-based half-open. From and To are set only for the change kinds
// and hold contig names or strands.
type Gap struct {
	Kind  GapKind
	Start uint64
	End   uint64
	From  string
	To    string
}

// Size is the number of bases in the gap or overlap.
func (g Gap) Size() uint64 {
	return g.End - g.Start
}

// String formats the gap with 1-based inclusive coordinates, e.g.
// "GAP_A:5@A:111→115" or "CONTIG_CHANGE@B:chr1→chr2".
func (g Gap) String() string {
	switch g.Kind {
	case GapA:
		return fmt.Sprintf("%s:%d@A:%d→%d", g.Kind, g.Size(), g.Start+1, g.End)
	case GapB, OverlapB:
		return fmt.Sprintf("%s:%d@B:%d→%d", g.Kind, g.Size(), g.Start+1, g.End)
	case GapContigChange, GapStrandChange:
		return fmt.Sprintf("%s@B:%s→%s", g.Kind, g.From, g.To)
	default:
		return string(g.Kind)
	}
}

// FormatGaps joins gap annotations with "; ". No gaps gives "".
func FormatGaps(gaps []Gap) string {
	parts := make([]string, len(gaps))
	for i, g := range gaps {
		parts[i] = g.String()
	}
	return strings.Join(parts, "; ")
}

// StitchResult is one B span covering an interval that may run across several
// blocks. B fields are set only when Status.Mapped() is true.
type StitchResult struct {
	ContigA string
	StartA  uint64
	EndA    uint64
	ContigB string
	StartB  uint64
	EndB    uint64
	Strand  block.Strand
	Status  Status
	Blocks  int
	Gaps    []Gap
}

// Stitch maps [startA, endA) to a single B span. Both the first and the last
// base must be covered and every block in between must land on the same B
// contig and strand as the first one. Gaps between those blocks are reported
// but do not prevent the stitch.
func (x *Index) Stitch(contig string, startA, endA uint64) StitchResult {
	res := StitchResult{ContigA: contig, StartA: startA, EndA: endA}
	if startA >= endA {
		res.Status = StatusBadInput
		return res
	}
	list := x.byContig[contig]
	if len(list) == 0 {
		res.Status = StatusNoContig
		return res
	}

	i, okStart := search(list, startA)
	j, okEnd := search(list, endA-1)
	if !okStart || !okEnd {
		res.Status = StatusUnmapped
		return res
	}
	// Only possible with overlapping blocks; list[j] then holds the whole interval.
	if j < i {
		i = j
	}

	first, last := list[i], list[j]
	if i == j {
		res.ContigB = first.ContigB
		res.StartB, res.EndB = first.MapRange(startA, endA)
		res.Strand = first.Strand
		res.Status = StatusOK
		res.Blocks = 1
		return res
	}

	span := list[i : j+1]
	res.Blocks = len(span)
	res.Gaps = collectGaps(span)
	for _, b := range span[1:] {
		if b.ContigB != first.ContigB {
			res.Status = StatusContigChange
			return res
		}
		if b.Strand != first.Strand {
			res.Status = StatusStrandChange
			return res
		}
	}

	sB := first.MapPoint(startA)
	eB := last.MapPoint(endA - 1)
	res.ContigB = first.ContigB
	res.StartB = min(sB, eB)
	res.EndB = max(sB, eB) + 1
	res.Strand = first.Strand
	if len(res.Gaps) == 0 {
		res.Status = StatusStitchedOK
	} else {
		res.Status = StatusStitchedWithGaps
	}
	return res
}

// collectGaps annotates each join of a run of consecutive blocks. B-side gaps
// are reported only between blocks on the same B contig and strand; on the
// reverse strand the walk over B runs downwards.
func collectGaps(span []block.Block) []Gap {
	var gaps []Gap
	for k := 1; k < len(span); k++ {
		cur, next := span[k-1], span[k]
		if cur.ContigB != next.ContigB {
			gaps = append(gaps, Gap{Kind: GapContigChange, From: cur.ContigB, To: next.ContigB})
		}
		if cur.Strand != next.Strand {
			gaps = append(gaps, Gap{Kind: GapStrandChange, From: cur.Strand.String(), To: next.Strand.String()})
		}
		if next.StartA > cur.EndA {
			gaps = append(gaps, Gap{Kind: GapA, Start: cur.EndA, End: next.StartA})
		}
		if cur.ContigB != next.ContigB || cur.Strand != next.Strand {
			continue
		}

		// [lo, hi) on B lies strictly between the two blocks when lo < hi;
		// hi < lo means they overlap by lo-hi bases.
		lo, hi := cur.EndB, next.StartB
		if cur.Strand == block.StrandReverse {
			lo, hi = next.EndB, cur.StartB
		}
		switch {
		case hi > lo:
			gaps = append(gaps, Gap{Kind: GapB, Start: lo, End: hi})
		case lo > hi:
			gaps = append(gaps, Gap{Kind: OverlapB, Start: hi, End: lo})
		}
	}
	return gaps
}

// stitchResult adapts a Stitch outcome to the interval result shape.
func (x *Index) stitchResult(contig string, startA, endA uint64) IntervalResult {
	st := x.Stitch(contig, startA, endA)
	res := IntervalResult{
		ContigA: contig,
		StartA:  startA,
		EndA:    endA,
		Status:  st.Status,
		Gaps:    st.Gaps,
	}
	if st.Status.Mapped() {
		res.Mapped = true
		res.Segments = []Segment{{
			ContigA: contig,
			StartA:  startA,
			EndA:    endA,
			ContigB: st.ContigB,
			StartB:  st.StartB,
			EndB:    st.EndB,
			Strand:  st.Strand,
			Status:  st.Status,
		}}
	}
	return res
}
