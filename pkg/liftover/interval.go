package liftover

import (
	"fmt"

	"github.com/yaklabco/golift/pkg/block"
)

// Policy decides what happens to an interval that runs past the end of the
// block covering its start.
type Policy string

const (
	// PolicyReject reports CROSSES_BLOCK and maps nothing.
	PolicyReject Policy = "reject"
	// PolicySplit partitions the interval into per-block pieces and gaps.
	PolicySplit Policy = "split"
	// PolicyStitch maps the interval onto one B span across several blocks,
	// annotating gaps between them.
	PolicyStitch Policy = "stitch"
)

// ParsePolicy validates a policy name. An empty name means reject.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicySplit:
		return PolicySplit, nil
	case PolicyStitch:
		return PolicyStitch, nil
	default:
		return "", fmt.Errorf("unknown policy %q; valid policies: reject, split, stitch", s)
	}
}

// PolicyFromFlags resolves the command-line switches. Strict wins over split
// when both are given; this matches the historical behaviour of the tool.
func PolicyFromFlags(strict, split, stitch bool) Policy {
	switch {
	case strict:
		return PolicyReject
	case split:
		return PolicySplit
	case stitch:
		return PolicyStitch
	default:
		return PolicyReject
	}
}

// Segment is one piece of a lifted interval. B fields are empty for
// UNMAPPED_SEG pieces.
type Segment struct {
	ContigA string
	StartA  uint64
	EndA    uint64
	ContigB string
	StartB  uint64
	EndB    uint64
	Strand  block.Strand
	Status  Status
}

// Len is the length of the A side of the segment.
func (s Segment) Len() uint64 {
	return s.EndA - s.StartA
}

// IntervalResult is the outcome of lifting one interval.
//
// Mapped is true when at least one segment carries B coordinates. Under the
// split policy a result can be Mapped while some of its segments are gaps.
type IntervalResult struct {
	ContigA  string
	StartA   uint64
	EndA     uint64
	Status   Status
	Segments []Segment
	Mapped   bool

	// Gaps is filled by the stitch policy only.
	Gaps []Gap
}

// LiftInterval maps [startA, endA) on contig under the given policy.
func (x *Index) LiftInterval(contig string, startA, endA uint64, policy Policy) IntervalResult {
	res := IntervalResult{ContigA: contig, StartA: startA, EndA: endA}
	if startA >= endA {
		res.Status = StatusBadInput
		return res
	}

	if policy == PolicyStitch {
		return x.stitchResult(contig, startA, endA)
	}

	b, lookup := x.FindBlock(contig, startA)
	switch lookup {
	case LookupNoContig:
		res.Status = StatusNoContig
		return res
	case LookupNoBlock:
		res.Status = StatusUnmappedStart
		return res
	case LookupFound:
	}

	if endA <= b.EndA {
		seg := mapSegment(b, contig, startA, endA)
		seg.Status = StatusOK
		res.Status = StatusOK
		res.Segments = []Segment{seg}
		res.Mapped = true
		return res
	}

	if policy != PolicySplit {
		res.Status = StatusCrossesBlock
		return res
	}

	res.Status = StatusSplit
	for seg := range x.Partition(contig, startA, endA) {
		if seg.Status == StatusSplit {
			res.Mapped = true
		}
		res.Segments = append(res.Segments, seg)
	}
	return res
}

// mapSegment maps [startA, endA), which must lie inside b.
func mapSegment(b block.Block, contig string, startA, endA uint64) Segment {
	startB, endB := b.MapRange(startA, endA)
	return Segment{
		ContigA: contig,
		StartA:  startA,
		EndA:    endA,
		ContigB: b.ContigB,
		StartB:  startB,
		EndB:    endB,
		Strand:  b.Strand,
	}
}
