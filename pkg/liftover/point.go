package liftover

import (
	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/query"
)

// Point is a mapped 0-based position.
type Point struct {
	Contig string
	Pos    uint64
	Strand block.Strand
}

// PointResult is the outcome of lifting one position. To is meaningful only
// when Status is StatusOK. Positions are 0-based.
type PointResult struct {
	Contig string
	Pos    uint64
	To     Point
	Status Status
}

// LiftPoint maps a 0-based position on contig through the index.
func (x *Index) LiftPoint(contig string, pos uint64) PointResult {
	res := PointResult{Contig: contig, Pos: pos}
	b, lookup := x.FindBlock(contig, pos)
	switch lookup {
	case LookupNoContig:
		res.Status = StatusNoContig
	case LookupNoBlock:
		res.Status = StatusUnmapped
	default:
		res.To = Point{Contig: b.ContigB, Pos: b.MapPoint(pos), Strand: b.Strand}
		res.Status = StatusOK
	}
	return res
}

// LiftPointQuery parses "contig:pos" (1-based) and lifts it. Unparsable input
// and positions below 1 give StatusBadInput with every field empty.
func (x *Index) LiftPointQuery(raw string) PointResult {
	contig, pos, err := query.ParsePoint(raw)
	if err != nil {
		return PointResult{Status: StatusBadInput}
	}
	return x.LiftPoint(contig, pos)
}
