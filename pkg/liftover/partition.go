package liftover

import "iter"

// Partition walks [startA, endA) left to right and yields maximal pieces that
// are either covered by one block (StatusSplit) or not covered at all
// (StatusUnmappedSeg). Uncovered bases are yielded one base at a time.
//
// The sequence is lazy and can be ranged over any number of times.
func (x *Index) Partition(contig string, startA, endA uint64) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		list := x.byContig[contig]
		for pos := startA; pos < endA; {
			i, found := search(list, pos)
			if !found {
				gap := Segment{ContigA: contig, StartA: pos, EndA: pos + 1, Status: StatusUnmappedSeg}
				if !yield(gap) {
					return
				}
				pos++
				continue
			}
			b := list[i]
			pieceEnd := min(endA, b.EndA)
			seg := mapSegment(b, contig, pos, pieceEnd)
			seg.Status = StatusSplit
			if !yield(seg) {
				return
			}
			pos = pieceEnd
		}
	}
}
