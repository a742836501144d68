package liftover_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/liftover"
)

func TestLiftInterval_SingleBlock(t *testing.T) {
	t.Parallel()

	idx := liftover.NewIndex(sampleBlocks(t))

	tests := []struct {
		name       string
		start, end uint64
		wantB      [2]uint64
		wantStrand block.Strand
	}{
		{"inside", 101, 105, [2]uint64{501, 505}, block.StrandForward},
		{"whole block", 100, 110, [2]uint64{500, 510}, block.StrandForward},
		{"end equals block end", 105, 110, [2]uint64{505, 510}, block.StrandForward},
		{"single base", 119, 120, [2]uint64{519, 520}, block.StrandForward},
		{"reverse head", 200, 204, [2]uint64{1046, 1050}, block.StrandReverse},
		{"reverse tail", 240, 250, [2]uint64{1000, 1010}, block.StrandReverse},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			for _, policy := range []liftover.Policy{liftover.PolicyReject, liftover.PolicySplit} {
				got := idx.LiftInterval("chr1", testCase.start, testCase.end, policy)
				require.Equal(t, liftover.StatusOK, got.Status, "policy %s", policy)
				require.Len(t, got.Segments, 1)
				assert.True(t, got.Mapped)

				seg := got.Segments[0]
				assert.Equal(t, liftover.StatusOK, seg.Status)
				assert.Equal(t, "chr1B", seg.ContigB)
				assert.Equal(t, testCase.wantB, [2]uint64{seg.StartB, seg.EndB})
				assert.Equal(t, testCase.wantStrand, seg.Strand)
				assert.Equal(t, seg.Len(), seg.EndB-seg.StartB)
			}
		})
	}
}

func TestLiftInterval_Failures(t *testing.T) {
	t.Parallel()

	idx := liftover.NewIndex(sampleBlocks(t))

	tests := []struct {
		name       string
		contig     string
		start, end uint64
		policy     liftover.Policy
		want       liftover.Status
	}{
		{"empty interval", "chr1", 105, 105, liftover.PolicySplit, liftover.StatusBadInput},
		{"reversed interval", "chr1", 106, 105, liftover.PolicyReject, liftover.StatusBadInput},
		{"unknown contig", "chrM", 1, 5, liftover.PolicySplit, liftover.StatusNoContig},
		{"start in gap", "chr1", 150, 205, liftover.PolicySplit, liftover.StatusUnmappedStart},
		{"start before blocks", "chr1", 0, 105, liftover.PolicyReject, liftover.StatusUnmappedStart},
		{"crosses under reject", "chr1", 105, 115, liftover.PolicyReject, liftover.StatusCrossesBlock},
		{"runs into gap under reject", "chr1", 115, 125, liftover.PolicyReject, liftover.StatusCrossesBlock},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := idx.LiftInterval(testCase.contig, testCase.start, testCase.end, testCase.policy)
			assert.Equal(t, testCase.want, got.Status)
			assert.Empty(t, got.Segments)
			assert.False(t, got.Mapped)
		})
	}
}

func TestLiftInterval_SplitExample(t *testing.T) {
	t.Parallel()

	idx := liftover.NewIndex([]block.Block{
		blk(t, "chr1", 100, 110, "chr1B", 500, 510, block.StrandForward),
		blk(t, "chr1", 110, 120, "chr1B", 510, 520, block.StrandForward),
	})

	got := idx.LiftInterval("chr1", 100, 115, liftover.PolicySplit)
	require.Equal(t, liftover.StatusSplit, got.Status)
	assert.True(t, got.Mapped)
	assert.Equal(t, []liftover.Segment{
		{ContigA: "chr1", StartA: 100, EndA: 110, ContigB: "chr1B", StartB: 500, EndB: 510, Strand: block.StrandForward, Status: liftover.StatusSplit},
		{ContigA: "chr1", StartA: 110, EndA: 115, ContigB: "chr1B", StartB: 510, EndB: 515, Strand: block.StrandForward, Status: liftover.StatusSplit},
	}, got.Segments)

	// 5 bases from the first block and 7 from the second.
	got = idx.LiftInterval("chr1", 105, 117, liftover.PolicySplit)
	require.Len(t, got.Segments, 2)
	assert.Equal(t, uint64(5), got.Segments[0].Len())
	assert.Equal(t, uint64(7), got.Segments[1].Len())
}

func TestLiftInterval_SplitAcrossGap(t *testing.T) {
	t.Parallel()

	idx := liftover.NewIndex([]block.Block{
		blk(t, "chr1", 100, 110, "chr1B", 500, 510, block.StrandForward),
		blk(t, "chr1", 113, 120, "chr1B", 900, 907, block.StrandReverse),
	})

	got := idx.LiftInterval("chr1", 105, 116, liftover.PolicySplit)
	require.Equal(t, liftover.StatusSplit, got.Status)
	assert.True(t, got.Mapped)

	var statuses []liftover.Status
	for _, seg := range got.Segments {
		statuses = append(statuses, seg.Status)
	}
	assert.Equal(t, []liftover.Status{
		liftover.StatusSplit,
		liftover.StatusUnmappedSeg,
		liftover.StatusUnmappedSeg,
		liftover.StatusUnmappedSeg,
		liftover.StatusSplit,
	}, statuses)

	gap := got.Segments[1]
	assert.Equal(t, uint64(110), gap.StartA)
	assert.Equal(t, uint64(111), gap.EndA)
	assert.Empty(t, gap.ContigB)
	assert.Equal(t, block.StrandUnknown, gap.Strand)

	// Each piece keeps the strand of its own block.
	last := got.Segments[4]
	assert.Equal(t, block.StrandReverse, last.Strand)
	assert.Equal(t, [2]uint64{904, 907}, [2]uint64{last.StartB, last.EndB})
}

func TestPartition_TilesInterval(t *testing.T) {
	t.Parallel()

	idx := liftover.NewIndex(sampleBlocks(t))

	for _, span := range [][2]uint64{{100, 120}, {95, 130}, {105, 260}, {0, 1}, {249, 251}} {
		segs := slices.Collect(idx.Partition("chr1", span[0], span[1]))
		require.NotEmpty(t, segs, "%v", span)

		assert.Equal(t, span[0], segs[0].StartA)
		assert.Equal(t, span[1], segs[len(segs)-1].EndA)
		for i, seg := range segs {
			assert.Less(t, seg.StartA, seg.EndA)
			if i > 0 {
				assert.Equal(t, segs[i-1].EndA, seg.StartA, "segments must be contiguous")
			}
			switch seg.Status {
			case liftover.StatusSplit:
				assert.Equal(t, seg.Len(), seg.EndB-seg.StartB)
			case liftover.StatusUnmappedSeg:
				assert.Equal(t, uint64(1), seg.Len())
			default:
				t.Fatalf("unexpected status %s", seg.Status)
			}
		}
	}
}

func TestPartition_LazyAndRestartable(t *testing.T) {
	t.Parallel()

	idx := liftover.NewIndex(sampleBlocks(t))
	seq := idx.Partition("chr1", 100, 300)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	var taken []liftover.Segment
	for seg := range seq {
		taken = append(taken, seg)
		if len(taken) == 3 {
			break
		}
	}
	assert.Equal(t, first[:3], taken)
}

func TestPartition_UnknownContig(t *testing.T) {
	t.Parallel()

	idx := liftover.NewIndex(sampleBlocks(t))
	segs := slices.Collect(idx.Partition("chrM", 10, 13))
	require.Len(t, segs, 3)
	for _, seg := range segs {
		assert.Equal(t, liftover.StatusUnmappedSeg, seg.Status)
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]liftover.Policy{
		"":       liftover.PolicyReject,
		"reject": liftover.PolicyReject,
		"split":  liftover.PolicySplit,
		"stitch": liftover.PolicyStitch,
	} {
		got, err := liftover.ParsePolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := liftover.ParsePolicy("merge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge")
}

func TestPolicyFromFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		strict, split, stitch bool
		want                  liftover.Policy
	}{
		{"default", false, false, false, liftover.PolicyReject},
		{"strict", true, false, false, liftover.PolicyReject},
		{"split", false, true, false, liftover.PolicySplit},
		{"strict wins over split", true, true, false, liftover.PolicyReject},
		{"split wins over stitch", false, true, true, liftover.PolicySplit},
		{"stitch", false, false, true, liftover.PolicyStitch},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, liftover.PolicyFromFlags(testCase.strict, testCase.split, testCase.stitch))
		})
	}
}
