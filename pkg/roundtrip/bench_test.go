package roundtrip_test

import (
	"testing"

	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/liftover"
	"github.com/yaklabco/golift/pkg/roundtrip"
)

func BenchmarkInterval(b *testing.B) {
	blocks := make([]block.Block, 0, 20000)
	var pos uint64
	for i := range 20000 {
		strand := block.StrandForward
		if i%5 == 0 {
			strand = block.StrandReverse
		}
		blk, err := block.New("chr1", pos, pos+500, "chr1B", pos, pos+500, strand, 60)
		if err != nil {
			b.Fatal(err)
		}
		blocks = append(blocks, blk)
		pos += 520
	}
	v := roundtrip.New(liftover.NewIndex(blocks), liftover.NewIndex(block.Invert(blocks)))

	for _, mode := range []roundtrip.Mode{roundtrip.ModeStrict, roundtrip.ModeSplit} {
		b.Run(string(mode), func(b *testing.B) {
			var start uint64
			for b.Loop() {
				v.Interval("chr1", start, start+1200, mode)
				start = (start + 7919) % 10_000_000
			}
		})
	}
}
