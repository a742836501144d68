package block_test

import (
	"testing"

	"github.com/yaklabco/golift/pkg/block"
)

func FuzzParseRecord(f *testing.F) {
	f.Add("chr1\t100\t110\tchr1B\t500\t510\t+\t60")
	f.Add("chr1\t100\t110\tchr1B\t500\t510\t-\t0")
	f.Add("chr1\t100\t110\tchr1B\t500\t511\t+\t60")
	f.Add("chr1\t10\t5\tchr1B\t0\t5\t+\t60")
	f.Add("a\tb\tc")

	f.Fuzz(func(t *testing.T, line string) {
		b, err := block.ParseRecord(line)
		if err != nil {
			return
		}
		if b.StartA >= b.EndA || b.StartB >= b.EndB {
			t.Fatalf("accepted empty block %v", b)
		}
		if b.EndA-b.StartA != b.EndB-b.StartB {
			t.Fatalf("accepted unequal sides %v", b)
		}

		again, err := block.ParseRecord(block.FormatRecord(b))
		if err != nil {
			t.Fatalf("formatted record does not parse: %v", err)
		}
		if again != b {
			t.Fatalf("round trip changed block: %v != %v", again, b)
		}
	})
}
