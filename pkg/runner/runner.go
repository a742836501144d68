package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// chunksPerWorker controls how finely Map splits its input. Liftover calls are
// cheap, so items travel to workers in runs rather than one at a time.
const chunksPerWorker = 4

// EffectiveJobs resolves a configured job count: 0 or negative means one
// worker per CPU, and there are never more workers than items.
func EffectiveJobs(jobs, items int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(1, min(jobs, items))
}

// Map applies fn to every item using up to jobs goroutines and returns the
// results in input order. fn must be safe for concurrent use.
//
// On cancellation Map stops handing out work and returns the context error;
// results for items that were never processed are zero values.
func Map[T, R any](ctx context.Context, items []T, jobs int, fn func(T) R) ([]R, error) {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out, nil
	}

	jobs = EffectiveJobs(jobs, len(items))
	chunk := max(1, len(items)/(jobs*chunksPerWorker))

	type span struct{ lo, hi int }
	workCh := make(chan span)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range workCh {
				for i := s.lo; i < s.hi; i++ {
					out[i] = fn(items[i])
				}
			}
		}()
	}

feed:
	for lo := 0; lo < len(items); lo += chunk {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- span{lo: lo, hi: min(lo+chunk, len(items))}:
		}
	}
	close(workCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("run cancelled: %w", err)
	}
	return out, nil
}
