package engine

import (
	"context"
	"sync"

	"github.com/volckit/mogisim/internal/geo"
)

// ParallelFor executes fn over [0, n) split across workers. Each worker
// owns a contiguous range and checks ctx between minChunk strides, so a
// canceled context stops the remaining work promptly; already started
// strides finish.
func ParallelFor(ctx context.Context, n, minChunk, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		lo := w * chunkSize
		hi := min(lo+chunkSize, n)

		go func(lo, hi int) {
			defer wg.Done()
			for s := lo; s < hi; s += minChunk {
				if ctx.Err() != nil {
					return
				}
				fn(s, min(s+minChunk, hi))
			}
		}(lo, hi)
	}

	wg.Wait()
}

// Ensemble evaluates many source sets over the same grid concurrently,
// one run per set.
type Ensemble struct {
	base *Engine
}

func NewEnsemble(e *Engine) *Ensemble {
	return &Ensemble{base: e}
}

func (en *Ensemble) Run(ctx context.Context, grid geo.Grid, sets []geo.SourceSet) ([]*Result, error) {
	results := make([]*Result, len(sets))
	errs := make([]error, len(sets))

	// The fan-out itself is the parallelism; member runs stay serial.
	cfg := en.base.cfg
	cfg.Workers = 1

	var wg sync.WaitGroup
	for i := range sets {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			eng := New(cfg, en.base.log)
			results[idx], errs[idx] = eng.Run(ctx, grid, sets[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
