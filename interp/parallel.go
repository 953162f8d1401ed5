package interp

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum particle count to use parallel
// accumulation. Below this, single-threaded is faster due to the cost of
// allocating per-worker grids.
const parallelThreshold = 4096

// workChunk is a contiguous particle range processed by one worker.
type workChunk struct {
	start, end int
}

// accumulate runs the particle loop, fanning out over contiguous chunks when
// the particle count justifies it. Each worker accumulates into private
// buffers that are summed afterwards: addition is commutative, so the only
// cross-run variation is float64 rounding from summation order.
func accumulate(acc *accumulator, n int) {
	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			acc.add(i)
		}
		return
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > n {
		numWorkers = n
	}
	chunkSize := (n + numWorkers - 1) / numWorkers

	partials := make([]*accumulator, 0, numWorkers)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		chunk := workChunk{start: w * chunkSize, end: min((w+1)*chunkSize, n)}
		if chunk.start >= chunk.end {
			continue
		}

		part := acc.fork()
		partials = append(partials, part)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := chunk.start; i < chunk.end; i++ {
				part.add(i)
			}
		}()
	}
	wg.Wait()

	for _, part := range partials {
		acc.merge(part)
	}
}

// fork returns a copy of the accumulator with fresh, private output buffers.
func (a *accumulator) fork() *accumulator {
	part := *a
	part.out = make([][]float64, len(a.out))
	for c := range a.out {
		part.out[c] = make([]float64, len(a.out[c]))
	}
	if a.norm != nil {
		part.norm = make([]float64, len(a.norm))
	}
	return &part
}

// merge adds a worker's partial sums into the accumulator's buffers.
func (a *accumulator) merge(part *accumulator) {
	for c := range a.out {
		dst, src := a.out[c], part.out[c]
		for i := range dst {
			dst[i] += src[i]
		}
	}
	if a.norm != nil {
		for i := range a.norm {
			a.norm[i] += part.norm[i]
		}
	}
}
