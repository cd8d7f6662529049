package experiment

import (
	"fmt"
	"sync"
)

// Worker owns the environment and agent of one parallel lane. The
// agents typically learn into a single shared table wrapped in a
// tabular.SyncedQTable; each Worker's environment and agent must not be
// shared with any other lane.
type Worker struct {
	Loop *Loop
}

// RunParallel trains every worker concurrently and returns the
// per-worker episode summaries, indexed like workers. The first worker
// error, if any, is returned after all workers have stopped.
func RunParallel(workers []Worker) ([][]EpisodeSummary, error) {
	results := make([][]EpisodeSummary, len(workers))
	errs := make([]error, len(workers))

	var wg sync.WaitGroup
	for i, w := range workers {
		wg.Add(1)
		go func(i int, w Worker) {
			defer wg.Done()
			results[i], errs[i] = w.Loop.Run()
		}(i, w)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return results, fmt.Errorf("worker %d: %v", i, err)
		}
	}
	return results, nil
}
