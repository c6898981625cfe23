// Package worker runs the per-entry pipeline over a list of entry URLs
// with a bounded pool of workers.
package worker

import (
	"context"
	"log"
	"sync"
)

// Result is the outcome for one entry URL. Rendering is empty when the
// entry was filtered out before summarisation.
type Result struct {
	URL       string
	Rendering string
	Err       error
}

// Process handles one entry URL end to end and returns its Markdown
// rendering, or an empty string when the entry is irrelevant.
type Process func(ctx context.Context, url string) (string, error)

// Map runs fn over every entry with the given number of concurrent
// workers and returns the results in entry order, so the digest output
// stays deterministic however the work is scheduled.
//
// Entries are independent: one entry's failure is recorded in its
// Result and logged, and never stops its siblings.
func Map(ctx context.Context, workers int, entries []string, fn Process) []Result {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(entries))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range jobs {
				url := entries[i]
				log.Printf("Worker %d: processing %s", id, url)

				rendering, err := fn(ctx, url)
				if err != nil {
					log.Printf("Worker %d: ERROR processing %s: %v", id, url, err)
				}

				results[i] = Result{URL: url, Rendering: rendering, Err: err}
			}
		}(w)
	}

	go func() {
		defer close(jobs)
		for i := range entries {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return results
}
