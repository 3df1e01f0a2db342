// Package batch runs randomized advisory scenarios in bulk: a seeded
// generator drafts armies and conditions, a bounded worker pool scores
// them, and a summary tallies which strategies come out on top.
package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"waradvisor/app"
	"waradvisor/domain/tactics"
)

// Outcome pairs one generated scenario with its advisory result.
type Outcome struct {
	Seq     int
	Request tactics.CalculationRequest
	Result  *tactics.CalculationResult
}

// Runner scores scenario batches against one advisor service with a bounded
// number of concurrent calculations.
type Runner struct {
	service *app.AdvisorService
	workers int64
}

// NewRunner creates a runner; worker counts below one are raised to one.
func NewRunner(service *app.AdvisorService, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{service: service, workers: int64(workers)}
}

// Run scores every request. The calculation is pure, so outcomes land in
// request order regardless of scheduling and a seeded batch reproduces
// exactly. The first failed scenario fails the whole batch.
func (r *Runner) Run(ctx context.Context, requests []tactics.CalculationRequest) ([]Outcome, error) {
	sem := semaphore.NewWeighted(r.workers)
	outcomes := make([]Outcome, len(requests))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i, request := range requests {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("acquire worker slot: %w", err)
			}
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(seq int, request tactics.CalculationRequest) {
			defer wg.Done()
			defer sem.Release(1)

			result, err := r.service.Calculate(request)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("scenario %d: %w", seq+1, err)
				}
				mu.Unlock()
				return
			}
			outcomes[seq] = Outcome{Seq: seq + 1, Request: request, Result: result}
		}(i, request)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return outcomes, nil
}
