package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/maxrange/maxrange/internal/core"
)

type batchJob struct {
	index int
	query core.Query
}

// RunBatch evaluates queries with up to workers goroutines. Results keep the
// order of queries. The counter itself is sequential; parallelism is only
// across queries.
func RunBatch(ctx context.Context, evaluator *Evaluator, queries []core.Query, workers int) ([]*core.Evaluation, error) {
	if evaluator == nil {
		return nil, errors.New("evaluator is required")
	}
	if workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]*core.Evaluation, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	jobs := make(chan batchJob)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for job := range jobs {
			if ctx.Err() != nil {
				return
			}
			results[job.index] = evaluator.Evaluate(ctx, job.query)
		}
	}

	if workers > len(queries) {
		workers = len(queries)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

sendLoop:
	for i, query := range queries {
		select {
		case <-ctx.Done():
			break sendLoop
		case jobs <- batchJob{index: i, query: query}:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
