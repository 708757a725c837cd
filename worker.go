package bestfirst

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one independent puzzle instance for SolveAll.
type Job[S any, D any] struct {
	Initial S
	Data    D
}

// SolveAll solves independent jobs on a pool of goroutines and returns their
// results in job order. Each job runs a full, single-threaded Solve.
//
// Cancelling ctx stops jobs that have not started yet; a running search is
// not interrupted. The returned error is ctx.Err() when that happened.
func SolveAll[S Puzzle[S, D, A, H], D any, A comparable, H Cost](
	contextObject context.Context,
	jobs []Job[S, D],
	options ...Option,
) ([]Result[A], error) {
	searchOptions := applyOptions(options)
	results := make([]Result[A], len(jobs))

	group, groupContext := errgroup.WithContext(contextObject)
	group.SetLimit(searchOptions.NumberOfWorkers)

	for i := range jobs {
		if err := groupContext.Err(); err != nil {
			break
		}
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			results[i] = Solve[S, D, A, H](jobs[i].Initial, jobs[i].Data, options...)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, contextObject.Err()
}
