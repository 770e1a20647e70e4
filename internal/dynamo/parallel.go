package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one independent run of an Ensemble.
type Job struct {
	System System
	X0     State
	Grid   []float64
}

// Ensemble runs independent jobs concurrently. Each job gets its own stepper
// from NewStepper, since steppers keep scratch buffers.
type Ensemble struct {
	newStepper func() Stepper
	limit      int
}

func NewEnsemble(newStepper func() Stepper, limit int) *Ensemble {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{newStepper: newStepper, limit: limit}
}

// Run returns one result per job, in job order. The first failing job
// cancels the rest.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			sim := New(job.System, e.newStepper())
			res, err := sim.Sample(ctx, job.X0, job.Grid)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
