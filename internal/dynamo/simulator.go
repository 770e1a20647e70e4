package dynamo

import (
	"context"
	"fmt"
)

type Simulator struct {
	dyn       System
	stepper   Stepper
	observers []Observer
}

func New(dyn System, stepper Stepper) *Simulator {
	return &Simulator{
		dyn:       dyn,
		stepper:   stepper,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run samples x0 on TimeGrid(cfg.Duration, cfg.Dt).
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	grid, err := TimeGrid(cfg.Duration, cfg.Dt)
	if err != nil {
		return nil, err
	}
	return s.Sample(ctx, x0, grid)
}

// Sample integrates from x0 at grid[0] and records the state at every grid
// time. Sample 0 is x0 itself. Non-finite states are recorded as-is; the run
// is never cut short by divergence. The context is checked between steps.
func (s *Simulator) Sample(ctx context.Context, x0 State, grid []float64) (*Result, error) {
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system expects %d",
			ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	result := newResult(len(x0), len(grid))
	if len(grid) == 0 {
		return result, nil
	}

	x := x0.Clone()
	result.record(x, grid[0])
	s.notify(0, x, grid[0])

	for i := 1; i < len(grid); i++ {
		select {
		case <-ctx.Done():
			return nil, &SimulationError{Step: i, Time: grid[i-1], State: x, Wrapped: ctx.Err()}
		default:
		}

		x = AdvanceTo(s.stepper, s.dyn, x, grid[i-1], grid[i])
		result.StepsTaken++

		result.record(x, grid[i])
		s.notify(i, x, grid[i])
	}

	if rep, ok := s.stepper.(StatsReporter); ok {
		result.Stats = rep.Stats()
	}
	return result, nil
}

func (s *Simulator) notify(i int, x State, t float64) {
	for _, obs := range s.observers {
		obs.OnSample(i, x, t)
	}
}
