package scheduler

import (
	"fmt"
	"runtime"
)

// Exhaustive search cost is factorial, so the defaults stay small:
// 8! = 40320 orderings, 10! = 3628800 job permutations.
const (
	DefaultMaxOrderingTasks   = 8
	DefaultMaxPermutationJobs = 10
	DefaultMaxHorizon         = int64(1_000_000)
	DefaultJobsPerTask        = 3

	// hardMaxPermutable keeps n! inside int64.
	hardMaxPermutable = 20
	// hardMaxOrderingTasks bounds the per-ordering evaluations slice, 9! entries.
	hardMaxOrderingTasks = 9
)

type Limits struct {
	MaxOrderingTasks   int
	MaxPermutationJobs int
	MaxHorizon         int64
}

func DefaultLimits() Limits {
	return Limits{
		MaxOrderingTasks:   DefaultMaxOrderingTasks,
		MaxPermutationJobs: DefaultMaxPermutationJobs,
		MaxHorizon:         DefaultMaxHorizon,
	}
}

// withDefaults replaces unset limits.
func (l Limits) withDefaults() Limits {
	defaults := DefaultLimits()

	return Limits{
		MaxOrderingTasks:   ternary(l.MaxOrderingTasks > 0, l.MaxOrderingTasks, defaults.MaxOrderingTasks),
		MaxPermutationJobs: ternary(l.MaxPermutationJobs > 0, l.MaxPermutationJobs, defaults.MaxPermutationJobs),
		MaxHorizon:         ternary(l.MaxHorizon > 0, l.MaxHorizon, defaults.MaxHorizon),
	}
}

func (l Limits) checkHorizon(horizon int64) error {
	if horizon > l.MaxHorizon {
		return fmt.Errorf(
			"%w: %d > %d",
			ErrHorizonTooLarge,
			horizon,
			l.MaxHorizon,
		)
	}

	return nil
}

func defaultWorkers(workers int) int {
	return ternary(workers > 0, workers, runtime.NumCPU())
}
