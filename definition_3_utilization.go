package scheduler

import (
	"math/big"
)

const (
	VerdictLikelySchedulable = "likely schedulable (utilization <= 1 is necessary, not sufficient)"
	VerdictNotSchedulable    = "not schedulable (utilization > 1)"
)

// Utilization is the exact sum of C/T over a task set.
type Utilization struct {
	value *big.Rat
}

func ComputeUtilization(tasks TaskSet) Utilization {
	sum := new(big.Rat)

	for _, task := range tasks {
		sum.Add(sum, big.NewRat(task.WCET, task.Period))
	}

	return Utilization{
		value: sum,
	}
}

// Rat returns a copy of the exact value.
func (u Utilization) Rat() *big.Rat {
	if u.value == nil {
		return new(big.Rat)
	}

	return new(big.Rat).Set(u.value)
}

func (u Utilization) Float64() float64 {
	f, _ := u.Rat().Float64()

	return f
}

func (u Utilization) IsLikelySchedulable() bool {
	return u.Rat().Cmp(big.NewRat(1, 1)) <= 0
}

func (u Utilization) Verdict() string {
	return ternary(
		u.IsLikelySchedulable(),

		VerdictLikelySchedulable,
		VerdictNotSchedulable,
	)
}

func (u Utilization) String() string {
	return u.Rat().FloatString(4)
}
