package scheduler

import (
	"fmt"
	"math"
)

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// Hyperperiod returns the least common multiple of all task periods.
func Hyperperiod(tasks TaskSet) (int64, error) {
	if len(tasks) == 0 {
		return 0,
			ErrEmptyTaskSet
	}

	result := tasks[0].Period

	for _, task := range tasks[1:] {
		step := task.Period / gcd(result, task.Period)

		if result > math.MaxInt64/step {
			return 0,
				fmt.Errorf(
					"%w: lcm(%d, %d)",
					ErrHorizonOverflow,
					result,
					task.Period,
				)
		}

		result = result * step
	}

	return result,
		nil
}
