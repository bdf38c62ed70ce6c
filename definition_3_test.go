package scheduler

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHyperperiod(t *testing.T) {
	tests := []struct {
		name     string
		tasks    TaskSet
		expected int64
	}{
		{
			name:     "1. single task",
			tasks:    TaskSet{{ID: 1, WCET: 1, Period: 7}},
			expected: 7,
		},
		{
			name:     "2. coprime periods",
			tasks:    TaskSet{{ID: 1, WCET: 1, Period: 4}, {ID: 2, WCET: 1, Period: 6}},
			expected: 12,
		},
		{
			name:     "3. scenario",
			tasks:    scenario(t),
			expected: 20,
		},
		{
			name:     "4. seven tasks",
			tasks:    sevenTasks(t),
			expected: 80,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				horizon, errHyper := Hyperperiod(tt.tasks)
				require.NoError(t, errHyper)
				require.Equal(t, tt.expected, horizon)
			},
		)
	}
}

func TestErrorsHyperperiod(t *testing.T) {
	t.Run(
		"1. empty",
		func(t *testing.T) {
			_, errHyper := Hyperperiod(nil)
			require.ErrorIs(t, errHyper, ErrEmptyTaskSet)
		},
	)

	t.Run(
		"2. overflow",
		func(t *testing.T) {
			_, errHyper := Hyperperiod(
				TaskSet{
					{ID: 1, WCET: 1, Period: 9223372036854775783},
					{ID: 2, WCET: 1, Period: 2},
				},
			)
			require.ErrorIs(t, errHyper, ErrHorizonOverflow)
		},
	)
}

func TestUtilization(t *testing.T) {
	t.Run(
		"1. scenario is exactly 0.6",
		func(t *testing.T) {
			utilization := ComputeUtilization(scenario(t))

			require.Zero(t, utilization.Rat().Cmp(big.NewRat(3, 5)))
			require.InDelta(t, 0.6, utilization.Float64(), 1e-12)
			require.True(t, utilization.IsLikelySchedulable())
			require.Equal(t, VerdictLikelySchedulable, utilization.Verdict())
			require.Equal(t, "0.6000", utilization.String())
		},
	)

	t.Run(
		"2. exactly one",
		func(t *testing.T) {
			utilization := ComputeUtilization(
				newTestTaskSet(t, taskDef{1, 1, 3}, taskDef{2, 2, 3}),
			)

			require.True(t, utilization.IsLikelySchedulable())
		},
	)

	t.Run(
		"3. overloaded",
		func(t *testing.T) {
			utilization := ComputeUtilization(
				newTestTaskSet(t, taskDef{1, 3, 4}, taskDef{2, 2, 4}),
			)

			require.Zero(t, utilization.Rat().Cmp(big.NewRat(5, 4)))
			require.False(t, utilization.IsLikelySchedulable())
			require.Equal(t, VerdictNotSchedulable, utilization.Verdict())
		},
	)
}
