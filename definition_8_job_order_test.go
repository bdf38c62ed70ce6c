package scheduler

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// bruteForceResponse enumerates job orders recursively, independent of the generator.
func bruteForceResponse(jobs []*Job) int64 {
	best := int64(math.MaxInt64)
	used := make([]bool, len(jobs))

	var walk func(depth int, now, total int64)

	walk = func(depth int, now, total int64) {
		if depth == len(jobs) {
			best = min(best, total)

			return
		}

		for ix, job := range jobs {
			if used[ix] {
				continue
			}

			used[ix] = true

			finish := max(now, job.Arrival) + job.WCET
			walk(depth+1, finish, total+finish-job.Arrival)

			used[ix] = false
		}
	}

	walk(0, 0, 0)

	return best
}

func TestSimulateJobOrder(t *testing.T) {
	jobs := FirstJobs(scenario(t), 2)

	trace, total, misses, errSimulate := SimulateJobOrder(jobs, []int{0, 1, 2, 3, 4, 5})
	require.NoError(t, errSimulate)
	require.Equal(t, int64(49), total)
	require.Equal(t, []string{"T2_J1"}, misses)

	require.Equal(t,
		JobRun{
			Job:            "T2_J1",
			TaskID:         2,
			Arrival:        0,
			Start:          12,
			Finish:         15,
			ResponseTime:   15,
			Deadline:       10,
			MissedDeadline: true,
		},
		trace[2],
	)

	// finishing exactly on the deadline is not a miss
	require.Equal(t, int64(20), trace[4].Finish)
	require.False(t, trace[4].MissedDeadline)

	require.Equal(t, total, totalResponseTime(jobs, []int{0, 1, 2, 3, 4, 5}))

	_, _, _, errSimulate = SimulateJobOrder(jobs, []int{0, 1})
	require.Error(t, errSimulate)
}

func TestSearchJobOrderTwoPerTask(t *testing.T) {
	result, errSearch := SearchJobOrder(
		context.Background(),
		&ParamsSearch{
			Tasks:       scenario(t),
			JobsPerTask: 2,
		},
	)
	require.NoError(t, errSearch)
	require.Equal(t, int64(720), result.Evaluated)
	require.Equal(t, int64(22), result.TotalResponseTime)
	require.Empty(t, result.Misses)

	names := make([]string, len(result.Trace))
	for ix, run := range result.Trace {
		names[ix] = run.Job
	}

	require.Equal(t,
		[]string{"T1_J1", "T3_J1", "T2_J1", "T1_J2", "T2_J2", "T3_J2"},
		names,
	)
}

func TestSearchJobOrderProperties(t *testing.T) {
	tasks := scenario(t)

	result, errSearch := SearchJobOrder(
		context.Background(),
		&ParamsSearch{
			Tasks: tasks,
		},
	)
	require.NoError(t, errSearch)
	require.Len(t, result.Jobs, 9)
	require.Len(t, result.Trace, 9)
	require.Equal(t, int64(362880), result.Evaluated)
	require.Equal(t, bruteForceResponse(result.Jobs), result.TotalResponseTime)

	period := make(map[TaskID]int64, len(tasks))
	for _, task := range tasks {
		period[task.ID] = task.Period
	}

	var (
		sum    int64
		misses []string
	)

	for _, run := range result.Trace {
		require.Equal(t, run.Finish-run.Arrival, run.ResponseTime, run.Job)
		require.Equal(t, run.Finish > run.Arrival+period[run.TaskID], run.MissedDeadline, run.Job)

		sum = sum + run.ResponseTime

		if run.MissedDeadline {
			misses = append(misses, run.Job)
		}
	}

	require.Equal(t, sum, result.TotalResponseTime)
	require.ElementsMatch(t, misses, result.Misses)

	again, errSearch := SearchJobOrder(
		context.Background(),
		&ParamsSearch{
			Tasks:   tasks,
			Workers: 1,
		},
	)
	require.NoError(t, errSearch)
	require.Equal(t, result.Trace, again.Trace)
}

func TestSearchJobOrderTaskSubset(t *testing.T) {
	t.Run(
		"1. default prefix fits the job limit",
		func(t *testing.T) {
			result, errSearch := SearchJobOrder(
				context.Background(),
				&ParamsSearch{
					Tasks: sevenTasks(t),
				},
			)
			require.NoError(t, errSearch)
			require.Equal(t, []TaskID{1, 2, 3}, result.Tasks)
			require.Len(t, result.Jobs, 9)
			require.Len(t, result.Trace, 9)
			require.EqualValues(t, 362880, result.Evaluated)
		},
	)

	t.Run(
		"2. four jobs per task keeps two tasks",
		func(t *testing.T) {
			result, errSearch := SearchJobOrder(
				context.Background(),
				&ParamsSearch{
					Tasks:       scenario(t),
					JobsPerTask: 4,
				},
			)
			require.NoError(t, errSearch)
			require.Equal(t, []TaskID{1, 2}, result.Tasks)
			require.Len(t, result.Jobs, 8)
		},
	)

	t.Run(
		"3. explicit subset in listed order",
		func(t *testing.T) {
			result, errSearch := SearchJobOrder(
				context.Background(),
				&ParamsSearch{
					Tasks:         sevenTasks(t),
					JobOrderTasks: []TaskID{5, 2},
				},
			)
			require.NoError(t, errSearch)
			require.Equal(t, []TaskID{5, 2}, result.Tasks)
			require.Len(t, result.Jobs, 6)
			require.Equal(t, TaskID(5), result.Jobs[0].TaskID)
		},
	)
}

func TestErrorsSearchJobOrder(t *testing.T) {
	tests := []struct {
		name     string
		params   *ParamsSearch
		expected error
	}{
		{
			name: "1. explicit subset above job limit",
			params: &ParamsSearch{
				Tasks:         scenario(t),
				JobsPerTask:   4,
				JobOrderTasks: []TaskID{1, 2, 3},
			},
			expected: ErrSearchSpaceTooLarge,
		},
		{
			name: "2. single task above job limit",
			params: &ParamsSearch{
				Tasks:       newTestTaskSet(t, taskDef{1, 1, 100}),
				JobsPerTask: 11,
			},
			expected: ErrSearchSpaceTooLarge,
		},
		{
			name: "3. duplicate subset ID",
			params: &ParamsSearch{
				Tasks:         scenario(t),
				JobOrderTasks: []TaskID{1, 1},
			},
			expected: ErrDuplicateTaskID,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				result, errSearch := SearchJobOrder(context.Background(), tt.params)
				require.ErrorIs(t, errSearch, tt.expected)
				require.Nil(t, result)
			},
		)
	}

	t.Run(
		"4. unknown subset ID",
		func(t *testing.T) {
			result, errSearch := SearchJobOrder(
				context.Background(),
				&ParamsSearch{
					Tasks:         scenario(t),
					JobOrderTasks: []TaskID{9},
				},
			)
			require.ErrorContains(t, errSearch, "job order task 9 not in task set")
			require.Nil(t, result)
		},
	)
}
