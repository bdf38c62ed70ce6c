package scheduler

import (
	"context"
	"fmt"
)

// SimulateJobOrder runs jobs one after another in the given order, each
// starting at the later of the current time and its arrival.
func SimulateJobOrder(jobs []*Job, order []int) ([]JobRun, int64, []string, error) {
	if errOrdering := checkOrdering(order, len(jobs)); errOrdering != nil {
		return nil, 0, nil,
			errOrdering
	}

	trace := make([]JobRun, 0, len(order))
	misses := make([]string, 0)

	var now, total int64

	for _, ix := range order {
		run := newJobRun(jobs[ix], max(now, jobs[ix].Arrival))

		trace = append(trace, run)
		total = total + run.ResponseTime

		if run.MissedDeadline {
			misses = append(misses, run.Job)
		}

		now = run.Finish
	}

	return trace,
		total,
		misses,
		nil
}

// totalResponseTime is SimulateJobOrder without the trace.
func totalResponseTime(jobs []*Job, order []int) int64 {
	var now, total int64

	for _, ix := range order {
		finish := max(now, jobs[ix].Arrival) + jobs[ix].WCET

		total = total + finish - jobs[ix].Arrival
		now = finish
	}

	return total
}

type ResultJobOrder struct {
	Tasks []TaskID // subset whose jobs were permuted
	Jobs  []*Job
	Trace []JobRun

	Misses []string

	TotalResponseTime int64
	Evaluated         int64
}

func (r *ResultJobOrder) String() string {
	result := fmt.Sprintf("Best Schedule, Total Response Time: %d\n", r.TotalResponseTime)

	for _, run := range r.Trace {
		result = result + "  " + run.String() + "\n"
	}

	return result
}

// jobOrderTasks returns the tasks whose jobs are permuted. An explicit ID list
// is taken as given; otherwise the longest declaration-order prefix whose job
// count fits maxJobs, at least one task.
func jobOrderTasks(tasks TaskSet, ids []TaskID, jobsPerTask, maxJobs int) (TaskSet, error) {
	if len(ids) == 0 {
		count := max(1, min(len(tasks), maxJobs/jobsPerTask))

		return tasks[:count],
			nil
	}

	byID := make(map[TaskID]*Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	result := make(TaskSet, 0, len(ids))
	seen := make(map[TaskID]struct{}, len(ids))

	for _, id := range ids {
		task, exists := byID[id]
		if !exists {
			return nil,
				fmt.Errorf("job order task %d not in task set", id)
		}

		if _, duplicate := seen[id]; duplicate {
			return nil,
				fmt.Errorf("%w: %d in job order tasks", ErrDuplicateTaskID, id)
		}

		seen[id] = struct{}{}
		result = append(result, task)
	}

	return result,
		nil
}

// SearchJobOrder tries every execution order of the first JobsPerTask jobs of
// each selected task and keeps the one with the lowest total response time.
func SearchJobOrder(ctx context.Context, params *ParamsSearch) (*ResultJobOrder, error) {
	resolved, errResolve := params.resolve(false)
	if errResolve != nil {
		return nil,
			errResolve
	}

	tasks, errTasks := jobOrderTasks(
		resolved.Tasks,
		resolved.JobOrderTasks,
		resolved.JobsPerTask,
		resolved.Limits.MaxPermutationJobs,
	)
	if errTasks != nil {
		return nil,
			errTasks
	}

	jobs := FirstJobs(tasks, resolved.JobsPerTask)

	count, errCount := permutationCount(len(jobs), resolved.Limits.MaxPermutationJobs, hardMaxPermutable, "jobs")
	if errCount != nil {
		return nil,
			errCount
	}

	resolved.Logger.Debug(
		"job order search started",

		"tasks", tasks.IDs(),
		"jobs", len(jobs),
		"permutations", count,
		"workers", resolved.Workers,
	)

	best, errSearch := runSearch(
		ctx,
		len(jobs),
		resolved.Workers,
		func(_ int64, perm []int) int64 {
			return totalResponseTime(jobs, perm)
		},
	)
	if errSearch != nil {
		return nil,
			errSearch
	}

	trace, total, misses, errSimulate := SimulateJobOrder(jobs, best.permutation)
	if errSimulate != nil {
		return nil,
			errSimulate
	}

	resolved.Logger.Debug(
		"job order search finished",

		"evaluated", best.evaluated,
		"response", total,
		"misses", len(misses),
	)

	return &ResultJobOrder{
			Tasks:             tasks.IDs(),
			Jobs:              jobs,
			Trace:             trace,
			Misses:            misses,
			TotalResponseTime: total,
			Evaluated:         best.evaluated,
		},
		nil
}
