package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DispatchPolicy picks, among released jobs, which one a fixed-priority
// simulation runs next.
type DispatchPolicy uint8

const (
	// DispatchArrivalOrder runs the earliest released job, lower rank first on equal arrival.
	DispatchArrivalOrder DispatchPolicy = iota
	// DispatchHighestPriority runs the released job with the lowest rank, earlier arrival first.
	DispatchHighestPriority
)

func (p DispatchPolicy) String() string {
	switch p {
	case DispatchArrivalOrder:
		return "arrival-order"

	case DispatchHighestPriority:
		return "highest-priority"
	}

	return fmt.Sprintf("DispatchPolicy(%d)", p)
}

func ParseDispatchPolicy(s string) (DispatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "arrival-order":
		return DispatchArrivalOrder, nil

	case "highest-priority":
		return DispatchHighestPriority, nil
	}

	return 0,
		fmt.Errorf("unknown dispatch policy %q", s)
}

type rankedJob struct {
	*Job

	rank int
}

func lessArrivalRank(a, b rankedJob) bool {
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}

	return a.rank < b.rank
}

func lessRankArrival(a, b rankedJob) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}

	return a.Arrival < b.Arrival
}

func (p DispatchPolicy) less() func(a, b rankedJob) bool {
	return ternary(
		p == DispatchHighestPriority,

		lessRankArrival,
		lessArrivalRank,
	)
}

// fixedPrioritySimulation holds what is shared by every candidate ordering.
type fixedPrioritySimulation struct {
	releases    []*Job
	declaration map[TaskID]int

	horizon int64
	policy  DispatchPolicy
}

func newFixedPrioritySimulation(tasks TaskSet, horizon int64, policy DispatchPolicy) *fixedPrioritySimulation {
	return &fixedPrioritySimulation{
		releases:    ReleasesWithin(tasks, horizon),
		declaration: tasks.indexOf(),
		horizon:     horizon,
		policy:      policy,
	}
}

// run simulates one ordering; ordering[r] is the declaration index of the task
// with rank r. A nil schedule only scores.
func (sim *fixedPrioritySimulation) run(ordering []int, schedule Schedule) int64 {
	rankOf := make([]int, len(ordering))

	for rank, declaration := range ordering {
		rankOf[declaration] = rank
	}

	pending := newPriorityQueue(lessArrivalRank, len(sim.releases))

	for _, job := range sim.releases {
		pending.items = append(
			pending.items,
			rankedJob{
				Job:  job,
				rank: rankOf[sim.declaration[job.TaskID]],
			},
		)
	}

	pending.heapify()

	ready := newPriorityQueue(sim.policy.less(), len(ordering))

	var t, waiting int64

	for t < sim.horizon && !(pending.empty() && ready.empty()) {
		for !pending.empty() && pending.peek().Arrival <= t {
			ready.push(pending.pop())
		}

		if ready.empty() {
			t++

			continue
		}

		job := ready.pop()

		schedule.fill(job.TaskID, t, job.WCET)
		waiting = waiting + t - job.Arrival
		t = t + job.WCET
	}

	return waiting
}

// SimulateFixedPriority runs tasks non-preemptively over [0, horizon) with the
// static priorities given by ordering, declaration indexes from highest priority
// down. It returns the schedule and the total waiting time.
func SimulateFixedPriority(tasks TaskSet, ordering []int, horizon int64, policy DispatchPolicy) (Schedule, int64, error) {
	if errOrdering := checkOrdering(ordering, len(tasks)); errOrdering != nil {
		return nil, 0,
			errOrdering
	}

	schedule := NewSchedule(horizon)

	waiting := newFixedPrioritySimulation(tasks, horizon, policy).
		run(ordering, schedule)

	return schedule,
		waiting,
		nil
}

func checkOrdering(ordering []int, n int) error {
	if len(ordering) != n {
		return fmt.Errorf(
			"ordering has %d entries, task set has %d",
			len(ordering),
			n,
		)
	}

	seen := make([]bool, n)

	for _, ix := range ordering {
		if ix < 0 || ix >= n || seen[ix] {
			return fmt.Errorf("ordering %v is not a permutation", ordering)
		}

		seen[ix] = true
	}

	return nil
}

type OrderingScore struct {
	Ordering    []TaskID
	WaitingTime int64
}

func (o OrderingScore) String() string {
	return fmt.Sprintf("Order %v, Total Waiting Time = %d", o.Ordering, o.WaitingTime)
}

type ResultFixedPriority struct {
	// Evaluations lists every ordering in lexicographic permutation order.
	Evaluations []OrderingScore

	Best         OrderingScore
	BestSchedule Schedule

	Policy DispatchPolicy
}

type ParamsSearch struct {
	Tasks   TaskSet
	Horizon int64 // hyperperiod when zero

	JobsPerTask   int
	JobOrderTasks []TaskID // job order subset, default prefix fitting the limit
	Workers       int
	Policy        DispatchPolicy
	Limits        Limits

	Logger *slog.Logger
}

// resolve fills defaults; the horizon is computed and bounded only when needed.
func (p *ParamsSearch) resolve(needsHorizon bool) (*ParamsSearch, error) {
	if p == nil || len(p.Tasks) == 0 {
		return nil,
			ErrEmptyTaskSet
	}

	result := *p

	result.Limits = p.Limits.withDefaults()
	result.Workers = defaultWorkers(p.Workers)
	result.JobsPerTask = ternary(p.JobsPerTask > 0, p.JobsPerTask, DefaultJobsPerTask)

	if result.Logger == nil {
		result.Logger = discardLogger()
	}

	if !needsHorizon {
		return &result,
			nil
	}

	if result.Horizon <= 0 {
		horizon, errHorizon := Hyperperiod(p.Tasks)
		if errHorizon != nil {
			return nil,
				errHorizon
		}

		result.Horizon = horizon
	}

	if errHorizon := result.Limits.checkHorizon(result.Horizon); errHorizon != nil {
		return nil,
			errHorizon
	}

	return &result,
		nil
}

func orderingIDs(tasks TaskSet, ordering []int) []TaskID {
	result := make([]TaskID, len(ordering))

	for rank, declaration := range ordering {
		result[rank] = tasks[declaration].ID
	}

	return result
}

// SearchFixedPriority scores every static priority ordering of the task set by
// total waiting time and keeps the minimum.
func SearchFixedPriority(ctx context.Context, params *ParamsSearch) (*ResultFixedPriority, error) {
	resolved, errResolve := params.resolve(true)
	if errResolve != nil {
		return nil,
			errResolve
	}

	n := len(resolved.Tasks)

	count, errCount := permutationCount(n, resolved.Limits.MaxOrderingTasks, hardMaxOrderingTasks, "tasks")
	if errCount != nil {
		return nil,
			errCount
	}

	resolved.Logger.Debug(
		"fixed priority search started",

		"tasks", n,
		"orderings", count,
		"horizon", resolved.Horizon,
		"policy", resolved.Policy.String(),
		"workers", resolved.Workers,
	)

	simulation := newFixedPrioritySimulation(resolved.Tasks, resolved.Horizon, resolved.Policy)
	evaluations := make([]OrderingScore, count)

	best, errSearch := runSearch(
		ctx,
		n,
		resolved.Workers,
		func(rank int64, perm []int) int64 {
			waiting := simulation.run(perm, nil)

			// each rank is written by exactly one worker
			evaluations[rank] = OrderingScore{
				Ordering:    orderingIDs(resolved.Tasks, perm),
				WaitingTime: waiting,
			}

			return waiting
		},
	)
	if errSearch != nil {
		return nil,
			errSearch
	}

	schedule := NewSchedule(resolved.Horizon)
	simulation.run(best.permutation, schedule)

	resolved.Logger.Debug(
		"fixed priority search finished",

		"evaluated", best.evaluated,
		"best", orderingIDs(resolved.Tasks, best.permutation),
		"waiting", best.score,
	)

	return &ResultFixedPriority{
			Evaluations: evaluations,
			Best: OrderingScore{
				Ordering:    orderingIDs(resolved.Tasks, best.permutation),
				WaitingTime: best.score,
			},
			BestSchedule: schedule,
			Policy:       resolved.Policy,
		},
		nil
}
