package scheduler

// lessEDF orders by deadline, then task ID, then arrival.
func lessEDF(a, b *Job) bool {
	if a.Deadline != b.Deadline {
		return a.Deadline < b.Deadline
	}

	if a.TaskID != b.TaskID {
		return a.TaskID < b.TaskID
	}

	return a.Arrival < b.Arrival
}

// SimulatorEDF simulates non-preemptive earliest deadline first over one horizon.
// Dispatch decisions happen only when the processor is idle.
type SimulatorEDF struct {
	tasks   TaskSet
	horizon int64

	ready *priorityQueue[*Job]
}

func NewSimulatorEDF(tasks TaskSet, horizon int64) *SimulatorEDF {
	return &SimulatorEDF{
		tasks:   tasks,
		horizon: horizon,

		ready: newPriorityQueue(lessEDF, len(tasks)),
	}
}

type ResultEDF struct {
	Schedule   Schedule
	Dispatches []JobRun

	IdleCount int64
	Pending   int // jobs queued or cut short at the horizon
}

func (r *ResultEDF) Misses() []string {
	result := make([]string, 0)

	for _, run := range r.Dispatches {
		if run.MissedDeadline {
			result = append(result, run.Job)
		}
	}

	return result
}

func (sim *SimulatorEDF) release(t int64, instances []int64) {
	for ix, task := range sim.tasks {
		if t%task.Period != 0 {
			continue
		}

		instances[ix]++

		sim.ready.push(newJob(task, instances[ix], t))
	}
}

// Run resets the ready queue, so a simulator can be run more than once.
func (sim *SimulatorEDF) Run() *ResultEDF {
	schedule := NewSchedule(sim.horizon)
	dispatches := make([]JobRun, 0)
	instances := make([]int64, len(sim.tasks))

	sim.ready = newPriorityQueue(lessEDF, len(sim.tasks))

	var (
		running   *Job
		remaining int64
		truncated int
	)

	for t := int64(0); t < sim.horizon; t++ {
		sim.release(t, instances)

		if remaining == 0 {
			running = nil

			if !sim.ready.empty() {
				running = sim.ready.pop()
				remaining = running.WCET

				dispatches = append(dispatches, newJobRun(running, t))
			}
		}

		if running != nil {
			schedule[t] = running.TaskID
			remaining--
		}
	}

	if remaining > 0 {
		truncated = 1
	}

	return &ResultEDF{
		Schedule:   schedule,
		Dispatches: dispatches,
		IdleCount:  schedule.IdleCount(),
		Pending:    sim.ready.Len() + truncated,
	}
}
