package scheduler

import "fmt"

// Job is one release of a task.
type Job struct {
	TaskID   TaskID
	Instance int64 // 1-based
	Arrival  int64
	WCET     int64
	Deadline int64
}

func newJob(task *Task, instance, arrival int64) *Job {
	return &Job{
		TaskID:   task.ID,
		Instance: instance,
		Arrival:  arrival,
		WCET:     task.WCET,
		Deadline: arrival + task.Period,
	}
}

func (j *Job) Name() string {
	return fmt.Sprintf("T%d_J%d", j.TaskID, j.Instance)
}

// ReleasesWithin returns every job released in [0, horizon), task by task.
func ReleasesWithin(tasks TaskSet, horizon int64) []*Job {
	result := make([]*Job, 0)

	for _, task := range tasks {
		var instance int64

		for arrival := int64(0); arrival < horizon; arrival = arrival + task.Period {
			instance++

			result = append(result, newJob(task, instance, arrival))
		}
	}

	return result
}

// FirstJobs returns the first perTask jobs of every task, released at index × T.
func FirstJobs(tasks TaskSet, perTask int) []*Job {
	result := make([]*Job, 0, len(tasks)*perTask)

	for _, task := range tasks {
		for ix := range perTask {
			result = append(
				result,
				newJob(task, int64(ix+1), int64(ix)*task.Period),
			)
		}
	}

	return result
}

// JobRun is the recorded execution of one job.
type JobRun struct {
	Job string `json:"job"`

	TaskID       TaskID `json:"task_id"`
	Arrival      int64  `json:"arrival"`
	Start        int64  `json:"start"`
	Finish       int64  `json:"finish"`
	ResponseTime int64  `json:"response_time"`
	Deadline     int64  `json:"deadline"`

	MissedDeadline bool `json:"missed_deadline"`
}

func newJobRun(job *Job, start int64) JobRun {
	finish := start + job.WCET

	return JobRun{
		Job:            job.Name(),
		TaskID:         job.TaskID,
		Arrival:        job.Arrival,
		Start:          start,
		Finish:         finish,
		ResponseTime:   finish - job.Arrival,
		Deadline:       job.Deadline,
		MissedDeadline: finish > job.Deadline,
	}
}

func (r JobRun) String() string {
	return fmt.Sprintf(
		"%s: start=%d finish=%d resp=%d deadline=%d %s",

		r.Job,
		r.Start,
		r.Finish,
		r.ResponseTime,
		r.Deadline,
		ternary(r.MissedDeadline, "Missed Deadline", "OK"),
	)
}
