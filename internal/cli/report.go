package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	scheduler "github.com/TudorHulban/rtscheduler"
)

type reportOutput struct {
	ID     string
	Name   string
	Report *scheduler.Report

	Orderings bool
}

type edfJSON struct {
	Schedule   scheduler.Schedule `json:"schedule"`
	IdleCount  int64              `json:"idle_count"`
	Pending    int                `json:"pending"`
	Dispatches []scheduler.JobRun `json:"dispatches"`
	Misses     []string           `json:"misses"`
}

type orderingJSON struct {
	Ordering    []scheduler.TaskID `json:"ordering"`
	WaitingTime int64              `json:"waiting_time"`
}

type fixedPriorityJSON struct {
	Policy      string             `json:"policy"`
	Evaluations []orderingJSON     `json:"evaluations"`
	Best        orderingJSON       `json:"best"`
	Schedule    scheduler.Schedule `json:"schedule"`
}

type jobOrderJSON struct {
	Tasks             []scheduler.TaskID `json:"tasks"`
	TotalResponseTime int64              `json:"total_response_time"`
	Evaluated         int64              `json:"evaluated"`
	Trace             []scheduler.JobRun `json:"trace"`
	Misses            []string           `json:"misses"`
}

type taskJSON struct {
	ID int64 `json:"id"`
	C  int64 `json:"c"`
	T  int64 `json:"t"`
}

type reportJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Tasks       []taskJSON `json:"tasks"`
	Hyperperiod int64      `json:"hyperperiod"`

	Utilization      float64 `json:"utilization"`
	UtilizationExact string  `json:"utilization_exact"`
	Verdict          string  `json:"verdict"`

	EDF           *edfJSON           `json:"edf,omitempty"`
	FixedPriority *fixedPriorityJSON `json:"fixed_priority,omitempty"`
	JobOrder      *jobOrderJSON      `json:"job_order,omitempty"`
}

func toOrderingJSON(score scheduler.OrderingScore) orderingJSON {
	return orderingJSON{
		Ordering:    score.Ordering,
		WaitingTime: score.WaitingTime,
	}
}

func (o *reportOutput) toJSON() *reportJSON {
	report := o.Report

	result := reportJSON{
		ID:               o.ID,
		Name:             o.Name,
		Hyperperiod:      report.Hyperperiod,
		Utilization:      report.Utilization.Float64(),
		UtilizationExact: report.Utilization.Rat().RatString(),
		Verdict:          report.Verdict,
	}

	for _, task := range report.Tasks {
		result.Tasks = append(
			result.Tasks,
			taskJSON{
				ID: int64(task.ID),
				C:  task.WCET,
				T:  task.Period,
			},
		)
	}

	if report.EDF != nil {
		result.EDF = &edfJSON{
			Schedule:   report.EDF.Schedule,
			IdleCount:  report.EDF.IdleCount,
			Pending:    report.EDF.Pending,
			Dispatches: report.EDF.Dispatches,
			Misses:     report.EDF.Misses(),
		}
	}

	if fp := report.FixedPriority; fp != nil {
		evaluations := make([]orderingJSON, len(fp.Evaluations))
		for ix, evaluation := range fp.Evaluations {
			evaluations[ix] = toOrderingJSON(evaluation)
		}

		result.FixedPriority = &fixedPriorityJSON{
			Policy:      fp.Policy.String(),
			Evaluations: evaluations,
			Best:        toOrderingJSON(fp.Best),
			Schedule:    fp.BestSchedule,
		}
	}

	if jo := report.JobOrder; jo != nil {
		result.JobOrder = &jobOrderJSON{
			Tasks:             jo.Tasks,
			TotalResponseTime: jo.TotalResponseTime,
			Evaluated:         jo.Evaluated,
			Trace:             jo.Trace,
			Misses:            jo.Misses,
		}
	}

	return &result
}

func (o *reportOutput) writeJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(o.toJSON())
}

func (o *reportOutput) writeText(w io.Writer) error {
	var sb strings.Builder

	report := o.Report

	sb.WriteString(fmt.Sprintf("Analysis %s (%s)\n", o.Name, o.ID))
	sb.WriteString(fmt.Sprintf("Tasks: %s\n", report.Tasks))
	sb.WriteString(fmt.Sprintf("Hyperperiod: %d\n", report.Hyperperiod))
	sb.WriteString(fmt.Sprintf("Total utilization sum: %s, %s\n", report.Utilization, report.Verdict))

	if edf := report.EDF; edf != nil {
		sb.WriteString("\nNon-preemptive EDF\n")
		sb.WriteString(edf.Schedule.String())
		sb.WriteString(
			fmt.Sprintf(
				"Total processor idle time: %d time units out of %d\n",

				edf.IdleCount,
				report.Hyperperiod,
			),
		)

		if misses := edf.Misses(); len(misses) > 0 {
			sb.WriteString(fmt.Sprintf("Deadline misses: %s\n", strings.Join(misses, ", ")))
		}
	}

	if fp := report.FixedPriority; fp != nil {
		sb.WriteString(fmt.Sprintf("\nFixed priority search (%s)\n", fp.Policy))

		if o.Orderings {
			for ix, evaluation := range fp.Evaluations {
				sb.WriteString(fmt.Sprintf("Config %d: %s\n", ix+1, evaluation))
			}
		}

		sb.WriteString(
			fmt.Sprintf(
				"Best Order: %v, with Minimum Waiting Time = %d (%d orderings)\n",

				fp.Best.Ordering,
				fp.Best.WaitingTime,
				len(fp.Evaluations),
			),
		)
		sb.WriteString(fp.BestSchedule.String())
	}

	if jo := report.JobOrder; jo != nil {
		sb.WriteString(fmt.Sprintf("\nJob order search, tasks %v\n", jo.Tasks))
		sb.WriteString(jo.String())

		if len(jo.Misses) > 0 {
			sb.WriteString(fmt.Sprintf("Deadline misses: %s\n", strings.Join(jo.Misses, ", ")))
		}
	}

	_, errWrite := io.WriteString(w, sb.String())

	return errWrite
}
