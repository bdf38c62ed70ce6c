package scheduler

import (
	"context"
	"log/slog"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

type ParamsNewAnalyzer struct {
	Tasks TaskSet `valid:"required"`

	Limits        Limits
	Workers       int
	JobsPerTask   int
	JobOrderTasks []TaskID
	Policy        DispatchPolicy

	Logger *slog.Logger `valid:"-"`
}

// Analyzer runs the analyses over one validated task set.
type Analyzer struct {
	tasks       TaskSet
	horizon     int64
	utilization Utilization

	search ParamsSearch
	logger *slog.Logger
}

func NewAnalyzer(params *ParamsNewAnalyzer) (*Analyzer, error) {
	if params == nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Analyzer",
				Caller:      "NewAnalyzer",
				Issue: goerrors.ErrNilInput{
					InputName: "params",
				},
			}
	}

	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Analyzer",
				Caller:      "NewAnalyzer",
				Issue:       errValidation,
			}
	}

	tasks, errTasks := NewTaskSet(params.Tasks...)
	if errTasks != nil {
		return nil,
			errTasks
	}

	limits := params.Limits.withDefaults()

	horizon, errHorizon := Hyperperiod(tasks)
	if errHorizon != nil {
		return nil,
			errHorizon
	}

	if errHorizon := limits.checkHorizon(horizon); errHorizon != nil {
		return nil,
			errHorizon
	}

	if _, errSubset := jobOrderTasks(
		tasks,
		params.JobOrderTasks,
		ternary(params.JobsPerTask > 0, params.JobsPerTask, DefaultJobsPerTask),
		limits.MaxPermutationJobs,
	); errSubset != nil {
		return nil,
			errSubset
	}

	logger := params.Logger
	if logger == nil {
		logger = discardLogger()
	}

	return &Analyzer{
			tasks:       tasks,
			horizon:     horizon,
			utilization: ComputeUtilization(tasks),

			search: ParamsSearch{
				Tasks:         tasks,
				Horizon:       horizon,
				JobsPerTask:   params.JobsPerTask,
				JobOrderTasks: params.JobOrderTasks,
				Workers:       params.Workers,
				Policy:        params.Policy,
				Limits:        limits,
				Logger:        logger,
			},
			logger: logger,
		},
		nil
}

func (a *Analyzer) Tasks() TaskSet {
	return a.tasks
}

func (a *Analyzer) Hyperperiod() int64 {
	return a.horizon
}

func (a *Analyzer) Utilization() Utilization {
	return a.utilization
}

func (a *Analyzer) EDF() *ResultEDF {
	return NewSimulatorEDF(a.tasks, a.horizon).Run()
}

func (a *Analyzer) SearchFixedPriority(ctx context.Context) (*ResultFixedPriority, error) {
	return SearchFixedPriority(ctx, &a.search)
}

func (a *Analyzer) SearchJobOrder(ctx context.Context) (*ResultJobOrder, error) {
	return SearchJobOrder(ctx, &a.search)
}

// Analyses selects what Analyze runs. Utilization always runs.
type Analyses struct {
	EDF           bool
	FixedPriority bool
	JobOrder      bool
}

func AllAnalyses() Analyses {
	return Analyses{
		EDF:           true,
		FixedPriority: true,
		JobOrder:      true,
	}
}

type Report struct {
	Tasks       TaskSet
	Hyperperiod int64
	Utilization Utilization
	Verdict     string

	EDF           *ResultEDF
	FixedPriority *ResultFixedPriority
	JobOrder      *ResultJobOrder
}

// Analyze runs the selected analyses in order. On a search error the report
// still carries every analysis finished before it.
func (a *Analyzer) Analyze(ctx context.Context, analyses Analyses) (*Report, error) {
	result := Report{
		Tasks:       a.tasks,
		Hyperperiod: a.horizon,
		Utilization: a.utilization,
		Verdict:     a.utilization.Verdict(),
	}

	if !a.utilization.IsLikelySchedulable() {
		a.logger.Warn(
			"utilization bound exceeded, simulating anyway",

			"utilization", a.utilization.String(),
		)
	}

	if analyses.EDF {
		result.EDF = a.EDF()

		a.logger.Info(
			"edf simulation done",

			"horizon", a.horizon,
			"idle", result.EDF.IdleCount,
			"misses", len(result.EDF.Misses()),
		)
	}

	if analyses.FixedPriority {
		fixedPriority, errSearch := a.SearchFixedPriority(ctx)
		if errSearch != nil {
			return &result,
				errSearch
		}

		result.FixedPriority = fixedPriority

		a.logger.Info(
			"fixed priority search done",

			"orderings", len(fixedPriority.Evaluations),
			"best", fixedPriority.Best.Ordering,
			"waiting", fixedPriority.Best.WaitingTime,
		)
	}

	if analyses.JobOrder {
		jobOrder, errSearch := a.SearchJobOrder(ctx)
		if errSearch != nil {
			return &result,
				errSearch
		}

		result.JobOrder = jobOrder

		a.logger.Info(
			"job order search done",

			"tasks", jobOrder.Tasks,
			"evaluated", jobOrder.Evaluated,
			"response", jobOrder.TotalResponseTime,
			"misses", len(jobOrder.Misses),
		)
	}

	return &result,
		nil
}
