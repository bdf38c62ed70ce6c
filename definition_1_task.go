package scheduler

import (
	"errors"
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

type TaskID int64

// Idle marks a schedule slot where the processor runs nothing.
const Idle = TaskID(-1)

// Task is a periodic task: every Period units a job needing WCET units is released.
type Task struct {
	ID     TaskID
	WCET   int64 // C
	Period int64 // T
}

type ParamsNewTask struct {
	ID     TaskID
	WCET   int64
	Period int64
}

func (param *ParamsNewTask) IsValid() error {
	if param.ID < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrNegativeInput{
				InputName: "ID",
			},
		}
	}

	if param.WCET <= 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "WCET",
				InputValue: param.WCET,
				Issue:      errors.New("execution time must be positive"),
			},
		}
	}

	if param.Period <= 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "Period",
				InputValue: param.Period,
				Issue:      errors.New("period must be positive"),
			},
		}
	}

	if param.WCET > param.Period {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrInvalidInput{
				InputName:  "WCET",
				InputValue: param.WCET,
				Issue: fmt.Errorf(
					"execution time %d greater than period %d",
					param.WCET,
					param.Period,
				),
			},
		}
	}

	return nil
}

func NewTask(params *ParamsNewTask) (*Task, error) {
	if params == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewTask",
				Issue: goerrors.ErrNilInput{
					InputName: "params",
				},
			}
	}

	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	return &Task{
			ID:     params.ID,
			WCET:   params.WCET,
			Period: params.Period,
		},
		nil
}

func (t *Task) String() string {
	return fmt.Sprintf("T%d(C=%d, T=%d)", t.ID, t.WCET, t.Period)
}
