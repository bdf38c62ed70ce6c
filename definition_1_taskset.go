package scheduler

import (
	"fmt"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

// TaskSet keeps declaration order, used as the stable tie-break order.
type TaskSet []*Task

func NewTaskSet(tasks ...*Task) (TaskSet, error) {
	if len(tasks) == 0 {
		return nil,
			ErrEmptyTaskSet
	}

	seen := make(map[TaskID]struct{}, len(tasks))

	for ix, task := range tasks {
		if task == nil {
			return nil,
				goerrors.ErrValidation{
					Caller: "NewTaskSet",
					Issue: goerrors.ErrNilInput{
						InputName: fmt.Sprintf("tasks[%d]", ix),
					},
				}
		}

		validation := ParamsNewTask{
			ID:     task.ID,
			WCET:   task.WCET,
			Period: task.Period,
		}

		if errValidation := validation.IsValid(); errValidation != nil {
			return nil,
				errValidation
		}

		if _, exists := seen[task.ID]; exists {
			return nil,
				fmt.Errorf("%w: %d", ErrDuplicateTaskID, task.ID)
		}

		seen[task.ID] = struct{}{}
	}

	result := make(TaskSet, len(tasks))
	copy(result, tasks)

	return result,
		nil
}

func (ts TaskSet) IDs() []TaskID {
	result := make([]TaskID, len(ts))

	for ix, task := range ts {
		result[ix] = task.ID
	}

	return result
}

// indexOf maps task ID to declaration index.
func (ts TaskSet) indexOf() map[TaskID]int {
	result := make(map[TaskID]int, len(ts))

	for ix, task := range ts {
		result[task.ID] = ix
	}

	return result
}

func (ts TaskSet) String() string {
	parts := make([]string, len(ts))

	for ix, task := range ts {
		parts[ix] = task.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
