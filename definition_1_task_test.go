package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsTask(t *testing.T) {
	tests := []struct {
		name   string
		params *ParamsNewTask
	}{
		{"1. nil params", nil},
		{"2. zero execution time", &ParamsNewTask{ID: 1, WCET: 0, Period: 10}},
		{"3. negative execution time", &ParamsNewTask{ID: 1, WCET: -1, Period: 10}},
		{"4. zero period", &ParamsNewTask{ID: 1, WCET: 1, Period: 0}},
		{"5. execution time above period", &ParamsNewTask{ID: 1, WCET: 11, Period: 10}},
		{"6. negative ID", &ParamsNewTask{ID: -1, WCET: 1, Period: 10}},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				task, errCr := NewTask(tt.params)
				require.Error(t, errCr)
				require.Nil(t, task)
			},
		)
	}
}

func TestNewTask(t *testing.T) {
	task, errCr := NewTask(
		&ParamsNewTask{
			ID:     7,
			WCET:   10,
			Period: 10,
		},
	)
	require.NoError(t, errCr)
	require.NotNil(t, task)
	require.Equal(t, "T7(C=10, T=10)", task.String())
}

func TestErrorsTaskSet(t *testing.T) {
	t.Run(
		"1. empty",
		func(t *testing.T) {
			tasks, errCr := NewTaskSet()
			require.ErrorIs(t, errCr, ErrEmptyTaskSet)
			require.Nil(t, tasks)
		},
	)

	t.Run(
		"2. nil task",
		func(t *testing.T) {
			tasks, errCr := NewTaskSet(nil)
			require.Error(t, errCr)
			require.Nil(t, tasks)
		},
	)

	t.Run(
		"3. duplicate ID",
		func(t *testing.T) {
			tasks, errCr := NewTaskSet(
				&Task{ID: 1, WCET: 1, Period: 2},
				&Task{ID: 1, WCET: 1, Period: 4},
			)
			require.ErrorIs(t, errCr, ErrDuplicateTaskID)
			require.Nil(t, tasks)
		},
	)

	t.Run(
		"4. invalid literal task",
		func(t *testing.T) {
			tasks, errCr := NewTaskSet(
				&Task{ID: 1, WCET: 5, Period: 2},
			)
			require.Error(t, errCr)
			require.Nil(t, tasks)
		},
	)
}

func TestTaskSetKeepsDeclarationOrder(t *testing.T) {
	tasks := newTestTaskSet(
		t,

		taskDef{9, 1, 5},
		taskDef{2, 1, 5},
		taskDef{5, 1, 5},
	)

	require.Equal(t, []TaskID{9, 2, 5}, tasks.IDs())
	require.Equal(t, map[TaskID]int{9: 0, 2: 1, 5: 2}, tasks.indexOf())
}
