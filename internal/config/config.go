// Package config loads task-set analysis files.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/asaskevich/govalidator"
	"gopkg.in/yaml.v3"

	scheduler "github.com/TudorHulban/rtscheduler"
)

type Task struct {
	ID int64 `yaml:"id"`
	C  int64 `yaml:"c"`
	T  int64 `yaml:"t"`
}

type Limits struct {
	MaxOrderingTasks   int   `yaml:"max_ordering_tasks"`
	MaxPermutationJobs int   `yaml:"max_permutation_jobs"`
	MaxHorizon         int64 `yaml:"max_horizon"`
}

// File is the YAML layout of a task-set file.
type File struct {
	Name  string `yaml:"name" valid:"required"`
	Tasks []Task `yaml:"tasks" valid:"required"`

	JobsPerTask   int     `yaml:"jobs_per_task"`
	JobOrderTasks []int64 `yaml:"job_order_tasks"`
	Workers       int     `yaml:"workers"`
	Policy        string  `yaml:"policy" valid:"in(arrival-order|highest-priority)"`

	Limits Limits `yaml:"limits"`
}

func Load(path string) (*File, error) {
	f, errOpen := os.Open(path)
	if errOpen != nil {
		return nil,
			fmt.Errorf("open task set: %w", errOpen)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes and validates a task-set file; unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var result File

	if errDecode := decoder.Decode(&result); errDecode != nil {
		return nil,
			fmt.Errorf("decode task set: %w", errDecode)
	}

	if _, errValidation := govalidator.ValidateStruct(&result); errValidation != nil {
		return nil,
			fmt.Errorf("validate task set %q: %w", result.Name, errValidation)
	}

	if result.JobsPerTask < 0 || result.Workers < 0 {
		return nil,
			fmt.Errorf("task set %q: jobs_per_task and workers must not be negative", result.Name)
	}

	return &result,
		nil
}

// Params converts the file into analyzer parameters, validating every task.
func (f *File) Params(logger *slog.Logger) (*scheduler.ParamsNewAnalyzer, error) {
	policy, errPolicy := scheduler.ParseDispatchPolicy(f.Policy)
	if errPolicy != nil {
		return nil,
			errPolicy
	}

	tasks := make(scheduler.TaskSet, 0, len(f.Tasks))

	for ix, task := range f.Tasks {
		item, errCr := scheduler.NewTask(
			&scheduler.ParamsNewTask{
				ID:     scheduler.TaskID(task.ID),
				WCET:   task.C,
				Period: task.T,
			},
		)
		if errCr != nil {
			return nil,
				fmt.Errorf("tasks[%d]: %w", ix, errCr)
		}

		tasks = append(tasks, item)
	}

	jobOrderTasks := make([]scheduler.TaskID, 0, len(f.JobOrderTasks))
	for _, id := range f.JobOrderTasks {
		jobOrderTasks = append(jobOrderTasks, scheduler.TaskID(id))
	}

	return &scheduler.ParamsNewAnalyzer{
			Tasks: tasks,
			Limits: scheduler.Limits{
				MaxOrderingTasks:   f.Limits.MaxOrderingTasks,
				MaxPermutationJobs: f.Limits.MaxPermutationJobs,
				MaxHorizon:         f.Limits.MaxHorizon,
			},
			Workers:       f.Workers,
			JobsPerTask:   f.JobsPerTask,
			JobOrderTasks: jobOrderTasks,
			Policy:        policy,
			Logger:        logger,
		},
		nil
}
