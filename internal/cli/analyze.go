package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	scheduler "github.com/TudorHulban/rtscheduler"
	"github.com/TudorHulban/rtscheduler/internal/config"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		flagEDF           bool
		flagFixedPriority bool
		flagJobOrder      bool
		flagJobOrderTasks []int64
		flagOrderings     bool
		flagOutput        string
		flagPolicy        string
		flagWorkers       int
	)

	cmd := &cobra.Command{
		Use:   "analyze <tasks.yaml>",
		Short: "Analyze a task set file",
		Long: "Runs the utilization test and the selected analyses. " +
			"With no analysis flag all three run.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagOutput != "text" && flagOutput != "json" {
				return fmt.Errorf("unknown output %q, want text or json", flagOutput)
			}

			file, errLoad := config.Load(args[0])
			if errLoad != nil {
				return errLoad
			}

			if cmd.Flags().Changed("policy") {
				file.Policy = flagPolicy
			}

			if cmd.Flags().Changed("workers") {
				file.Workers = flagWorkers
			}

			if cmd.Flags().Changed("job-order-tasks") {
				file.JobOrderTasks = flagJobOrderTasks
			}

			runID := uuid.NewString()
			runLogger := logger.With("run", runID, "task_set", file.Name)

			params, errParams := file.Params(runLogger)
			if errParams != nil {
				return errParams
			}

			analyzer, errCr := scheduler.NewAnalyzer(params)
			if errCr != nil {
				return errCr
			}

			analyses := scheduler.Analyses{
				EDF:           flagEDF,
				FixedPriority: flagFixedPriority,
				JobOrder:      flagJobOrder,
			}
			if analyses == (scheduler.Analyses{}) {
				analyses = scheduler.AllAnalyses()
			}

			runLogger.Debug("analysis started", "tasks", analyzer.Tasks().String())

			report, errAnalyze := analyzer.Analyze(cmd.Context(), analyses)
			if report == nil {
				return errAnalyze
			}

			out := &reportOutput{
				ID:        runID,
				Name:      file.Name,
				Report:    report,
				Orderings: flagOrderings,
			}

			write := out.writeText
			if flagOutput == "json" {
				write = out.writeJSON
			}

			// finished analyses are written before a failed one is reported
			return errors.Join(errAnalyze, write(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().BoolVar(&flagEDF, "edf", false, "Simulate non-preemptive EDF")
	cmd.Flags().BoolVar(&flagFixedPriority, "fixed-priority", false, "Search fixed priority orderings")
	cmd.Flags().BoolVar(&flagJobOrder, "job-order", false, "Search job execution orders")
	cmd.Flags().Int64SliceVar(&flagJobOrderTasks, "job-order-tasks", nil, "Task IDs whose jobs are permuted, default the declaration prefix fitting the job limit")
	cmd.Flags().BoolVar(&flagOrderings, "orderings", false, "List every evaluated ordering (text output)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text, json)")
	cmd.Flags().StringVar(&flagPolicy, "policy", "arrival-order", "Fixed priority dispatch (arrival-order, highest-priority)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Search workers, 0 for one per CPU")

	return cmd
}
