package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/TudorHulban/rtscheduler/internal/logging"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rtsched",
		Short: "rtsched, offline analysis of periodic real-time task sets",
		Long: "rtsched checks the utilization bound of a periodic task set, simulates " +
			"non-preemptive EDF over one hyperperiod and searches priority orderings " +
			"and job orders exhaustively.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}

			logger = logging.NewLoggerWithWriter(
				logging.ParseLevel(flagLogLevel),
				flagLogFormat,
				cmd.ErrOrStderr(),
			)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newAnalyzeCmd(),
	)

	return root
}
