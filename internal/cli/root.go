// Package cli implements the rota command line interface.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/me/rota/internal/logging"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the rota CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rota",
		Short: "Constraint-based shift and timetable scheduling",
		Long:  "Rota compiles scheduling rules into a pseudo-boolean model, solves it, and reports the minimum-cost assignment.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newSolveCmd(),
		newTimetableCmd(),
		newRunsCmd(),
		newServeCmd(),
	)

	return root
}
