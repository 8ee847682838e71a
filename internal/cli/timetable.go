package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/rota/internal/config"
	"github.com/me/rota/internal/timetable"
	"github.com/me/rota/pkg/model"
)

func newTimetableCmd() *cobra.Command {
	var timeLimit time.Duration
	var save bool
	var dbPath string

	cmd := &cobra.Command{
		Use:   "timetable [config-file]",
		Short: "Solve a school timetable",
		Long: `Assign class blocks to weekly time slots so that no teacher or room
is double-booked, minimizing room changes between consecutive blocks.
Without a config file the built-in demo instance is solved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.TimetableConfig
			if len(args) == 0 {
				cfg = &config.TimetableConfig{
					Problem:      *timetable.DemoProblem(),
					TimeLimitSec: config.DefaultTimeLimitSec,
				}
			} else {
				var err error
				if cfg, err = config.LoadTimetable(args[0]); err != nil {
					return err
				}
			}

			budget := time.Duration(cfg.TimeLimitSec) * time.Second
			if cmd.Flags().Changed("time-limit") {
				budget = timeLimit
			}

			schedule, report, err := timetable.NewSolver(logger).Solve(&cfg.Problem, budget)
			if err != nil {
				return err
			}
			printOutcome(schedule, report)

			if save {
				if err := saveRun(cmd.Context(), dbPath, model.RunKindTimetable, cfg, schedule, report); err != nil {
					return err
				}
			}
			if report.Stats.Status == model.StatusInfeasible {
				return fmt.Errorf("model is infeasible")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "Solver time budget (overrides config)")
	cmd.Flags().BoolVar(&save, "save", false, "Record the run in the local database")
	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default ~/.rota/rota.db)")

	return cmd
}
