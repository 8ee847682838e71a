package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/me/rota/internal/config"
	"github.com/me/rota/internal/prefexpr"
	"github.com/me/rota/internal/render"
	"github.com/me/rota/internal/roster"
	"github.com/me/rota/internal/store"
	"github.com/me/rota/pkg/model"
)

func newSolveCmd() *cobra.Command {
	var timeLimit time.Duration
	var save bool
	var dbPath string

	cmd := &cobra.Command{
		Use:   "solve [config-file]",
		Short: "Solve a shift roster",
		Long: `Solve a shift scheduling problem and print the schedule and the
penalty report. Without a config file the built-in demo instance is
solved. Config files may be JSON or YAML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.RosterConfig
			if len(args) == 0 {
				cfg = &config.RosterConfig{
					Problem:      *roster.DemoProblem(),
					TimeLimitSec: config.DefaultTimeLimitSec,
				}
			} else {
				var err error
				if cfg, err = config.LoadRoster(args[0]); err != nil {
					return err
				}
			}

			budget := time.Duration(cfg.TimeLimitSec) * time.Second
			if cmd.Flags().Changed("time-limit") {
				budget = timeLimit
			}

			problem := cfg.Problem
			if len(cfg.Rules) > 0 {
				extra, err := prefexpr.Expand(&problem, cfg.Rules)
				if err != nil {
					return err
				}
				problem.Requests = append(problem.Requests, extra...)
			}

			schedule, report, err := roster.NewSolver(logger).Solve(&problem, budget)
			if err != nil {
				return err
			}
			printOutcome(schedule, report)

			if save {
				if err := saveRun(cmd.Context(), dbPath, model.RunKindRoster, cfg, schedule, report); err != nil {
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

// printOutcome writes the schedule grid and the report to stdout.
func printOutcome(schedule *model.Schedule, report *model.Report) {
	if schedule != nil {
		fmt.Print(render.Schedule(schedule))
		fmt.Println()
	}
	fmt.Print(render.Report(report))
}

// saveRun records one solve in the local run database.
func saveRun(ctx context.Context, dbPath, kind string, cfg any, schedule *model.Schedule, report *model.Report) error {
	path, err := resolveDBPath(dbPath)
	if err != nil {
		return err
	}
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	run := &model.Run{
		ID:         "run_" + uuid.New().String(),
		Kind:       kind,
		Status:     report.Stats.Status,
		Objective:  report.Stats.Objective,
		WallMillis: report.Stats.WallTime.Milliseconds(),
		Config:     configJSON,
		Schedule:   schedule,
		Report:     report,
		CreatedAt:  time.Now().UTC(),
	}
	if err := st.CreateRun(ctx, run); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved run %s\n", run.ID)
	return nil
}
