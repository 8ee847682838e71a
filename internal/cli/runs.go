package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/me/rota/internal/store"
	"github.com/me/rota/pkg/model"
)

func newRunsCmd() *cobra.Command {
	var dbPath string
	var kind string
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded solver runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveDBPath(dbPath)
			if err != nil {
				return err
			}
			st, err := store.NewSQLiteStore(path, logger)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}

			opts := model.ListOptions{Limit: limit, Kind: kind}
			opts.Clamp()
			runs, total, err := st.ListRuns(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tSTATUS\tOBJECTIVE\tWALL\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dms\t%s\n",
					r.ID, r.Kind, r.Status, r.Objective, r.WallMillis,
					r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if total > len(runs) {
				fmt.Printf("showing %d of %d runs\n", len(runs), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default ~/.rota/rota.db)")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by run kind (roster or timetable)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}
