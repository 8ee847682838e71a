// Package render turns schedules and reports into plain text. All
// functions are pure: they return strings and never write anywhere, so
// callers decide where output goes and tests assert on values.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/me/rota/pkg/model"
)

// Schedule renders the per-unit assignment grid in slot order. Category
// names with unique first letters are abbreviated to one character.
func Schedule(s *model.Schedule) string {
	cells := abbreviate(s)

	unitWidth := 0
	for _, row := range s.Rows {
		if len(row.Unit) > unitWidth {
			unitWidth = len(row.Unit)
		}
	}

	var sb strings.Builder
	for i, row := range s.Rows {
		fmt.Fprintf(&sb, "%-*s  %s\n", unitWidth, row.Unit, strings.Join(cells[i], " "))
	}
	return sb.String()
}

// abbreviate maps assigned category names to grid cells: single letters
// when unambiguous, padded full names otherwise, "-" for unassigned.
func abbreviate(s *model.Schedule) [][]string {
	firsts := make(map[byte]string)
	unique := true
	width := 1
	for _, row := range s.Rows {
		for _, a := range row.Assigned {
			if a == "" {
				continue
			}
			if len(a) > width {
				width = len(a)
			}
			if prev, ok := firsts[a[0]]; ok && prev != a {
				unique = false
			}
			firsts[a[0]] = a
		}
	}
	if unique {
		width = 1
	}

	cells := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		cells[i] = make([]string, len(row.Assigned))
		for j, a := range row.Assigned {
			switch {
			case a == "":
				cells[i][j] = fmt.Sprintf("%-*s", width, "-")
			case unique:
				cells[i][j] = a[:1]
			default:
				cells[i][j] = fmt.Sprintf("%-*s", width, a)
			}
		}
	}
	return cells
}

// Report renders the solve statistics and every active soft constraint.
// Positive penalties list as violations, negative ones as fulfilled
// preferences.
func Report(r *model.Report) string {
	var sb strings.Builder
	st := r.Stats
	fmt.Fprintf(&sb, "status %s", st.Status)
	if st.Status.HasAssignment() {
		fmt.Fprintf(&sb, "  objective %d", st.Objective)
	}
	fmt.Fprintf(&sb, "  wall %s  solutions %d  conflicts %d  decisions %d  restarts %d\n",
		st.WallTime.Round(time.Millisecond), st.Solutions, st.Conflicts, st.Decisions, st.Restarts)

	var violations, gains []model.Violation
	for _, v := range r.Violations {
		if v.Penalty >= 0 {
			violations = append(violations, v)
		} else {
			gains = append(gains, v)
		}
	}
	if len(violations) > 0 {
		sb.WriteString("penalties:\n")
		for _, v := range violations {
			fmt.Fprintf(&sb, "  %s: %s, %s (amount %d, penalty %d)\n",
				v.Rule, v.Unit, v.Context, v.Amount, v.Penalty)
		}
	}
	if len(gains) > 0 {
		sb.WriteString("fulfilled:\n")
		for _, v := range gains {
			fmt.Fprintf(&sb, "  %s: %s, %s (gain %d)\n",
				v.Rule, v.Unit, v.Context, -v.Penalty)
		}
	}
	return sb.String()
}
