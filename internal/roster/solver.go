// Package roster builds and solves shift scheduling models: employees
// are assigned one shift type per day subject to run-length, weekly sum,
// transition and cover rules, minimizing the total soft penalty.
package roster

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/me/rota/internal/encode"
	"github.com/me/rota/internal/engine"
	"github.com/me/rota/pkg/model"
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Solver compiles roster problems into engine models and decodes the
// results.
type Solver struct {
	logger *slog.Logger
}

// NewSolver creates a roster solver.
func NewSolver(logger *slog.Logger) *Solver {
	return &Solver{logger: logger.With("component", "roster")}
}

// Solve validates the problem, builds the model, runs the engine within
// the wall-clock budget, and decodes the outcome. The returned schedule
// is nil unless the status carries an assignment; the report is always
// populated with the solve statistics.
func (s *Solver) Solve(p *model.RosterProblem, budget time.Duration) (*model.Schedule, *model.Report, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	m := engine.NewModel(s.logger)
	b := encode.NewBuilder(m)
	cube := s.build(p, m, b)

	s.logger.Info("model built",
		"variables", m.NumVars(),
		"constraints", m.NumConstraints(),
		"cost_terms", b.NumTerms(),
	)

	sol := m.Solve(b.Terms(), budget)
	report := &model.Report{Stats: sol.Stats}
	if !sol.Status.HasAssignment() {
		return nil, report, nil
	}
	report.Violations = b.Decode(&sol)
	return decodeSchedule(p, cube, &sol), report, nil
}

// build lowers every rule of the problem onto the variable cube. The
// compilers run in a fixed order so variable naming and the objective
// decomposition are deterministic.
func (s *Solver) build(p *model.RosterProblem, m *engine.Model, b *encode.Builder) *encode.Cube {
	cube := encode.NewCube(m, "work", p.Employees, len(p.Shifts), p.Days())
	cube.EnforceOneHot()

	for _, fa := range p.FixedAssignments {
		m.AddUnit(cube.Var(fa.Employee, fa.Shift, fa.Day).Lit())
	}

	for _, r := range p.Requests {
		b.AddCost(cube.Var(r.Employee, r.Shift, r.Day), r.Weight,
			"request", unitName(r.Employee),
			fmt.Sprintf("%s on %s", p.Shifts[r.Shift], slotName(r.Day)), 1)
	}

	for _, c := range p.ShiftConstraints {
		rule := fmt.Sprintf("shift %s runs", p.Shifts[c.Shift])
		for e := 0; e < p.Employees; e++ {
			encode.AddSoftSequence(b, cube.Row(e, c.Shift), c.Spec, rule, unitName(e))
		}
	}

	for _, c := range p.WeeklySums {
		rule := fmt.Sprintf("weekly %s count", p.Shifts[c.Shift])
		for e := 0; e < p.Employees; e++ {
			for w := 0; w < p.Weeks; w++ {
				window := make([]engine.Var, model.DaysPerWeek)
				for d := 0; d < model.DaysPerWeek; d++ {
					window[d] = cube.Var(e, c.Shift, w*model.DaysPerWeek+d)
				}
				encode.AddSoftSum(b, window, c.Spec, rule, unitName(e), fmt.Sprintf("week %d", w+1))
			}
		}
	}

	for _, t := range p.Transitions {
		rule := fmt.Sprintf("%s to %s", p.Shifts[t.Prev], p.Shifts[t.Next])
		for e := 0; e < p.Employees; e++ {
			for d := 0; d < p.Days()-1; d++ {
				encode.AddTransition(b,
					cube.Var(e, t.Prev, d), cube.Var(e, t.Next, d+1),
					t.Cost, rule, unitName(e),
					fmt.Sprintf("%s to %s", slotName(d), slotName(d+1)))
			}
		}
	}

	if len(p.WeeklyCoverDemands) > 0 {
		for w := 0; w < p.Weeks; w++ {
			for d := 0; d < model.DaysPerWeek; d++ {
				for sh := 1; sh < len(p.Shifts); sh++ {
					day := w*model.DaysPerWeek + d
					encode.AddCoverage(b, cube.Column(sh, day),
						p.WeeklyCoverDemands[d][sh-1], p.CoverPenalties[sh-1],
						fmt.Sprintf("%s cover", p.Shifts[sh]), slotName(day))
				}
			}
		}
	}

	return cube
}

func unitName(employee int) string {
	return fmt.Sprintf("employee %d", employee)
}

func slotName(day int) string {
	return fmt.Sprintf("w%d-%s", day/model.DaysPerWeek+1, weekdays[day%model.DaysPerWeek])
}

// decodeSchedule reads the chosen shift per employee per day. One-hot
// guarantees exactly one category is true for every (unit, slot).
func decodeSchedule(p *model.RosterProblem, cube *encode.Cube, sol *engine.Solution) *model.Schedule {
	slots := make([]string, p.Days())
	for d := range slots {
		slots[d] = slotName(d)
	}
	rows := make([]model.ScheduleRow, p.Employees)
	for e := 0; e < p.Employees; e++ {
		assigned := make([]string, p.Days())
		for d := 0; d < p.Days(); d++ {
			for sh := range p.Shifts {
				if sol.Value(cube.Var(e, sh, d)) {
					assigned[d] = p.Shifts[sh]
					break
				}
			}
		}
		rows[e] = model.ScheduleRow{Unit: unitName(e), Assigned: assigned}
	}
	return &model.Schedule{Slots: slots, Rows: rows}
}
