// Package timetable builds and solves class timetabling models: classes
// are placed on a (day, block) grid, teachers and rooms are exclusive
// per block, and teachers changing rooms between adjacent blocks are
// penalized.
package timetable

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/me/rota/internal/encode"
	"github.com/me/rota/internal/engine"
	"github.com/me/rota/pkg/model"
)

// Solver compiles timetable problems into engine models and decodes the
// results.
type Solver struct {
	logger *slog.Logger
}

// NewSolver creates a timetable solver.
func NewSolver(logger *slog.Logger) *Solver {
	return &Solver{logger: logger.With("component", "timetable")}
}

// Solve validates the problem, builds the model, runs the engine within
// the wall-clock budget, and decodes the outcome.
func (s *Solver) Solve(p *model.TimetableProblem, budget time.Duration) (*model.Schedule, *model.Report, error) {
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

// build lowers the instance onto a (class, slot) cube. The category
// dimension collapses to "scheduled or not", so instead of a one-hot an
// exact weekly block count is posted per class.
func (s *Solver) build(p *model.TimetableProblem, m *engine.Model, b *encode.Builder) *encode.Cube {
	cube := encode.NewCube(m, "class", len(p.Classes), 1, p.Slots())

	for i, c := range p.Classes {
		m.AddExactly(cube.Row(i, 0), c.WeeklyBlocks)
	}

	// A teacher or a room serves at most one class per block.
	byTeacher := make(map[string][]int)
	byRoom := make(map[string][]int)
	for i, c := range p.Classes {
		byTeacher[c.Teacher] = append(byTeacher[c.Teacher], i)
		byRoom[c.Room] = append(byRoom[c.Room], i)
	}
	for t := 0; t < p.Slots(); t++ {
		for _, teacher := range p.Teachers {
			classes := byTeacher[teacher]
			if len(classes) > 1 {
				encode.AddExclusivity(b, pick(cube, classes, t))
			}
		}
		for _, classes := range byRoom {
			if len(classes) > 1 {
				encode.AddExclusivity(b, pick(cube, classes, t))
			}
		}
	}

	// Room changes: a teacher in two different rooms across adjacent
	// blocks of the same day. Pairs of the same class are skipped; a
	// class following itself keeps its room.
	for _, teacher := range p.Teachers {
		classes := byTeacher[teacher]
		for day := range p.Days {
			for block := 0; block < p.BlocksPerDay-1; block++ {
				slot := day*p.BlocksPerDay + block
				for _, i := range classes {
					for _, j := range classes {
						if i == j || p.Classes[i].Room == p.Classes[j].Room {
							continue
						}
						encode.AddChangePenalty(b,
							cube.Var(i, 0, slot), cube.Var(j, 0, slot+1),
							p.RoomChangePenalty, "room change", teacher,
							fmt.Sprintf("%s after block %d (%s to %s)",
								p.Days[day], block+1, p.Classes[i].Room, p.Classes[j].Room))
					}
				}
			}
		}
	}

	return cube
}

func pick(cube *encode.Cube, classes []int, slot int) []engine.Var {
	vars := make([]engine.Var, len(classes))
	for i, c := range classes {
		vars[i] = cube.Var(c, 0, slot)
	}
	return vars
}

// decodeSchedule lists, per class, the room it occupies at every slot
// it is scheduled in, in slot order.
func decodeSchedule(p *model.TimetableProblem, cube *encode.Cube, sol *engine.Solution) *model.Schedule {
	slots := make([]string, p.Slots())
	for day := range p.Days {
		for block := 0; block < p.BlocksPerDay; block++ {
			slots[day*p.BlocksPerDay+block] = fmt.Sprintf("%s/b%d", p.Days[day], block+1)
		}
	}
	rows := make([]model.ScheduleRow, len(p.Classes))
	for i, c := range p.Classes {
		assigned := make([]string, p.Slots())
		for t := 0; t < p.Slots(); t++ {
			if sol.Value(cube.Var(i, 0, t)) {
				assigned[t] = c.Room
			}
		}
		rows[i] = model.ScheduleRow{Unit: c.ID, Assigned: assigned}
	}
	return &model.Schedule{Slots: slots, Rows: rows}
}
