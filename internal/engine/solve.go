package engine

import (
	"time"

	gophersat "github.com/crillab/gophersat/solver"

	"github.com/me/rota/pkg/model"
)

// Solution is the engine's answer: a status, the variable bindings when
// an assignment exists, the achieved objective (including contributions
// from negative cost terms), and solver statistics.
type Solution struct {
	Status    model.Status
	Objective int
	Stats     model.SolveStats

	values []bool
}

// Value returns the binding of v. It must only be called when
// Status.HasAssignment() is true.
func (s *Solution) Value(v Var) bool {
	if s.values == nil {
		panic("engine: Value called without an assignment")
	}
	return s.values[v-1]
}

type weightedLit struct {
	lit    int
	weight int
}

// searchResult is one message from the search goroutine: an improved
// model, or the final outcome. The values slice and the stats snapshot
// are owned by the receiver.
type searchResult struct {
	status    model.Status
	values    []bool
	cost      int
	solutions int
	stats     solverStats
}

type solverStats struct {
	conflicts int
	decisions int
	restarts  int
}

// Solve minimizes the weighted sum of the given cost terms subject to
// every posted constraint, returning within the wall-clock budget.
//
// The underlying solver cannot be interrupted mid-search, so the search
// runs on its own goroutine and publishes every improved model. Solve
// waits on a deadline timer: when it fires, the best model seen so far
// is returned as Feasible (Unknown when none arrived in time) and the
// abandoned search winds down in the background at its next
// improvement. Negative coefficients are normalized for minimization by
// penalizing the negated literal and carrying a constant offset, so the
// reported objective matches the signed sum of the original terms.
func (m *Model) Solve(terms []CostTerm, budget time.Duration) Solution {
	start := time.Now()
	if m.NumVars() == 0 || len(m.constrs) == 0 {
		return Solution{
			Status: model.StatusModelInvalid,
			Stats:  model.SolveStats{Status: model.StatusModelInvalid},
		}
	}

	wlits, offset := normalize(terms)

	if budget <= 0 {
		return m.finish(model.StatusUnknown, nil, 0, offset, 0, start, solverStats{})
	}

	stop := make(chan struct{})
	improved := make(chan searchResult, 1)
	final := make(chan searchResult, 1)
	go m.search(wlits, stop, improved, final)

	timer := time.NewTimer(budget)
	defer timer.Stop()

	var best searchResult
	have := false
	for {
		select {
		case r := <-improved:
			best, have = r, true
			m.logger.Debug("model found", "cost", r.cost+offset, "solutions", r.solutions)
		case r := <-final:
			if r.status == model.StatusInfeasible {
				return m.finish(model.StatusInfeasible, nil, 0, offset, 0, start, r.stats)
			}
			return m.finish(model.StatusOptimal, r.values, r.cost, offset, r.solutions, start, r.stats)
		case <-timer.C:
			close(stop)
			// An improvement may have raced the timer.
			select {
			case r := <-improved:
				best, have = r, true
			default:
			}
			if !have {
				return m.finish(model.StatusUnknown, nil, 0, offset, 0, start, solverStats{})
			}
			return m.finish(model.StatusFeasible, best.values, best.cost, offset, best.solutions, start, best.stats)
		}
	}
}

// search runs the bound-tightening loop: solve, publish the model,
// require the next one to beat its cost, solve again. It ends when the
// tightened bound is unsatisfiable (the last model is optimal), when
// the cost reaches zero, or when stop closes between iterations.
func (m *Model) search(wlits []weightedLit, stop <-chan struct{}, improved chan searchResult, final chan<- searchResult) {
	s := gophersat.New(gophersat.ParsePBConstrs(m.constrs))

	total := 0
	for _, wl := range wlits {
		total += wl.weight
	}

	status := s.Solve()
	if status == gophersat.Unsat {
		final <- searchResult{status: model.StatusInfeasible, stats: snapshot(s)}
		return
	}

	var best []bool
	bestCost := 0
	solutions := 0
	for status == gophersat.Sat {
		vals := s.Model()
		cost := evaluate(vals, wlits)
		best, bestCost = vals, cost
		solutions++

		r := searchResult{
			status:    model.StatusFeasible,
			values:    vals,
			cost:      cost,
			solutions: solutions,
			stats:     snapshot(s),
		}
		if len(wlits) == 0 || cost == 0 {
			r.status = model.StatusOptimal
			final <- r
			return
		}
		publish(improved, r)

		select {
		case <-stop:
			return
		default:
		}

		// Require the next model to beat the current cost:
		// sum(w*!lit) >= total - cost + 1  <=>  sum(w*lit) <= cost - 1.
		lits := make([]gophersat.Lit, len(wlits))
		weights := make([]int, len(wlits))
		for i, wl := range wlits {
			lits[i] = gophersat.IntToLit(int32(-wl.lit))
			weights[i] = wl.weight
		}
		s.AppendClause(gophersat.NewPBClause(lits, weights, total-cost+1))
		status = s.Solve()
	}

	// The tightened bound is unsatisfiable: the last model is optimal.
	final <- searchResult{
		status:    model.StatusOptimal,
		values:    best,
		cost:      bestCost,
		solutions: solutions,
		stats:     snapshot(s),
	}
}

// publish replaces any unread improvement with the newer one. A single
// producer sends on the channel, so the drain cannot race another send.
func publish(ch chan searchResult, r searchResult) {
	for {
		select {
		case ch <- r:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func snapshot(s *gophersat.Solver) solverStats {
	return solverStats{
		conflicts: s.Stats.NbConflicts,
		decisions: s.Stats.NbDecisions,
		restarts:  s.Stats.NbRestarts,
	}
}

func (m *Model) finish(status model.Status, values []bool, cost, offset, solutions int, start time.Time, st solverStats) Solution {
	stats := model.SolveStats{
		Status:    status,
		WallTime:  time.Since(start),
		Solutions: solutions,
		Conflicts: st.conflicts,
		Decisions: st.decisions,
		Restarts:  st.restarts,
	}
	if status.HasAssignment() {
		stats.Objective = cost + offset
	}
	sol := Solution{
		Status:    status,
		Objective: stats.Objective,
		Stats:     stats,
		values:    values,
	}
	m.logger.Info("solve finished",
		"status", status,
		"objective", stats.Objective,
		"solutions", solutions,
		"wall_time", stats.WallTime.String(),
	)
	return sol
}

// normalize rewrites cost terms so that every weight is positive.
// A term with a negative coefficient c on variable v is replaced by a
// penalty of -c on !v plus a constant offset of c.
func normalize(terms []CostTerm) (wlits []weightedLit, offset int) {
	for _, t := range terms {
		switch {
		case t.Coeff > 0:
			wlits = append(wlits, weightedLit{lit: int(t.Var), weight: t.Coeff})
		case t.Coeff < 0:
			wlits = append(wlits, weightedLit{lit: -int(t.Var), weight: -t.Coeff})
			offset += t.Coeff
		}
	}
	return wlits, offset
}

func evaluate(values []bool, wlits []weightedLit) int {
	cost := 0
	for _, wl := range wlits {
		if wl.lit > 0 == values[abs(wl.lit)-1] {
			cost += wl.weight
		}
	}
	return cost
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
