package encode

import (
	"testing"
	"time"

	"github.com/me/rota/internal/engine"
	"github.com/me/rota/internal/logging"
	"github.com/me/rota/pkg/model"
)

// solveSeq builds a single boolean sequence with the given spec, pins
// the listed positions, solves, and returns the solution and builder.
func solveSeq(t *testing.T, n int, spec model.BoundSpec, pinTrue, pinFalse []int) (*engine.Solution, *Builder, []engine.Var) {
	t.Helper()
	m := engine.NewModel(logging.Discard())
	b := NewBuilder(m)
	works := make([]engine.Var, n)
	for i := range works {
		works[i] = m.NewVar("w")
	}
	AddSoftSequence(b, works, spec, "test runs", "unit 0")
	for _, i := range pinTrue {
		m.AddUnit(works[i].Lit())
	}
	for _, i := range pinFalse {
		m.AddUnit(works[i].Not())
	}
	sol := m.Solve(b.Terms(), time.Second)
	return &sol, b, works
}

func TestSoftSequenceForbidsShortRuns(t *testing.T) {
	// Hard min 2: an isolated run of exactly one slot is impossible.
	spec := model.BoundSpec{HardMin: 2, SoftMin: 2, SoftMax: 4, HardMax: 4}
	sol, _, _ := solveSeq(t, 5, spec, []int{2}, []int{1, 3})
	if sol.Status != model.StatusInfeasible {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusInfeasible)
	}
}

func TestSoftSequenceForbidsLongRuns(t *testing.T) {
	// Hard max 2: three consecutive true slots are impossible.
	spec := model.BoundSpec{HardMin: 1, SoftMin: 1, SoftMax: 2, HardMax: 2}
	sol, _, _ := solveSeq(t, 5, spec, []int{1, 2, 3}, nil)
	if sol.Status != model.StatusInfeasible {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusInfeasible)
	}
}

func TestSoftSequencePenalizesShortRun(t *testing.T) {
	// Soft min 3, hard min 1, unit cost 10: a pinned isolated run of
	// length 1 is two steps short, so the penalty is 20.
	spec := model.BoundSpec{HardMin: 1, SoftMin: 3, MinCost: 10, SoftMax: 5, HardMax: 5}
	sol, b, _ := solveSeq(t, 5, spec, []int{2}, []int{1, 3})
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if sol.Objective != 20 {
		t.Fatalf("objective = %d, want 20", sol.Objective)
	}
	vs := b.Decode(sol)
	if len(vs) != 1 {
		t.Fatalf("violations = %d, want 1", len(vs))
	}
	if vs[0].Rule != "test runs" || vs[0].Amount != 2 || vs[0].Penalty != 20 {
		t.Fatalf("violation = %+v", vs[0])
	}
}

func TestSoftSequencePenalizesLongRun(t *testing.T) {
	// Soft max 2, hard max 4, unit cost 5: a pinned run of length 4 is
	// two over, so the penalty is 10.
	spec := model.BoundSpec{HardMin: 1, SoftMin: 1, SoftMax: 2, MaxCost: 5, HardMax: 4}
	sol, _, _ := solveSeq(t, 6, spec, []int{1, 2, 3, 4}, []int{0, 5})
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if sol.Objective != 10 {
		t.Fatalf("objective = %d, want 10", sol.Objective)
	}
}

func TestSoftSequenceInsideBandIsFree(t *testing.T) {
	spec := model.BoundSpec{HardMin: 1, SoftMin: 2, MinCost: 10, SoftMax: 3, MaxCost: 10, HardMax: 5}
	sol, _, _ := solveSeq(t, 6, spec, []int{1, 2, 3}, []int{0, 4})
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if sol.Objective != 0 {
		t.Fatalf("objective = %d, want 0", sol.Objective)
	}
}

func TestSoftSequenceHardSpecAddsNoCostTerms(t *testing.T) {
	// A pure hard band compiles to clauses only.
	m := engine.NewModel(logging.Discard())
	b := NewBuilder(m)
	works := make([]engine.Var, 6)
	for i := range works {
		works[i] = m.NewVar("w")
	}
	AddSoftSequence(b, works, model.BoundSpec{HardMin: 2, SoftMin: 2, SoftMax: 3, HardMax: 3}, "r", "u")
	if b.NumTerms() != 0 {
		t.Fatalf("cost terms = %d, want 0", b.NumTerms())
	}
}

func TestSoftSequenceBoundaryRunCountsAsBounded(t *testing.T) {
	// Soft min 2, cost 10: a length-1 run at the left edge has no left
	// sentinel, so it is still one short and penalized once.
	spec := model.BoundSpec{HardMin: 1, SoftMin: 2, MinCost: 10, SoftMax: 6, HardMax: 6}
	sol, _, _ := solveSeq(t, 6, spec, []int{0}, []int{1})
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if sol.Objective != 10 {
		t.Fatalf("objective = %d, want 10", sol.Objective)
	}
}
