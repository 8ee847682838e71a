package encode

import (
	"testing"
	"time"

	"github.com/me/rota/internal/engine"
	"github.com/me/rota/internal/logging"
	"github.com/me/rota/pkg/model"
)

func TestTransitionForbidden(t *testing.T) {
	m := engine.NewModel(logging.Discard())
	b := NewBuilder(m)
	prev := m.NewVar("prev")
	next := m.NewVar("next")
	AddTransition(b, prev, next, 0, "night to morning", "employee 0", "d0 to d1")
	m.AddUnit(prev.Lit())
	m.AddUnit(next.Lit())

	sol := m.Solve(b.Terms(), time.Second)
	if sol.Status != model.StatusInfeasible {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusInfeasible)
	}
	if b.NumTerms() != 0 {
		t.Fatalf("cost terms = %d, want 0", b.NumTerms())
	}
}

func TestTransitionPenalized(t *testing.T) {
	m := engine.NewModel(logging.Discard())
	b := NewBuilder(m)
	prev := m.NewVar("prev")
	next := m.NewVar("next")
	AddTransition(b, prev, next, 4, "afternoon to night", "employee 0", "d0 to d1")
	m.AddUnit(prev.Lit())
	m.AddUnit(next.Lit())

	sol := m.Solve(b.Terms(), time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s", sol.Status)
	}
	if sol.Objective != 4 {
		t.Fatalf("objective = %d, want 4", sol.Objective)
	}
	vs := b.Decode(&sol)
	if len(vs) != 1 || vs[0].Rule != "afternoon to night" || vs[0].Penalty != 4 {
		t.Fatalf("violations = %+v", vs)
	}
}

func TestTransitionNotTakenIsFree(t *testing.T) {
	m := engine.NewModel(logging.Discard())
	b := NewBuilder(m)
	prev := m.NewVar("prev")
	next := m.NewVar("next")
	AddTransition(b, prev, next, 4, "r", "u", "c")
	m.AddUnit(prev.Lit())
	m.AddUnit(next.Not())

	sol := m.Solve(b.Terms(), time.Second)
	if sol.Status != model.StatusOptimal || sol.Objective != 0 {
		t.Fatalf("status = %s objective = %d", sol.Status, sol.Objective)
	}
}

func TestChangePenaltyChargesOnConjunction(t *testing.T) {
	m := engine.NewModel(logging.Discard())
	b := NewBuilder(m)
	first := m.NewVar("first")
	second := m.NewVar("second")
	AddChangePenalty(b, first, second, 2, "room change", "teacher A", "Mon b0 to b1")
	m.AddUnit(first.Lit())
	m.AddUnit(second.Lit())

	sol := m.Solve(b.Terms(), time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s", sol.Status)
	}
	if sol.Objective != 2 {
		t.Fatalf("objective = %d, want 2", sol.Objective)
	}
}

func TestChangePenaltyZeroCostIsNoop(t *testing.T) {
	m := engine.NewModel(logging.Discard())
	b := NewBuilder(m)
	first := m.NewVar("first")
	second := m.NewVar("second")
	before := m.NumVars()
	AddChangePenalty(b, first, second, 0, "r", "u", "c")
	if m.NumVars() != before || b.NumTerms() != 0 {
		t.Fatalf("vars = %d terms = %d, want unchanged", m.NumVars(), b.NumTerms())
	}
}
