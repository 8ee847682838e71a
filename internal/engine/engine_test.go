package engine

import (
	"testing"
	"time"

	"github.com/me/rota/internal/logging"
	"github.com/me/rota/pkg/model"
)

func TestSolveEmptyModelInvalid(t *testing.T) {
	m := NewModel(logging.Discard())
	sol := m.Solve(nil, time.Second)
	if sol.Status != model.StatusModelInvalid {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusModelInvalid)
	}
}

func TestSolveZeroBudgetUnknown(t *testing.T) {
	m := NewModel(logging.Discard())
	a := m.NewVar("a")
	m.AddUnit(a.Lit())
	sol := m.Solve(nil, 0)
	if sol.Status != model.StatusUnknown {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusUnknown)
	}
}

func TestSolveUnitPropagation(t *testing.T) {
	m := NewModel(logging.Discard())
	a := m.NewVar("a")
	b := m.NewVar("b")
	m.AddUnit(a.Lit())
	m.AddClause(a.Not(), b.Lit())

	sol := m.Solve(nil, time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if !sol.Value(a) || !sol.Value(b) {
		t.Fatalf("a=%v b=%v, want both true", sol.Value(a), sol.Value(b))
	}
}

func TestSolveInfeasible(t *testing.T) {
	m := NewModel(logging.Discard())
	a := m.NewVar("a")
	m.AddUnit(a.Lit())
	m.AddUnit(a.Not())

	sol := m.Solve(nil, time.Second)
	if sol.Status != model.StatusInfeasible {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusInfeasible)
	}
}

func TestSolveMinimizesCost(t *testing.T) {
	// a or b must hold; a costs 5, b costs 2. Optimum picks b only.
	m := NewModel(logging.Discard())
	a := m.NewVar("a")
	b := m.NewVar("b")
	m.AddClause(a.Lit(), b.Lit())

	sol := m.Solve([]CostTerm{{Var: a, Coeff: 5}, {Var: b, Coeff: 2}}, time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if sol.Objective != 2 {
		t.Fatalf("objective = %d, want 2", sol.Objective)
	}
	if sol.Value(a) || !sol.Value(b) {
		t.Fatalf("a=%v b=%v, want only b", sol.Value(a), sol.Value(b))
	}
}

func TestSolveNegativeCoeffReward(t *testing.T) {
	// A free variable with a reward of -3 is taken, objective -3.
	m := NewModel(logging.Discard())
	a := m.NewVar("a")
	pad := m.NewVar("pad")
	m.AddClause(a.Lit(), pad.Lit())

	sol := m.Solve([]CostTerm{{Var: a, Coeff: -3}}, time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if !sol.Value(a) {
		t.Fatal("reward variable not taken")
	}
	if sol.Objective != -3 {
		t.Fatalf("objective = %d, want -3", sol.Objective)
	}
}

func TestSolveMixedSignObjective(t *testing.T) {
	// Forcing a (cost 4) while its reward twin b (-1) stays free:
	// optimum takes b, objective 4 - 1 = 3.
	m := NewModel(logging.Discard())
	a := m.NewVar("a")
	b := m.NewVar("b")
	m.AddUnit(a.Lit())
	m.AddClause(a.Not(), b.Lit(), b.Not())

	sol := m.Solve([]CostTerm{{Var: a, Coeff: 4}, {Var: b, Coeff: -1}}, time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if sol.Objective != 3 {
		t.Fatalf("objective = %d, want 3", sol.Objective)
	}
}

func TestCardinalityConstraints(t *testing.T) {
	m := NewModel(logging.Discard())
	vars := make([]Var, 4)
	for i := range vars {
		vars[i] = m.NewVar("x")
	}
	m.AddExactly(vars, 2)
	// Cost on every variable drives the solver to choose the cheap pair.
	terms := []CostTerm{
		{Var: vars[0], Coeff: 1},
		{Var: vars[1], Coeff: 1},
		{Var: vars[2], Coeff: 10},
		{Var: vars[3], Coeff: 10},
	}
	sol := m.Solve(terms, time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	count := 0
	for _, v := range vars {
		if sol.Value(v) {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("true count = %d, want 2", count)
	}
	if sol.Objective != 2 {
		t.Fatalf("objective = %d, want 2", sol.Objective)
	}
}

func TestAtLeastWithRelax(t *testing.T) {
	// sum(vars) >= 2 or relax. Forcing all vars false forces relax.
	m := NewModel(logging.Discard())
	vars := []Var{m.NewVar("x"), m.NewVar("y")}
	relax := m.NewVar("relax")
	m.AddAtLeastWithRelax(vars, 2, relax)
	m.AddUnit(vars[0].Not())
	m.AddUnit(vars[1].Not())

	sol := m.Solve([]CostTerm{{Var: relax, Coeff: 1}}, time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if !sol.Value(relax) {
		t.Fatal("relax literal not forced")
	}
	if sol.Objective != 1 {
		t.Fatalf("objective = %d, want 1", sol.Objective)
	}
}

func TestAtMostWithRelax(t *testing.T) {
	// sum(vars) <= 1 or relax. Forcing both vars true forces relax.
	m := NewModel(logging.Discard())
	vars := []Var{m.NewVar("x"), m.NewVar("y")}
	relax := m.NewVar("relax")
	m.AddAtMostWithRelax(vars, 1, relax)
	m.AddUnit(vars[0].Lit())
	m.AddUnit(vars[1].Lit())

	sol := m.Solve([]CostTerm{{Var: relax, Coeff: 1}}, time.Second)
	if sol.Status != model.StatusOptimal {
		t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
	}
	if !sol.Value(relax) {
		t.Fatal("relax literal not forced")
	}
}

func TestBoolAnd(t *testing.T) {
	cases := []struct {
		name string
		a, b bool
	}{
		{"both", true, true},
		{"first only", true, false},
		{"second only", false, true},
		{"neither", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel(logging.Discard())
			a := m.NewVar("a")
			b := m.NewVar("b")
			ind := m.NewVar("ind")
			m.AddBoolAnd(ind, a, b)
			forceTo := func(v Var, val bool) {
				if val {
					m.AddUnit(v.Lit())
				} else {
					m.AddUnit(v.Not())
				}
			}
			forceTo(a, tc.a)
			forceTo(b, tc.b)

			sol := m.Solve(nil, time.Second)
			if sol.Status != model.StatusOptimal {
				t.Fatalf("status = %s, want %s", sol.Status, model.StatusOptimal)
			}
			if got, want := sol.Value(ind), tc.a && tc.b; got != want {
				t.Fatalf("ind = %v, want %v", got, want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	a := Var(1)
	b := Var(2)
	wlits, offset := normalize([]CostTerm{
		{Var: a, Coeff: 3},
		{Var: b, Coeff: -2},
		{Var: a, Coeff: 0},
	})
	if len(wlits) != 2 {
		t.Fatalf("len(wlits) = %d, want 2", len(wlits))
	}
	if wlits[0].lit != 1 || wlits[0].weight != 3 {
		t.Fatalf("wlits[0] = %+v", wlits[0])
	}
	if wlits[1].lit != -2 || wlits[1].weight != 2 {
		t.Fatalf("wlits[1] = %+v", wlits[1])
	}
	if offset != -2 {
		t.Fatalf("offset = %d, want -2", offset)
	}
}

func TestVarNames(t *testing.T) {
	m := NewModel(logging.Discard())
	v := m.NewVar("first")
	w := m.NewVar("second")
	if m.Name(v) != "first" || m.Name(w) != "second" {
		t.Fatalf("names = %q, %q", m.Name(v), m.Name(w))
	}
	if m.NumVars() != 2 {
		t.Fatalf("NumVars = %d, want 2", m.NumVars())
	}
}

func TestSolveReturnsAtDeadline(t *testing.T) {
	// A model with many competing soft terms. Whether the search
	// finishes or is cut off, Solve must come back close to the
	// budget, with an honest status and a consistent objective.
	m := NewModel(logging.Discard())
	const rows, cols = 12, 6
	vars := make([][]Var, rows)
	for r := 0; r < rows; r++ {
		vars[r] = make([]Var, cols)
		for c := 0; c < cols; c++ {
			vars[r][c] = m.NewVar("")
		}
		m.AddExactlyOne(vars[r]...)
	}
	var terms []CostTerm
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			terms = append(terms, CostTerm{Var: vars[r][c], Coeff: (r+c)%5 + 1})
		}
	}

	budget := 200 * time.Millisecond
	start := time.Now()
	sol := m.Solve(terms, budget)
	elapsed := time.Since(start)

	if elapsed > budget+2*time.Second {
		t.Fatalf("Solve took %s with a %s budget", elapsed, budget)
	}
	switch sol.Status {
	case model.StatusOptimal, model.StatusFeasible:
		if !sol.Value(vars[0][0]) && !sol.Value(vars[0][1]) && !sol.Value(vars[0][2]) &&
			!sol.Value(vars[0][3]) && !sol.Value(vars[0][4]) && !sol.Value(vars[0][5]) {
			t.Fatalf("row 0 has no assigned column")
		}
		if sol.Objective < rows {
			t.Fatalf("objective = %d, below the row minimum %d", sol.Objective, rows)
		}
	case model.StatusUnknown:
		// No model arrived before the deadline.
	default:
		t.Fatalf("status = %s", sol.Status)
	}
}
