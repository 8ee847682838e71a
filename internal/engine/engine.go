// Package engine adapts the gophersat pseudo-boolean solver to the
// capability contract the model compilers require: boolean decision
// variables, disjunctive and cardinality constraints, general linear
// (pseudo-boolean) constraints, and minimization of a weighted sum of
// variables under a wall-clock budget.
//
// Variable handles are opaque identifiers owned by the engine and only
// referenced by callers. Model construction is single-threaded; Solve is
// synchronous and blocking.
package engine

import (
	"log/slog"

	gophersat "github.com/crillab/gophersat/solver"
)

// Var is a boolean decision variable handle. The zero value is invalid.
type Var int32

// Lit is a variable or its negation.
type Lit int32

// Lit returns the positive literal of v.
func (v Var) Lit() Lit { return Lit(v) }

// Not returns the negated literal of v.
func (v Var) Not() Lit { return Lit(-v) }

// CostTerm contributes Coeff to the objective whenever Var is true.
// Negative coefficients reward the variable being true.
type CostTerm struct {
	Var   Var
	Coeff int
}

// Model accumulates variables and constraints for a single solve.
type Model struct {
	names   []string
	constrs []gophersat.PBConstr
	logger  *slog.Logger
}

// NewModel creates an empty model.
func NewModel(logger *slog.Logger) *Model {
	return &Model{logger: logger.With("component", "engine")}
}

// NewVar allocates a fresh boolean variable. The name is kept for
// diagnostics only; it does not have to be unique.
func (m *Model) NewVar(name string) Var {
	m.names = append(m.names, name)
	return Var(len(m.names))
}

// NumVars returns the number of allocated variables.
func (m *Model) NumVars() int { return len(m.names) }

// NumConstraints returns the number of posted constraints.
func (m *Model) NumConstraints() int { return len(m.constrs) }

// Name returns the diagnostic name of v.
func (m *Model) Name(v Var) string {
	if v <= 0 || int(v) > len(m.names) {
		panic("engine: name of unallocated variable")
	}
	return m.names[v-1]
}

// AddClause posts a disjunction: at least one literal must hold.
func (m *Model) AddClause(lits ...Lit) {
	m.constrs = append(m.constrs, gophersat.PropClause(intLits(lits)...))
}

// AddUnit forces a single literal.
func (m *Model) AddUnit(lit Lit) {
	m.AddClause(lit)
}

// AddExactlyOne posts that exactly one of the given variables is true.
func (m *Model) AddExactlyOne(vars ...Var) {
	m.AddAtLeast(vars, 1)
	m.AddAtMost(vars, 1)
}

// AddAtMostOne posts that no two of the given variables are both true.
func (m *Model) AddAtMostOne(vars ...Var) {
	m.AddAtMost(vars, 1)
}

// AddAtLeast posts that at least n of the given variables are true.
func (m *Model) AddAtLeast(vars []Var, n int) {
	if n <= 0 {
		return
	}
	m.constrs = append(m.constrs, gophersat.AtLeast(varInts(vars), n))
}

// AddAtMost posts that at most n of the given variables are true.
func (m *Model) AddAtMost(vars []Var, n int) {
	if n >= len(vars) {
		return
	}
	m.constrs = append(m.constrs, gophersat.AtMost(varInts(vars), n))
}

// AddExactly posts that exactly n of the given variables are true.
func (m *Model) AddExactly(vars []Var, n int) {
	m.AddAtLeast(vars, n)
	m.AddAtMost(vars, n)
}

// AddAtLeastWithRelax posts sum(vars) >= n unless relax is true: the
// relaxation literal alone satisfies the constraint.
func (m *Model) AddAtLeastWithRelax(vars []Var, n int, relax Var) {
	if n <= 0 {
		return
	}
	lits := append(varInts(vars), int(relax))
	weights := make([]int, len(lits))
	for i := range weights {
		weights[i] = 1
	}
	weights[len(weights)-1] = n
	m.constrs = append(m.constrs, gophersat.GtEq(lits, weights, n))
}

// AddAtMostWithRelax posts sum(vars) <= n unless relax is true.
func (m *Model) AddAtMostWithRelax(vars []Var, n int, relax Var) {
	if n >= len(vars) {
		return
	}
	// sum(vars) <= n  <=>  sum(!vars) >= len - n
	lits := make([]int, 0, len(vars)+1)
	for _, v := range vars {
		lits = append(lits, -int(v))
	}
	lits = append(lits, int(relax))
	weights := make([]int, len(lits))
	for i := range weights {
		weights[i] = 1
	}
	slack := len(vars) - n
	weights[len(weights)-1] = slack
	m.constrs = append(m.constrs, gophersat.GtEq(lits, weights, slack))
}

// AddBoolAnd constrains ind to equal the conjunction of a and b
// (ind <= a, ind <= b, ind >= a + b - 1).
func (m *Model) AddBoolAnd(ind, a, b Var) {
	m.AddClause(ind.Not(), a.Lit())
	m.AddClause(ind.Not(), b.Lit())
	m.AddClause(ind.Lit(), a.Not(), b.Not())
}

func intLits(lits []Lit) []int {
	res := make([]int, len(lits))
	for i, l := range lits {
		res[i] = int(l)
	}
	return res
}

func varInts(vars []Var) []int {
	res := make([]int, len(vars))
	for i, v := range vars {
		res[i] = int(v)
	}
	return res
}
