// Package encode translates human-level scheduling rules into boolean
// decision variables, clauses and pseudo-boolean constraints over an
// engine model, together with a single weighted objective.
//
// Each compiler (sequence, sum, transition, coverage) consumes variables
// owned by a Cube, posts its constraints, and registers its cost terms
// with a Builder. The Builder is the objective aggregator: it owns every
// cost term and the penalty metadata needed to decode a solved model
// back into human-readable violation records.
package encode

import (
	"github.com/me/rota/internal/engine"
	"github.com/me/rota/pkg/model"
)

// Penalty binds a cost term to reporting context: which rule, unit and
// slot the term belongs to, and the magnitude it represents when its
// variable is true. Created at compile time, read-only afterward.
type Penalty struct {
	Var     engine.Var
	Coeff   int
	Rule    string
	Unit    string
	Context string
	Amount  int
}

// Builder accumulates cost terms and penalty records from all compilers
// targeting one engine model.
type Builder struct {
	m         *engine.Model
	penalties []Penalty
}

// NewBuilder creates a Builder targeting m.
func NewBuilder(m *engine.Model) *Builder {
	return &Builder{m: m}
}

// Model returns the underlying engine model.
func (b *Builder) Model() *engine.Model { return b.m }

// AddCost registers a cost term: coeff is charged to the objective
// whenever v is true, and a violation of the given rule, unit, context
// and amount is reported. Negative coefficients represent rewards.
func (b *Builder) AddCost(v engine.Var, coeff int, rule, unit, context string, amount int) {
	if coeff == 0 {
		return
	}
	b.penalties = append(b.penalties, Penalty{
		Var:     v,
		Coeff:   coeff,
		Rule:    rule,
		Unit:    unit,
		Context: context,
		Amount:  amount,
	})
}

// Terms flattens all registered cost terms into the objective handed to
// the engine.
func (b *Builder) Terms() []engine.CostTerm {
	terms := make([]engine.CostTerm, len(b.penalties))
	for i, p := range b.penalties {
		terms[i] = engine.CostTerm{Var: p.Var, Coeff: p.Coeff}
	}
	return terms
}

// NumTerms returns the number of registered cost terms.
func (b *Builder) NumTerms() int { return len(b.penalties) }

// Decode reads the solved model and returns one violation record per
// active (rule, unit, context) group. Ladder encodings register several
// single-step terms for one logical deviation; grouping them restores
// the "magnitude and total penalty" view callers expect. For rewards
// the penalty is negative when the preference was granted.
func (b *Builder) Decode(sol *engine.Solution) []model.Violation {
	type key struct{ rule, unit, context string }
	index := make(map[key]int)
	var out []model.Violation
	for _, p := range b.penalties {
		if !sol.Value(p.Var) {
			continue
		}
		k := key{p.Rule, p.Unit, p.Context}
		if i, ok := index[k]; ok {
			out[i].Amount += p.Amount
			out[i].Penalty += p.Coeff
			continue
		}
		index[k] = len(out)
		out = append(out, model.Violation{
			Rule:    p.Rule,
			Unit:    p.Unit,
			Context: p.Context,
			Amount:  p.Amount,
			Penalty: p.Coeff,
		})
	}
	return out
}
