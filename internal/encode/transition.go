package encode

import (
	"fmt"

	"github.com/me/rota/internal/engine"
)

// AddTransition handles an ordered pair of adjacent-slot assignments for
// one unit: prev at slot t, next at slot t+1. With cost zero the pair is
// forbidden by a two-literal clause; with a positive cost a relaxation
// literal admits the pair against the penalty.
func AddTransition(b *Builder, prev, next engine.Var, cost int, rule, unit, context string) {
	m := b.Model()
	if cost == 0 {
		m.AddClause(prev.Not(), next.Not())
		return
	}
	lit := m.NewVar(fmt.Sprintf("%s: transition(%s)", rule, context))
	m.AddClause(prev.Not(), next.Not(), lit.Lit())
	b.AddCost(lit, cost, rule, unit, context, 1)
}

// AddChangePenalty charges cost whenever both assignments hold, via an
// indicator constrained to equal their conjunction. Used for resource
// adjacency penalties such as a teacher changing rooms between
// consecutive blocks.
func AddChangePenalty(b *Builder, first, second engine.Var, cost int, rule, unit, context string) {
	if cost == 0 {
		return
	}
	m := b.Model()
	ind := m.NewVar(fmt.Sprintf("%s: change(%s)", rule, context))
	m.AddBoolAnd(ind, first, second)
	b.AddCost(ind, cost, rule, unit, context, 1)
}
