package encode

import (
	"fmt"

	"github.com/me/rota/internal/engine"
)

// AddCoverage posts a hard minimum on how many of the given variables
// must be true (aggregate demand for one category at one slot across
// all units) and charges excessCost per unit above the demand.
func AddCoverage(b *Builder, vars []engine.Var, demand, excessCost int, rule, context string) {
	m := b.Model()
	m.AddAtLeast(vars, demand)
	if excessCost <= 0 {
		return
	}
	for level := demand; level < len(vars); level++ {
		lit := m.NewVar(fmt.Sprintf("%s: over_cover(level=%d)", rule, level))
		m.AddAtMostWithRelax(vars, level, lit)
		b.AddCost(lit, excessCost, rule, "", context, 1)
	}
}

// AddExclusivity posts that at most one of the given variables is true:
// a shared resource cannot serve two units in the same slot. Always
// hard, never relaxed.
func AddExclusivity(b *Builder, vars []engine.Var) {
	b.Model().AddAtMostOne(vars...)
}
