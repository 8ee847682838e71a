package encode

import (
	"fmt"

	"github.com/me/rota/internal/engine"
	"github.com/me/rota/pkg/model"
)

// AddSoftSum constrains how many variables in the window may be true.
//
// The count is hard-bounded to [spec.HardMin, spec.HardMax]. Deviation
// outside the soft band is charged linearly: one relaxation literal per
// deviation step, each worth the band's unit cost. In any optimal
// solution the number of true under-literals equals exactly
// max(0, SoftMin-count) and the over-literals max(0, count-SoftMax), so
// the ladder realizes the one-sided excess variable without an integer
// domain.
func AddSoftSum(b *Builder, works []engine.Var, spec model.BoundSpec, rule, unit, context string) {
	m := b.Model()

	m.AddAtLeast(works, spec.HardMin)
	m.AddAtMost(works, spec.HardMax)

	if spec.MinCost > 0 {
		for level := spec.HardMin + 1; level <= spec.SoftMin; level++ {
			lit := m.NewVar(fmt.Sprintf("%s: under_sum(level=%d)", rule, level))
			m.AddAtLeastWithRelax(works, level, lit)
			b.AddCost(lit, spec.MinCost, rule, unit, context, 1)
		}
	}
	if spec.MaxCost > 0 {
		for level := spec.SoftMax; level < spec.HardMax; level++ {
			lit := m.NewVar(fmt.Sprintf("%s: over_sum(level=%d)", rule, level))
			m.AddAtMostWithRelax(works, level, lit)
			b.AddCost(lit, spec.MaxCost, rule, unit, context, 1)
		}
	}
}
