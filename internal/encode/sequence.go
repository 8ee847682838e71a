package encode

import (
	"fmt"

	"github.com/me/rota/internal/engine"
	"github.com/me/rota/pkg/model"
)

// AddSoftSequence constrains the lengths of consecutive runs of one
// category in a unit's boolean sequence.
//
// Runs shorter than spec.HardMin or longer than spec.HardMax are
// forbidden outright. Runs inside the hard bounds but outside the
// [SoftMin, SoftMax] band are admitted through a relaxation literal per
// (start, length), charged cost times the distance to the band edge.
// Every forbidden length is enumerated at every start position, so no
// isolated run of an illegal length can exist anywhere, including at
// the sequence edges.
func AddSoftSequence(b *Builder, works []engine.Var, spec model.BoundSpec, rule, unit string) {
	m := b.Model()

	// Runs that are too short are never allowed at all.
	for length := 1; length < spec.HardMin; length++ {
		for start := 0; start <= len(works)-length; start++ {
			m.AddClause(negatedBoundedSpan(works, start, length)...)
		}
	}

	// Penalize runs below the preferred minimum.
	if spec.MinCost > 0 {
		for length := spec.HardMin; length < spec.SoftMin; length++ {
			for start := 0; start <= len(works)-length; start++ {
				span := negatedBoundedSpan(works, start, length)
				lit := m.NewVar(fmt.Sprintf("%s: under_span(start=%d, length=%d)", rule, start, length))
				m.AddClause(append(span, lit.Lit())...)
				b.AddCost(lit, spec.MinCost*(spec.SoftMin-length), rule, unit,
					fmt.Sprintf("run of %d starting at slot %d", length, start),
					spec.SoftMin-length)
			}
		}
	}

	// Penalize runs above the preferred maximum.
	if spec.MaxCost > 0 {
		for length := spec.SoftMax + 1; length <= spec.HardMax; length++ {
			for start := 0; start <= len(works)-length; start++ {
				span := negatedBoundedSpan(works, start, length)
				lit := m.NewVar(fmt.Sprintf("%s: over_span(start=%d, length=%d)", rule, start, length))
				m.AddClause(append(span, lit.Lit())...)
				b.AddCost(lit, spec.MaxCost*(length-spec.SoftMax), rule, unit,
					fmt.Sprintf("run of %d starting at slot %d", length, start),
					length-spec.SoftMax)
			}
		}
	}

	// Forbid any run of length hard max + 1: every window that wide must
	// contain at least one false position.
	for start := 0; start < len(works)-spec.HardMax; start++ {
		window := make([]engine.Lit, spec.HardMax+1)
		for i := range window {
			window[i] = works[start+i].Not()
		}
		m.AddClause(window...)
	}
}
