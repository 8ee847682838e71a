package encode

import "github.com/me/rota/internal/engine"

// negatedBoundedSpan returns the clause forbidding an isolated run of
// the target category of exactly the given length, starting at start:
// at least one of { works[start-1], !works[start..start+length-1],
// works[start+length] } must hold. A sentinel neighbor falling outside
// the sequence is omitted, so runs touching a boundary count as
// bounded by that boundary.
func negatedBoundedSpan(works []engine.Var, start, length int) []engine.Lit {
	span := make([]engine.Lit, 0, length+2)
	if start > 0 {
		span = append(span, works[start-1].Lit())
	}
	for i := 0; i < length; i++ {
		span = append(span, works[start+i].Not())
	}
	if start+length < len(works) {
		span = append(span, works[start+length].Lit())
	}
	return span
}
