package quantum

import (
	"fmt"

	"qcirc/linalg"
)

// PauliExpander is the hook for values that know their own Pauli-basis
// coefficients.
type PauliExpander interface {
	PauliExpansion() (map[string]complex128, bool)
}

// PauliExpansion expands val over the iterated Pauli basis {I,X,Y,Z}^n.
// Symbolic values have no expansion.
func PauliExpansion(val any) (map[string]complex128, error) {
	if p, ok := val.(PauliExpander); ok {
		if coeffs, ok := p.PauliExpansion(); ok {
			return coeffs, nil
		}
	}
	if h, ok := val.(GateHolder); ok {
		return PauliExpansion(h.Gate())
	}
	u, ok := MaybeUnitary(val)
	if !ok {
		return nil, fmt.Errorf("no Pauli expansion for %v: value has no PauliExpansion or Unitary", val)
	}
	return linalg.ExpandPauli(u)
}

// TraceDistanceBounder is the hook for cheap trace-distance bounds.
type TraceDistanceBounder interface {
	TraceDistanceBound() float64
}

// TraceDistanceBound bounds how far val is from the identity in trace
// distance, defaulting to the trivial bound 1.
func TraceDistanceBound(val any) float64 {
	if b, ok := val.(TraceDistanceBounder); ok {
		return b.TraceDistanceBound()
	}
	if h, ok := val.(GateHolder); ok {
		return TraceDistanceBound(h.Gate())
	}
	return 1
}
