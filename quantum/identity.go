package quantum

import (
	"strings"

	"qcirc/linalg"
)

// IdentityGate does nothing to any number of qids.
type IdentityGate struct {
	shape []int
}

// NewIdentity returns the identity on n qubits.
func NewIdentity(n int) *IdentityGate { return &IdentityGate{shape: qubitShape(n)} }

// IdentityWithShape returns the identity on qids with the given levels.
func IdentityWithShape(shape []int) *IdentityGate {
	return &IdentityGate{shape: append([]int{}, shape...)}
}

func (g *IdentityGate) QidShape() []int { return g.shape }

func (g *IdentityGate) String() string {
	if len(g.shape) == 1 {
		return "I"
	}
	return "I(" + strings.Repeat("·", len(g.shape)) + ")"
}

func (g *IdentityGate) QubitEquivalenceGroup(int) int { return 0 }

func (g *IdentityGate) Pow(Param) (Gate, bool) { return g, true }

func (g *IdentityGate) Unitary() (*linalg.Matrix, bool) {
	d := 1
	for _, s := range g.shape {
		d *= s
	}
	return linalg.Identity(d), true
}

func (g *IdentityGate) ApplyUnitary(*ApplyArgs) (ApplyResult, bool) {
	return ApplyResult{Tag: BufferTarget}, true
}

func (g *IdentityGate) TraceDistanceBound() float64 { return 0 }

func (g *IdentityGate) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	symbols := make([]string, len(g.shape))
	for i := range symbols {
		symbols[i] = "I"
	}
	return DiagramInfo{WireSymbols: symbols}, true
}
