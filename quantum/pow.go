package quantum

import (
	"fmt"

	"qcirc/linalg"
)

// Powable is the gate hook for raising to a (possibly symbolic) power.
type Powable interface {
	Pow(t Param) (Gate, bool)
}

// PowableOperation is the operation-level counterpart of Powable.
type PowableOperation interface {
	Pow(t Param) (Operation, bool)
}

// Pow raises a gate to a power. Exponent 1 returns the gate unchanged.
// A gate that does not implement Powable can still be inverted when it
// decomposes into invertible parts.
func Pow(g Gate, t Param) (Gate, bool) {
	if v, ok := t.Float(); ok && v == 1 {
		return g, true
	}
	if p, ok := g.(Powable); ok {
		if out, ok := p.Pow(t); ok {
			return out, true
		}
	}
	if v, ok := t.Float(); ok && v == -1 {
		if _, ok := g.(GateDecomposer); ok {
			return &InverseGate{sub: g}, true
		}
	}
	return nil, false
}

// PowOperation raises an operation to a power.
func PowOperation(op Operation, t Param) (Operation, bool) {
	if v, ok := t.Float(); ok && v == 1 {
		return op, true
	}
	if p, ok := op.(PowableOperation); ok {
		return p.Pow(t)
	}
	return nil, false
}

// Inverse returns g to the power -1, or false when the inverse cannot be
// constructed.
func Inverse(g Gate) (Gate, bool) {
	return Pow(g, Value(-1))
}

// InverseGate inverts a composite gate by reversing its decomposition and
// inverting each part.
type InverseGate struct {
	sub Gate
}

func (g *InverseGate) Sub() Gate       { return g.sub }
func (g *InverseGate) QidShape() []int { return g.sub.QidShape() }

func (g *InverseGate) String() string { return fmt.Sprintf("%v†", g.sub) }

func (g *InverseGate) Pow(t Param) (Gate, bool) {
	if v, ok := t.Float(); ok && v == -1 {
		return g.sub, true
	}
	return Pow(g.sub, t.MulFloat(-1))
}

// DecomposeQubits reverses the sub-gate's decomposition and inverts each
// resulting operation. Fails when any part cannot be inverted.
func (g *InverseGate) DecomposeQubits(qubits []Qid) ([]Operation, bool) {
	d, ok := g.sub.(GateDecomposer)
	if !ok {
		return nil, false
	}
	ops, ok := d.DecomposeQubits(qubits)
	if !ok {
		return nil, false
	}
	out := make([]Operation, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		inv, ok := PowOperation(ops[i], Value(-1))
		if !ok {
			return nil, false
		}
		out = append(out, inv)
	}
	return out, true
}

// Unitary is the adjoint of the sub-gate's unitary when available.
func (g *InverseGate) Unitary() (*linalg.Matrix, bool) {
	u, ok := MaybeUnitary(g.sub)
	if !ok {
		return nil, false
	}
	return linalg.ConjTranspose(u), true
}
