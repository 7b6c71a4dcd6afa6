package quantum

import (
	"fmt"
)

// GateDecomposer is the gate hook for rewriting into simpler operations
// once qubits are known.
type GateDecomposer interface {
	DecomposeQubits(qubits []Qid) ([]Operation, bool)
}

// OperationDecomposer is the operation-level decomposition hook.
type OperationDecomposer interface {
	Decompose() ([]Operation, bool)
}

// DecomposeOnce rewrites an operation one level: the operation's own hook
// first, then its gate's decomposer applied to its qubits.
func DecomposeOnce(op Operation) ([]Operation, bool) {
	if d, ok := op.(OperationDecomposer); ok {
		if ops, ok := d.Decompose(); ok {
			return ops, true
		}
	}
	if h, ok := op.(GateHolder); ok {
		if d, ok := h.Gate().(GateDecomposer); ok {
			return d.DecomposeQubits(op.Qubits())
		}
	}
	return nil, false
}

// isLeaf reports whether an operation can be consumed without further
// rewriting: it has a matrix, a channel, or is a measurement. Only
// consulted for operations with no decomposition of their own, so the
// decompose-derived unitary fallback cannot mask a rewritable operation.
func isLeaf(op Operation) bool {
	if _, ok := MaybeUnitary(op); ok {
		return true
	}
	if _, ok := MaybeKraus(op); ok {
		return true
	}
	if h, ok := op.(GateHolder); ok {
		if _, ok := h.Gate().(*MeasurementGate); ok {
			return true
		}
	}
	return IsParameterized(op)
}

// Decompose flattens an operation recursively: anything with a
// decomposition hook is expanded until every piece is a leaf. Errors when
// a non-leaf refuses to decompose.
func Decompose(op Operation) ([]Operation, error) {
	if sub, ok := DecomposeOnce(op); ok {
		var out []Operation
		for _, s := range sub {
			flat, err := Decompose(s)
			if err != nil {
				return nil, err
			}
			out = append(out, flat...)
		}
		return out, nil
	}
	if isLeaf(op) {
		return []Operation{op}, nil
	}
	return nil, fmt.Errorf("cannot decompose %v: operation has no Decompose hook and is not a unitary, channel, or measurement leaf", op)
}
