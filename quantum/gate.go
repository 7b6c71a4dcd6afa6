package quantum

import (
	"fmt"
)

// Gate describes an effect independent of which qids it acts on. Extra
// capabilities (unitary, decomposition, diagram info, ...) are declared
// by implementing the corresponding hook interfaces; the protocol
// dispatchers probe for them.
type Gate interface {
	// QidShape is the per-qubit dimensionality the gate acts on.
	QidShape() []int
	fmt.Stringer
}

// NumQubits returns the number of qids a gate acts on.
func NumQubits(g Gate) int { return len(g.QidShape()) }

// ValidateArgs checks that the qubits are present, match the gate's qubit
// count, and match its per-qubit level requirements element-wise.
func ValidateArgs(g Gate, qubits []Qid) error {
	shape := g.QidShape()
	if len(qubits) != len(shape) {
		return fmt.Errorf("gate %v requires %d qubits but got %d: %v", g, len(shape), len(qubits), qubits)
	}
	for i, q := range qubits {
		if q == nil {
			return fmt.Errorf("gate %v applied to a nil qid at position %d", g, i)
		}
		if q.Levels() != shape[i] {
			return fmt.Errorf("gate %v requires %d levels at position %d but %v has %d", g, shape[i], i, q, q.Levels())
		}
	}
	for i := range qubits {
		for j := i + 1; j < len(qubits); j++ {
			if QidsEqual(qubits[i], qubits[j]) {
				return fmt.Errorf("gate %v applied to duplicate qid %v", g, qubits[i])
			}
		}
	}
	return nil
}

// On binds a gate to qubits, validating eagerly.
func On(g Gate, qubits ...Qid) (Operation, error) {
	if err := ValidateArgs(g, qubits); err != nil {
		return nil, err
	}
	return &GateOperation{gate: g, qubits: qubits}, nil
}

// validateExactQubits is the arity check shared by the fixed-size gate
// kinds.
func validateExactQubits(g Gate, n int, qubits []Qid) error {
	if len(qubits) != n {
		return fmt.Errorf("gate %v acts on exactly %d qubits but got %v", g, n, qubits)
	}
	return ValidateArgs(g, qubits)
}

// qubitShape returns n two-level entries.
func qubitShape(n int) []int {
	shape := make([]int, n)
	for i := range shape {
		shape[i] = 2
	}
	return shape
}

// InterchangeableQubits is implemented by gates whose qubits fall into
// equivalence groups: permuting qubits within one group leaves the gate's
// effect unchanged. Downstream canonicalization keys on the group index.
type InterchangeableQubits interface {
	// QubitEquivalenceGroup returns the group key for the qubit at index i.
	QubitEquivalenceGroup(i int) int
}

// fullySymmetric marks gates where every qubit is in one group.
type fullySymmetric struct{}

func (fullySymmetric) QubitEquivalenceGroup(int) int { return 0 }
