package quantum

import (
	"fmt"
	"strings"
)

// Operation is an effect bound to specific qids.
type Operation interface {
	Qubits() []Qid
	// WithQubits rebinds the operation to new qids, revalidating.
	WithQubits(qubits ...Qid) (Operation, error)
	fmt.Stringer
}

// GateHolder is implemented by operations that are a gate applied to qubits.
type GateHolder interface {
	Gate() Gate
}

// TransformQubits rebinds an operation through a qid mapping function.
func TransformQubits(op Operation, f func(Qid) Qid) (Operation, error) {
	old := op.Qubits()
	mapped := make([]Qid, len(old))
	for i, q := range old {
		mapped[i] = f(q)
	}
	return op.WithQubits(mapped...)
}

// GateOperation is a gate bound to an ordered list of qubits.
type GateOperation struct {
	gate   Gate
	qubits []Qid
}

func (op *GateOperation) Gate() Gate { return op.gate }

func (op *GateOperation) Qubits() []Qid { return op.qubits }

func (op *GateOperation) WithQubits(qubits ...Qid) (Operation, error) {
	return On(op.gate, qubits...)
}

func (op *GateOperation) String() string {
	parts := make([]string, len(op.qubits))
	for i, q := range op.qubits {
		parts[i] = q.String()
	}
	return fmt.Sprintf("%v(%s)", op.gate, strings.Join(parts, ", "))
}

// ParameterNames reports the symbols of a parameterized gate.
func (op *GateOperation) ParameterNames() []string {
	if r, ok := op.gate.(Resolvable); ok {
		return r.ParameterNames()
	}
	return nil
}

// WithResolved substitutes parameter values into the underlying gate.
func (op *GateOperation) WithResolved(r Resolver) any {
	res, ok := op.gate.(Resolvable)
	if !ok {
		return op
	}
	g, ok := res.WithResolved(r).(Gate)
	if !ok {
		return op
	}
	rebound, err := On(g, op.qubits...)
	if err != nil {
		return op
	}
	return rebound
}

// Pow raises the operation to a power by raising its gate.
func (op *GateOperation) Pow(t Param) (Operation, bool) {
	g, ok := Pow(op.gate, t)
	if !ok {
		return nil, false
	}
	rebound, err := On(g, op.qubits...)
	if err != nil {
		return nil, false
	}
	return rebound, true
}
