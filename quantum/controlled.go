package quantum

import (
	"fmt"
	"strings"

	"qcirc/linalg"
)

// Controlled conditions a gate on control qubits being |1⟩. Zero controls
// is the identity transformation and returns sub itself.
func Controlled(sub Gate, numControls int) Gate {
	if numControls == 0 {
		return sub
	}
	return &ControlledGate{sub: sub, numControls: numControls}
}

// ControlledGate applies its sub-gate on the subspace where every control
// qubit is |1⟩. Controls come first in the qubit order.
type ControlledGate struct {
	sub         Gate
	numControls int
}

func (g *ControlledGate) Sub() Gate        { return g.sub }
func (g *ControlledGate) NumControls() int { return g.numControls }

func (g *ControlledGate) QidShape() []int {
	return append(qubitShape(g.numControls), g.sub.QidShape()...)
}

func (g *ControlledGate) String() string {
	return strings.Repeat("C", g.numControls) + g.sub.String()
}

// QubitEquivalenceGroup: controls are interchangeable with each other;
// sub-gate groups shift up by one.
func (g *ControlledGate) QubitEquivalenceGroup(i int) int {
	if i < g.numControls {
		return 0
	}
	if eq, ok := g.sub.(InterchangeableQubits); ok {
		return 1 + eq.QubitEquivalenceGroup(i-g.numControls)
	}
	// no sub grouping: every sub qubit is its own group
	return 1 + (i - g.numControls)
}

func (g *ControlledGate) Pow(t Param) (Gate, bool) {
	sub, ok := Pow(g.sub, t)
	if !ok {
		return nil, false
	}
	return Controlled(sub, g.numControls), true
}

func (g *ControlledGate) ParameterNames() []string { return ParameterNames(g.sub) }

func (g *ControlledGate) WithResolved(r Resolver) any {
	sub, ok := ResolveParameters(g.sub, r).(Gate)
	if !ok {
		return g
	}
	return Controlled(sub, g.numControls)
}

// Unitary is identity except on the all-controls-one block, which holds
// the sub-gate's unitary.
func (g *ControlledGate) Unitary() (*linalg.Matrix, bool) {
	u, ok := MaybeUnitary(g.sub)
	if !ok {
		return nil, false
	}
	d, _ := u.Dims()
	total := d << g.numControls
	out := linalg.Identity(total)
	base := total - d
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			out.Set(base+i, base+j, u.At(i, j))
		}
	}
	return out, true
}

func (g *ControlledGate) DiagramInfo(args DiagramArgs) (DiagramInfo, bool) {
	sub := GetDiagramInfo(g.sub, args)
	symbols := make([]string, 0, g.numControls+len(sub.WireSymbols))
	for i := 0; i < g.numControls; i++ {
		symbols = append(symbols, "●")
	}
	symbols = append(symbols, sub.WireSymbols...)
	return DiagramInfo{WireSymbols: symbols, Exponent: sub.Exponent, Connected: true}, true
}

// ControlOperation conditions an operation on control qubits. Zero
// controls returns sub itself.
func ControlOperation(sub Operation, controls ...Qid) (Operation, error) {
	if len(controls) == 0 {
		return sub, nil
	}
	for i, c := range controls {
		if c == nil {
			return nil, fmt.Errorf("nil control qid at position %d", i)
		}
		for j := i + 1; j < len(controls); j++ {
			if QidsEqual(c, controls[j]) {
				return nil, fmt.Errorf("duplicate control qid %v", c)
			}
		}
		for _, q := range sub.Qubits() {
			if QidsEqual(c, q) {
				return nil, fmt.Errorf("control qid %v overlaps the controlled operation %v", c, sub)
			}
		}
	}
	return &ControlledOperation{sub: sub, controls: controls}, nil
}

// ControlledOperation is an operation gated on its controls being |1⟩.
type ControlledOperation struct {
	sub      Operation
	controls []Qid
}

func (op *ControlledOperation) Sub() Operation  { return op.sub }
func (op *ControlledOperation) Controls() []Qid { return op.controls }

func (op *ControlledOperation) Qubits() []Qid {
	return append(append([]Qid{}, op.controls...), op.sub.Qubits()...)
}

func (op *ControlledOperation) WithQubits(qubits ...Qid) (Operation, error) {
	if len(qubits) != len(op.controls)+len(op.sub.Qubits()) {
		return nil, fmt.Errorf("controlled operation %v requires %d qubits but got %d", op, len(op.controls)+len(op.sub.Qubits()), len(qubits))
	}
	sub, err := op.sub.WithQubits(qubits[len(op.controls):]...)
	if err != nil {
		return nil, err
	}
	return ControlOperation(sub, qubits[:len(op.controls)]...)
}

func (op *ControlledOperation) String() string {
	parts := make([]string, len(op.controls))
	for i, c := range op.controls {
		parts[i] = c.String()
	}
	return fmt.Sprintf("C[%s]%v", strings.Join(parts, ", "), op.sub)
}

// Decompose wraps each piece of the sub-operation's decomposition with
// the same controls. A gate operation instead collapses into a
// ControlledGate operation so the unitary path stays open.
func (op *ControlledOperation) Decompose() ([]Operation, bool) {
	if h, ok := op.sub.(GateHolder); ok {
		g := Controlled(h.Gate(), len(op.controls))
		out, err := On(g, op.Qubits()...)
		if err != nil {
			return nil, false
		}
		return []Operation{out}, true
	}
	subOps, ok := DecomposeOnce(op.sub)
	if !ok {
		return nil, false
	}
	out := make([]Operation, 0, len(subOps))
	for _, s := range subOps {
		c, err := ControlOperation(s, op.controls...)
		if err != nil {
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}

func (op *ControlledOperation) Pow(t Param) (Operation, bool) {
	sub, ok := PowOperation(op.sub, t)
	if !ok {
		return nil, false
	}
	out, err := ControlOperation(sub, op.controls...)
	if err != nil {
		return nil, false
	}
	return out, true
}

func (op *ControlledOperation) ParameterNames() []string { return ParameterNames(op.sub) }

func (op *ControlledOperation) WithResolved(r Resolver) any {
	sub, ok := ResolveParameters(op.sub, r).(Operation)
	if !ok {
		return op
	}
	out, err := ControlOperation(sub, op.controls...)
	if err != nil {
		return op
	}
	return out
}

func (op *ControlledOperation) DiagramInfo(args DiagramArgs) (DiagramInfo, bool) {
	sub := GetDiagramInfo(op.sub, args)
	symbols := make([]string, 0, len(op.controls)+len(sub.WireSymbols))
	for range op.controls {
		symbols = append(symbols, "●")
	}
	symbols = append(symbols, sub.WireSymbols...)
	return DiagramInfo{WireSymbols: symbols, Exponent: sub.Exponent, Connected: true}, true
}
