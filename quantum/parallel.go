package quantum

import (
	"fmt"
	"math"

	"qcirc/linalg"
)

// ParallelGate applies one single-qubit gate to several qubits at once.
type ParallelGate struct {
	sub    Gate
	copies int
}

// Parallel builds a gate applying sub to copies qubits independently.
func Parallel(sub Gate, copies int) (*ParallelGate, error) {
	if NumQubits(sub) != 1 {
		return nil, fmt.Errorf("gate %v is not a single qubit gate", sub)
	}
	if copies < 1 {
		return nil, fmt.Errorf("gate %v must be applied at least once, got %d copies", sub, copies)
	}
	return &ParallelGate{sub: sub, copies: copies}, nil
}

func (g *ParallelGate) Sub() Gate   { return g.sub }
func (g *ParallelGate) Copies() int { return g.copies }
func (g *ParallelGate) QidShape() []int {
	shape := make([]int, g.copies)
	for i := range shape {
		shape[i] = g.sub.QidShape()[0]
	}
	return shape
}

func (g *ParallelGate) String() string {
	return fmt.Sprintf("%v×%d", g.sub, g.copies)
}

func (g *ParallelGate) QubitEquivalenceGroup(int) int { return 0 }

// DecomposeQubits applies the sub-gate to each qubit in turn.
func (g *ParallelGate) DecomposeQubits(qubits []Qid) ([]Operation, bool) {
	if len(qubits) != g.copies {
		return nil, false
	}
	ops := make([]Operation, 0, g.copies)
	for _, q := range qubits {
		op, err := On(g.sub, q)
		if err != nil {
			return nil, false
		}
		ops = append(ops, op)
	}
	return ops, true
}

func (g *ParallelGate) Unitary() (*linalg.Matrix, bool) {
	u, ok := MaybeUnitary(g.sub)
	if !ok {
		return nil, false
	}
	out := u
	for i := 1; i < g.copies; i++ {
		out = linalg.Kron(out, u)
	}
	return out, true
}

func (g *ParallelGate) Pow(t Param) (Gate, bool) {
	sub, ok := Pow(g.sub, t)
	if !ok {
		return nil, false
	}
	out, err := Parallel(sub, g.copies)
	if err != nil {
		return nil, false
	}
	return out, true
}

func (g *ParallelGate) ParameterNames() []string { return ParameterNames(g.sub) }

func (g *ParallelGate) WithResolved(r Resolver) any {
	sub, ok := ResolveParameters(g.sub, r).(Gate)
	if !ok {
		return g
	}
	out, err := Parallel(sub, g.copies)
	if err != nil {
		return g
	}
	return out
}

// TraceDistanceBound compounds the sub-gate's eigenphase angle across
// copies: the angles add in the worst case.
func (g *ParallelGate) TraceDistanceBound() float64 {
	angle := float64(g.copies) * math.Asin(TraceDistanceBound(g.sub))
	if angle >= math.Pi/2 {
		return 1
	}
	return math.Sin(angle)
}

func (g *ParallelGate) DiagramInfo(args DiagramArgs) (DiagramInfo, bool) {
	sub := GetDiagramInfo(g.sub, args)
	if len(sub.WireSymbols) != 1 {
		return DiagramInfo{}, false
	}
	symbols := make([]string, g.copies)
	for i := range symbols {
		symbols[i] = sub.WireSymbols[0]
	}
	return DiagramInfo{WireSymbols: symbols, Exponent: sub.Exponent, Connected: false}, true
}
