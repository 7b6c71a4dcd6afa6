package quantum

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// QASMArgs carries export context: target language version and the
// mapping from qids to register offsets.
type QASMArgs struct {
	Version    string
	Precision  int
	QubitIndex map[Qid]int
}

// NewQASMArgs maps the given qubits to q[0..n) in order.
func NewQASMArgs(qubits []Qid) *QASMArgs {
	idx := make(map[Qid]int, len(qubits))
	for i, q := range qubits {
		idx[q] = i
	}
	return &QASMArgs{Version: "2.0", Precision: 10, QubitIndex: idx}
}

// Ref renders a qubit's register reference.
func (a *QASMArgs) Ref(q Qid) string {
	return fmt.Sprintf("q[%d]", a.QubitIndex[q])
}

func (a *QASMArgs) refs(qubits []Qid) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = a.Ref(q)
	}
	return strings.Join(parts, ", ")
}

// QASMConvertible is the operation-level export hook.
type QASMConvertible interface {
	QASM(args *QASMArgs) (string, bool)
}

// QASMGate is the gate-level export hook.
type QASMGate interface {
	QASMTarget(args *QASMArgs, qubits []Qid) (string, bool)
}

// QASM renders one operation as OpenQASM statements: operation hook, gate
// hook, then decomposition.
func QASM(op Operation, args *QASMArgs) (string, error) {
	if args.Version != "2.0" {
		return "", errors.Errorf("unsupported QASM version %q", args.Version)
	}
	if s, ok := qasmHook(op, args); ok {
		return s, nil
	}
	sub, ok := DecomposeOnce(op)
	if !ok {
		return "", errors.Errorf("cannot convert %v to QASM: no QASM hook and no decomposition", op)
	}
	var lines []string
	for _, s := range sub {
		out, err := QASM(s, args)
		if err != nil {
			return "", err
		}
		lines = append(lines, out)
	}
	return strings.Join(lines, "\n"), nil
}

func qasmHook(op Operation, args *QASMArgs) (string, bool) {
	if c, ok := op.(QASMConvertible); ok {
		if s, ok := c.QASM(args); ok {
			return s, true
		}
	}
	if h, ok := op.(GateHolder); ok {
		if g, ok := h.Gate().(QASMGate); ok {
			return g.QASMTarget(args, op.Qubits())
		}
	}
	return "", false
}

// QASMTarget renders the standard gate families as qelib1 statements.
// Fractional X and Y powers map to rotations, which match up to global
// phase; families with no counterpart at the given exponent decline.
func (g *EigenGate) QASMTarget(args *QASMArgs, qubits []Qid) (string, bool) {
	t, ok := g.exponent.Float()
	if !ok {
		return "", false
	}
	refs := args.refs(qubits)
	one := t == 1

	// Rotation flavor: the -1/2 shift makes Rw(θ) exact.
	if g.globalShift == -0.5 {
		angle := FormatPi(t * math.Pi)
		switch g.form.Name() {
		case "X":
			return fmt.Sprintf("rx(%s) %s;", angle, refs), true
		case "Y":
			return fmt.Sprintf("ry(%s) %s;", angle, refs), true
		case "Z":
			return fmt.Sprintf("rz(%s) %s;", angle, refs), true
		}
		return "", false
	}
	if g.globalShift != 0 {
		return "", false
	}

	switch g.form.Name() {
	case "X":
		if one {
			return fmt.Sprintf("x %s;", refs), true
		}
		return fmt.Sprintf("rx(%s) %s;", FormatPi(t*math.Pi), refs), true
	case "Y":
		if one {
			return fmt.Sprintf("y %s;", refs), true
		}
		return fmt.Sprintf("ry(%s) %s;", FormatPi(t*math.Pi), refs), true
	case "Z":
		switch t {
		case 1:
			return fmt.Sprintf("z %s;", refs), true
		case 0.5:
			return fmt.Sprintf("s %s;", refs), true
		case -0.5:
			return fmt.Sprintf("sdg %s;", refs), true
		case 0.25:
			return fmt.Sprintf("t %s;", refs), true
		case -0.25:
			return fmt.Sprintf("tdg %s;", refs), true
		}
		// Z^t is exactly u1(t·pi).
		return fmt.Sprintf("u1(%s) %s;", FormatPi(t*math.Pi), refs), true
	case "H":
		if one {
			return fmt.Sprintf("h %s;", refs), true
		}
		return "", false
	case "CZ":
		if one {
			return fmt.Sprintf("cz %s;", refs), true
		}
		// CZ^t is exactly cu1(t·pi).
		return fmt.Sprintf("cu1(%s) %s;", FormatPi(t*math.Pi), refs), true
	case "CNOT":
		if one {
			return fmt.Sprintf("cx %s;", refs), true
		}
		return "", false
	case "SWAP":
		if one {
			return fmt.Sprintf("swap %s;", refs), true
		}
		return "", false
	case "CCZ":
		if one {
			tgt := args.Ref(qubits[2])
			return fmt.Sprintf("h %s;\nccx %s;\nh %s;", tgt, refs, tgt), true
		}
		return "", false
	case "TOFFOLI":
		if one {
			return fmt.Sprintf("ccx %s;", refs), true
		}
		return "", false
	}
	return "", false
}

func (g *IdentityGate) QASMTarget(args *QASMArgs, qubits []Qid) (string, bool) {
	lines := make([]string, len(qubits))
	for i, q := range qubits {
		lines[i] = fmt.Sprintf("id %s;", args.Ref(q))
	}
	return strings.Join(lines, "\n"), true
}

func (g *MeasurementGate) QASMTarget(args *QASMArgs, qubits []Qid) (string, bool) {
	lines := make([]string, len(qubits))
	for i, q := range qubits {
		lines[i] = fmt.Sprintf("measure %s -> c[%d];", args.Ref(q), args.QubitIndex[q])
	}
	return strings.Join(lines, "\n"), true
}

// QASM renders a classically controlled statement. Only a single control
// key fits the if(c==1) form.
func (op *ConditionalOperation) QASM(args *QASMArgs) (string, bool) {
	if len(op.keys) != 1 {
		return "", false
	}
	inner, ok := qasmHook(op.sub, args)
	if !ok {
		return "", false
	}
	if strings.Contains(inner, "\n") {
		return "", false
	}
	return "if(c==1) " + inner, true
}
