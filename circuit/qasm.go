package circuit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"qcirc/quantum"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*([^)]+)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*([^)]+)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	resetRegex           = regexp.MustCompile(`^reset\s+q\[(\d+)\];?$`)
	ifRegex              = regexp.MustCompile(`^if\s*\(\s*(\w+)(?:\[(\d+)\])?\s*==\s*(\d+)\s*\)\s+(.+?);?$`)
)

// ToQASM renders the circuit as an OPENQASM 2.0 program. Qubits map to
// q[0..n) in sorted order; measured qubits map to classical bits of the
// same index.
func (c *Circuit) ToQASM() (string, error) {
	qubits := c.Qubits()
	args := quantum.NewQASMArgs(qubits)

	numQubits := len(qubits)
	if numQubits < 1 {
		numQubits = 1
	}
	numCbits := 1
	for _, op := range c.AllOperations() {
		if !isMeasurement(op) {
			continue
		}
		for _, q := range op.Qubits() {
			if idx := args.QubitIndex[q] + 1; idx > numCbits {
				numCbits = idx
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for _, op := range c.AllOperations() {
		stmt, err := quantum.QASM(op, args)
		if err != nil {
			return "", err
		}
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func isMeasurement(op quantum.Operation) bool {
	h, ok := op.(quantum.GateHolder)
	if !ok {
		return false
	}
	_, ok = h.Gate().(*quantum.MeasurementGate)
	return ok
}

// ParseQASM rebuilds a circuit from an OPENQASM 2.0 program using the
// qelib1 gate set. Operations are packed with earliest-free-step
// placement, so a parse/emit cycle reaches a fixed point.
func ParseQASM(text string) (*Circuit, error) {
	c := &Circuit{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "OPENQASM"),
			strings.HasPrefix(line, "include"),
			strings.HasPrefix(line, "qreg"),
			strings.HasPrefix(line, "creg"),
			strings.HasPrefix(line, "barrier"):
			continue
		}
		op, err := parseStatement(line)
		if err != nil {
			return nil, err
		}
		if err := c.Append(op); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// parseStatement turns one QASM statement into an operation.
func parseStatement(line string) (quantum.Operation, error) {
	if m := ifRegex.FindStringSubmatch(line); m != nil {
		if m[3] != "1" {
			return nil, errors.Errorf("unsupported condition value in %q", line)
		}
		sub, err := parseStatement(strings.TrimSpace(m[4]))
		if err != nil {
			return nil, errors.Wrapf(err, "conditional body of %q", line)
		}
		key := m[1]
		if m[2] != "" {
			key = fmt.Sprintf("%s[%s]", m[1], m[2])
		}
		return quantum.Condition(sub, key)
	}

	if m := measureRegex.FindStringSubmatch(line); m != nil {
		key := fmt.Sprintf("%s[%s]", m[2], m[3])
		target, _ := strconv.Atoi(m[1])
		return quantum.On(quantum.Measure(key, 1), quantum.LineQubit(target))
	}

	if m := resetRegex.FindStringSubmatch(line); m != nil {
		target, _ := strconv.Atoi(m[1])
		return quantum.On(quantum.NewIdentity(1), quantum.LineQubit(target))
	}

	if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
		theta, ok := quantum.ParsePiExpr(m[2])
		if !ok {
			return nil, errors.Errorf("cannot parse parameter %q in %q", m[2], line)
		}
		g, err := paramGateByName(strings.ToLower(m[1]), theta)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", line)
		}
		target, _ := strconv.Atoi(m[3])
		return quantum.On(g, quantum.LineQubit(target))
	}

	if m := twoQubitParamRegex.FindStringSubmatch(line); m != nil {
		theta, ok := quantum.ParsePiExpr(m[2])
		if !ok {
			return nil, errors.Errorf("cannot parse parameter %q in %q", m[2], line)
		}
		if name := strings.ToLower(m[1]); name != "cu1" && name != "cp" {
			return nil, errors.Errorf("unknown QASM gate %q in %q", m[1], line)
		}
		a, _ := strconv.Atoi(m[3])
		b, _ := strconv.Atoi(m[4])
		return quantum.On(quantum.CZPow(quantum.Value(theta/math.Pi)),
			quantum.LineQubit(a), quantum.LineQubit(b))
	}

	if m := threeQubitRegex.FindStringSubmatch(line); m != nil {
		if name := strings.ToLower(m[1]); name != "ccx" && name != "toffoli" {
			return nil, errors.Errorf("unknown QASM gate %q in %q", m[1], line)
		}
		a, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		t, _ := strconv.Atoi(m[4])
		return quantum.On(quantum.CCX,
			quantum.LineQubit(a), quantum.LineQubit(b), quantum.LineQubit(t))
	}

	if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
		g, err := twoQubitGateByName(strings.ToLower(m[1]))
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", line)
		}
		a, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		return quantum.On(g, quantum.LineQubit(a), quantum.LineQubit(b))
	}

	if m := singleGateRegex.FindStringSubmatch(line); m != nil {
		g, err := gateByName(strings.ToLower(m[1]))
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", line)
		}
		target, _ := strconv.Atoi(m[2])
		return quantum.On(g, quantum.LineQubit(target))
	}

	return nil, errors.Errorf("cannot parse QASM line %q", line)
}

func gateByName(name string) (quantum.Gate, error) {
	switch name {
	case "id":
		return quantum.NewIdentity(1), nil
	case "x":
		return quantum.X, nil
	case "y":
		return quantum.Y, nil
	case "z":
		return quantum.Z, nil
	case "h":
		return quantum.H, nil
	case "s":
		return quantum.S, nil
	case "sdg":
		return quantum.ZPow(quantum.Value(-0.5)), nil
	case "t":
		return quantum.T, nil
	case "tdg":
		return quantum.ZPow(quantum.Value(-0.25)), nil
	}
	return nil, errors.Errorf("unknown QASM gate %q", name)
}

func twoQubitGateByName(name string) (quantum.Gate, error) {
	switch name {
	case "cx":
		return quantum.CNOT, nil
	case "cz":
		return quantum.CZ, nil
	case "swap":
		return quantum.SWAP, nil
	}
	return nil, errors.Errorf("unknown QASM gate %q", name)
}

func paramGateByName(name string, theta float64) (quantum.Gate, error) {
	switch name {
	case "rx":
		return quantum.Rx(quantum.Value(theta)), nil
	case "ry":
		return quantum.Ry(quantum.Value(theta)), nil
	case "rz":
		return quantum.Rz(quantum.Value(theta)), nil
	case "u1", "p":
		return quantum.ZPow(quantum.Value(theta / math.Pi)), nil
	}
	return nil, errors.Errorf("unknown QASM gate %q", name)
}
