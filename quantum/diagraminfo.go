package quantum

import (
	"fmt"
)

// DiagramArgs configures diagram-info rendering.
type DiagramArgs struct {
	// Precision for numeric exponents and angles.
	Precision  int
	UseUnicode bool
}

// DiagramInfo labels an operation in a circuit diagram.
type DiagramInfo struct {
	// WireSymbols has one label per qubit, in the operation's qubit order.
	WireSymbols []string
	// Exponent annotates the last wire symbol as "^exp" when non-empty
	// and not "1".
	Exponent string
	// Connected draws a vertical line between the wires of a
	// multi-qubit operation.
	Connected bool
}

// Diagrammable is the hook for custom diagram labels.
type Diagrammable interface {
	DiagramInfo(args DiagramArgs) (DiagramInfo, bool)
}

// GetDiagramInfo labels val for diagrams, falling back to the value's
// String with positional markers for extra wires.
func GetDiagramInfo(val any, args DiagramArgs) DiagramInfo {
	if d, ok := val.(Diagrammable); ok {
		if info, ok := d.DiagramInfo(args); ok {
			return info
		}
	}
	if h, ok := val.(GateHolder); ok {
		return GetDiagramInfo(h.Gate(), args)
	}
	shape := shapeOf(val)
	n := len(shape)
	if n == 0 {
		n = 1
	}
	symbols := make([]string, n)
	symbols[0] = fmt.Sprintf("%v", val)
	for i := 1; i < n; i++ {
		symbols[i] = fmt.Sprintf("#%d", i+1)
	}
	return DiagramInfo{WireSymbols: symbols, Connected: n > 1}
}

// DiagramInfo labels an eigen gate with its form's wire symbols and the
// canonical exponent.
func (g *EigenGate) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	info := DiagramInfo{
		WireSymbols: g.form.WireSymbols(),
		Connected:   len(g.form.QidShape()) > 1,
	}
	if v, ok := g.exponent.Float(); !ok || v != 1 {
		info.Exponent = FormatExponent(g.exponent)
	}
	return info, true
}
