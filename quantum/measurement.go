package quantum

import (
	"fmt"
)

// MeasurementGate measures qids in the computational basis and records
// the outcome digits under its key.
type MeasurementGate struct {
	key   string
	shape []int
}

// Measure returns a measurement of n qubits under the given key.
func Measure(key string, n int) *MeasurementGate {
	return &MeasurementGate{key: key, shape: qubitShape(n)}
}

// MeasureShape returns a measurement over qids with the given levels.
func MeasureShape(key string, shape []int) *MeasurementGate {
	return &MeasurementGate{key: key, shape: append([]int{}, shape...)}
}

func (g *MeasurementGate) Key() string     { return g.key }
func (g *MeasurementGate) QidShape() []int { return g.shape }

func (g *MeasurementGate) String() string {
	return fmt.Sprintf("M(%q)", g.key)
}

func (g *MeasurementGate) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	symbols := make([]string, len(g.shape))
	symbols[0] = fmt.Sprintf("M(%q)", g.key)
	for i := 1; i < len(symbols); i++ {
		symbols[i] = "M"
	}
	return DiagramInfo{WireSymbols: symbols, Connected: len(symbols) > 1}, true
}
