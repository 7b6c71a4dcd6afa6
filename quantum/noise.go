package quantum

import (
	"fmt"
	"math"

	"qcirc/linalg"
)

func validProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be a probability in [0, 1], got %v", name, p)
	}
	return nil
}

// AsymmetricDepolarizingChannel applies X, Y, Z errors with independent
// probabilities: ρ → (1-pX-pY-pZ)ρ + pX·XρX + pY·YρY + pZ·ZρZ.
type AsymmetricDepolarizingChannel struct {
	pX, pY, pZ float64
	ops        []*linalg.Matrix
}

// AsymmetricDepolarize validates the probabilities and precomputes the
// Kraus operators.
func AsymmetricDepolarize(pX, pY, pZ float64) (*AsymmetricDepolarizingChannel, error) {
	for _, p := range []struct {
		name string
		val  float64
	}{{"p_x", pX}, {"p_y", pY}, {"p_z", pZ}} {
		if err := validProbability(p.name, p.val); err != nil {
			return nil, err
		}
	}
	if sum := pX + pY + pZ; sum > 1+1e-9 {
		return nil, fmt.Errorf("p_x + p_y + p_z must be at most 1, got %v", sum)
	}
	basis := linalg.PauliBasis()
	probs := []float64{1 - pX - pY - pZ, pX, pY, pZ}
	var ops []*linalg.Matrix
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		ops = append(ops, linalg.Scale(complex(math.Sqrt(p), 0), basis[i]))
	}
	if len(ops) == 0 {
		ops = append(ops, basis[0])
	}
	return &AsymmetricDepolarizingChannel{pX: pX, pY: pY, pZ: pZ, ops: ops}, nil
}

func (c *AsymmetricDepolarizingChannel) PX() float64     { return c.pX }
func (c *AsymmetricDepolarizingChannel) PY() float64     { return c.pY }
func (c *AsymmetricDepolarizingChannel) PZ() float64     { return c.pZ }
func (c *AsymmetricDepolarizingChannel) QidShape() []int { return qubitShape(1) }

func (c *AsymmetricDepolarizingChannel) String() string {
	return fmt.Sprintf("asymmetric_depolarize(p_x=%v, p_y=%v, p_z=%v)", c.pX, c.pY, c.pZ)
}

func (c *AsymmetricDepolarizingChannel) Kraus() ([]*linalg.Matrix, bool) { return c.ops, true }

func (c *AsymmetricDepolarizingChannel) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	return DiagramInfo{WireSymbols: []string{fmt.Sprintf("A(%v,%v,%v)", c.pX, c.pY, c.pZ)}}, true
}

// DepolarizingChannel mixes toward the maximally mixed state: each Pauli
// error occurs with probability p/3.
type DepolarizingChannel struct {
	p    float64
	asym *AsymmetricDepolarizingChannel
}

func Depolarize(p float64) (*DepolarizingChannel, error) {
	if err := validProbability("p", p); err != nil {
		return nil, err
	}
	asym, err := AsymmetricDepolarize(p/3, p/3, p/3)
	if err != nil {
		return nil, err
	}
	return &DepolarizingChannel{p: p, asym: asym}, nil
}

func (c *DepolarizingChannel) P() float64      { return c.p }
func (c *DepolarizingChannel) QidShape() []int { return qubitShape(1) }
func (c *DepolarizingChannel) String() string  { return fmt.Sprintf("depolarize(p=%v)", c.p) }

func (c *DepolarizingChannel) Kraus() ([]*linalg.Matrix, bool) { return c.asym.Kraus() }

func (c *DepolarizingChannel) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	return DiagramInfo{WireSymbols: []string{fmt.Sprintf("D(%v)", c.p)}}, true
}

// BitFlipChannel applies X with probability p.
type BitFlipChannel struct {
	p    float64
	asym *AsymmetricDepolarizingChannel
}

func BitFlip(p float64) (*BitFlipChannel, error) {
	if err := validProbability("p", p); err != nil {
		return nil, err
	}
	asym, err := AsymmetricDepolarize(p, 0, 0)
	if err != nil {
		return nil, err
	}
	return &BitFlipChannel{p: p, asym: asym}, nil
}

func (c *BitFlipChannel) P() float64      { return c.p }
func (c *BitFlipChannel) QidShape() []int { return qubitShape(1) }
func (c *BitFlipChannel) String() string  { return fmt.Sprintf("bit_flip(p=%v)", c.p) }

func (c *BitFlipChannel) Kraus() ([]*linalg.Matrix, bool) { return c.asym.Kraus() }

func (c *BitFlipChannel) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	return DiagramInfo{WireSymbols: []string{fmt.Sprintf("BF(%v)", c.p)}}, true
}

// PhaseFlipChannel applies Z with probability p.
type PhaseFlipChannel struct {
	p    float64
	asym *AsymmetricDepolarizingChannel
}

func PhaseFlip(p float64) (*PhaseFlipChannel, error) {
	if err := validProbability("p", p); err != nil {
		return nil, err
	}
	asym, err := AsymmetricDepolarize(0, 0, p)
	if err != nil {
		return nil, err
	}
	return &PhaseFlipChannel{p: p, asym: asym}, nil
}

func (c *PhaseFlipChannel) P() float64      { return c.p }
func (c *PhaseFlipChannel) QidShape() []int { return qubitShape(1) }
func (c *PhaseFlipChannel) String() string  { return fmt.Sprintf("phase_flip(p=%v)", c.p) }

func (c *PhaseFlipChannel) Kraus() ([]*linalg.Matrix, bool) { return c.asym.Kraus() }

func (c *PhaseFlipChannel) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	return DiagramInfo{WireSymbols: []string{fmt.Sprintf("PF(%v)", c.p)}}, true
}

// GeneralizedAmplitudeDampingChannel relaxes toward a thermal state: with
// probability p the qubit decays toward |0⟩ at rate gamma, with
// probability 1-p it is excited toward |1⟩.
type GeneralizedAmplitudeDampingChannel struct {
	p, gamma float64
	ops      []*linalg.Matrix
}

func GeneralizedAmplitudeDamp(p, gamma float64) (*GeneralizedAmplitudeDampingChannel, error) {
	if err := validProbability("p", p); err != nil {
		return nil, err
	}
	if err := validProbability("gamma", gamma); err != nil {
		return nil, err
	}
	sqrtP := complex(math.Sqrt(p), 0)
	sqrtQ := complex(math.Sqrt(1-p), 0)
	keep := complex(math.Sqrt(1-gamma), 0)
	jump := complex(math.Sqrt(gamma), 0)
	candidates := []*linalg.Matrix{
		linalg.Scale(sqrtP, linalg.FromRows([][]complex128{{1, 0}, {0, keep}})),
		linalg.Scale(sqrtP, linalg.FromRows([][]complex128{{0, jump}, {0, 0}})),
		linalg.Scale(sqrtQ, linalg.FromRows([][]complex128{{keep, 0}, {0, 1}})),
		linalg.Scale(sqrtQ, linalg.FromRows([][]complex128{{0, 0}, {jump, 0}})),
	}
	var ops []*linalg.Matrix
	for _, m := range candidates {
		if !isZeroMatrix(m) {
			ops = append(ops, m)
		}
	}
	return &GeneralizedAmplitudeDampingChannel{p: p, gamma: gamma, ops: ops}, nil
}

func (c *GeneralizedAmplitudeDampingChannel) P() float64      { return c.p }
func (c *GeneralizedAmplitudeDampingChannel) Gamma() float64  { return c.gamma }
func (c *GeneralizedAmplitudeDampingChannel) QidShape() []int { return qubitShape(1) }

func (c *GeneralizedAmplitudeDampingChannel) String() string {
	return fmt.Sprintf("generalized_amplitude_damp(p=%v, gamma=%v)", c.p, c.gamma)
}

func (c *GeneralizedAmplitudeDampingChannel) Kraus() ([]*linalg.Matrix, bool) { return c.ops, true }

func (c *GeneralizedAmplitudeDampingChannel) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	return DiagramInfo{WireSymbols: []string{fmt.Sprintf("GAD(%v,%v)", c.p, c.gamma)}}, true
}

// AmplitudeDampingChannel is spontaneous decay toward |0⟩.
type AmplitudeDampingChannel struct {
	gamma float64
	gad   *GeneralizedAmplitudeDampingChannel
}

func AmplitudeDamp(gamma float64) (*AmplitudeDampingChannel, error) {
	gad, err := GeneralizedAmplitudeDamp(1, gamma)
	if err != nil {
		return nil, err
	}
	return &AmplitudeDampingChannel{gamma: gamma, gad: gad}, nil
}

func (c *AmplitudeDampingChannel) Gamma() float64  { return c.gamma }
func (c *AmplitudeDampingChannel) QidShape() []int { return qubitShape(1) }
func (c *AmplitudeDampingChannel) String() string {
	return fmt.Sprintf("amplitude_damp(gamma=%v)", c.gamma)
}

func (c *AmplitudeDampingChannel) Kraus() ([]*linalg.Matrix, bool) { return c.gad.Kraus() }

func (c *AmplitudeDampingChannel) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	return DiagramInfo{WireSymbols: []string{fmt.Sprintf("AD(%v)", c.gamma)}}, true
}

// PhaseDampingChannel loses phase information without energy exchange.
type PhaseDampingChannel struct {
	gamma float64
	ops   []*linalg.Matrix
}

func PhaseDamp(gamma float64) (*PhaseDampingChannel, error) {
	if err := validProbability("gamma", gamma); err != nil {
		return nil, err
	}
	keep := complex(math.Sqrt(1-gamma), 0)
	jump := complex(math.Sqrt(gamma), 0)
	ops := []*linalg.Matrix{
		linalg.FromRows([][]complex128{{1, 0}, {0, keep}}),
	}
	if gamma > 0 {
		ops = append(ops, linalg.FromRows([][]complex128{{0, 0}, {0, jump}}))
	}
	return &PhaseDampingChannel{gamma: gamma, ops: ops}, nil
}

func (c *PhaseDampingChannel) Gamma() float64  { return c.gamma }
func (c *PhaseDampingChannel) QidShape() []int { return qubitShape(1) }
func (c *PhaseDampingChannel) String() string {
	return fmt.Sprintf("phase_damp(gamma=%v)", c.gamma)
}

func (c *PhaseDampingChannel) Kraus() ([]*linalg.Matrix, bool) { return c.ops, true }

func (c *PhaseDampingChannel) DiagramInfo(DiagramArgs) (DiagramInfo, bool) {
	return DiagramInfo{WireSymbols: []string{fmt.Sprintf("PD(%v)", c.gamma)}}, true
}

func isZeroMatrix(m *linalg.Matrix) bool {
	for _, v := range m.Data() {
		if v != 0 {
			return false
		}
	}
	return true
}
