package quantum

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"

	"qcirc/linalg"
	"qcirc/tensor"
)

// fastApplier is implemented by forms with an in-place exponent-1 action
// on the state tensor.
type fastApplier interface {
	applyFull(t *tensor.Dense, axes []int) bool
}

// ApplyUnitary takes the form's in-place path at exponent 1 and declines
// otherwise, letting the dispatcher fall back to the matrix.
func (g *EigenGate) ApplyUnitary(args *ApplyArgs) (ApplyResult, bool) {
	f, ok := g.form.(fastApplier)
	if !ok {
		return ApplyResult{}, false
	}
	v, ok := g.exponent.Float()
	if !ok || v != 1 {
		return ApplyResult{}, false
	}
	if !f.applyFull(args.Target, args.Axes) {
		return ApplyResult{}, false
	}
	if g.globalShift != 0 {
		cmplxs.Scale(cmplx.Exp(complex(0, math.Pi*g.globalShift)), args.Target.Data())
	}
	return ApplyResult{Tag: BufferTarget}, true
}

// axisPairs returns the offsets where the axis digit is 0, plus the
// stride to its digit-1 partner. Fails for non-two-level axes.
func axisPairs(t *tensor.Dense, axis int) ([]int, int, bool) {
	shape := t.Shape()
	if axis < 0 || axis >= len(shape) || shape[axis] != 2 {
		return nil, 0, false
	}
	sel, err := tensor.SubspaceIndex(shape, []int{axis}, 0)
	if err != nil {
		return nil, 0, false
	}
	return t.Hyperplane(sel), t.Strides()[axis], true
}

// subspaceOffsets returns the offsets of the hyperplane where the axes
// carry the little-endian digits of value. Fails for non-two-level axes.
func subspaceOffsets(t *tensor.Dense, axes []int, value int) ([]int, bool) {
	shape := t.Shape()
	for _, a := range axes {
		if a < 0 || a >= len(shape) || shape[a] != 2 {
			return nil, false
		}
	}
	sel, err := tensor.SubspaceIndex(shape, axes, value)
	if err != nil {
		return nil, false
	}
	return t.Hyperplane(sel), true
}

const invSqrt2 = 0.7071067811865476

var (
	projPlusX  = linalg.FromRows([][]complex128{{0.5, 0.5}, {0.5, 0.5}})
	projMinusX = linalg.FromRows([][]complex128{{0.5, -0.5}, {-0.5, 0.5}})
	projPlusY  = linalg.FromRows([][]complex128{{0.5, complex(0, -0.5)}, {complex(0, 0.5), 0.5}})
	projMinusY = linalg.FromRows([][]complex128{{0.5, complex(0, 0.5)}, {complex(0, -0.5), 0.5}})
	projZero   = linalg.FromRows([][]complex128{{1, 0}, {0, 0}})
	projOne    = linalg.FromRows([][]complex128{{0, 0}, {0, 1}})
	projPlusH  = linalg.FromRows([][]complex128{
		{complex(0.5+0.5*invSqrt2, 0), complex(0.5*invSqrt2, 0)},
		{complex(0.5*invSqrt2, 0), complex(0.5-0.5*invSqrt2, 0)},
	})
	projMinusH = linalg.FromRows([][]complex128{
		{complex(0.5-0.5*invSqrt2, 0), complex(-0.5*invSqrt2, 0)},
		{complex(-0.5*invSqrt2, 0), complex(0.5+0.5*invSqrt2, 0)},
	})
)

type xForm struct{ fullySymmetric }

func (xForm) Name() string          { return "X" }
func (xForm) QidShape() []int       { return qubitShape(1) }
func (xForm) WireSymbols() []string { return []string{"X"} }
func (xForm) Components() []EigenComponent {
	return []EigenComponent{{0, projPlusX}, {1, projMinusX}}
}

func (xForm) applyFull(t *tensor.Dense, axes []int) bool {
	lows, step, ok := axisPairs(t, axes[0])
	if !ok {
		return false
	}
	data := t.Data()
	for _, off := range lows {
		data[off], data[off+step] = data[off+step], data[off]
	}
	return true
}

type yForm struct{ fullySymmetric }

func (yForm) Name() string          { return "Y" }
func (yForm) QidShape() []int       { return qubitShape(1) }
func (yForm) WireSymbols() []string { return []string{"Y"} }
func (yForm) Components() []EigenComponent {
	return []EigenComponent{{0, projPlusY}, {1, projMinusY}}
}

func (yForm) applyFull(t *tensor.Dense, axes []int) bool {
	lows, step, ok := axisPairs(t, axes[0])
	if !ok {
		return false
	}
	data := t.Data()
	for _, off := range lows {
		v0, v1 := data[off], data[off+step]
		data[off] = complex(imag(v1), -real(v1))
		data[off+step] = complex(-imag(v0), real(v0))
	}
	return true
}

type zForm struct{ fullySymmetric }

func (zForm) Name() string          { return "Z" }
func (zForm) QidShape() []int       { return qubitShape(1) }
func (zForm) WireSymbols() []string { return []string{"Z"} }
func (zForm) Components() []EigenComponent {
	return []EigenComponent{{0, projZero}, {1, projOne}}
}

func (zForm) applyFull(t *tensor.Dense, axes []int) bool {
	lows, step, ok := axisPairs(t, axes[0])
	if !ok {
		return false
	}
	data := t.Data()
	for _, off := range lows {
		data[off+step] = -data[off+step]
	}
	return true
}

type hForm struct{ fullySymmetric }

func (hForm) Name() string          { return "H" }
func (hForm) QidShape() []int       { return qubitShape(1) }
func (hForm) WireSymbols() []string { return []string{"H"} }
func (hForm) Components() []EigenComponent {
	return []EigenComponent{{0, projPlusH}, {1, projMinusH}}
}

func (hForm) applyFull(t *tensor.Dense, axes []int) bool {
	lows, step, ok := axisPairs(t, axes[0])
	if !ok {
		return false
	}
	data := t.Data()
	for _, off := range lows {
		v0, v1 := data[off], data[off+step]
		data[off] = (v0 + v1) * complex(invSqrt2, 0)
		data[off+step] = (v0 - v1) * complex(invSqrt2, 0)
	}
	return true
}

type czForm struct{ fullySymmetric }

func (czForm) Name() string          { return "CZ" }
func (czForm) QidShape() []int       { return qubitShape(2) }
func (czForm) WireSymbols() []string { return []string{"●", "●"} }
func (czForm) Components() []EigenComponent {
	one := linalg.NewMatrix(4, 4)
	one.Set(3, 3, 1)
	return []EigenComponent{{0, linalg.Sub(linalg.Identity(4), one)}, {1, one}}
}

func (czForm) applyFull(t *tensor.Dense, axes []int) bool {
	offs, ok := subspaceOffsets(t, axes, 3)
	if !ok {
		return false
	}
	data := t.Data()
	for _, off := range offs {
		data[off] = -data[off]
	}
	return true
}

type cxForm struct{}

func (cxForm) Name() string          { return "CNOT" }
func (cxForm) QidShape() []int       { return qubitShape(2) }
func (cxForm) WireSymbols() []string { return []string{"●", "X"} }

// Qubit 0 is the control and qubit 1 the target; only the control can be
// swapped with other controls (none here), so each is its own group.
func (cxForm) QubitEquivalenceGroup(i int) int { return i }

func (cxForm) Components() []EigenComponent {
	zero := linalg.Kron(projZero, linalg.Identity(2))
	return []EigenComponent{
		{0, linalg.Add(zero, linalg.Kron(projOne, projPlusX))},
		{1, linalg.Kron(projOne, projMinusX)},
	}
}

func (cxForm) applyFull(t *tensor.Dense, axes []int) bool {
	// control digit 1, target digit 0
	offs, ok := subspaceOffsets(t, axes, 1)
	if !ok {
		return false
	}
	step := t.Strides()[axes[1]]
	data := t.Data()
	for _, off := range offs {
		data[off], data[off+step] = data[off+step], data[off]
	}
	return true
}

type swapForm struct{ fullySymmetric }

func (swapForm) Name() string          { return "SWAP" }
func (swapForm) QidShape() []int       { return qubitShape(2) }
func (swapForm) WireSymbols() []string { return []string{"×", "×"} }
func (swapForm) Components() []EigenComponent {
	sym := linalg.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 0.5, 0.5, 0},
		{0, 0.5, 0.5, 0},
		{0, 0, 0, 1},
	})
	anti := linalg.FromRows([][]complex128{
		{0, 0, 0, 0},
		{0, 0.5, -0.5, 0},
		{0, -0.5, 0.5, 0},
		{0, 0, 0, 0},
	})
	return []EigenComponent{{0, sym}, {1, anti}}
}

func (swapForm) applyFull(t *tensor.Dense, axes []int) bool {
	// first axis digit 1, second digit 0; partner swaps the digits
	offs, ok := subspaceOffsets(t, axes, 1)
	if !ok {
		return false
	}
	strides := t.Strides()
	delta := strides[axes[1]] - strides[axes[0]]
	data := t.Data()
	for _, off := range offs {
		data[off], data[off+delta] = data[off+delta], data[off]
	}
	return true
}

type cczForm struct{ fullySymmetric }

func (cczForm) Name() string          { return "CCZ" }
func (cczForm) QidShape() []int       { return qubitShape(3) }
func (cczForm) WireSymbols() []string { return []string{"●", "●", "●"} }
func (cczForm) Components() []EigenComponent {
	seven := linalg.NewMatrix(8, 8)
	seven.Set(7, 7, 1)
	return []EigenComponent{{0, linalg.Sub(linalg.Identity(8), seven)}, {1, seven}}
}

func (cczForm) applyFull(t *tensor.Dense, axes []int) bool {
	offs, ok := subspaceOffsets(t, axes, 7)
	if !ok {
		return false
	}
	data := t.Data()
	for _, off := range offs {
		data[off] = -data[off]
	}
	return true
}

type ccxForm struct{}

func (ccxForm) Name() string          { return "TOFFOLI" }
func (ccxForm) QidShape() []int       { return qubitShape(3) }
func (ccxForm) WireSymbols() []string { return []string{"●", "●", "X"} }

// The two controls are interchangeable; the target is not.
func (ccxForm) QubitEquivalenceGroup(i int) int {
	if i < 2 {
		return 0
	}
	return 1
}

func (ccxForm) Components() []EigenComponent {
	cc := linalg.Kron(projOne, projOne)
	flip := linalg.Kron(cc, projMinusX)
	return []EigenComponent{
		{0, linalg.Sub(linalg.Identity(8), flip)},
		{1, flip},
	}
}

func (ccxForm) applyFull(t *tensor.Dense, axes []int) bool {
	// both controls 1, target 0
	offs, ok := subspaceOffsets(t, axes, 3)
	if !ok {
		return false
	}
	step := t.Strides()[axes[2]]
	data := t.Data()
	for _, off := range offs {
		data[off], data[off+step] = data[off+step], data[off]
	}
	return true
}

// Standard gates at exponent 1.
var (
	X    = NewEigenGate(xForm{}, Value(1), 0)
	Y    = NewEigenGate(yForm{}, Value(1), 0)
	Z    = NewEigenGate(zForm{}, Value(1), 0)
	H    = NewEigenGate(hForm{}, Value(1), 0)
	S    = NewEigenGate(zForm{}, Value(0.5), 0)
	T    = NewEigenGate(zForm{}, Value(0.25), 0)
	CZ   = NewEigenGate(czForm{}, Value(1), 0)
	CNOT = NewEigenGate(cxForm{}, Value(1), 0)
	SWAP = NewEigenGate(swapForm{}, Value(1), 0)
	CCZ  = NewEigenGate(cczForm{}, Value(1), 0)
	CCX  = NewEigenGate(ccxForm{}, Value(1), 0)
)

// Fractional powers of the standard gates.
func XPow(t Param) *EigenGate    { return NewEigenGate(xForm{}, t, 0) }
func YPow(t Param) *EigenGate    { return NewEigenGate(yForm{}, t, 0) }
func ZPow(t Param) *EigenGate    { return NewEigenGate(zForm{}, t, 0) }
func HPow(t Param) *EigenGate    { return NewEigenGate(hForm{}, t, 0) }
func CZPow(t Param) *EigenGate   { return NewEigenGate(czForm{}, t, 0) }
func CNOTPow(t Param) *EigenGate { return NewEigenGate(cxForm{}, t, 0) }
func SwapPow(t Param) *EigenGate { return NewEigenGate(swapForm{}, t, 0) }
func CCZPow(t Param) *EigenGate  { return NewEigenGate(cczForm{}, t, 0) }
func CCXPow(t Param) *EigenGate  { return NewEigenGate(ccxForm{}, t, 0) }

// Rotation gates: Rw(θ) = w^(θ/π) up to the e^{-iθ/2} phase carried by
// the -1/2 global shift.
func Rx(theta Param) *EigenGate { return NewEigenGate(xForm{}, theta.MulFloat(1/math.Pi), -0.5) }
func Ry(theta Param) *EigenGate { return NewEigenGate(yForm{}, theta.MulFloat(1/math.Pi), -0.5) }
func Rz(theta Param) *EigenGate { return NewEigenGate(zForm{}, theta.MulFloat(1/math.Pi), -0.5) }
