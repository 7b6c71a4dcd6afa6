package quantum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcirc/linalg"
)

func mustUnitary(t *testing.T, val any) *linalg.Matrix {
	t.Helper()
	u, err := Unitary(val)
	require.NoError(t, err)
	return u
}

func TestStandardGateUnitaries(t *testing.T) {
	i := complex(0, 1)
	s := complex(invSqrt2, 0)
	tests := []struct {
		gate Gate
		want *linalg.Matrix
	}{
		{X, linalg.FromRows([][]complex128{{0, 1}, {1, 0}})},
		{Y, linalg.FromRows([][]complex128{{0, -i}, {i, 0}})},
		{Z, linalg.FromRows([][]complex128{{1, 0}, {0, -1}})},
		{H, linalg.FromRows([][]complex128{{s, s}, {s, -s}})},
		{S, linalg.FromRows([][]complex128{{1, 0}, {0, i}})},
		{CZ, linalg.FromRows([][]complex128{
			{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, -1},
		})},
		{CNOT, linalg.FromRows([][]complex128{
			{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}, {0, 0, 1, 0},
		})},
		{SWAP, linalg.FromRows([][]complex128{
			{1, 0, 0, 0}, {0, 0, 1, 0}, {0, 1, 0, 0}, {0, 0, 0, 1},
		})},
	}
	for _, tt := range tests {
		u := mustUnitary(t, tt.gate)
		assert.True(t, linalg.EqualApprox(u, tt.want, 1e-8), "gate %v:\n%v", tt.gate, u)
	}
}

func TestThreeQubitGateUnitaries(t *testing.T) {
	ccz := mustUnitary(t, CCZ)
	want := linalg.Identity(8)
	want.Set(7, 7, -1)
	assert.True(t, linalg.EqualApprox(ccz, want, 1e-8))

	ccx := mustUnitary(t, CCX)
	want = linalg.Identity(8)
	want.Set(6, 6, 0)
	want.Set(7, 7, 0)
	want.Set(6, 7, 1)
	want.Set(7, 6, 1)
	assert.True(t, linalg.EqualApprox(ccx, want, 1e-8))
}

func TestSqrtXSquaresToX(t *testing.T) {
	root := mustUnitary(t, XPow(Value(0.5)))
	assert.True(t, linalg.EqualApprox(linalg.Mul(root, root), mustUnitary(t, X), 1e-8))
}

func TestPowComposition(t *testing.T) {
	// (G^s)^t == G^(s·t)
	for _, g := range []Gate{X, Y, Z, H, CZ, CNOT, SWAP, CCZ, CCX} {
		half, ok := Pow(g, Value(0.5))
		require.True(t, ok, "gate %v", g)
		quarter, ok := Pow(half, Value(0.5))
		require.True(t, ok, "gate %v", g)

		direct, ok := Pow(g, Value(0.25))
		require.True(t, ok, "gate %v", g)
		assert.True(t, linalg.EqualApprox(mustUnitary(t, quarter), mustUnitary(t, direct), 1e-8), "gate %v", g)
	}
}

func TestEigenReconstruction(t *testing.T) {
	// Fractional powers satisfy G^s · G^(1-s) = G.
	for _, g := range []*EigenGate{X, Y, Z, H, CZ, CNOT, SWAP, CCZ, CCX} {
		for _, s := range []float64{0.5, 0.25, -0.75} {
			a := mustUnitary(t, NewEigenGate(g.Form(), Value(s), 0))
			b := mustUnitary(t, NewEigenGate(g.Form(), Value(1-s), 0))
			assert.True(t, linalg.EqualApprox(linalg.Mul(a, b), mustUnitary(t, g), 1e-8),
				"gate %v at exponent %v", g, s)
		}
	}
}

func TestExponentPeriodNormalization(t *testing.T) {
	// Period 2: exponent 2.5 is the same gate as exponent 0.5.
	g := XPow(Value(2.5))
	v, ok := g.Exponent().Float()
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)

	// Exponent -1 of a period-2 family canonicalizes to +1.
	inv, ok := Pow(X, Value(-1))
	require.True(t, ok)
	v, ok = inv.(*EigenGate).Exponent().Float()
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-12)

	// Rotations have period 4, so -1 stays -1.
	ginv, ok := Pow(Rz(Value(math.Pi/2)), Value(-1))
	require.True(t, ok)
	v, ok = ginv.(*EigenGate).Exponent().Float()
	require.True(t, ok)
	assert.InDelta(t, -0.5, v, 1e-12)
}

func TestRotationGates(t *testing.T) {
	theta := math.Pi / 2
	rz := mustUnitary(t, Rz(Value(theta)))
	want := linalg.NewMatrix(2, 2)
	want.Set(0, 0, cmplx.Exp(complex(0, -theta/2)))
	want.Set(1, 1, cmplx.Exp(complex(0, theta/2)))
	assert.True(t, linalg.EqualApprox(rz, want, 1e-8), "Rz:\n%v", rz)

	rx := mustUnitary(t, Rx(Value(theta)))
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	wantX := linalg.FromRows([][]complex128{{c, s}, {s, c}})
	assert.True(t, linalg.EqualApprox(rx, wantX, 1e-8), "Rx:\n%v", rx)

	ry := mustUnitary(t, Ry(Value(theta)))
	sr := complex(math.Sin(theta/2), 0)
	wantY := linalg.FromRows([][]complex128{{c, -sr}, {sr, c}})
	assert.True(t, linalg.EqualApprox(ry, wantY, 1e-8), "Ry:\n%v", ry)
}

func TestSymbolicGateHasNoUnitary(t *testing.T) {
	g := XPow(Symbol("s"))
	_, ok := MaybeUnitary(g)
	assert.False(t, ok)
	_, err := Unitary(g)
	assert.Error(t, err)
}

func TestSymbolicPowOfSymbolicFails(t *testing.T) {
	g := XPow(Symbol("s"))
	_, ok := Pow(g, Symbol("t"))
	assert.False(t, ok)

	// Scaling a symbolic exponent by a constant stays symbolic.
	scaled, ok := Pow(g, Value(2))
	require.True(t, ok)
	assert.Equal(t, []string{"s"}, ParameterNames(scaled))
}

func TestTraceDistanceBound(t *testing.T) {
	assert.InDelta(t, 1.0, TraceDistanceBound(X), 1e-12)
	assert.InDelta(t, math.Sin(math.Pi/4), TraceDistanceBound(XPow(Value(0.5))), 1e-12)
	assert.InDelta(t, 1.0, TraceDistanceBound(XPow(Symbol("s"))), 1e-12)
	assert.InDelta(t, 0.0, TraceDistanceBound(NewIdentity(1)), 1e-12)
}

func TestValidateArgs(t *testing.T) {
	_, err := On(CNOT, LineQubit(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires 2 qubits")

	_, err = On(CNOT, LineQubit(0), LineQubit(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate qid")

	_, err = On(X, NewLineQid(0, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires 2 levels")

	op, err := On(CNOT, LineQubit(0), LineQubit(1))
	require.NoError(t, err)
	assert.Equal(t, []Qid{LineQubit(0), LineQubit(1)}, op.Qubits())
}

// bellGate only knows how to decompose; it has no Powable hook.
type bellGate struct{}

func (bellGate) QidShape() []int { return []int{2, 2} }
func (bellGate) String() string  { return "Bell" }
func (bellGate) DecomposeQubits(qubits []Qid) ([]Operation, bool) {
	h, err := On(H, qubits[0])
	if err != nil {
		return nil, false
	}
	cx, err := On(CNOT, qubits[0], qubits[1])
	if err != nil {
		return nil, false
	}
	return []Operation{h, cx}, true
}

func TestInverseGateViaDecompose(t *testing.T) {
	// A gate with only a decomposition still inverts through Pow(-1).
	inv, ok := Pow(bellGate{}, Value(-1))
	require.True(t, ok)

	u := mustUnitary(t, bellGate{})
	ui := mustUnitary(t, inv)
	assert.True(t, linalg.EqualApprox(linalg.Mul(u, ui), linalg.Identity(4), 1e-8))

	// The inverse decomposition runs the parts backwards, inverted.
	ops, ok := inv.(*InverseGate).DecomposeQubits([]Qid{LineQubit(0), LineQubit(1)})
	require.True(t, ok)
	require.Len(t, ops, 2)
	assert.Equal(t, []Qid{LineQubit(0), LineQubit(1)}, ops[0].Qubits())
	assert.Equal(t, []Qid{LineQubit(0)}, ops[1].Qubits())
}

func TestDebugChecksAcceptStandardForms(t *testing.T) {
	SetDebugChecks(true)
	defer SetDebugChecks(false)
	for _, form := range []EigenForm{xForm{}, yForm{}, zForm{}, hForm{}, czForm{}, cxForm{}, swapForm{}, cczForm{}, ccxForm{}} {
		assert.NoError(t, checkEigenComponents(form), "form %s", form.Name())
	}
}
