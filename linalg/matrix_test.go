package linalg

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulIdentity(t *testing.T) {
	x := FromRows([][]complex128{{0, 1}, {1, 0}})
	assert.True(t, EqualApprox(Mul(Identity(2), x), x, 1e-15))
	assert.True(t, EqualApprox(Mul(x, x), Identity(2), 1e-15))
}

func TestKronMatchesManual(t *testing.T) {
	x := FromRows([][]complex128{{0, 1}, {1, 0}})
	z := FromRows([][]complex128{{1, 0}, {0, -1}})

	want := FromRows([][]complex128{
		{0, 0, 1, 0},
		{0, 0, 0, -1},
		{1, 0, 0, 0},
		{0, -1, 0, 0},
	})
	assert.True(t, EqualApprox(Kron(x, z), want, 1e-15))

	// X⊗X⊗X swaps every bit: check a couple of entries of the chain.
	xxx := KronAll(x, x, x)
	rows, cols := xxx.Dims()
	assert.Equal(t, 8, rows)
	assert.Equal(t, 8, cols)
	assert.Equal(t, complex128(1), xxx.At(0, 7))
	assert.Equal(t, complex128(1), xxx.At(5, 2))
	assert.Equal(t, complex128(0), xxx.At(0, 0))
}

func TestConjTranspose(t *testing.T) {
	m := FromRows([][]complex128{{1 + 2i, 3}, {0, -1i}})
	got := ConjTranspose(m)
	assert.Equal(t, complex128(1-2i), got.At(0, 0))
	assert.Equal(t, complex128(3), got.At(1, 0))
	assert.Equal(t, complex128(1i), got.At(1, 1))
}

func TestPauliExpansionRoundTrip(t *testing.T) {
	h := Scale(complex(1/math.Sqrt2, 0), FromRows([][]complex128{{1, 1}, {1, -1}}))
	x := FromRows([][]complex128{{0, 1}, {1, 0}})
	cz := FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	})

	for name, m := range map[string]*Matrix{"H": h, "X": x, "CZ": cz} {
		coeffs, err := ExpandPauli(m)
		require.NoError(t, err, name)
		rows, _ := m.Dims()
		n := 1
		if rows == 4 {
			n = 2
		}
		back, err := ReconstructPauli(coeffs, n)
		require.NoError(t, err, name)
		assert.True(t, EqualApprox(back, m, 1e-12), "round trip mismatch for %s", name)
	}
}

func TestExpandPauliH(t *testing.T) {
	h := Scale(complex(1/math.Sqrt2, 0), FromRows([][]complex128{{1, 1}, {1, -1}}))
	coeffs, err := ExpandPauli(h)
	require.NoError(t, err)

	s := complex(1/math.Sqrt2, 0)
	assert.InDelta(t, real(s), real(coeffs["X"]), 1e-12)
	assert.InDelta(t, real(s), real(coeffs["Z"]), 1e-12)
	_, hasY := coeffs["Y"]
	assert.False(t, hasY)
}

func TestEig2x2Reconstructs(t *testing.T) {
	h := Scale(complex(1/math.Sqrt2, 0), FromRows([][]complex128{{1, 1}, {1, -1}}))
	y := FromRows([][]complex128{{0, -1i}, {1i, 0}})

	for name, m := range map[string]*Matrix{"H": h, "Y": y} {
		pairs, err := Eig2x2(m)
		require.NoError(t, err, name)
		require.Len(t, pairs, 2, name)

		sum := NewMatrix(2, 2)
		projSum := NewMatrix(2, 2)
		for _, p := range pairs {
			AddScaled(sum, p.Value, p.Projector)
			AddScaled(projSum, 1, p.Projector)
			// Projectors are idempotent.
			assert.True(t, EqualApprox(Mul(p.Projector, p.Projector), p.Projector, 1e-10), name)
		}
		assert.True(t, EqualApprox(sum, m, 1e-10), "eigen sum mismatch for %s", name)
		assert.True(t, EqualApprox(projSum, Identity(2), 1e-10), "projectors of %s do not sum to I", name)
	}
}

func TestMatrixPowerHalf(t *testing.T) {
	x := FromRows([][]complex128{{0, 1}, {1, 0}})
	sqrtX, err := MatrixPower(x, 0.5)
	require.NoError(t, err)
	assert.True(t, EqualApprox(Mul(sqrtX, sqrtX), x, 1e-10))

	// Negative integer power of a unitary is its adjoint power.
	s := FromRows([][]complex128{{1, 0}, {0, 1i}})
	inv, err := MatrixPower(s, -1)
	require.NoError(t, err)
	assert.True(t, EqualApprox(Mul(inv, s), Identity(2), 1e-12))
}

func TestMatrixPowerFractionalLargeFails(t *testing.T) {
	cz := Identity(4)
	cz.Set(3, 3, -1)
	_, err := MatrixPower(cz, 0.5)
	assert.Error(t, err)
}

func TestEig2x2Degenerate(t *testing.T) {
	pairs, err := Eig2x2(Scale(cmplx.Exp(1i), Identity(2)))
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.True(t, EqualApprox(pairs[0].Projector, Identity(2), 1e-12))
}
