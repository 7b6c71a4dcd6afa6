package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcirc/linalg"
)

func TestSubspaceIndexDigits(t *testing.T) {
	shape := []int{2, 3, 2}

	// Fix axes 0 and 1 to the little-endian value 5: digit 0 (base 2) is 1
	// for axis 0, digit 1 (base 3) is 2 for axis 1.
	sel, err := SubspaceIndex(shape, []int{0, 1}, 5)
	require.NoError(t, err)
	assert.Equal(t, AxisIndex{Fixed: true, Digit: 1}, sel[0])
	assert.Equal(t, AxisIndex{Fixed: true, Digit: 2}, sel[1])
	assert.False(t, sel[2].Fixed)

	_, err = SubspaceIndex(shape, []int{0, 1}, 6)
	assert.Error(t, err, "value past the subspace size must be rejected")
	_, err = SubspaceIndex(shape, []int{0, 0}, 0)
	assert.Error(t, err, "repeated axis must be rejected")
}

func TestHyperplaneOffsets(t *testing.T) {
	d := NewDense(2, 2, 2)
	sel, err := SubspaceIndex(d.Shape(), []int{1}, 1)
	require.NoError(t, err)

	// Axis 1 fixed to 1 in a (2,2,2) tensor: offsets with middle bit set.
	assert.Equal(t, []int{2, 3, 6, 7}, d.Hyperplane(sel))

	all := d.Hyperplane(make([]AxisIndex, 3))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, all)
}

func TestMulAxesSingleQubitMatchesFull(t *testing.T) {
	h := linalg.Scale(complex(1/math.Sqrt2, 0), linalg.FromRows([][]complex128{{1, 1}, {1, -1}}))

	src := ZeroState(2, 2)
	dst := NewDense(2, 2)
	require.NoError(t, MulAxes(dst, src, h, []int{0}))

	s := complex(1/math.Sqrt2, 0)
	assert.InDelta(t, real(s), real(dst.At(0, 0)), 1e-12)
	assert.InDelta(t, real(s), real(dst.At(1, 0)), 1e-12)
	assert.Equal(t, complex128(0), dst.At(0, 1))
}

func TestMulAxesTwoQubitAxisOrder(t *testing.T) {
	// CX with the control as the first listed axis.
	cx := linalg.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})

	// |10⟩ on axes (0, 1): control axis 0 is 1, so the target flips.
	src := NewDense(2, 2)
	src.Set(1, 1, 0)
	dst := NewDense(2, 2)
	require.NoError(t, MulAxes(dst, src, cx, []int{0, 1}))
	assert.Equal(t, complex128(1), dst.At(1, 1))
	assert.Equal(t, complex128(0), dst.At(1, 0))

	// Same state, axes reversed: axis 1 is now the control and it is 0.
	dst.Zero()
	require.NoError(t, MulAxes(dst, src, cx, []int{1, 0}))
	assert.Equal(t, complex128(1), dst.At(1, 0))
}

func TestMulAxesRejectsAliasedBuffers(t *testing.T) {
	d := NewDense(2)
	err := MulAxes(d, d, linalg.Identity(2), []int{0})
	assert.Error(t, err)
}

func TestMulAxesAgainstFullMatrix(t *testing.T) {
	// Random-ish 3-qubit state; apply X to the middle axis both ways.
	src := NewDense(2, 2, 2)
	for i := range src.Data() {
		src.Data()[i] = complex(float64(i+1), float64(7-i)) / 16
	}
	x := linalg.FromRows([][]complex128{{0, 1}, {1, 0}})

	dst := NewDense(2, 2, 2)
	require.NoError(t, MulAxes(dst, src, x, []int{1}))

	// Full operator I⊗X⊗I over the flattened state.
	full := linalg.KronAll(linalg.Identity(2), x, linalg.Identity(2))
	want := make([]complex128, src.Size())
	for i := 0; i < src.Size(); i++ {
		for j := 0; j < src.Size(); j++ {
			want[i] += full.At(i, j) * src.Data()[j]
		}
	}
	for i := range want {
		assert.InDelta(t, real(want[i]), real(dst.Data()[i]), 1e-12)
		assert.InDelta(t, imag(want[i]), imag(dst.Data()[i]), 1e-12)
	}
}
