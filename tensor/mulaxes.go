package tensor

import (
	"fmt"

	"qcirc/linalg"
)

// AxisPatternOffsets returns, for every digit pattern over the given axes,
// the flat offset contribution of that pattern. Pattern index p follows
// the matrix convention: axes[0] is the most significant digit, matching
// Kronecker-product ordering.
func AxisPatternOffsets(shape, strides []int, axes []int) []int {
	count := 1
	for _, a := range axes {
		count *= shape[a]
	}
	offsets := make([]int, count)
	for p := 0; p < count; p++ {
		v := p
		off := 0
		for i := len(axes) - 1; i >= 0; i-- {
			a := axes[i]
			off += (v % shape[a]) * strides[a]
			v /= shape[a]
		}
		offsets[p] = off
	}
	return offsets
}

// MulAxes applies the matrix m to the selected axes of src, writing the
// result into dst: dst[..., p, ...] = Σ_q m[p][q]·src[..., q, ...] where
// p, q range over digit patterns of the axes. dst and src must be
// distinct buffers of identical shape, and m must be square with
// dimension equal to the product of the axis dimensions.
func MulAxes(dst, src *Dense, m *linalg.Matrix, axes []int) error {
	if dst == src || &dst.data[0] == &src.data[0] {
		return fmt.Errorf("tensor: MulAxes requires distinct source and destination buffers")
	}
	if !SameShape(dst, src) {
		return fmt.Errorf("tensor: MulAxes shape mismatch %v vs %v", dst.shape, src.shape)
	}
	dim := 1
	for _, a := range axes {
		if a < 0 || a >= len(src.shape) {
			return fmt.Errorf("tensor: axis %d out of range for rank %d", a, len(src.shape))
		}
		dim *= src.shape[a]
	}
	rows, cols := m.Dims()
	if rows != dim || cols != dim {
		return fmt.Errorf("tensor: matrix is %dx%d but axes %v span dimension %d", rows, cols, axes, dim)
	}

	patterns := AxisPatternOffsets(src.shape, src.strides, axes)

	// Bases are the offsets of the hyperplane where every target axis is 0.
	zeroSel, err := SubspaceIndex(src.shape, axes, 0)
	if err != nil {
		return err
	}
	bases := src.Hyperplane(zeroSel)

	for _, base := range bases {
		for p := 0; p < dim; p++ {
			var acc complex128
			row := m.Row(p)
			for q := 0; q < dim; q++ {
				if v := src.data[base+patterns[q]]; v != 0 {
					acc += row[q] * v
				}
			}
			dst.data[base+patterns[p]] = acc
		}
	}
	return nil
}

// Mul2x2 applies a 2x2 matrix to a single two-level axis, in place. The
// two hyperplanes of the axis are paired element-wise, so no scratch
// buffer is needed.
func Mul2x2(t *Dense, m *linalg.Matrix, axis int) error {
	if axis < 0 || axis >= len(t.shape) || t.shape[axis] != 2 {
		return fmt.Errorf("tensor: Mul2x2 needs a two-level axis, got axis %d of shape %v", axis, t.shape)
	}
	if rows, cols := m.Dims(); rows != 2 || cols != 2 {
		return fmt.Errorf("tensor: Mul2x2 matrix is %dx%d", rows, cols)
	}
	sel, err := SubspaceIndex(t.shape, []int{axis}, 0)
	if err != nil {
		return err
	}
	lows := t.Hyperplane(sel)
	step := t.strides[axis]
	a, b := m.At(0, 0), m.At(0, 1)
	c, d := m.At(1, 0), m.At(1, 1)
	for _, off := range lows {
		v0, v1 := t.data[off], t.data[off+step]
		t.data[off] = a*v0 + b*v1
		t.data[off+step] = c*v0 + d*v1
	}
	return nil
}
