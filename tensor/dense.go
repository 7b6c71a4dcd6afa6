// Package tensor provides the dense complex state tensor the gate
// application protocols operate on, together with subspace addressing
// and targeted axis multiplication.
package tensor

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/cmplxs"
)

// Dense is a shaped complex tensor with row-major strides. The first axis
// is the most significant in the flat layout.
type Dense struct {
	shape   []int
	strides []int
	data    []complex128
}

// NewDense allocates a zeroed tensor with the given per-axis dimensions.
func NewDense(shape ...int) *Dense {
	size := 1
	for _, d := range shape {
		if d <= 0 {
			panic(fmt.Sprintf("tensor: invalid axis dimension %d", d))
		}
		size *= d
	}
	return &Dense{
		shape:   slices.Clone(shape),
		strides: stridesFor(shape),
		data:    make([]complex128, size),
	}
}

// FromData wraps an existing flat slice. The slice length must match the
// shape's total size; the tensor takes ownership of the slice.
func FromData(shape []int, data []complex128) (*Dense, error) {
	size := 1
	for _, d := range shape {
		size *= d
	}
	if len(data) != size {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %v", len(data), shape)
	}
	return &Dense{shape: slices.Clone(shape), strides: stridesFor(shape), data: data}, nil
}

// ZeroState returns the computational |0...0⟩ state tensor over the given
// per-subsystem dimensions.
func ZeroState(shape ...int) *Dense {
	t := NewDense(shape...)
	t.data[0] = 1
	return t
}

func stridesFor(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Shape returns the per-axis dimensions. Callers must not mutate it.
func (t *Dense) Shape() []int { return t.shape }

// Strides returns the per-axis flat strides. Callers must not mutate it.
func (t *Dense) Strides() []int { return t.strides }

// Size returns the total element count.
func (t *Dense) Size() int { return len(t.data) }

// Data returns the backing flat slice.
func (t *Dense) Data() []complex128 { return t.data }

// Offset returns the flat offset of a full index tuple.
func (t *Dense) Offset(idx ...int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: index rank %d does not match tensor rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d (dim %d)", x, i, t.shape[i]))
		}
		off += x * t.strides[i]
	}
	return off
}

// At returns the element at the given index tuple.
func (t *Dense) At(idx ...int) complex128 { return t.data[t.Offset(idx...)] }

// Set writes the element at the given index tuple.
func (t *Dense) Set(v complex128, idx ...int) { t.data[t.Offset(idx...)] = v }

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	out := NewDense(t.shape...)
	copy(out.data, t.data)
	return out
}

// CopyFrom overwrites t's contents with src's. Shapes must match.
func (t *Dense) CopyFrom(src *Dense) {
	if !slices.Equal(t.shape, src.shape) {
		panic(fmt.Sprintf("tensor: CopyFrom shape mismatch %v vs %v", t.shape, src.shape))
	}
	copy(t.data, src.data)
}

// Zero sets every element to zero.
func (t *Dense) Zero() {
	for i := range t.data {
		t.data[i] = 0
	}
}

// AddScaled accumulates s·src into t. Shapes must match.
func (t *Dense) AddScaled(s complex128, src *Dense) {
	if !slices.Equal(t.shape, src.shape) {
		panic(fmt.Sprintf("tensor: AddScaled shape mismatch %v vs %v", t.shape, src.shape))
	}
	if s == 1 {
		cmplxs.Add(t.data, src.data)
		return
	}
	cmplxs.AddScaled(t.data, s, src.data)
}

// SameShape reports whether a and b have identical shapes.
func SameShape(a, b *Dense) bool { return slices.Equal(a.shape, b.shape) }

// EqualApprox reports whether a and b have the same shape and all
// elements within tol.
func EqualApprox(a, b *Dense, tol float64) bool {
	return SameShape(a, b) && cmplxs.EqualApprox(a.data, b.data, tol)
}
