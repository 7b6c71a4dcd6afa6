// Package linalg provides the dense complex matrix and Pauli-basis
// utilities used by the gate algebra.
package linalg

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/cmplxs"
)

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// NewMatrix returns a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("linalg: invalid matrix dimensions %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// FromRows builds a matrix from row slices. All rows must have equal length.
func FromRows(rows [][]complex128) *Matrix {
	if len(rows) == 0 {
		panic("linalg: FromRows with no rows")
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.cols {
			panic("linalg: ragged rows")
		}
		copy(m.data[i*m.cols:(i+1)*m.cols], r)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Dims returns the row and column counts.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.cols+j] }

// Set writes the element at (i, j).
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

// Data returns the backing row-major slice. Callers must not resize it.
func (m *Matrix) Data() []complex128 { return m.data }

// Row returns the backing slice of row i.
func (m *Matrix) Row(i int) []complex128 { return m.data[i*m.cols : (i+1)*m.cols] }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Mul returns the matrix product a·b.
func Mul(a, b *Matrix) *Matrix {
	if a.cols != b.rows {
		panic(fmt.Sprintf("linalg: Mul dimension mismatch %dx%d · %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
	out := NewMatrix(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		outRow := out.Row(i)
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if aik == 0 {
				continue
			}
			cmplxs.AddScaled(outRow, aik, b.Row(k))
		}
	}
	return out
}

// Add returns a+b.
func Add(a, b *Matrix) *Matrix {
	if a.rows != b.rows || a.cols != b.cols {
		panic("linalg: Add dimension mismatch")
	}
	out := a.Clone()
	cmplxs.Add(out.data, b.data)
	return out
}

// Sub returns a-b.
func Sub(a, b *Matrix) *Matrix {
	if a.rows != b.rows || a.cols != b.cols {
		panic("linalg: Sub dimension mismatch")
	}
	out := a.Clone()
	cmplxs.Sub(out.data, b.data)
	return out
}

// Scale returns s·m.
func Scale(s complex128, m *Matrix) *Matrix {
	out := NewMatrix(m.rows, m.cols)
	cmplxs.ScaleTo(out.data, s, m.data)
	return out
}

// AddScaled accumulates s·src into dst in place.
func AddScaled(dst *Matrix, s complex128, src *Matrix) {
	if dst.rows != src.rows || dst.cols != src.cols {
		panic("linalg: AddScaled dimension mismatch")
	}
	cmplxs.AddScaled(dst.data, s, src.data)
}

// Kron returns the Kronecker product a⊗b.
func Kron(a, b *Matrix) *Matrix {
	out := NewMatrix(a.rows*b.rows, a.cols*b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			aij := a.data[i*a.cols+j]
			if aij == 0 {
				continue
			}
			for k := 0; k < b.rows; k++ {
				dstRow := out.Row(i*b.rows + k)
				cmplxs.ScaleTo(dstRow[j*b.cols:(j+1)*b.cols], aij, b.Row(k))
			}
		}
	}
	return out
}

// KronAll chains Kron over the given matrices, left to right.
func KronAll(ms ...*Matrix) *Matrix {
	if len(ms) == 0 {
		return Identity(1)
	}
	out := ms[0]
	for _, m := range ms[1:] {
		out = Kron(out, m)
	}
	return out
}

// ConjTranspose returns the conjugate transpose m†.
func ConjTranspose(m *Matrix) *Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			re := real(m.data[i*m.cols+j])
			im := imag(m.data[i*m.cols+j])
			out.data[j*out.cols+i] = complex(re, -im)
		}
	}
	return out
}

// Conj returns the element-wise complex conjugate.
func Conj(m *Matrix) *Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = complex(real(v), -imag(v))
	}
	return out
}

// Trace returns the sum of diagonal elements of a square matrix.
func Trace(m *Matrix) complex128 {
	if m.rows != m.cols {
		panic("linalg: Trace of non-square matrix")
	}
	var t complex128
	for i := 0; i < m.rows; i++ {
		t += m.data[i*m.cols+i]
	}
	return t
}

// EqualApprox reports whether a and b have the same shape and all
// elements within tol of each other.
func EqualApprox(a, b *Matrix, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	return cmplxs.EqualApprox(a.data, b.data, tol)
}

// String renders the matrix for debugging.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		fmt.Fprintf(&sb, "%v\n", m.Row(i))
	}
	return sb.String()
}
