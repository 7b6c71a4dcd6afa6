package linalg

import (
	"fmt"
	"math/cmplx"
)

// EigenPair couples an eigenvalue with the orthogonal projector onto its
// eigenspace. For a normal matrix m with pairs {(λ_i, P_i)},
// m = Σ λ_i·P_i and the P_i sum to the identity.
type EigenPair struct {
	Value     complex128
	Projector *Matrix
}

// eigDegenerateTol decides when the two eigenvalues of a 2×2 matrix are
// treated as a single degenerate eigenvalue.
const eigDegenerateTol = 1e-12

// Eig2x2 returns the eigendecomposition of a normal 2×2 matrix in closed
// form. Degenerate matrices yield a single pair with the identity
// projector.
func Eig2x2(m *Matrix) ([]EigenPair, error) {
	rows, cols := m.Dims()
	if rows != 2 || cols != 2 {
		return nil, fmt.Errorf("linalg: Eig2x2 of %dx%d matrix", rows, cols)
	}
	tr := m.At(0, 0) + m.At(1, 1)
	det := m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
	disc := cmplx.Sqrt(tr*tr - 4*det)
	l1 := (tr + disc) / 2
	l2 := (tr - disc) / 2

	if cmplx.Abs(l1-l2) < eigDegenerateTol {
		return []EigenPair{{Value: l1, Projector: Identity(2)}}, nil
	}

	// For a normal matrix with distinct eigenvalues,
	// P_1 = (m - λ_2·I)/(λ_1 - λ_2) is the orthogonal projector.
	p1 := Scale(1/(l1-l2), Sub(m, Scale(l2, Identity(2))))
	p2 := Scale(1/(l2-l1), Sub(m, Scale(l1, Identity(2))))
	return []EigenPair{
		{Value: l1, Projector: p1},
		{Value: l2, Projector: p2},
	}, nil
}

// MapEigenvalues applies f to each eigenvalue of a normal 2×2 matrix and
// reassembles the result: Σ f(λ_i)·P_i.
func MapEigenvalues(m *Matrix, f func(complex128) complex128) (*Matrix, error) {
	pairs, err := Eig2x2(m)
	if err != nil {
		return nil, err
	}
	out := NewMatrix(2, 2)
	for _, p := range pairs {
		AddScaled(out, f(p.Value), p.Projector)
	}
	return out, nil
}

// MatrixPower raises a unitary matrix to a real power. 2×2 matrices accept
// any real exponent via the closed-form eigendecomposition; larger
// matrices accept integer exponents only (negative powers use the
// conjugate transpose, relying on unitarity).
func MatrixPower(m *Matrix, t float64) (*Matrix, error) {
	rows, cols := m.Dims()
	if rows != cols {
		return nil, fmt.Errorf("linalg: MatrixPower of non-square %dx%d matrix", rows, cols)
	}
	if rows == 2 {
		return MapEigenvalues(m, func(l complex128) complex128 {
			return cmplx.Pow(l, complex(t, 0))
		})
	}
	k := int(t)
	if float64(k) != t {
		return nil, fmt.Errorf("linalg: fractional power %v of %dx%d matrix requires an eigen hook", t, rows, cols)
	}
	base := m
	if k < 0 {
		base = ConjTranspose(m)
		k = -k
	}
	out := Identity(rows)
	for i := 0; i < k; i++ {
		out = Mul(out, base)
	}
	return out, nil
}
