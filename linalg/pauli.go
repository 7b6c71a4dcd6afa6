package linalg

import (
	"fmt"
	"math/bits"
)

// The single-qubit Pauli basis. PauliNames indexes into PauliBasis.
var (
	PauliNames = [4]byte{'I', 'X', 'Y', 'Z'}

	pauliI = FromRows([][]complex128{{1, 0}, {0, 1}})
	pauliX = FromRows([][]complex128{{0, 1}, {1, 0}})
	pauliY = FromRows([][]complex128{{0, -1i}, {1i, 0}})
	pauliZ = FromRows([][]complex128{{1, 0}, {0, -1}})
)

// PauliBasis returns the 2×2 Pauli matrices in I, X, Y, Z order.
// The returned matrices are shared; callers must not mutate them.
func PauliBasis() [4]*Matrix {
	return [4]*Matrix{pauliI, pauliX, pauliY, pauliZ}
}

// PauliByName returns the single-qubit Pauli matrix for 'I', 'X', 'Y' or 'Z'.
func PauliByName(name byte) (*Matrix, bool) {
	switch name {
	case 'I':
		return pauliI, true
	case 'X':
		return pauliX, true
	case 'Y':
		return pauliY, true
	case 'Z':
		return pauliZ, true
	}
	return nil, false
}

// PauliString returns the tensor product of single-qubit Paulis named by s,
// e.g. "XZ" → X⊗Z.
func PauliString(s string) (*Matrix, error) {
	if s == "" {
		return nil, fmt.Errorf("linalg: empty Pauli string")
	}
	out := Identity(1)
	for i := 0; i < len(s); i++ {
		p, ok := PauliByName(s[i])
		if !ok {
			return nil, fmt.Errorf("linalg: unknown Pauli %q in %q", s[i], s)
		}
		out = Kron(out, p)
	}
	return out, nil
}

// ExpandPauli expresses a 2^n×2^n matrix as coefficients over the n-fold
// tensor Pauli basis. Keys are strings over {I, X, Y, Z}; coefficients are
// the normalized Hilbert-Schmidt inner products Tr(P·m)/2^n.
// Terms with zero coefficient are omitted.
func ExpandPauli(m *Matrix) (map[string]complex128, error) {
	rows, cols := m.Dims()
	if rows != cols {
		return nil, fmt.Errorf("linalg: ExpandPauli of non-square %dx%d matrix", rows, cols)
	}
	n := bits.TrailingZeros(uint(rows))
	if n == 0 || 1<<n != rows {
		return nil, fmt.Errorf("linalg: ExpandPauli dimension %d is not a power of two >= 2", rows)
	}

	dim := complex(float64(rows), 0)
	out := make(map[string]complex128)
	name := make([]byte, n)
	var walk func(depth int, acc *Matrix)
	walk = func(depth int, acc *Matrix) {
		if depth == n {
			// Paulis are Hermitian, so Tr(P† m) = Tr(P m).
			c := Trace(Mul(acc, m)) / dim
			if c != 0 {
				out[string(name)] = c
			}
			return
		}
		for i, p := range PauliBasis() {
			name[depth] = PauliNames[i]
			walk(depth+1, Kron(acc, p))
		}
	}
	walk(0, Identity(1))
	return out, nil
}

// ReconstructPauli rebuilds the 2^n×2^n matrix from Pauli-basis
// coefficients produced by ExpandPauli.
func ReconstructPauli(coeffs map[string]complex128, n int) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("linalg: ReconstructPauli with n=%d", n)
	}
	out := NewMatrix(1<<n, 1<<n)
	for name, c := range coeffs {
		if len(name) != n {
			return nil, fmt.Errorf("linalg: Pauli term %q does not match %d qubits", name, n)
		}
		p, err := PauliString(name)
		if err != nil {
			return nil, err
		}
		AddScaled(out, c, p)
	}
	return out, nil
}
