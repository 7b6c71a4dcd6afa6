package main

import (
	"math/cmplx"

	"qcirc/quantum"
	"qcirc/tensor"
)

// qubitProbability is the marginal of one wire.
type qubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// simulate runs the unitary part of the circuit on |0…0⟩ and reports the
// per-qubit marginals. Measurements, conditionals, and other non-unitary
// operations are skipped.
func simulate(ops []quantum.Operation, numQubits int) []qubitProbability {
	if numQubits < 1 {
		numQubits = 1
	}
	shape := make([]int, numQubits)
	for i := range shape {
		shape[i] = 2
	}
	target := tensor.ZeroState(shape...)
	scratch := tensor.NewDense(shape...)

	for _, op := range ops {
		if !isUnitaryOp(op) {
			continue
		}
		axes := make([]int, 0, len(op.Qubits()))
		for _, q := range op.Qubits() {
			lq, ok := q.(quantum.LineQubit)
			if !ok || int(lq) >= numQubits {
				axes = nil
				break
			}
			axes = append(axes, int(lq))
		}
		if axes == nil {
			continue
		}
		args := &quantum.ApplyArgs{Target: target, Scratch: scratch, Axes: axes}
		res, err := quantum.ApplyUnitary(op, args)
		if err != nil {
			continue
		}
		out := res.Tensor(args)
		if out != target {
			target, scratch = out, target
		}
	}

	probs := make([]qubitProbability, numQubits)
	data := target.Data()
	strides := target.Strides()
	for i, amp := range data {
		p := real(amp * cmplx.Conj(amp))
		for q := 0; q < numQubits; q++ {
			if (i/strides[q])%2 == 1 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

func isUnitaryOp(op quantum.Operation) bool {
	_, ok := quantum.MaybeUnitary(op)
	return ok
}
