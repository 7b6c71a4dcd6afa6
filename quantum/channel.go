package quantum

import (
	"fmt"

	"qcirc/linalg"
	"qcirc/tensor"
)

// KrausProvider is the hook for values describable as a quantum channel
// ρ → Σ_i A_i ρ A_i†.
type KrausProvider interface {
	Kraus() ([]*linalg.Matrix, bool)
}

// MaybeKraus returns the Kraus operators of val: dedicated hook, gate of
// an operation, or the single-operator channel of a unitary value.
func MaybeKraus(val any) ([]*linalg.Matrix, bool) {
	if k, ok := val.(KrausProvider); ok {
		if ops, ok := k.Kraus(); ok {
			return ops, true
		}
	}
	if h, ok := val.(GateHolder); ok {
		return MaybeKraus(h.Gate())
	}
	if u, ok := MaybeUnitary(val); ok {
		return []*linalg.Matrix{u}, true
	}
	return nil, false
}

// Channel is the erroring entry point over MaybeKraus.
func Channel(val any) ([]*linalg.Matrix, error) {
	if ops, ok := MaybeKraus(val); ok {
		return ops, nil
	}
	return nil, fmt.Errorf("no channel for %v: value has no Kraus or Unitary", val)
}

// ChannelArgs carries the density-tensor buffers for in-place channel
// application. LeftAxes index the row side of the density tensor and
// RightAxes the column side; both follow the value's qubit order.
// InitialCopy and Sum may be nil, in which case they are allocated.
type ChannelArgs struct {
	Target      *tensor.Dense
	Scratch     *tensor.Dense
	InitialCopy *tensor.Dense
	Sum         *tensor.Dense
	LeftAxes    []int
	RightAxes   []int
}

// ChannelApplier is the hook for applying a channel directly to a density
// tensor.
type ChannelApplier interface {
	ApplyChannel(args *ChannelArgs) (ApplyResult, bool)
}

// ApplyChannel evolves the density tensor in args.Target under val:
// dedicated hook, left/right conjugation for unitary values, then the
// generic Kraus sum Σ_i A_i ρ A_i†. The result always ends in Target.
func ApplyChannel(val any, args *ChannelArgs) (ApplyResult, error) {
	if r, ok := applyChannelHook(val, args); ok {
		return r, nil
	}
	if u, ok := MaybeUnitary(val); ok {
		if err := conjugate(args, u); err != nil {
			return ApplyResult{}, err
		}
		return ApplyResult{Tag: BufferTarget}, nil
	}
	ops, ok := MaybeKraus(val)
	if !ok {
		return ApplyResult{}, fmt.Errorf("cannot apply %v as a channel: value has no ApplyChannel, Kraus, or Unitary", val)
	}
	initial := args.InitialCopy
	if initial == nil {
		initial = tensor.NewDense(args.Target.Shape()...)
	}
	sum := args.Sum
	if sum == nil {
		sum = tensor.NewDense(args.Target.Shape()...)
	}
	initial.CopyFrom(args.Target)
	sum.Zero()
	for _, op := range ops {
		args.Target.CopyFrom(initial)
		if err := conjugate(args, op); err != nil {
			return ApplyResult{}, err
		}
		sum.AddScaled(1, args.Target)
	}
	args.Target.CopyFrom(sum)
	return ApplyResult{Tag: BufferTarget}, nil
}

func applyChannelHook(val any, args *ChannelArgs) (ApplyResult, bool) {
	if a, ok := val.(ChannelApplier); ok {
		if r, ok := a.ApplyChannel(args); ok && r.Tag != BufferNone {
			return r, true
		}
	}
	if h, ok := val.(GateHolder); ok {
		return applyChannelHook(h.Gate(), args)
	}
	return ApplyResult{}, false
}

// conjugate maps Target to A·Target·A† in place. Single two-level axes
// take the paired-hyperplane path; everything else goes through MulAxes
// with Scratch.
func conjugate(args *ChannelArgs, a *linalg.Matrix) error {
	if rows, cols := a.Dims(); rows == 2 && cols == 2 && len(args.LeftAxes) == 1 && len(args.RightAxes) == 1 {
		if err := tensor.Mul2x2(args.Target, a, args.LeftAxes[0]); err != nil {
			return err
		}
		return tensor.Mul2x2(args.Target, linalg.Conj(a), args.RightAxes[0])
	}
	if args.Scratch == nil {
		args.Scratch = tensor.NewDense(args.Target.Shape()...)
	}
	if err := tensor.MulAxes(args.Scratch, args.Target, a, args.LeftAxes); err != nil {
		return err
	}
	return tensor.MulAxes(args.Target, args.Scratch, linalg.Conj(a), args.RightAxes)
}
