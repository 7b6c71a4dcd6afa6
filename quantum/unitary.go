package quantum

import (
	"fmt"

	"qcirc/linalg"
	"qcirc/tensor"
)

// UnitaryGate is the hook for values with a known unitary matrix, in the
// big-endian qubit ordering used by linalg.Kron.
type UnitaryGate interface {
	Unitary() (*linalg.Matrix, bool)
}

// BufferTag says which buffer of an ApplyArgs/ChannelArgs holds a result.
type BufferTag int

const (
	// BufferNone marks a declined application: the hook ran but could
	// not handle this case, and the dispatcher should fall back.
	BufferNone BufferTag = iota
	BufferTarget
	BufferScratch
	// BufferFresh means the result lives in a newly allocated tensor
	// carried in ApplyResult.Fresh.
	BufferFresh
)

// ApplyArgs carries the state tensor and workspace for in-place unitary
// application. Axes selects which tensor axes the value acts on, in the
// value's own qubit order.
type ApplyArgs struct {
	Target  *tensor.Dense
	Scratch *tensor.Dense
	Axes    []int
}

// ApplyResult reports where the output state landed. The caller reads the
// buffer named by Tag; the other buffers hold garbage afterwards.
type ApplyResult struct {
	Tag   BufferTag
	Fresh *tensor.Dense
}

// Tensor resolves the result tag against the argument buffers.
func (r ApplyResult) Tensor(args *ApplyArgs) *tensor.Dense {
	switch r.Tag {
	case BufferTarget:
		return args.Target
	case BufferScratch:
		return args.Scratch
	case BufferFresh:
		return r.Fresh
	}
	return nil
}

// UnitaryApplier is the hook for applying a value directly to a state
// tensor, avoiding materializing the full matrix.
type UnitaryApplier interface {
	ApplyUnitary(args *ApplyArgs) (ApplyResult, bool)
}

// MaybeUnitary returns the unitary of val when one can be computed:
// dedicated hook, gate of an operation, derivation through the apply hook,
// or multiplying out a decomposition.
func MaybeUnitary(val any) (*linalg.Matrix, bool) {
	if u, ok := val.(UnitaryGate); ok {
		if m, ok := u.Unitary(); ok {
			return m, true
		}
	}
	if h, ok := val.(GateHolder); ok {
		return MaybeUnitary(h.Gate())
	}
	if IsParameterized(val) {
		return nil, false
	}
	if m, ok := unitaryFromApply(val); ok {
		return m, true
	}
	if m, ok := unitaryFromDecompose(val); ok {
		return m, true
	}
	return nil, false
}

// Unitary is the erroring entry point over MaybeUnitary.
func Unitary(val any) (*linalg.Matrix, error) {
	if m, ok := MaybeUnitary(val); ok {
		return m, nil
	}
	return nil, fmt.Errorf("no unitary for %v: value has no Unitary, ApplyUnitary, or unitary decomposition", val)
}

// ApplyUnitary left-multiplies val's unitary onto the axes of args.Target,
// preferring the value's own apply hook over materializing the matrix.
func ApplyUnitary(val any, args *ApplyArgs) (ApplyResult, error) {
	if r, ok := applyUnitaryHook(val, args); ok {
		return r, nil
	}
	u, ok := MaybeUnitary(val)
	if !ok {
		return ApplyResult{}, fmt.Errorf("cannot apply %v as a unitary: value has no ApplyUnitary or Unitary", val)
	}
	out := args.Scratch
	tag := BufferScratch
	if out == nil || out == args.Target {
		out = tensor.NewDense(args.Target.Shape()...)
		tag = BufferFresh
	}
	if err := tensor.MulAxes(out, args.Target, u, args.Axes); err != nil {
		return ApplyResult{}, err
	}
	if tag == BufferFresh {
		return ApplyResult{Tag: BufferFresh, Fresh: out}, nil
	}
	return ApplyResult{Tag: tag}, nil
}

func applyUnitaryHook(val any, args *ApplyArgs) (ApplyResult, bool) {
	if a, ok := val.(UnitaryApplier); ok {
		if r, ok := a.ApplyUnitary(args); ok && r.Tag != BufferNone {
			return r, true
		}
	}
	if h, ok := val.(GateHolder); ok {
		return applyUnitaryHook(h.Gate(), args)
	}
	return ApplyResult{}, false
}

// identityTensor seeds a tensor of shape append(shape, D) whose slices
// along the trailing axis are the computational basis columns. Applying a
// value to the leading axes then reads its matrix out column by column.
func identityTensor(shape []int) *tensor.Dense {
	d := 1
	for _, s := range shape {
		d *= s
	}
	t := tensor.NewDense(append(append([]int{}, shape...), d)...)
	data := t.Data()
	for col := 0; col < d; col++ {
		// Row digits are big-endian over the leading axes, so flat row
		// index times d lands exactly on the diagonal.
		data[col*d+col] = 1
	}
	return t
}

func tensorToMatrix(t *tensor.Dense, d int) *linalg.Matrix {
	m := linalg.NewMatrix(d, d)
	data := t.Data()
	for row := 0; row < d; row++ {
		for col := 0; col < d; col++ {
			m.Set(row, col, data[row*d+col])
		}
	}
	return m
}

func unitaryFromApply(val any) (*linalg.Matrix, bool) {
	a, ok := val.(UnitaryApplier)
	if !ok {
		return nil, false
	}
	shape := shapeOf(val)
	if shape == nil {
		return nil, false
	}
	d := 1
	for _, s := range shape {
		d *= s
	}
	target := identityTensor(shape)
	scratch := tensor.NewDense(target.Shape()...)
	axes := make([]int, len(shape))
	for i := range axes {
		axes[i] = i
	}
	r, ok := a.ApplyUnitary(&ApplyArgs{Target: target, Scratch: scratch, Axes: axes})
	if !ok || r.Tag == BufferNone {
		return nil, false
	}
	out := r.Tensor(&ApplyArgs{Target: target, Scratch: scratch})
	if out == nil {
		return nil, false
	}
	return tensorToMatrix(out, d), true
}

func unitaryFromDecompose(val any) (*linalg.Matrix, bool) {
	var ops []Operation
	var qubits []Qid
	switch v := val.(type) {
	case Operation:
		decomposed, ok := DecomposeOnce(v)
		if !ok {
			return nil, false
		}
		ops = decomposed
		qubits = v.Qubits()
	case Gate:
		d, ok := v.(GateDecomposer)
		if !ok {
			return nil, false
		}
		qubits = defaultQubits(v.QidShape())
		decomposed, ok := d.DecomposeQubits(qubits)
		if !ok {
			return nil, false
		}
		ops = decomposed
	default:
		return nil, false
	}
	shape := QidShapeOf(qubits)
	d := 1
	for _, s := range shape {
		d *= s
	}
	pos := make(map[Qid]int, len(qubits))
	for i, q := range qubits {
		pos[q] = i
	}
	state := identityTensor(shape)
	scratch := tensor.NewDense(state.Shape()...)
	for _, op := range ops {
		axes := make([]int, 0, len(op.Qubits()))
		for _, q := range op.Qubits() {
			i, ok := pos[q]
			if !ok {
				return nil, false
			}
			axes = append(axes, i)
		}
		r, err := ApplyUnitary(op, &ApplyArgs{Target: state, Scratch: scratch, Axes: axes})
		if err != nil {
			return nil, false
		}
		switch r.Tag {
		case BufferScratch:
			state, scratch = scratch, state
		case BufferFresh:
			scratch = state
			state = r.Fresh
		}
	}
	return tensorToMatrix(state, d), true
}

// shapeOf extracts a qid shape from gates or operations.
func shapeOf(val any) []int {
	switch v := val.(type) {
	case Gate:
		return v.QidShape()
	case Operation:
		return QidShapeOf(v.Qubits())
	}
	return nil
}

// defaultQubits binds a shape to line qids for qubit-agnostic derivations.
func defaultQubits(shape []int) []Qid {
	out := make([]Qid, len(shape))
	for i, levels := range shape {
		if levels == 2 {
			out[i] = LineQubit(i)
		} else {
			out[i] = NewLineQid(i, levels)
		}
	}
	return out
}
