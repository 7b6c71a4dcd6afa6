package quantum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcirc/linalg"
)

func TestParallelValidation(t *testing.T) {
	_, err := Parallel(CNOT, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single qubit gate")

	_, err = Parallel(X, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applied at least once")
}

func TestParallelUnitaryIsKronPower(t *testing.T) {
	pg, err := Parallel(X, 3)
	require.NoError(t, err)

	x := mustUnitary(t, X)
	want := linalg.KronAll(x, x, x)
	assert.True(t, linalg.EqualApprox(mustUnitary(t, pg), want, 1e-8))
}

func TestParallelDecomposes(t *testing.T) {
	pg, err := Parallel(H, 3)
	require.NoError(t, err)
	op, err := On(pg, LineQubit(0), LineQubit(1), LineQubit(2))
	require.NoError(t, err)

	ops, ok := DecomposeOnce(op)
	require.True(t, ok)
	require.Len(t, ops, 3)
	for i, sub := range ops {
		assert.Equal(t, []Qid{LineQubit(i)}, sub.Qubits())
	}
}

func TestParallelTraceDistanceBound(t *testing.T) {
	pg, err := Parallel(XPow(Value(0.25)), 2)
	require.NoError(t, err)
	// Two copies compound the angle: sin(2·asin(sin(π/8))) = sin(π/4).
	assert.InDelta(t, math.Sin(math.Pi/4), TraceDistanceBound(pg), 1e-12)

	full, err := Parallel(X, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, TraceDistanceBound(full), 1e-12)
}

func TestParallelDiagramReplicates(t *testing.T) {
	pg, err := Parallel(H, 2)
	require.NoError(t, err)
	info := GetDiagramInfo(pg, DiagramArgs{})
	assert.Equal(t, []string{"H", "H"}, info.WireSymbols)
	assert.False(t, info.Connected)
}

func TestControlledZeroControlsIsIdentityTransform(t *testing.T) {
	assert.Equal(t, Gate(X), Controlled(X, 0))

	op, err := On(X, LineQubit(0))
	require.NoError(t, err)
	same, err := ControlOperation(op)
	require.NoError(t, err)
	assert.Equal(t, op, same)
}

func TestControlledGateUnitary(t *testing.T) {
	cz := Controlled(Z, 1)
	assert.True(t, linalg.EqualApprox(mustUnitary(t, cz), mustUnitary(t, CZ), 1e-8))

	ccx := Controlled(Controlled(X, 1), 1)
	assert.True(t, linalg.EqualApprox(mustUnitary(t, ccx), mustUnitary(t, CCX), 1e-8))
}

func TestControlledOperationUnitary(t *testing.T) {
	zop, err := On(Z, LineQubit(1))
	require.NoError(t, err)
	cop, err := ControlOperation(zop, LineQubit(0))
	require.NoError(t, err)

	assert.Equal(t, []Qid{LineQubit(0), LineQubit(1)}, cop.Qubits())
	assert.True(t, linalg.EqualApprox(mustUnitary(t, cop), mustUnitary(t, CZ), 1e-8))
}

func TestControlOverlapRejected(t *testing.T) {
	xop, err := On(X, LineQubit(0))
	require.NoError(t, err)
	_, err = ControlOperation(xop, LineQubit(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps")
}

func TestControlledPow(t *testing.T) {
	cg := Controlled(X, 1)
	half, ok := Pow(cg, Value(0.5))
	require.True(t, ok)

	u := mustUnitary(t, half)
	assert.True(t, linalg.EqualApprox(linalg.Mul(u, u), mustUnitary(t, CNOT), 1e-8))
}

// actorOp is a fake sub-operation recording whether it ran.
type actorOp struct {
	ran *bool
}

func (o actorOp) Qubits() []Qid                               { return []Qid{LineQubit(0)} }
func (o actorOp) WithQubits(qubits ...Qid) (Operation, error) { return o, nil }
func (o actorOp) String() string                              { return "actor(q[0])" }
func (o actorOp) ActOn(ActionState) bool                      { *o.ran = true; return true }

func TestConditionalActOn(t *testing.T) {
	ran := false
	cond, err := Condition(actorOp{ran: &ran}, "m")
	require.NoError(t, err)

	rec := Record{}

	// No record yet: handled, not run.
	assert.True(t, ActOn(cond, rec))
	assert.False(t, ran)

	// A zero digit anywhere fails the condition.
	rec.RecordMeasurement("m", []int{1, 0})
	assert.True(t, ActOn(cond, rec))
	assert.False(t, ran)

	// Most recent record wins.
	rec.RecordMeasurement("m", []int{1, 1})
	assert.True(t, ActOn(cond, rec))
	assert.True(t, ran)
}

func TestConditionalMultipleKeysAreAnded(t *testing.T) {
	ran := false
	cond, err := Condition(actorOp{ran: &ran}, "a", "b")
	require.NoError(t, err)

	rec := Record{}
	rec.RecordMeasurement("a", []int{1})
	rec.RecordMeasurement("b", []int{0})
	assert.True(t, ActOn(cond, rec))
	assert.False(t, ran)

	rec.RecordMeasurement("b", []int{2})
	assert.True(t, ActOn(cond, rec))
	assert.True(t, ran)
}

func TestConditionsUnionSortedDeduplicated(t *testing.T) {
	ran := false
	inner, err := Condition(actorOp{ran: &ran}, "b", "a")
	require.NoError(t, err)
	outer, err := Condition(inner, "c", "a")
	require.NoError(t, err)

	c, ok := outer.(*ConditionalOperation)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, c.Conditions())
}

func TestConditionZeroKeysReturnsSub(t *testing.T) {
	op, err := On(X, LineQubit(0))
	require.NoError(t, err)
	same, err := Condition(op)
	require.NoError(t, err)
	assert.Equal(t, op, same)
}
