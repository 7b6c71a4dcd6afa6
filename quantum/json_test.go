package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qcirc/linalg"
)

func roundTrip(t *testing.T, val any) any {
	t.Helper()
	data, err := ToJSON(val)
	require.NoError(t, err)
	back, err := FromJSON(data)
	require.NoError(t, err, "payload: %s", data)
	return back
}

func TestJSONRoundTripQids(t *testing.T) {
	assert.Equal(t, LineQubit(3), roundTrip(t, LineQubit(3)))
	assert.Equal(t, NewLineQid(1, 3), roundTrip(t, NewLineQid(1, 3)))
	assert.Equal(t, GridQubit{Row: 2, Col: 5}, roundTrip(t, GridQubit{Row: 2, Col: 5}))
}

func TestJSONRoundTripGates(t *testing.T) {
	gates := []Gate{
		X, Y, Z, H, S, T, CZ, CNOT, SWAP, CCZ, CCX,
		XPow(Value(0.5)),
		Rz(Value(1.25)),
		ZPow(Symbol("s")),
		NewIdentity(2),
		Measure("m", 1),
	}
	for _, g := range gates {
		back := roundTrip(t, g)
		bg, ok := back.(Gate)
		require.True(t, ok, "gate %v came back as %T", g, back)
		assert.Equal(t, g.String(), bg.String())
		assert.Equal(t, g.QidShape(), bg.QidShape())
	}
}

func TestJSONRoundTripGateMatrices(t *testing.T) {
	for _, g := range []Gate{XPow(Value(0.25)), Rz(Value(0.7))} {
		back := roundTrip(t, g).(Gate)
		assert.True(t, linalg.EqualApprox(mustUnitary(t, g), mustUnitary(t, back), 1e-12))
	}
}

func TestJSONRoundTripComposites(t *testing.T) {
	pg, err := Parallel(H, 3)
	require.NoError(t, err)
	back := roundTrip(t, pg).(*ParallelGate)
	assert.Equal(t, 3, back.Copies())
	assert.Equal(t, "H", back.Sub().String())

	cg := Controlled(X, 2).(*ControlledGate)
	cback := roundTrip(t, cg).(*ControlledGate)
	assert.Equal(t, 2, cback.NumControls())
	assert.Equal(t, cg.String(), cback.String())
}

func TestJSONRoundTripChannels(t *testing.T) {
	mk := func(v any, err error) any {
		require.NoError(t, err)
		return v
	}
	channels := []any{
		mk(AsymmetricDepolarize(0.1, 0.2, 0.3)),
		mk(Depolarize(0.25)),
		mk(BitFlip(0.5)),
		mk(PhaseFlip(0.5)),
		mk(GeneralizedAmplitudeDamp(0.4, 0.2)),
		mk(AmplitudeDamp(0.3)),
		mk(PhaseDamp(0.6)),
	}
	for _, ch := range channels {
		back := roundTrip(t, ch)
		assert.IsType(t, ch, back)

		want, err := Channel(ch)
		require.NoError(t, err)
		got, err := Channel(back)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.True(t, linalg.EqualApprox(want[i], got[i], 1e-12))
		}
	}
}

func TestJSONRoundTripOperations(t *testing.T) {
	op, err := On(CNOT, LineQubit(0), LineQubit(1))
	require.NoError(t, err)

	xop, err := On(X, LineQubit(2))
	require.NoError(t, err)
	cop, err := ControlOperation(xop, LineQubit(1))
	require.NoError(t, err)
	cond, err := Condition(xop, "m")
	require.NoError(t, err)

	for _, o := range []Operation{op, cop, cond} {
		back := roundTrip(t, o)
		bo, ok := back.(Operation)
		require.True(t, ok, "operation %v came back as %T", o, back)
		assert.Equal(t, o.String(), bo.String())
	}
}

func TestJSONUnknownType(t *testing.T) {
	_, err := FromJSON([]byte(`{"type":"FluxCapacitor"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown JSON type")
}

func TestJSONUnregisteredValue(t *testing.T) {
	_, err := ToJSON(bellGate{})
	require.Error(t, err)
}
