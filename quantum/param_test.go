package quantum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePiExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"-pi", -math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"-pi/2", -math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"", 0, false},
		{"two pi", 0, false},
		{"pi/0", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePiExpr(tt.input)
		if !tt.ok {
			assert.False(t, ok, "input %q", tt.input)
			continue
		}
		require.True(t, ok, "input %q", tt.input)
		assert.InDelta(t, tt.want, got, 1e-12, "input %q", tt.input)
	}
}

func TestFormatPi(t *testing.T) {
	tests := []struct {
		val  float64
		want string
	}{
		{math.Pi, "pi"},
		{-math.Pi, "-pi"},
		{math.Pi / 2, "pi/2"},
		{-math.Pi / 2, "-pi/2"},
		{math.Pi / 4, "pi/4"},
		{3 * math.Pi / 4, "3*pi/4"},
		{2 * math.Pi, "2*pi"},
		{0.25, "0.25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPi(tt.val), "value %v", tt.val)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, val := range []float64{math.Pi, math.Pi / 2, -math.Pi / 4, 3 * math.Pi / 4, 0.125} {
		back, ok := ParsePiExpr(FormatPi(val))
		require.True(t, ok)
		assert.InDelta(t, val, back, 1e-10)
	}
}

func TestParamResolve(t *testing.T) {
	p := Symbol("theta").MulFloat(2)
	assert.True(t, p.IsSymbolic())
	assert.Equal(t, []string{"theta"}, p.Names())

	r := p.Resolve(Resolver{"theta": 0.25})
	v, ok := r.Float()
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)

	// Unknown symbols pass through.
	still := p.Resolve(Resolver{"phi": 1})
	assert.True(t, still.IsSymbolic())
}

func TestParamMul(t *testing.T) {
	_, ok := Symbol("a").Mul(Symbol("b"))
	assert.False(t, ok)

	p, ok := Symbol("a").Mul(Value(3))
	require.True(t, ok)
	assert.Equal(t, "3*a", p.String())
}

func TestResolveParametersThroughGate(t *testing.T) {
	g := XPow(Symbol("s"))
	assert.True(t, IsParameterized(g))
	assert.Equal(t, []string{"s"}, ParameterNames(g))

	resolved := ResolveParameters(g, Resolver{"s": 0.5})
	rg, ok := resolved.(*EigenGate)
	require.True(t, ok)
	assert.False(t, IsParameterized(rg))
	v, _ := rg.Exponent().Float()
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestParseParamList(t *testing.T) {
	vals := ParseParamList("pi/2, 0.5, -pi")
	require.Len(t, vals, 3)
	assert.InDelta(t, math.Pi/2, vals[0], 1e-12)
	assert.InDelta(t, 0.5, vals[1], 1e-12)
	assert.InDelta(t, -math.Pi, vals[2], 1e-12)

	assert.Nil(t, ParseParamList("pi/2, nonsense"))
}
