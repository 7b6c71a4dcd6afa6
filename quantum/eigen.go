package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"qcirc/linalg"
)

// EigenComponent is one eigenspace of a gate: every vector in the
// projector's image picks up the phase exp(i*pi*exponent*HalfTurns).
type EigenComponent struct {
	HalfTurns float64
	Projector *linalg.Matrix
}

// EigenForm supplies the eigenspace structure of a gate family. The
// projectors must be Hermitian, idempotent, mutually orthogonal, and sum
// to the identity; SetDebugChecks enables verification at construction.
type EigenForm interface {
	Name() string
	QidShape() []int
	Components() []EigenComponent
	// WireSymbols labels the gate's wires in circuit diagrams, one entry
	// per qubit.
	WireSymbols() []string
}

var debugChecks = false

// SetDebugChecks toggles eigen-component contract verification when
// constructing gates. Violations are logged, not fatal.
func SetDebugChecks(on bool) { debugChecks = on }

// EigenGate is a gate family closed under powers: raising it to a power t
// scales every eigenphase by t. The global shift s multiplies the whole
// unitary by exp(i*pi*s*t).
type EigenGate struct {
	form        EigenForm
	exponent    Param
	globalShift float64
	period      float64
}

// NewEigenGate builds a member of the form's family at the given exponent.
func NewEigenGate(form EigenForm, exponent Param, globalShift float64) *EigenGate {
	if debugChecks {
		if err := checkEigenComponents(form); err != nil {
			logger.Warn().Err(err).Str("form", form.Name()).Msg("eigen component contract violated")
		}
	}
	g := &EigenGate{
		form:        form,
		exponent:    exponent,
		globalShift: globalShift,
		period:      eigenPeriod(form, globalShift),
	}
	g.exponent = g.canonicalExponent(exponent)
	return g
}

func (g *EigenGate) Form() EigenForm      { return g.form }
func (g *EigenGate) Exponent() Param      { return g.exponent }
func (g *EigenGate) GlobalShift() float64 { return g.globalShift }
func (g *EigenGate) QidShape() []int      { return g.form.QidShape() }

func (g *EigenGate) String() string {
	if v, ok := g.exponent.Float(); ok && v == 1 {
		return g.form.Name()
	}
	return g.form.Name() + "^" + FormatExponent(g.exponent)
}

// canonicalExponent wraps a numeric exponent into (-period/2, period/2].
func (g *EigenGate) canonicalExponent(e Param) Param {
	v, ok := e.Float()
	if !ok || g.period <= 0 {
		return e
	}
	v = math.Mod(v, g.period)
	if v <= -g.period/2 {
		v += g.period
	} else if v > g.period/2 {
		v -= g.period
	}
	return Value(v)
}

// Pow multiplies the exponent. Fails only when both the current exponent
// and t are symbolic.
func (g *EigenGate) Pow(t Param) (Gate, bool) {
	e, ok := g.exponent.Mul(t)
	if !ok {
		return nil, false
	}
	return NewEigenGate(g.form, e, g.globalShift), true
}

// Unitary reconstructs the gate's matrix from its eigen components.
// Symbolic exponents have no matrix.
func (g *EigenGate) Unitary() (*linalg.Matrix, bool) {
	t, ok := g.exponent.Float()
	if !ok {
		return nil, false
	}
	comps := g.form.Components()
	if len(comps) == 0 {
		return nil, false
	}
	rows, cols := comps[0].Projector.Dims()
	out := linalg.NewMatrix(rows, cols)
	for _, c := range comps {
		phase := cmplx.Exp(complex(0, math.Pi*t*(c.HalfTurns+g.globalShift)))
		linalg.AddScaled(out, phase, c.Projector)
	}
	return out, true
}

func (g *EigenGate) ParameterNames() []string { return g.exponent.Names() }

func (g *EigenGate) WithResolved(r Resolver) any {
	return NewEigenGate(g.form, g.exponent.Resolve(r), g.globalShift)
}

// TraceDistanceBound bounds how far the gate is from the identity, from
// the spread of its eigenphase angles. Symbolic exponents bound at 1.
func (g *EigenGate) TraceDistanceBound() float64 {
	t, ok := g.exponent.Float()
	if !ok {
		return 1
	}
	comps := g.form.Components()
	angles := make([]float64, len(comps))
	for i, c := range comps {
		angles[i] = math.Pi * t * c.HalfTurns
	}
	return traceDistanceFromAngles(angles)
}

// traceDistanceFromAngles bounds trace distance by the angular spread of
// eigenvalues on the unit circle: sin(spread/2), saturating at 1.
func traceDistanceFromAngles(angles []float64) float64 {
	if len(angles) < 2 {
		return 0
	}
	norm := make([]float64, len(angles))
	for i, a := range angles {
		a = math.Mod(a, 2*math.Pi)
		if a < 0 {
			a += 2 * math.Pi
		}
		norm[i] = a
	}
	sort.Float64s(norm)
	maxGap := 2*math.Pi - norm[len(norm)-1] + norm[0]
	for i := 1; i < len(norm); i++ {
		if gap := norm[i] - norm[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	spread := 2*math.Pi - maxGap
	if spread >= math.Pi {
		return 1
	}
	return math.Sin(spread / 2)
}

// eigenPeriod finds the smallest p > 0 with p*(halfTurns+shift) an even
// integer for every component, or 0 when the phases are not commensurate.
func eigenPeriod(form EigenForm, shift float64) float64 {
	den := 1
	nums := []int{}
	for _, c := range form.Components() {
		n, d, ok := approxRational(c.HalfTurns+shift, 64)
		if !ok {
			return 0
		}
		l := lcm(den, d)
		for i := range nums {
			nums[i] *= l / den
		}
		nums = append(nums, n*(l/d))
		den = l
	}
	g := 2 * den
	for _, n := range nums {
		g = gcd(g, n)
	}
	if g == 0 {
		return 0
	}
	return float64(2*den) / float64(g)
}

// approxRational finds n/d = x with d <= maxDen, within a tight tolerance.
func approxRational(x float64, maxDen int) (int, int, bool) {
	for d := 1; d <= maxDen; d++ {
		n := math.Round(x * float64(d))
		if math.Abs(x-n/float64(d)) < 1e-9 {
			return int(n), d, true
		}
	}
	return 0, 0, false
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

// checkEigenComponents verifies the projector contract for a form.
func checkEigenComponents(form EigenForm) error {
	comps := form.Components()
	if len(comps) == 0 {
		return fmt.Errorf("form %s has no components", form.Name())
	}
	rows, cols := comps[0].Projector.Dims()
	if rows != cols {
		return fmt.Errorf("form %s has a non-square projector", form.Name())
	}
	sum := linalg.NewMatrix(rows, cols)
	for i, c := range comps {
		p := c.Projector
		if !linalg.EqualApprox(p, linalg.ConjTranspose(p), 1e-9) {
			return fmt.Errorf("form %s component %d is not Hermitian", form.Name(), i)
		}
		if !linalg.EqualApprox(linalg.Mul(p, p), p, 1e-9) {
			return fmt.Errorf("form %s component %d is not idempotent", form.Name(), i)
		}
		for j := i + 1; j < len(comps); j++ {
			prod := linalg.Mul(p, comps[j].Projector)
			if !linalg.EqualApprox(prod, linalg.NewMatrix(rows, cols), 1e-9) {
				return fmt.Errorf("form %s components %d and %d are not orthogonal", form.Name(), i, j)
			}
		}
		linalg.AddScaled(sum, 1, p)
	}
	if !linalg.EqualApprox(sum, linalg.Identity(rows), 1e-9) {
		return fmt.Errorf("form %s projectors do not sum to identity", form.Name())
	}
	return nil
}
