package quantum

import (
	"fmt"
	"strconv"
)

// Param is a gate parameter: either a concrete value or a scaled symbolic
// placeholder coeff·symbol. Symbolic parameters survive gate combinators
// (the exponent law only ever scales by constants) and are substituted by
// ResolveParameters before any numeric protocol can succeed.
type Param struct {
	sym   string
	coeff float64
	val   float64
}

// Value returns a concrete parameter.
func Value(x float64) Param { return Param{val: x} }

// Symbol returns a symbolic parameter with coefficient 1.
func Symbol(name string) Param {
	if name == "" {
		panic("quantum: empty parameter symbol")
	}
	return Param{sym: name, coeff: 1}
}

// IsSymbolic reports whether the parameter still holds a placeholder.
func (p Param) IsSymbolic() bool { return p.sym != "" }

// Float returns the concrete value, or false for symbolic parameters.
func (p Param) Float() (float64, bool) {
	if p.sym != "" {
		return 0, false
	}
	return p.val, true
}

// SymbolName returns the placeholder name, empty for concrete parameters.
func (p Param) SymbolName() string { return p.sym }

// MulFloat scales the parameter by a constant.
func (p Param) MulFloat(x float64) Param {
	if p.sym != "" {
		return Param{sym: p.sym, coeff: p.coeff * x}
	}
	return Param{val: p.val * x}
}

// Mul multiplies two parameters. The product of two symbolic parameters
// is unsupported and reported as ok=false.
func (p Param) Mul(q Param) (Param, bool) {
	if p.sym != "" && q.sym != "" {
		return Param{}, false
	}
	if q.sym != "" {
		return q.MulFloat(p.val), true
	}
	return p.MulFloat(q.val), true
}

// Resolve substitutes the symbol from r when present. Already-concrete
// parameters and unknown symbols pass through unchanged.
func (p Param) Resolve(r Resolver) Param {
	if p.sym == "" {
		return p
	}
	if x, ok := r[p.sym]; ok {
		return Param{val: p.coeff * x}
	}
	return p
}

// Names returns the symbol names referenced by the parameter.
func (p Param) Names() []string {
	if p.sym == "" {
		return nil
	}
	return []string{p.sym}
}

// Equal reports exact structural equality.
func (p Param) Equal(q Param) bool { return p == q }

func (p Param) String() string {
	if p.sym == "" {
		return strconv.FormatFloat(p.val, 'g', -1, 64)
	}
	if p.coeff == 1 {
		return p.sym
	}
	return fmt.Sprintf("%g*%s", p.coeff, p.sym)
}

// Resolver maps symbol names to concrete values.
type Resolver map[string]float64

// Resolvable is the hook probed by ResolveParameters. WithResolved
// returns a value of the same kind with every known symbol substituted.
type Resolvable interface {
	ParameterNames() []string
	WithResolved(r Resolver) any
}

// ResolveParameters substitutes parameters throughout val, recursing into
// wrapper types via their Resolvable hooks. Values without the hook are
// returned unchanged (they carry no parameters).
func ResolveParameters(val any, r Resolver) any {
	if rv, ok := val.(Resolvable); ok {
		return rv.WithResolved(r)
	}
	return val
}

// IsParameterized reports whether val still references symbols.
func IsParameterized(val any) bool {
	return len(ParameterNames(val)) > 0
}

// ParameterNames returns the symbol names val references, nil when none.
func ParameterNames(val any) []string {
	if rv, ok := val.(Resolvable); ok {
		return rv.ParameterNames()
	}
	return nil
}
