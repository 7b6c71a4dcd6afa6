// Package quantum implements the gate/operation algebra: qubit
// identifiers, gates, operations, the eigen-decomposition framework for
// exact fractional gate powers, noise channels, and the protocol
// dispatch layer that computes unitaries, applies effects to state
// tensors, decomposes composite operations, and serializes values.
package quantum

import (
	"fmt"
	"slices"
)

// Qid identifies one quantum subsystem of a stated dimensionality.
// Concrete implementations must be comparable Go values so qids can key
// maps; equality and ordering across qids go through QidsEqual and
// CompareQids, which order by concrete type first.
type Qid interface {
	// Levels is the dimension of the subsystem, 2 for a qubit.
	Levels() int
	// KeyParts is the sortable identity of the qid within its own type.
	KeyParts() []int64
	fmt.Stringer
}

// LevelShifter is implemented by qids that can produce a native qid of
// the same kind with a different level count. Qids without it are
// wrapped by WithLevels instead.
type LevelShifter interface {
	WithLevels(levels int) Qid
}

// LineQubit is a two-level qid on an integer line.
type LineQubit int

func (q LineQubit) Levels() int       { return 2 }
func (q LineQubit) KeyParts() []int64 { return []int64{int64(q)} }
func (q LineQubit) String() string    { return fmt.Sprintf("q[%d]", int(q)) }
func (q LineQubit) WithLevels(levels int) Qid {
	return NewLineQid(int(q), levels)
}

// LineQubitRange returns LineQubits 0..n-1.
func LineQubitRange(n int) []Qid {
	out := make([]Qid, n)
	for i := range out {
		out[i] = LineQubit(i)
	}
	return out
}

// LineQid is a qid on an integer line with an explicit level count.
type LineQid struct {
	index  int
	levels int
}

// NewLineQid returns the qid at the given line index with the given
// number of levels.
func NewLineQid(index, levels int) LineQid {
	if levels < 1 {
		panic(fmt.Sprintf("quantum: qid levels must be >= 1, got %d", levels))
	}
	return LineQid{index: index, levels: levels}
}

func (q LineQid) Index() int        { return q.index }
func (q LineQid) Levels() int       { return q.levels }
func (q LineQid) KeyParts() []int64 { return []int64{int64(q.index)} }
func (q LineQid) String() string    { return fmt.Sprintf("q[%d] (l=%d)", q.index, q.levels) }
func (q LineQid) WithLevels(levels int) Qid {
	return NewLineQid(q.index, levels)
}

// GridQubit is a two-level qid at a row/column position.
type GridQubit struct {
	Row, Col int
}

func (q GridQubit) Levels() int       { return 2 }
func (q GridQubit) KeyParts() []int64 { return []int64{int64(q.Row), int64(q.Col)} }
func (q GridQubit) String() string    { return fmt.Sprintf("q(%d,%d)", q.Row, q.Col) }

// wrappedQid overlays a different level count on an existing qid without
// mutating it.
type wrappedQid struct {
	inner  Qid
	levels int
}

func (q wrappedQid) Levels() int       { return q.levels }
func (q wrappedQid) KeyParts() []int64 { return q.inner.KeyParts() }
func (q wrappedQid) String() string    { return fmt.Sprintf("%v (l=%d)", q.inner, q.levels) }
func (q wrappedQid) WithLevels(levels int) Qid {
	return wrappedQid{inner: q.inner, levels: levels}
}

// Unwrap returns the underlying qid.
func (q wrappedQid) Unwrap() Qid { return q.inner }

// WithLevels returns a qid identical to q but with the given level count.
// Qids implementing LevelShifter produce a native qid of their own kind;
// anything else is wrapped.
func WithLevels(q Qid, levels int) Qid {
	if levels < 1 {
		panic(fmt.Sprintf("quantum: qid levels must be >= 1, got %d", levels))
	}
	if q.Levels() == levels {
		return q
	}
	if ls, ok := q.(LevelShifter); ok {
		return ls.WithLevels(levels)
	}
	return wrappedQid{inner: q, levels: levels}
}

// WithFewerLevels projects q down to the given level count. Requesting
// more levels than q has is an error.
func WithFewerLevels(q Qid, levels int) (Qid, error) {
	if levels > q.Levels() {
		return nil, fmt.Errorf("too many quantum levels for %v: expected <= %d but got %d", q, q.Levels(), levels)
	}
	return WithLevels(q, levels), nil
}

// WithMoreLevels extends q up to the given level count. Requesting fewer
// levels than q has is an error.
func WithMoreLevels(q Qid, levels int) (Qid, error) {
	if levels < q.Levels() {
		return nil, fmt.Errorf("too few quantum levels for %v: expected >= %d but got %d", q, q.Levels(), levels)
	}
	return WithLevels(q, levels), nil
}

// qidTypeName is the type component of the ordering key. Wrapped qids
// sort by their underlying type so projections stay near their source.
func qidTypeName(q Qid) string {
	if w, ok := q.(wrappedQid); ok {
		return qidTypeName(w.inner)
	}
	return fmt.Sprintf("%T", q)
}

// CompareQids totally orders qids: by concrete type name first, then by
// key parts, then by level count. Qids of different concrete types are
// never equal even with identical keys.
func CompareQids(a, b Qid) int {
	if c := compareStrings(qidTypeName(a), qidTypeName(b)); c != 0 {
		return c
	}
	if c := slices.Compare(a.KeyParts(), b.KeyParts()); c != 0 {
		return c
	}
	switch {
	case a.Levels() < b.Levels():
		return -1
	case a.Levels() > b.Levels():
		return 1
	}
	return 0
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// QidsEqual reports whether a and b are the same subsystem.
func QidsEqual(a, b Qid) bool { return CompareQids(a, b) == 0 }

// SortQids sorts qids in place by CompareQids order.
func SortQids(qids []Qid) {
	slices.SortFunc(qids, CompareQids)
}

// QidShapeOf returns the per-qid level counts.
func QidShapeOf(qids []Qid) []int {
	shape := make([]int, len(qids))
	for i, q := range qids {
		shape[i] = q.Levels()
	}
	return shape
}
