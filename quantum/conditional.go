package quantum

import (
	"fmt"
	"slices"
	"strings"
)

// ActionState is a simulation state that operations can act on directly,
// carrying the classical measurement record.
type ActionState interface {
	// LastMeasurement returns the most recent digits recorded under key.
	LastMeasurement(key string) ([]int, bool)
	// RecordMeasurement appends an outcome under key.
	RecordMeasurement(key string, digits []int)
}

// Actor is the hook for operations that know how to act on a state.
// The return reports whether the operation handled the state; a
// conditional whose condition failed still handled it.
type Actor interface {
	ActOn(state ActionState) bool
}

// ActOn dispatches an operation onto a simulation state.
func ActOn(val any, state ActionState) bool {
	if a, ok := val.(Actor); ok {
		return a.ActOn(state)
	}
	return false
}

// Record is a plain measurement log usable as the classical side of an
// ActionState.
type Record map[string][][]int

func (r Record) LastMeasurement(key string) ([]int, bool) {
	runs := r[key]
	if len(runs) == 0 {
		return nil, false
	}
	return runs[len(runs)-1], true
}

func (r Record) RecordMeasurement(key string, digits []int) {
	r[key] = append(r[key], append([]int{}, digits...))
}

// Condition wraps an operation so it runs only when every named
// measurement key came out all-nonzero. Duplicate keys collapse.
func Condition(sub Operation, keys ...string) (Operation, error) {
	if len(keys) == 0 {
		return sub, nil
	}
	merged := append([]string{}, keys...)
	if c, ok := sub.(*ConditionalOperation); ok {
		merged = append(merged, c.keys...)
		sub = c.sub
	}
	slices.Sort(merged)
	merged = slices.Compact(merged)
	for _, k := range merged {
		if k == "" {
			return nil, fmt.Errorf("conditional operation on %v has an empty control key", sub)
		}
	}
	return &ConditionalOperation{sub: sub, keys: merged}, nil
}

// ConditionalOperation applies its sub-operation only when every control
// key's most recent measurement has no zero digit.
type ConditionalOperation struct {
	sub  Operation
	keys []string
}

func (op *ConditionalOperation) Sub() Operation { return op.sub }

// Conditions returns the sorted union of this operation's keys and any
// conditions of the sub-operation.
func (op *ConditionalOperation) Conditions() []string {
	out := append([]string{}, op.keys...)
	if c, ok := op.sub.(*ConditionalOperation); ok {
		out = append(out, c.Conditions()...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (op *ConditionalOperation) Qubits() []Qid { return op.sub.Qubits() }

func (op *ConditionalOperation) WithQubits(qubits ...Qid) (Operation, error) {
	sub, err := op.sub.WithQubits(qubits...)
	if err != nil {
		return nil, err
	}
	return Condition(sub, op.keys...)
}

func (op *ConditionalOperation) String() string {
	return fmt.Sprintf("%v if [%s]", op.sub, strings.Join(op.keys, ", "))
}

// ActOn consults the measurement record and either applies the
// sub-operation or skips it; both outcomes count as handled. A missing
// record for a key counts as condition failed.
func (op *ConditionalOperation) ActOn(state ActionState) bool {
	for _, key := range op.keys {
		digits, ok := state.LastMeasurement(key)
		if !ok {
			return true
		}
		for _, d := range digits {
			if d == 0 {
				return true
			}
		}
	}
	return ActOn(op.sub, state)
}

func (op *ConditionalOperation) ParameterNames() []string { return ParameterNames(op.sub) }

func (op *ConditionalOperation) WithResolved(r Resolver) any {
	sub, ok := ResolveParameters(op.sub, r).(Operation)
	if !ok {
		return op
	}
	out, err := Condition(sub, op.keys...)
	if err != nil {
		return op
	}
	return out
}

func (op *ConditionalOperation) DiagramInfo(args DiagramArgs) (DiagramInfo, bool) {
	sub := GetDiagramInfo(op.sub, args)
	if len(sub.WireSymbols) == 0 {
		return DiagramInfo{}, false
	}
	symbols := append([]string{}, sub.WireSymbols...)
	symbols[0] = fmt.Sprintf("%s if %s", symbols[0], strings.Join(op.keys, ","))
	return DiagramInfo{WireSymbols: symbols, Exponent: sub.Exponent, Connected: sub.Connected}, true
}
