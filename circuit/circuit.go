// Package circuit arranges operations on a timeline of steps. Each step
// holds operations on disjoint qubits; appending packs an operation into
// the earliest step whose wires are still free.
package circuit

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"qcirc/quantum"
)

// Circuit is an ordered sequence of steps. Operations within a step act on
// disjoint qubits.
type Circuit struct {
	steps [][]quantum.Operation
}

// New builds a circuit from operations using earliest-free-step placement.
func New(ops ...quantum.Operation) (*Circuit, error) {
	c := &Circuit{}
	for _, op := range ops {
		if err := c.Append(op); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Append places op at the earliest step where none of its qubits is
// already in use by a later-or-equal step.
func (c *Circuit) Append(op quantum.Operation) error {
	qubits := op.Qubits()
	if len(qubits) == 0 {
		return errors.Errorf("operation %v has no qubits", op)
	}
	step := 0
	for s := len(c.steps) - 1; s >= 0; s-- {
		if c.stepTouches(s, qubits) {
			step = s + 1
			break
		}
	}
	return c.InsertAt(step, op)
}

// InsertAt places op at an explicit step, growing the circuit as needed.
// It fails if any qubit of op is already used at that step.
func (c *Circuit) InsertAt(step int, op quantum.Operation) error {
	if step < 0 {
		return errors.Errorf("negative step %d", step)
	}
	for _, q := range op.Qubits() {
		if existing, ok := c.OperationAt(step, q); ok {
			return errors.Errorf("operation %v overlaps %v on qubit %v at step %d", op, existing, q, step)
		}
	}
	for len(c.steps) <= step {
		c.steps = append(c.steps, nil)
	}
	c.steps[step] = append(c.steps[step], op)
	return nil
}

func (c *Circuit) stepTouches(step int, qubits []quantum.Qid) bool {
	for _, q := range qubits {
		if _, ok := c.OperationAt(step, q); ok {
			return true
		}
	}
	return false
}

// OperationAt reports the operation occupying qubit q at the given step.
func (c *Circuit) OperationAt(step int, q quantum.Qid) (quantum.Operation, bool) {
	if step < 0 || step >= len(c.steps) {
		return nil, false
	}
	for _, op := range c.steps[step] {
		for _, oq := range op.Qubits() {
			if quantum.QidsEqual(oq, q) {
				return op, true
			}
		}
	}
	return nil, false
}

// StepOperations returns the operations at one step, in insertion order.
func (c *Circuit) StepOperations(step int) []quantum.Operation {
	if step < 0 || step >= len(c.steps) {
		return nil
	}
	return c.steps[step]
}

// AllOperations flattens the circuit in step order, insertion order within
// a step.
func (c *Circuit) AllOperations() []quantum.Operation {
	var out []quantum.Operation
	for _, step := range c.steps {
		out = append(out, step...)
	}
	return out
}

// MaxStep is the index of the last step, -1 for an empty circuit.
func (c *Circuit) MaxStep() int { return len(c.steps) - 1 }

// NumSteps is the number of steps on the timeline.
func (c *Circuit) NumSteps() int { return len(c.steps) }

// Qubits returns the sorted set of qubits the circuit touches.
func (c *Circuit) Qubits() []quantum.Qid {
	seen := map[quantum.Qid]bool{}
	var out []quantum.Qid
	for _, op := range c.AllOperations() {
		for _, q := range op.Qubits() {
			if !seen[q] {
				seen[q] = true
				out = append(out, q)
			}
		}
	}
	quantum.SortQids(out)
	return out
}

func (c *Circuit) String() string {
	var parts []string
	for _, step := range c.steps {
		var ops []string
		for _, op := range step {
			ops = append(ops, op.String())
		}
		parts = append(parts, strings.Join(ops, " "))
	}
	return fmt.Sprintf("circuit[%s]", strings.Join(parts, " | "))
}
