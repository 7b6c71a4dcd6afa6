package circuit

import (
	"encoding/json"

	"github.com/pkg/errors"

	"qcirc/quantum"
)

func (c *Circuit) JSONType() string { return "Circuit" }

func (c *Circuit) JSONDict() map[string]any {
	steps := make([]any, len(c.steps))
	for i, step := range c.steps {
		ops := make([]any, len(step))
		for j, op := range step {
			ops[j] = opDict(op)
		}
		steps[i] = ops
	}
	return map[string]any{"steps": steps}
}

func opDict(op quantum.Operation) map[string]any {
	t, ok := op.(quantum.JSONTyped)
	if !ok {
		return nil
	}
	d := map[string]any{"type": t.JSONType()}
	for k, v := range t.JSONDict() {
		d[k] = v
	}
	return d
}

func init() {
	quantum.RegisterJSONType("Circuit", func(data json.RawMessage) (any, error) {
		var fields struct {
			Steps [][]json.RawMessage `json:"steps"`
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
		c := &Circuit{}
		for step, raws := range fields.Steps {
			for _, raw := range raws {
				v, err := quantum.FromJSON(raw)
				if err != nil {
					return nil, err
				}
				op, ok := v.(quantum.Operation)
				if !ok {
					return nil, errors.Errorf("expected an operation at step %d, got %T", step, v)
				}
				if err := c.InsertAt(step, op); err != nil {
					return nil, err
				}
			}
		}
		return c, nil
	})
}
