package quantum

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// JSONTyped is the serialization hook: values expose a registry tag and a
// flat field dictionary.
type JSONTyped interface {
	JSONType() string
	JSONDict() map[string]any
}

type jsonDecoder func(data json.RawMessage) (any, error)

var jsonRegistry = map[string]jsonDecoder{}

// RegisterJSONType installs a decoder for a type tag. Packages layering on
// top (circuits, schedules) register their own container types.
func RegisterJSONType(tag string, dec jsonDecoder) {
	jsonRegistry[tag] = dec
}

// ToJSON serializes a value with its registry type tag.
func ToJSON(val any) ([]byte, error) {
	t, ok := val.(JSONTyped)
	if !ok {
		return nil, errors.Errorf("value %v has no JSON representation", val)
	}
	d := map[string]any{"type": t.JSONType()}
	for k, v := range t.JSONDict() {
		d[k] = v
	}
	return json.Marshal(d)
}

// FromJSON rebuilds a value from its type-tagged encoding.
func FromJSON(data []byte) (any, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "reading type tag")
	}
	dec, ok := jsonRegistry[probe.Type]
	if !ok {
		return nil, errors.Errorf("unknown JSON type %q", probe.Type)
	}
	v, err := dec(data)
	return v, errors.Wrapf(err, "decoding %q", probe.Type)
}

// jsonRound re-encodes an inner any (decoded as map[string]any) and feeds
// it back through FromJSON.
func jsonRound(inner any) (any, error) {
	raw, err := json.Marshal(inner)
	if err != nil {
		return nil, err
	}
	return FromJSON(raw)
}

func decodeQid(inner any) (Qid, error) {
	v, err := jsonRound(inner)
	if err != nil {
		return nil, err
	}
	q, ok := v.(Qid)
	if !ok {
		return nil, errors.Errorf("expected a qid, got %T", v)
	}
	return q, nil
}

func decodeQids(inner []any) ([]Qid, error) {
	out := make([]Qid, len(inner))
	for i, raw := range inner {
		q, err := decodeQid(raw)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

func decodeGate(inner any) (Gate, error) {
	v, err := jsonRound(inner)
	if err != nil {
		return nil, err
	}
	g, ok := v.(Gate)
	if !ok {
		return nil, errors.Errorf("expected a gate, got %T", v)
	}
	return g, nil
}

func decodeOperation(inner any) (Operation, error) {
	v, err := jsonRound(inner)
	if err != nil {
		return nil, err
	}
	op, ok := v.(Operation)
	if !ok {
		return nil, errors.Errorf("expected an operation, got %T", v)
	}
	return op, nil
}

// paramDict flattens a Param: concrete values stay plain numbers so the
// common case reads naturally.
func paramDict(p Param) any {
	if v, ok := p.Float(); ok {
		return v
	}
	return map[string]any{"symbol": p.SymbolName(), "coeff": p.coeff}
}

func decodeParam(inner any) (Param, error) {
	switch v := inner.(type) {
	case float64:
		return Value(v), nil
	case map[string]any:
		name, _ := v["symbol"].(string)
		if name == "" {
			return Param{}, errors.New("parameter dict missing symbol")
		}
		coeff := 1.0
		if c, ok := v["coeff"].(float64); ok {
			coeff = c
		}
		return Symbol(name).MulFloat(coeff), nil
	}
	return Param{}, errors.Errorf("cannot decode parameter from %T", inner)
}

// Qids

func (q LineQubit) JSONType() string { return "LineQubit" }
func (q LineQubit) JSONDict() map[string]any {
	return map[string]any{"x": int(q)}
}

func (q LineQid) JSONType() string { return "LineQid" }
func (q LineQid) JSONDict() map[string]any {
	return map[string]any{"x": q.index, "levels": q.levels}
}

func (q GridQubit) JSONType() string { return "GridQubit" }
func (q GridQubit) JSONDict() map[string]any {
	return map[string]any{"row": q.Row, "col": q.Col}
}

// Gates

// jsonForms maps registry tags to eigen forms.
var jsonForms = map[string]EigenForm{
	"XPow":       xForm{},
	"YPow":       yForm{},
	"ZPow":       zForm{},
	"HPow":       hForm{},
	"CZPow":      czForm{},
	"CNOTPow":    cxForm{},
	"SWAPPow":    swapForm{},
	"CCZPow":     cczForm{},
	"TOFFOLIPow": ccxForm{},
}

var formTags = map[string]string{}

func (g *EigenGate) JSONType() string { return formTags[g.form.Name()] }
func (g *EigenGate) JSONDict() map[string]any {
	return map[string]any{
		"exponent":     paramDict(g.exponent),
		"global_shift": g.globalShift,
	}
}

func (g *IdentityGate) JSONType() string { return "IdentityGate" }
func (g *IdentityGate) JSONDict() map[string]any {
	return map[string]any{"qid_shape": g.shape}
}

func (g *MeasurementGate) JSONType() string { return "MeasurementGate" }
func (g *MeasurementGate) JSONDict() map[string]any {
	return map[string]any{"key": g.key, "qid_shape": g.shape}
}

func (g *ParallelGate) JSONType() string { return "ParallelGate" }
func (g *ParallelGate) JSONDict() map[string]any {
	return map[string]any{"sub_gate": jsonDict(g.sub), "copies": g.copies}
}

func (g *ControlledGate) JSONType() string { return "ControlledGate" }
func (g *ControlledGate) JSONDict() map[string]any {
	return map[string]any{"sub_gate": jsonDict(g.sub), "num_controls": g.numControls}
}

func (g *InverseGate) JSONType() string { return "InverseGate" }
func (g *InverseGate) JSONDict() map[string]any {
	return map[string]any{"sub_gate": jsonDict(g.sub)}
}

// Channels

func (c *AsymmetricDepolarizingChannel) JSONType() string { return "AsymmetricDepolarizingChannel" }
func (c *AsymmetricDepolarizingChannel) JSONDict() map[string]any {
	return map[string]any{"p_x": c.pX, "p_y": c.pY, "p_z": c.pZ}
}

func (c *DepolarizingChannel) JSONType() string { return "DepolarizingChannel" }
func (c *DepolarizingChannel) JSONDict() map[string]any {
	return map[string]any{"p": c.p}
}

func (c *BitFlipChannel) JSONType() string { return "BitFlipChannel" }
func (c *BitFlipChannel) JSONDict() map[string]any {
	return map[string]any{"p": c.p}
}

func (c *PhaseFlipChannel) JSONType() string { return "PhaseFlipChannel" }
func (c *PhaseFlipChannel) JSONDict() map[string]any {
	return map[string]any{"p": c.p}
}

func (c *GeneralizedAmplitudeDampingChannel) JSONType() string {
	return "GeneralizedAmplitudeDampingChannel"
}
func (c *GeneralizedAmplitudeDampingChannel) JSONDict() map[string]any {
	return map[string]any{"p": c.p, "gamma": c.gamma}
}

func (c *AmplitudeDampingChannel) JSONType() string { return "AmplitudeDampingChannel" }
func (c *AmplitudeDampingChannel) JSONDict() map[string]any {
	return map[string]any{"gamma": c.gamma}
}

func (c *PhaseDampingChannel) JSONType() string { return "PhaseDampingChannel" }
func (c *PhaseDampingChannel) JSONDict() map[string]any {
	return map[string]any{"gamma": c.gamma}
}

// Operations

func (op *GateOperation) JSONType() string { return "GateOperation" }
func (op *GateOperation) JSONDict() map[string]any {
	return map[string]any{"gate": jsonDict(op.gate), "qubits": jsonDicts(op.qubits)}
}

func (op *ControlledOperation) JSONType() string { return "ControlledOperation" }
func (op *ControlledOperation) JSONDict() map[string]any {
	return map[string]any{"sub_operation": jsonDict(op.sub), "controls": jsonDicts(op.controls)}
}

func (op *ConditionalOperation) JSONType() string { return "ConditionalOperation" }
func (op *ConditionalOperation) JSONDict() map[string]any {
	return map[string]any{"sub_operation": jsonDict(op.sub), "keys": op.keys}
}

// jsonDict embeds a typed value as a nested tag-carrying dictionary.
func jsonDict(val any) map[string]any {
	t, ok := val.(JSONTyped)
	if !ok {
		return nil
	}
	d := map[string]any{"type": t.JSONType()}
	for k, v := range t.JSONDict() {
		d[k] = v
	}
	return d
}

func jsonDicts[T any](vals []T) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = jsonDict(v)
	}
	return out
}

func init() {
	for tag, form := range jsonForms {
		formTags[form.Name()] = tag
	}
	for tag, form := range jsonForms {
		f := form
		RegisterJSONType(tag, func(data json.RawMessage) (any, error) {
			var d struct {
				Exponent    any     `json:"exponent"`
				GlobalShift float64 `json:"global_shift"`
			}
			if err := json.Unmarshal(data, &d); err != nil {
				return nil, err
			}
			e, err := decodeParam(d.Exponent)
			if err != nil {
				return nil, err
			}
			return NewEigenGate(f, e, d.GlobalShift), nil
		})
	}
	RegisterJSONType("LineQubit", func(data json.RawMessage) (any, error) {
		var d struct {
			X int `json:"x"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return LineQubit(d.X), nil
	})
	RegisterJSONType("LineQid", func(data json.RawMessage) (any, error) {
		var d struct {
			X      int `json:"x"`
			Levels int `json:"levels"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return NewLineQid(d.X, d.Levels), nil
	})
	RegisterJSONType("GridQubit", func(data json.RawMessage) (any, error) {
		var d struct {
			Row int `json:"row"`
			Col int `json:"col"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return GridQubit{Row: d.Row, Col: d.Col}, nil
	})
	RegisterJSONType("IdentityGate", func(data json.RawMessage) (any, error) {
		var d struct {
			QidShape []int `json:"qid_shape"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return IdentityWithShape(d.QidShape), nil
	})
	RegisterJSONType("MeasurementGate", func(data json.RawMessage) (any, error) {
		var d struct {
			Key      string `json:"key"`
			QidShape []int  `json:"qid_shape"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return MeasureShape(d.Key, d.QidShape), nil
	})
	RegisterJSONType("ParallelGate", func(data json.RawMessage) (any, error) {
		var d struct {
			SubGate any `json:"sub_gate"`
			Copies  int `json:"copies"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		sub, err := decodeGate(d.SubGate)
		if err != nil {
			return nil, err
		}
		return Parallel(sub, d.Copies)
	})
	RegisterJSONType("ControlledGate", func(data json.RawMessage) (any, error) {
		var d struct {
			SubGate     any `json:"sub_gate"`
			NumControls int `json:"num_controls"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		sub, err := decodeGate(d.SubGate)
		if err != nil {
			return nil, err
		}
		return Controlled(sub, d.NumControls), nil
	})
	RegisterJSONType("InverseGate", func(data json.RawMessage) (any, error) {
		var d struct {
			SubGate any `json:"sub_gate"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		sub, err := decodeGate(d.SubGate)
		if err != nil {
			return nil, err
		}
		return &InverseGate{sub: sub}, nil
	})
	RegisterJSONType("AsymmetricDepolarizingChannel", func(data json.RawMessage) (any, error) {
		var d struct {
			PX float64 `json:"p_x"`
			PY float64 `json:"p_y"`
			PZ float64 `json:"p_z"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return AsymmetricDepolarize(d.PX, d.PY, d.PZ)
	})
	RegisterJSONType("DepolarizingChannel", func(data json.RawMessage) (any, error) {
		var d struct {
			P float64 `json:"p"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return Depolarize(d.P)
	})
	RegisterJSONType("BitFlipChannel", func(data json.RawMessage) (any, error) {
		var d struct {
			P float64 `json:"p"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return BitFlip(d.P)
	})
	RegisterJSONType("PhaseFlipChannel", func(data json.RawMessage) (any, error) {
		var d struct {
			P float64 `json:"p"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return PhaseFlip(d.P)
	})
	RegisterJSONType("GeneralizedAmplitudeDampingChannel", func(data json.RawMessage) (any, error) {
		var d struct {
			P     float64 `json:"p"`
			Gamma float64 `json:"gamma"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return GeneralizedAmplitudeDamp(d.P, d.Gamma)
	})
	RegisterJSONType("AmplitudeDampingChannel", func(data json.RawMessage) (any, error) {
		var d struct {
			Gamma float64 `json:"gamma"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return AmplitudeDamp(d.Gamma)
	})
	RegisterJSONType("PhaseDampingChannel", func(data json.RawMessage) (any, error) {
		var d struct {
			Gamma float64 `json:"gamma"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return PhaseDamp(d.Gamma)
	})
	RegisterJSONType("GateOperation", func(data json.RawMessage) (any, error) {
		var d struct {
			Gate   any   `json:"gate"`
			Qubits []any `json:"qubits"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		g, err := decodeGate(d.Gate)
		if err != nil {
			return nil, err
		}
		qubits, err := decodeQids(d.Qubits)
		if err != nil {
			return nil, err
		}
		return On(g, qubits...)
	})
	RegisterJSONType("ControlledOperation", func(data json.RawMessage) (any, error) {
		var d struct {
			SubOperation any   `json:"sub_operation"`
			Controls     []any `json:"controls"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		sub, err := decodeOperation(d.SubOperation)
		if err != nil {
			return nil, err
		}
		controls, err := decodeQids(d.Controls)
		if err != nil {
			return nil, err
		}
		return ControlOperation(sub, controls...)
	})
	RegisterJSONType("ConditionalOperation", func(data json.RawMessage) (any, error) {
		var d struct {
			SubOperation any      `json:"sub_operation"`
			Keys         []string `json:"keys"`
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		sub, err := decodeOperation(d.SubOperation)
		if err != nil {
			return nil, err
		}
		return Condition(sub, d.Keys...)
	})
}
