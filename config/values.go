package config

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

func jsonUnmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func yamlUnmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// TTL is a cache TTL accepting either a numeric literal or an arithmetic
// expression string such as "(2*3)+5". Evaluation happens during
// transformation, not during decode.
type TTL struct {
	Number     float64
	Expression string
	IsLiteral  bool
}

// UnmarshalJSON accepts a JSON number or string; any other type is a
// decode error so that shape mistakes surface before transformation.
func (t *TTL) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return t.set(v)
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (t *TTL) UnmarshalYAML(data []byte) error {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	return t.set(v)
}

func (t *TTL) set(v any) error {
	switch n := v.(type) {
	case float64:
		t.Number = n
		t.IsLiteral = true
	case int:
		t.Number = float64(n)
		t.IsLiteral = true
	case int64:
		t.Number = float64(n)
		t.IsLiteral = true
	case uint64:
		t.Number = float64(n)
		t.IsLiteral = true
	case string:
		t.Expression = n
	default:
		return fmt.Errorf("maxAgeSeconds must be a number or a mathematical expression, got %T", v)
	}
	return nil
}

// MarshalJSON writes the literal number or the expression string back.
func (t TTL) MarshalJSON() ([]byte, error) {
	if t.IsLiteral {
		return json.Marshal(t.Number)
	}
	return json.Marshal(t.Expression)
}

// Literal builds a numeric TTL.
func Literal(n float64) TTL { return TTL{Number: n, IsLiteral: true} }

// Formula builds an expression TTL.
func Formula(expr string) TTL { return TTL{Expression: expr} }

// Address is one origin address. It decodes from either a bare string or
// an {address, weight} object. The string form is normalized to the object
// form on the manifest side and is not restored on the way back.
type Address struct {
	Address string `json:"address" yaml:"address"`
	Weight  *int   `json:"weight,omitempty" yaml:"weight,omitempty"`
}

type addressAlias Address

// UnmarshalJSON accepts "host" or {"address": "host", "weight": n}.
func (a *Address) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &a.Address)
	}
	return json.Unmarshal(data, (*addressAlias)(a))
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (a *Address) UnmarshalYAML(data []byte) error {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	if s, ok := v.(string); ok {
		a.Address = s
		return nil
	}
	return yaml.Unmarshal(data, (*addressAlias)(a))
}
