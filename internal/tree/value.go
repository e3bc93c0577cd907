package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Value is a sealed interface representing a parsed JSON value.
// Only Null, Bool, Int, Float, String, Array, and Object implement this.
type Value interface {
	treeValue() // Sealed - only these types implement it
}

// Null represents a JSON null, and also the result of any lookup that misses.
type Null struct{}

func (Null) treeValue() {}

// Bool represents a JSON boolean.
type Bool bool

func (Bool) treeValue() {}

// Int represents a JSON number with an integral value that fits in int64.
type Int int64

func (Int) treeValue() {}

// Float represents any other JSON number.
type Float float64

func (Float) treeValue() {}

// String represents a JSON string.
type String string

func (String) treeValue() {}

// Array represents a JSON array.
type Array []Value

func (Array) treeValue() {}

// Object represents a JSON object.
type Object map[string]Value

func (Object) treeValue() {}

// Parse decodes a single JSON document into a Value.
// Numbers are decoded via json.Number so large integers keep their precision.
// Trailing data after the document is an error.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse json: unexpected data after top-level value")
	}

	return convert(raw)
}

// convert recursively converts a decoded Go value to a Value.
func convert(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		return convertNumber(val)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			e, err := convert(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = e
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			e, err := convert(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = e
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

func convertNumber(n json.Number) (Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("number out of range: %s", s)
	}
	return Float(f), nil
}
