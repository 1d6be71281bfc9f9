package meta

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"
	"unicode/utf16"

	"gopkg.in/yaml.v3"
)

// Value is a sealed interface over the supported metadata types.
type Value interface {
	metaValue()
}

// Null is an explicit null.
type Null struct{}

// String is a text value.
type String string

// Int is an integer value.
type Int int64

// Bool is a boolean value.
type Bool bool

// List is an ordered sequence of values.
type List []Value

// Object maps keys to values. It is the issue type resolved by the CLI and
// the harness.
type Object map[string]Value

func (Null) metaValue()   {}
func (String) metaValue() {}
func (Int) metaValue()    {}
func (Bool) metaValue()   {}
func (List) metaValue()   {}
func (Object) metaValue() {}

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o[key]
	return v, ok
}

// SortedKeys returns the keys in RFC 8785 order (UTF-16 code units).
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

// compareUTF16 orders strings by UTF-16 code units. This differs from Go's
// byte order for characters outside the BMP.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// Text renders v for display and string comparison: scalars plainly, lists
// and objects as canonical JSON.
func Text(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case String:
		return string(val)
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Bool:
		return strconv.FormatBool(bool(val))
	default:
		b, err := MarshalCanonical(val)
		if err != nil {
			return fmt.Sprintf("<%v>", err)
		}
		return string(b)
	}
}

// FromAny converts a decoded JSON or YAML document into a Value.
//
// Accepted inputs are the shapes produced by encoding/json (with UseNumber)
// and gopkg.in/yaml.v3 when decoding into any. Fractional numbers are
// rejected.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of range: %d", val)
		}
		return Int(val), nil
	case float64:
		if val != math.Trunc(val) || math.Abs(val) > 1<<53 {
			return nil, fmt.Errorf("fractional numbers are not supported: %v", val)
		}
		return Int(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("fractional numbers are not supported: %s", val)
		}
		return Int(n), nil
	case time.Time:
		return String(val.Format(time.RFC3339Nano)), nil
	case []any:
		list := make(List, len(val))
		for i, elem := range val {
			item, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list[i] = item
		}
		return list, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			item, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = item
		}
		return obj, nil
	case map[any]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			key := fmt.Sprint(k)
			item, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			obj[key] = item
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// ObjectFromAny is FromAny restricted to mappings.
func ObjectFromAny(v any) (Object, error) {
	if v == nil {
		return Object{}, nil
	}
	val, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	obj, ok := val.(Object)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", val)
	}
	return obj, nil
}

// ParseObject decodes a YAML or JSON document into an Object. An empty
// document yields an empty Object.
func ParseObject(data []byte) (Object, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse issue: %w", err)
	}
	obj, err := ObjectFromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("parse issue: %w", err)
	}
	return obj, nil
}

// UnmarshalYAML lets an Object appear directly in YAML-decoded structs.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	obj, err := ObjectFromAny(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*o = obj
	return nil
}

// UnmarshalJSON decodes an Object, rejecting fractional numbers.
func (o *Object) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	obj := make(Object, len(raw))
	for k, msg := range raw {
		v, err := decodeJSONValue(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		obj[k] = v
	}
	*o = obj
	return nil
}

func decodeJSONValue(data []byte) (Value, error) {
	var raw any
	if err := unmarshalUseNumber(data, &raw); err != nil {
		return nil, err
	}
	return FromAny(raw)
}

// MarshalJSON renders the Object as canonical JSON.
func (o Object) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(o)
}

// MarshalJSON renders the List as canonical JSON.
func (l List) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(l)
}

// MarshalJSON renders null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
