// Package source defines the document-store collaborator boundary: the
// dynamic field-map model for raw documents and the scan interface the
// pipeline consumes them through.
package source

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/recipeworks/simmer/errors"
)

// Kind discriminates the Value tagged union.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is a tagged union over the shapes a document field can take
// (null, string, number, bool, list, map). Validators use the explicit
// coercion methods below instead of runtime type inspection.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

// Null returns the null Value. The zero Value is also null.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a float64.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List wraps a list of Values.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Map wraps a map of Values.
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// Time wraps a collaborator timestamp as its canonical representation:
// an RFC3339 UTC string with a trailing Z.
func Time(t time.Time) Value {
	return String(t.UTC().Format(time.RFC3339))
}

// Kind returns the union tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null (or zero).
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString coerces to string the way the pipeline treats loose source
// data: null becomes "", numbers and bools render to their literal form,
// lists and maps render as compact JSON.
func (v Value) AsString() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// AsNumber coerces to a float64. Numeric strings parse; everything else
// reports false.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsBool reports the boolean, or false for any other kind.
func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

// AsList reports the list elements, or false for any other kind.
func (v Value) AsList() ([]Value, bool) {
	if v.kind == KindList {
		return v.list, true
	}
	return nil, false
}

// AsMap reports the map entries, or false for any other kind.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind == KindMap {
		return v.m, true
	}
	return nil, false
}

// Blank reports whether the value coerces to a whitespace-only string.
func (v Value) Blank() bool {
	return strings.TrimSpace(v.AsString()) == ""
}

// FromAny converts arbitrary decoded JSON (or collaborator-native values)
// into a Value. time.Time collapses to its canonical RFC3339 UTC string so
// fingerprints stay deterministic across collaborator timestamp types.
func FromAny(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Number(f)
	case time.Time:
		return Time(x)
	case []interface{}:
		list := make([]Value, 0, len(x))
		for _, item := range x {
			list = append(list, FromAny(item))
		}
		return Value{kind: KindList, list: list}
	case map[string]interface{}:
		m := make(map[string]Value, len(x))
		for k, item := range x {
			m[k] = FromAny(item)
		}
		return Map(m)
	default:
		return String(toString(x))
	}
}

func toString(x interface{}) string {
	raw, err := json.Marshal(x)
	if err != nil {
		return ""
	}
	return strings.Trim(string(raw), `"`)
}

// MarshalJSON renders the canonical serialization: map keys sorted, so two
// structurally identical field maps always produce identical bytes.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		var buf strings.Builder
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		return []byte(buf.String()), nil
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyRaw, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyRaw)
			buf.WriteByte(':')
			raw, err := v.m[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte('}')
		return []byte(buf.String()), nil
	}
	return nil, errors.Newf("unknown value kind %d", v.kind)
}

// UnmarshalJSON decodes arbitrary JSON into the union.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}
