package validator

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ValueKind identifies the dynamic type held by a Value.
type ValueKind uint8

const (
	StringValue ValueKind = iota
	NumberValue
	BoolValue
	StringsValue
)

func (k ValueKind) String() string {
	switch k {
	case NumberValue:
		return "number"
	case BoolValue:
		return "bool"
	case StringsValue:
		return "strings"
	default:
		return "string"
	}
}

// Value is the current value of one form field: a string, a number,
// a boolean, or a set of strings. The zero Value is the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	flag bool
	set  []string
}

func String(s string) Value { return Value{kind: StringValue, str: s} }

func Number(n float64) Value { return Value{kind: NumberValue, num: n} }

func Bool(b bool) Value { return Value{kind: BoolValue, flag: b} }

// Strings builds a set value. Duplicates are dropped, insertion order is kept.
func Strings(items ...string) Value {
	set := make([]string, 0, len(items))
	for _, item := range items {
		if !slices.Contains(set, item) {
			set = append(set, item)
		}
	}
	return Value{kind: StringsValue, set: set}
}

func (v Value) Kind() ValueKind { return v.kind }

// Text returns the textual form of the value as it would appear in an input.
func (v Value) Text() string {
	switch v.kind {
	case NumberValue:
		if math.IsNaN(v.num) {
			return ""
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case BoolValue:
		return strconv.FormatBool(v.flag)
	case StringsValue:
		return strings.Join(v.set, ",")
	default:
		return v.str
	}
}

// Float coerces the value to a number. Text is parsed after trimming
// whitespace; ok is false for empty or non-numeric input.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case NumberValue:
		return v.num, !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
	case StringValue:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (v Value) Bool() bool { return v.kind == BoolValue && v.flag }

// Items returns a copy of the set held by a strings value.
func (v Value) Items() []string {
	if v.kind != StringsValue {
		return nil
	}
	return slices.Clone(v.set)
}

// IsEmpty reports whether the value counts as absent for required checks:
// blank text, a NaN number, false, or an empty set.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case NumberValue:
		return math.IsNaN(v.num)
	case BoolValue:
		return !v.flag
	case StringsValue:
		return len(v.set) == 0
	default:
		return strings.TrimSpace(v.str) == ""
	}
}

// Equal compares kind and content. Sets compare order-insensitively.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NumberValue:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case BoolValue:
		return v.flag == o.flag
	case StringsValue:
		if len(v.set) != len(o.set) {
			return false
		}
		for _, item := range v.set {
			if !slices.Contains(o.set, item) {
				return false
			}
		}
		return true
	default:
		return v.str == o.str
	}
}

// Any returns the value as a plain Go value suitable for encoding.
func (v Value) Any() any {
	switch v.kind {
	case NumberValue:
		if math.IsNaN(v.num) {
			return nil
		}
		return v.num
	case BoolValue:
		return v.flag
	case StringsValue:
		return v.Items()
	default:
		return v.str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == StringsValue && v.set == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Any())
}

// FromAny converts decoded input (JSON signals, form values) into a Value.
// Unknown types fall back to their textual representation.
func FromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return String("")
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		if n, err := x.Float64(); err == nil {
			return Number(n)
		}
		return String(x.String())
	case []string:
		return Strings(x...)
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return Strings(items...)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return String("")
		}
		return String(string(b))
	}
}
