// Package models defines the in-memory table representation served to clients.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	// KindNull is the single missing-value representation.
	KindNull Kind = iota
	// KindInt holds a 64-bit signed integer.
	KindInt
	// KindFloat holds a 64-bit float.
	KindFloat
	// KindString holds text.
	KindString
	// KindBool holds a boolean.
	KindBool
	// KindTime holds a date or timestamp.
	KindTime
	// KindRaw holds a client-supplied JSON object or array, kept verbatim.
	KindRaw
	// KindMixed is only used for columns whose values have different kinds.
	KindMixed
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindRaw:
		return "raw"
	case KindMixed:
		return "mixed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// MarshalText lets Kind appear as a readable string in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsPrimitive reports whether values of this kind are passed to clients as-is
// rather than through their string form.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindInt, KindFloat, KindString, KindBool:
		return true
	default:
		return false
	}
}

const (
	// TimeJSONLayout is the layout used when a Time value is encoded to JSON.
	TimeJSONLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
	// TimeStringLayout is the layout of a Time value's string form.
	TimeStringLayout = "2006-01-02 15:04:05"
)

// Value is a single cell. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	t    time.Time
	raw  json.RawMessage
}

// Null is the missing value.
var Null = Value{}

// IntValue returns an integer Value.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue returns a floating-point Value.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// StringValue returns a text Value.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// TimeValue returns a date/time Value.
func TimeValue(v time.Time) Value { return Value{kind: KindTime, t: v} }

// RawValue returns a Value wrapping a JSON object or array.
func RawValue(v json.RawMessage) Value {
	cp := make(json.RawMessage, len(v))
	copy(cp, v)
	return Value{kind: KindRaw, raw: cp}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the missing value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the integer held by v.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the number held by v, widening integers.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// AsString returns the text held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsTime returns the time held by v.
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTime }

// Interface returns v as a plain Go value (nil for null).
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindRaw:
		var out any
		if err := json.Unmarshal(v.raw, &out); err != nil {
			return string(v.raw)
		}
		return out
	default:
		return nil
	}
}

// String returns the canonical string form of v. Sorting of unique values
// compares these strings.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.s
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindTime:
		if v.t.Nanosecond() != 0 {
			return v.t.Format("2006-01-02 15:04:05.000000")
		}
		return v.t.Format(TimeStringLayout)
	case KindRaw:
		var buf bytes.Buffer
		if err := json.Compact(&buf, v.raw); err != nil {
			return string(v.raw)
		}
		return buf.String()
	default:
		return "None"
	}
}

// formatFloat renders f in shortest round-trip form, always marking whole
// numbers with a fractional part and switching to exponent form only for very
// small or very large magnitudes.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON encodes v using its natural JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		// Floats keep a fraction so 1.0 does not come back as an integer.
		return []byte(formatFloat(v.f)), nil
	case KindString:
		return json.Marshal(v.s)
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindTime:
		return json.Marshal(v.t.UTC().Format(TimeJSONLayout))
	case KindRaw:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON value. Numbers without a fraction or
// exponent become integers when they fit in 64 bits; wider integers are
// kept as raw JSON so no digits are lost.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("models: empty JSON value")
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("models: invalid JSON value %q", data)
		}
		*v = Null
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '{', '[':
		if !json.Valid(data) {
			return fmt.Errorf("models: invalid JSON value %q", data)
		}
		*v = RawValue(data)
	default:
		text := string(data)
		if !strings.ContainsAny(text, ".eE") {
			i, err := strconv.ParseInt(text, 10, 64)
			if err == nil {
				*v = IntValue(i)
				return nil
			}
			if errors.Is(err, strconv.ErrRange) {
				*v = RawValue(data)
				return nil
			}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("models: invalid number %q: %w", text, err)
		}
		*v = FloatValue(f)
	}
	return nil
}

// Key is a comparable identity for a Value. Values with equal keys are
// duplicates of each other: integers and floats of the same magnitude share
// a key, as do times at the same instant.
type Key struct {
	kind Kind
	num  float64
	text string
}

// Key returns the identity of v for deduplication.
func (v Value) Key() Key {
	switch v.kind {
	case KindInt:
		return Key{kind: KindFloat, num: float64(v.i), text: strconv.FormatInt(v.i, 10)}
	case KindFloat:
		if v.f == math.Trunc(v.f) && math.Abs(v.f) < 1<<63 {
			return Key{kind: KindFloat, num: v.f, text: strconv.FormatInt(int64(v.f), 10)}
		}
		return Key{kind: KindFloat, num: v.f}
	case KindTime:
		return Key{kind: KindTime, text: strconv.FormatInt(v.t.UnixNano(), 10)}
	case KindBool:
		if v.b {
			return Key{kind: KindBool, num: 1}
		}
		return Key{kind: KindBool}
	case KindNull:
		return Key{}
	default:
		return Key{kind: v.kind, text: v.String()}
	}
}

// Equal reports whether v and other are the same value.
func (v Value) Equal(other Value) bool {
	return v.Key() == other.Key()
}

// ValueOf converts a plain Go value into a Value. Unknown types fall back to
// their fmt representation as text.
func ValueOf(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null
	case Value:
		return t
	case int:
		return IntValue(int64(t))
	case int8:
		return IntValue(int64(t))
	case int16:
		return IntValue(int64(t))
	case int32:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case uint8:
		return IntValue(int64(t))
	case uint16:
		return IntValue(int64(t))
	case uint32:
		return IntValue(int64(t))
	case uint:
		if uint64(t) > math.MaxInt64 {
			return FloatValue(float64(t))
		}
		return IntValue(int64(t))
	case uint64:
		if t > math.MaxInt64 {
			return FloatValue(float64(t))
		}
		return IntValue(int64(t))
	case float32:
		return FloatValue(float64(t))
	case float64:
		return FloatValue(t)
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case time.Time:
		return TimeValue(t)
	case json.RawMessage:
		return RawValue(t)
	default:
		return StringValue(fmt.Sprint(t))
	}
}
