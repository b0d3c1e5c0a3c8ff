package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row maps column names to values and remembers the order in which keys
// were added. Rows held by a Table are shared between requests and must not
// be modified; use Clone or Project to derive new rows.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow creates an empty row with room for n keys.
func NewRow(n int) Row {
	return Row{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// RowOf builds a row from alternating key/value pairs. It is meant for tests
// and small literals.
func RowOf(pairs ...any) Row {
	r := NewRow(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("models: RowOf key %d is %T, want string", i/2, pairs[i]))
		}
		r.Set(key, ValueOf(pairs[i+1]))
	}
	return r
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position.
func (r *Row) Set(key string, value Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r Row) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value stored under key, or Null when the key is absent.
func (r Row) Value(key string) Value {
	return r.values[key]
}

// Has reports whether key is present.
func (r Row) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Len returns the number of keys.
func (r Row) Len() int { return len(r.keys) }

// Keys returns the keys in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := NewRow(len(r.keys))
	for _, k := range r.keys {
		out.Set(k, r.values[k])
	}
	return out
}

// Project returns a new row holding only the given keys, in the given order.
// Keys absent from r are stored as Null.
func (r Row) Project(keys []string) Row {
	out := NewRow(len(keys))
	for _, k := range keys {
		out.Set(k, r.values[k])
	}
	return out
}

// Map returns the row as a plain map of Go values.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k].Interface()
	}
	return out
}

// MarshalJSON encodes the row as a JSON object with keys in insertion order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("models: encode %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = NewRow(0)
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("models: row must be a JSON object, got %v", tok)
	}

	row := NewRow(8)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("models: unexpected token %v in row", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("models: field %q: %w", key, err)
		}
		row.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = row
	return nil
}
