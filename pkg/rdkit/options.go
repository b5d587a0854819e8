package rdkit

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Details is the option document sent with a native call: a flat,
// insertion-ordered map of bool, int or string values encoded as compact
// JSON.  Details values are immutable; every With* returns a copy.  Keys
// that were never set are omitted so native defaults apply.
type Details struct {
	entries []detailEntry
}

type detailEntry struct {
	key   string
	value interface{}
}

// NewDetails returns an empty document, encoded as "{}".
func NewDetails() Details { return Details{} }

func (d Details) WithBool(key string, v bool) Details     { return d.with(key, v) }
func (d Details) WithInt(key string, v int) Details       { return d.with(key, v) }
func (d Details) WithString(key string, v string) Details { return d.with(key, v) }

// With sets key to v.  v must be a bool, an integer type or a string;
// anything else panics.
func (d Details) With(key string, v interface{}) Details {
	switch x := v.(type) {
	case bool, string, int:
		return d.with(key, x)
	case int8:
		return d.with(key, int(x))
	case int16:
		return d.with(key, int(x))
	case int32:
		return d.with(key, int(x))
	case int64:
		return d.with(key, int(x))
	case uint8:
		return d.with(key, int(x))
	case uint16:
		return d.with(key, int(x))
	case uint32:
		return d.with(key, int(x))
	default:
		panic(fmt.Sprintf("rdkit: unsupported option value %T for %q", v, key))
	}
}

func (d Details) with(key string, v interface{}) Details {
	out := make([]detailEntry, len(d.entries), len(d.entries)+1)
	copy(out, d.entries)
	for i := range out {
		if out[i].key == key {
			out[i].value = v
			return Details{entries: out}
		}
	}
	return Details{entries: append(out, detailEntry{key: key, value: v})}
}

// Get returns the value stored under key.
func (d Details) Get(key string) (interface{}, bool) {
	for _, e := range d.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// Len returns the number of keys.
func (d Details) Len() int { return len(d.entries) }

// Merge returns d with every key of other applied in other's order.
func (d Details) Merge(other Details) Details {
	out := d
	for _, e := range other.entries {
		out = out.with(e.key, e.value)
	}
	return out
}

// Encode renders the document.  Failure here is a programming error and
// panics.
func (d Details) Encode() string {
	raw, err := d.MarshalJSON()
	if err != nil {
		panic(fmt.Sprintf("rdkit: encode option document: %v", err))
	}
	return string(raw)
}

func (d Details) String() string { return d.Encode() }

// MarshalJSON implements json.Marshaler, preserving insertion order.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

//Personal.AI order the ending
