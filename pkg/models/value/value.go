// Package value holds the loosely typed tree that parsed reports become once
// they are read back from storage: strings, numbers, booleans, null, lists and
// insertion-ordered maps.
package value

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is one node of the tree.
type Value interface {
	json.Marshaler
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	String string
	Number float64
	List   []Value
)

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (String) isValue() {}
func (Number) isValue() {}
func (List) isValue()   {}
func (*Map) isValue()   {}

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (b Bool) MarshalJSON() ([]byte, error) { return json.Marshal(bool(b)) }

func (s String) MarshalJSON() ([]byte, error) { return json.Marshal(string(s)) }

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// String renders integers without a fractional part.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Value(l))
}

// Map is an insertion-ordered string-keyed map of values.
type Map struct {
	keys   []string
	values map[string]Value
}

func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores value under key. A key that is already present keeps its
// position and takes the new value.
func (m *Map) Set(key string, value Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Len() int {
	return len(m.keys)
}

func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Each calls fn for every entry in insertion order.
func (m *Map) Each(fn func(key string, value Value)) {
	for _, key := range m.keys {
		fn(key, m.values[key])
	}
}

// GetMap returns the child map stored under key, if there is one.
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	child, ok := v.(*Map)
	return child, ok
}

// GetString returns the string stored under key, if there is one.
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := m.values[key].MarshalJSON()
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
