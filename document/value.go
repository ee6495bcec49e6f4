// Copyright 2026 by Harald Albrecht
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package document

// Value is any value that can appear inside a document. The set of Value
// implementations is closed: [Null], [String], [*Mapping], [Sequence], and
// [Opaque]. Code working on documents is expected to dispatch on these types
// using a type switch.
type Value interface {
	value() // seals the set of Value implementations to this package.
}

// Null is the explicit “null” value; it is never a mapping.
type Null struct{}

// String is a string leaf.
type String string

// Sequence is an ordered list of values. When interpolating, sequences are
// passed through as-is; they are neither traversed nor matched.
type Sequence []Value

// Opaque wraps any other value, such as numbers, booleans, or whatever else a
// caller puts into a document. Opaque values are always passed through as-is.
type Opaque struct {
	V any
}

func (Null) value()     {}
func (String) value()   {}
func (*Mapping) value() {}
func (Sequence) value() {}
func (Opaque) value()   {}

// KeyValue is a single key-value pair of a Mapping.
type KeyValue struct {
	Key   string
	Value Value
}

// Mapping is an ordered mapping from string keys to values, keeping the
// original insertion order of its keys.
type Mapping struct {
	entries []KeyValue
	index   map[string]int
}

// NewMapping returns a new mapping with the specified entries, in the order
// given. Duplicate keys are handled as by [Mapping.Set].
func NewMapping(entries ...KeyValue) *Mapping {
	m := &Mapping{}
	for _, entry := range entries {
		m.Set(entry.Key, entry.Value)
	}
	return m
}

// Set the value for the specified key. If the key is already present, its
// value gets replaced while keeping the key's original position; otherwise,
// the key is appended.
func (m *Mapping) Set(key string, v Value) {
	if m.index == nil {
		m.index = map[string]int{}
	}
	if idx, ok := m.index[key]; ok {
		m.entries[idx].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, KeyValue{Key: key, Value: v})
}

// Get returns the value for the specified key and true, or nil and false if
// there is no such key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	idx, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[idx].Value, true
}

// Len returns the number of keys in this mapping.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		keys = append(keys, entry.Key)
	}
	return keys
}

// Entries returns a copy of the entries in order.
func (m *Mapping) Entries() []KeyValue {
	if m == nil {
		return nil
	}
	return append([]KeyValue(nil), m.entries...)
}

// Plain returns the mapping as a plain (recursive) map[string]any, with
// sequences as []any, strings as string, nulls as nil, and opaque values
// unwrapped. Key order gets lost, obviously.
func (m *Mapping) Plain() map[string]any {
	if m == nil {
		return nil
	}
	plain := make(map[string]any, len(m.entries))
	for _, entry := range m.entries {
		plain[entry.Key] = plainValue(entry.Value)
	}
	return plain
}

func plainValue(v Value) any {
	switch v := v.(type) {
	case Null:
		return nil
	case String:
		return string(v)
	case *Mapping:
		return v.Plain()
	case Sequence:
		elements := make([]any, 0, len(v))
		for _, el := range v {
			elements = append(elements, plainValue(el))
		}
		return elements
	case Opaque:
		return v.V
	}
	return nil
}
