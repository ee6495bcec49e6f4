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

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// decodeJSON decodes a JSON (or JSONC) text whose top-level element must be an
// object into a Mapping, keeping the key order of all objects.
func decodeJSON(data []byte) (*Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("unexpected end of JSON input")
		}
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top-level element must be an object, not %v", tok)
	}
	m, err := decodeJSONObject(dec)
	if err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level object", tok)
	}
	return m, nil
}

// decodeJSONObject decodes the members of an object whose opening brace has
// already been consumed, up to and including the closing brace.
func decodeJSONObject(dec *json.Decoder) (*Mapping, error) {
	m := NewMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, not %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return m, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("unexpected end of JSON input")
		}
		return nil, err
	}
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			seq := Sequence{}
			for dec.More() {
				el, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, el)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected %v", tok)
	case nil:
		return Null{}, nil
	case string:
		return String(tok), nil
	default: // json.Number, bool
		return Opaque{V: tok}, nil
	}
}

// MarshalJSON renders the mapping as a JSON object with its keys in order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buff bytes.Buffer
	buff.WriteByte('{')
	for idx, entry := range m.entries {
		if idx > 0 {
			buff.WriteByte(',')
		}
		key, err := marshalJSON(entry.Key)
		if err != nil {
			return nil, err
		}
		buff.Write(key)
		buff.WriteByte(':')
		value, err := marshalJSON(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("cannot JSONize %q, reason: %w", entry.Key, err)
		}
		buff.Write(value)
	}
	buff.WriteByte('}')
	return buff.Bytes(), nil
}

// MarshalJSON always renders null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON renders the wrapped value.
func (o Opaque) MarshalJSON() ([]byte, error) {
	return marshalJSON(o.V)
}

// marshalJSON works like json.Marshal, but leaves “&”, “<”, and “>” in
// strings alone, so that shell commands and the like stay readable.
func marshalJSON(v any) ([]byte, error) {
	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buff.Bytes(), []byte{'\n'}), nil
}
