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
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeYAML decodes a YAML text whose top-level element must be a mapping. An
// empty YAML text results in an empty mapping.
func decodeYAML(data []byte) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return NewMapping(), nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top-level element must be a mapping", root.Line)
	}
	return fromMappingNode(root)
}

func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		return fromMappingNode(n)
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, el := range n.Content {
			v, err := fromNode(el)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return Null{}, nil
		case "!!str":
			return String(n.Value), nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return Opaque{V: v}, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

// fromMappingNode returns the Mapping for the specified YAML mapping node,
// resolving merge keys “<<” on the fly. Explicit keys take precedence over
// merged keys, regardless of where the merge key is located.
func fromMappingNode(n *yaml.Node) (*Mapping, error) {
	m := NewMapping()
	var merges []*yaml.Node
	for idx := 0; idx+1 < len(n.Content); idx += 2 {
		keynode, valnode := n.Content[idx], n.Content[idx+1]
		if keynode.Kind == yaml.AliasNode {
			keynode = keynode.Alias
		}
		if keynode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", keynode.Line)
		}
		if keynode.ShortTag() == "!!merge" {
			merges = append(merges, valnode)
			continue
		}
		v, err := fromNode(valnode)
		if err != nil {
			return nil, err
		}
		m.Set(keynode.Value, v)
	}
	for _, merge := range merges {
		if merge.Kind == yaml.AliasNode {
			merge = merge.Alias
		}
		sources := []*yaml.Node{merge}
		if merge.Kind == yaml.SequenceNode {
			sources = merge.Content
		}
		for _, source := range sources {
			v, err := fromNode(source)
			if err != nil {
				return nil, err
			}
			merged, ok := v.(*Mapping)
			if !ok {
				return nil, fmt.Errorf("line %d: merge value must be a mapping", source.Line)
			}
			for _, entry := range merged.entries {
				if _, exists := m.Get(entry.Key); !exists {
					m.Set(entry.Key, entry.Value)
				}
			}
		}
	}
	return m, nil
}

// toNode returns the YAML node representing the specified value.
func toNode(v Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}, nil
	case *Mapping:
		if v == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, entry := range v.entries {
			valnode, err := toNode(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("cannot YAMLize %q, reason: %w", entry.Key, err)
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
				valnode)
		}
		return n, nil
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range v {
			elnode, err := toNode(el)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, elnode)
		}
		return n, nil
	case Opaque:
		if num, ok := v.V.(json.Number); ok {
			tag := "!!int"
			if strings.ContainsAny(string(num), ".eE") {
				tag = "!!float"
			}
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(num)}, nil
		}
		n := &yaml.Node{}
		if err := n.Encode(v.V); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// MarshalYAML renders the mapping as a YAML mapping with its keys in order.
func (m *Mapping) MarshalYAML() (any, error) {
	return toNode(m)
}
