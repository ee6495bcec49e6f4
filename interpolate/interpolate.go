// Copyright 2025 by Harald Albrecht
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

package interpolate

import (
	"fmt"

	"github.com/thediveo/envterpolate/document"
	"github.com/thediveo/envterpolate/placeholder"
)

// LeafProcessor returns the (potentially) processed string leaf found at the
// specified path, or an error.
type LeafProcessor func(path Path, leaf string) (string, error)

// LeafInterpolator returns a LeafProcessor that resolves the placeholders of
// those string leaves whose paths are accepted by the specified matcher, using
// the passed dictionary. All other string leaves are returned unchanged. A nil
// matcher accepts all paths and a nil resolver defaults to resolving
// “{name}” placeholders, failing on unresolved placeholders.
func LeafInterpolator(
	dict map[string]string,
	resolver placeholder.Resolver,
	matches PathMatcher,
) LeafProcessor {
	if resolver == nil {
		resolver = placeholder.Braces{}
	}
	if matches == nil {
		matches = MatchAll
	}
	return func(path Path, leaf string) (string, error) {
		if !matches(string(path)) {
			return leaf, nil
		}
		interpolated, err := resolver.Resolve(leaf, dict)
		if err != nil {
			return "", fmt.Errorf("error in '%s': %w", string(path), err)
		}
		return interpolated, nil
	}
}

// Traverse the specified mapping depth-first and in key order, returning a new
// mapping with all string leaves replaced by what the leaf processor returns
// for them. Nested mappings are traversed recursively, while nulls, sequences
// and opaque values are taken over unchanged. The path of a leaf consists of
// the parent path plus the leaf's key; an empty parent path denotes the
// top-level mapping. Traverse stops at the first error, returning only the
// error.
func Traverse(m *document.Mapping, proc LeafProcessor, parent Path) (*document.Mapping, error) {
	return traverse(m, proc, parent, parent == "")
}

// traverse tells the top-level mapping from nested mappings by atRoot instead
// of by an empty parent path, as nested mappings may well have empty keys.
func traverse(m *document.Mapping, proc LeafProcessor, parent Path, atRoot bool) (*document.Mapping, error) {
	if m == nil {
		return nil, nil
	}
	result := document.NewMapping()
	for _, entry := range m.Entries() {
		path := Path(entry.Key)
		if !atRoot {
			path = parent.Append(entry.Key)
		}
		var value document.Value
		switch v := entry.Value.(type) {
		case document.Null:
			value = v
		case document.String:
			leaf, err := proc(path, string(v))
			if err != nil {
				return nil, err
			}
			value = document.String(leaf)
		case *document.Mapping:
			nested, err := traverse(v, proc, path, false)
			if err != nil {
				return nil, err
			}
			value = nested
		default: // document.Sequence, document.Opaque
			value = v
		}
		result.Set(entry.Key, value)
	}
	return result, nil
}

// Document interpolates all string leaves in the specified document using the
// passed dictionary. It returns a new document with the interpolated results.
func Document(m *document.Mapping, dict map[string]string) (*document.Mapping, error) {
	return Traverse(m, LeafInterpolator(dict, nil, MatchAll), "")
}

// Option configures [DocumentWith].
type Option func(*options)

type options struct {
	matcher  PathMatcher
	resolver placeholder.Resolver
}

// WithMatcher restricts interpolation to the string leaves whose paths are
// accepted by the specified matcher.
func WithMatcher(m PathMatcher) Option {
	return func(o *options) { o.matcher = m }
}

// WithResolver sets the resolver for placeholders.
func WithResolver(r placeholder.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// DocumentWith works like [Document], but with options controlling which
// string leaves get interpolated and how placeholders are resolved.
func DocumentWith(m *document.Mapping, dict map[string]string, opts ...Option) (*document.Mapping, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return Traverse(m, LeafInterpolator(dict, o.resolver, o.matcher), "")
}

// Path represents the dotted path to a value inside a document.
type Path string

// Append the name of a mapping key to the path, returning the new Path. Empty
// paths and names are taken as empty keys, so Path("").Append("x") is “.x”.
func (p Path) Append(name string) Path {
	return Path(string(p) + "." + name)
}
