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

package placeholder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// ErrUnresolved is wrapped by errors about placeholders without a dictionary
// entry.
var ErrUnresolved = errors.New("unresolved placeholder")

// Resolver replaces the placeholders in a template string with the values
// from the specified dictionary.
type Resolver interface {
	Resolve(template string, dict map[string]string) (string, error)
}

// ResolverFunc adapts an ordinary function to a Resolver.
type ResolverFunc func(template string, dict map[string]string) (string, error)

// Resolve calls f(template, dict).
func (f ResolverFunc) Resolve(template string, dict map[string]string) (string, error) {
	return f(template, dict)
}

// MissingPolicy tells a Resolver what to do about placeholders that have no
// entry in the dictionary.
type MissingPolicy int

const (
	MissingError MissingPolicy = iota // fail with ErrUnresolved
	MissingKeep                       // leave the placeholder as is
	MissingEmpty                      // replace with the empty string
)

var missingPolicyNames = []string{"error", "keep", "empty"}

func (p MissingPolicy) String() string {
	if p < 0 || int(p) >= len(missingPolicyNames) {
		return fmt.Sprintf("MissingPolicy(%d)", int(p))
	}
	return missingPolicyNames[p]
}

// ParseMissingPolicy returns the MissingPolicy for the specified name, one of
// “error”, “keep”, or “empty”.
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	for idx, policyName := range missingPolicyNames {
		if policyName == name {
			return MissingPolicy(idx), nil
		}
	}
	return 0, fmt.Errorf("invalid missing placeholder policy %q, must be one of: %s",
		name, strings.Join(missingPolicyNames, ", "))
}

// Braces resolves “{name}” placeholders. Names are used verbatim, including
// any whitespace between the braces.
type Braces struct {
	Missing MissingPolicy
}

// Resolve returns the template with all placeholders replaced by their
// dictionary values. Templates without any opening brace are returned
// unchanged. An opening brace without a matching closing brace renders the
// template malformed, except when keeping missing placeholders: then the
// unbalanced remainder of the template is kept as is.
func (b Braces) Resolve(template string, dict map[string]string) (string, error) {
	if !strings.Contains(template, "{") {
		return template, nil
	}
	t, err := fasttemplate.NewTemplate(template, "{", "}")
	if err != nil {
		if b.Missing != MissingKeep {
			return "", fmt.Errorf("malformed template, reason: %w", err)
		}
		// Keep the unbalanced tail literally and resolve only what comes
		// before it.
		tail := strings.LastIndex(template, "}") + 1
		tail += strings.Index(template[tail:], "{")
		head, err := b.Resolve(template[:tail], dict)
		if err != nil {
			return "", err
		}
		return head + template[tail:], nil
	}
	return t.ExecuteFuncStringWithErr(func(w io.Writer, name string) (int, error) {
		if value, ok := dict[name]; ok {
			return io.WriteString(w, value)
		}
		switch b.Missing {
		case MissingKeep:
			return io.WriteString(w, "{"+name+"}")
		case MissingEmpty:
			return 0, nil
		}
		return 0, fmt.Errorf("%w {%s}", ErrUnresolved, name)
	})
}
