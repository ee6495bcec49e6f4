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

package interpolate

import (
	"fmt"

	"github.com/gobwas/glob"
)

// PathMatcher decides whether the string leaf at the specified dotted path is
// eligible for interpolation. A PathMatcher must not keep any state between
// calls.
type PathMatcher func(path string) bool

// MatchAll accepts every path.
func MatchAll(string) bool { return true }

// GlobPathMatcher returns a PathMatcher for the specified glob pattern, where
// “.” separates path segments. A “*” matches within a single segment only,
// while “**” matches across any number of segments. Patterns always need to
// match the whole path and are case-sensitive. For instance, “services.*”
// matches “services.web” but not “services.web.image”, while “services.**”
// matches both.
func GlobPathMatcher(pattern string) (PathMatcher, error) {
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return nil, fmt.Errorf("invalid path pattern %q, reason: %w", pattern, err)
	}
	return g.Match, nil
}

// MustGlobPathMatcher is like [GlobPathMatcher] but panics if the pattern is
// invalid.
func MustGlobPathMatcher(pattern string) PathMatcher {
	m, err := GlobPathMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// AnyOf returns a PathMatcher accepting a path if at least one of the
// specified matchers accepts it. Without any matchers, no path is accepted.
func AnyOf(matchers ...PathMatcher) PathMatcher {
	return func(path string) bool {
		for _, matches := range matchers {
			if matches(path) {
				return true
			}
		}
		return false
	}
}
