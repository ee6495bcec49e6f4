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
	"errors"
	"reflect"

	"github.com/thediveo/envterpolate/document"
	"github.com/thediveo/envterpolate/placeholder"
	"gopkg.in/yaml.v3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

// m is shorthand for building ordered mappings in tests.
func m(kvs ...any) *document.Mapping {
	mapping := document.NewMapping()
	for idx := 0; idx+1 < len(kvs); idx += 2 {
		mapping.Set(kvs[idx].(string), kvs[idx+1].(document.Value))
	}
	return mapping
}

func valueOf(m *document.Mapping, key string) document.Value {
	v, _ := m.Get(key)
	return v
}

const fatboySlimTemplate = `{rightNow}, {funkSoul}
{checkIt}
{funkSoul} (repeat)
(1:50 in song) {rocka}, {rocka}
{rightNow}, {funkSoul}
{checkIt}
{funkSoul}`

const expectedFatboySlim = `right about now, the funk soul brother
check it out now
the funk soul brother (repeat)
(1:50 in song) rockafeller, rockafeller
right about now, the funk soul brother
check it out now
the funk soul brother`

var fatboySlimDict = map[string]string{
	"rightNow": "right about now",
	"funkSoul": "the funk soul brother",
	"checkIt":  "check it out now",
	"rocka":    "rockafeller",
}

var _ = Describe("interpolating", func() {

	It("appends to paths", func() {
		Expect(Path("").Append("foo")).To(Equal(Path(".foo")))
		Expect(Path("foo").Append("")).To(Equal(Path("foo.")))
		Expect(Path("foo").Append("bar").Append("baz")).To(Equal(Path("foo.bar.baz")))
	})

	Context("path matchers", func() {

		DescribeTable("glob path patterns",
			func(pattern string, path string, matches bool) {
				Expect(MustGlobPathMatcher(pattern)(path)).To(Equal(matches))
			},
			Entry(nil, "matches", "matches", true),
			Entry(nil, "matches", "matches.asdf", false),
			Entry(nil, "matches.*", "matches.asdf", true),
			Entry(nil, "matches.*", "matches.asdf.qwer", false),
			Entry(nil, "matches.**", "matches.asdf", true),
			Entry(nil, "matches.**", "matches.asdf.qwer", true),
			Entry(nil, "*.matches", "asdf.matches", true),
			Entry(nil, "**.matches", "asdf.qwer.matches", true),
			Entry(nil, "fails.match", "fails.qwer", false),
			Entry(nil, "fails.match.*", "fails.match", false),
			Entry(nil, "fails.match.**", "fails.match", false),
			Entry(nil, "*.fails.match", "fails.match", false),
			Entry(nil, "Matches", "matches", false),
			Entry(nil, "matches", "xmatchesx", false),
			Entry(nil, "**", "a.b.c", true),
			Entry(nil, "a.{b,c}.d", "a.c.d", true),
		)

		It("returns independent matchers for the same pattern", func() {
			m1 := Successful(GlobPathMatcher("a.*"))
			m2 := Successful(GlobPathMatcher("a.*"))
			Expect(m1("a.b")).To(BeTrue())
			Expect(m2("a.b")).To(BeTrue())
			Expect(m1("a.b.c")).To(BeFalse())
			Expect(m2("a.c")).To(BeTrue())
		})

		It("rejects invalid patterns", func() {
			Expect(GlobPathMatcher("[abc")).Error().To(
				MatchError(ContainSubstring(`invalid path pattern "[abc"`)))
			Expect(func() { _ = MustGlobPathMatcher("[abc") }).To(Panic())
		})

		It("matches everything", func() {
			Expect(MatchAll("")).To(BeTrue())
			Expect(MatchAll("foo.bar.baz")).To(BeTrue())
		})

		It("matches any of several matchers", func() {
			either := AnyOf(MustGlobPathMatcher("a.*"), MustGlobPathMatcher("b"))
			Expect(either("a.x")).To(BeTrue())
			Expect(either("b")).To(BeTrue())
			Expect(either("c")).To(BeFalse())
			Expect(AnyOf()("a")).To(BeFalse())
		})

	})

	Context("string leaves", func() {

		It("interpolates matching paths", func() {
			proc := LeafInterpolator(fatboySlimDict, nil, MustGlobPathMatcher("matches.**"))
			Expect(proc("matches.asdf", fatboySlimTemplate)).To(Equal(expectedFatboySlim))
		})

		It("leaves non-matching paths alone without resolving", func() {
			resolved := 0
			resolver := placeholder.ResolverFunc(func(template string, _ map[string]string) (string, error) {
				resolved++
				return "D'OH!", nil
			})
			proc := LeafInterpolator(fatboySlimDict, resolver, MustGlobPathMatcher("matches.**"))
			Expect(proc("fails.match", fatboySlimTemplate)).To(Equal(fatboySlimTemplate))
			Expect(resolved).To(BeZero())
			Expect(proc("matches.it", fatboySlimTemplate)).To(Equal("D'OH!"))
			Expect(resolved).To(Equal(1))
		})

		It("matches all paths by default", func() {
			proc := LeafInterpolator(fatboySlimDict, nil, nil)
			Expect(proc("", "{rocka}")).To(Equal("rockafeller"))
			Expect(proc("a.b.c.d", "{rocka}")).To(Equal("rockafeller"))
		})

		It("reports resolver errors with the path", func() {
			_, err := LeafInterpolator(nil, nil, nil)("foo.bar", "{nada}")
			Expect(err).To(MatchError("error in 'foo.bar': unresolved placeholder {nada}"))
			Expect(errors.Is(err, placeholder.ErrUnresolved)).To(BeTrue())
		})

	})

	Context("traversing", func() {

		It("visits all string leaves depth-first in key order", func() {
			var paths []Path
			var leaves []string
			doc := m(
				"level1key1", document.String("val1"),
				"level1key2", m(
					"level2key1", document.String("val2"),
					"level2key2", m(
						"level3key1", document.String("val3"),
					),
					"level2key3", document.String("val4"),
				),
				"level1key3", document.String("val5"),
			)
			result := Successful(Traverse(doc, func(path Path, leaf string) (string, error) {
				paths = append(paths, path)
				leaves = append(leaves, leaf)
				return leaf, nil
			}, ""))
			Expect(leaves).To(HaveExactElements("val1", "val2", "val3", "val4", "val5"))
			Expect(paths).To(HaveExactElements(
				Path("level1key1"),
				Path("level1key2.level2key1"),
				Path("level1key2.level2key2.level3key1"),
				Path("level1key2.level2key3"),
				Path("level1key3")))
			Expect(result).To(Equal(doc))
			Expect(result).NotTo(BeIdenticalTo(doc))
		})

		It("starts from a parent path", func() {
			var paths []Path
			_ = Successful(Traverse(m("b", document.String("")), func(path Path, leaf string) (string, error) {
				paths = append(paths, path)
				return leaf, nil
			}, "a"))
			Expect(paths).To(HaveExactElements(Path("a.b")))
		})

		It("keeps empty keys in paths", func() {
			var paths []Path
			_ = Successful(Traverse(m(
				"", m("x", document.String("v")),
				"a", m("", document.String("w")),
			), func(path Path, leaf string) (string, error) {
				paths = append(paths, path)
				return leaf, nil
			}, ""))
			Expect(paths).To(HaveExactElements(Path(".x"), Path("a.")))

			result := Successful(DocumentWith(m(
				"", m("x", document.String("{rocka}")),
				"x", document.String("{rocka}"),
			), fatboySlimDict, WithMatcher(MustGlobPathMatcher("x"))))
			Expect(result.Plain()).To(Equal(map[string]any{
				"":  map[string]any{"x": "{rocka}"},
				"x": "rockafeller",
			}))
		})

		It("keeps all keys in order", func() {
			doc := m(
				"z", document.String("{rocka}"),
				"n", document.Null{},
				"y", m("x", document.Opaque{V: 42}, "w", document.String("w")),
				"s", document.Sequence{document.String("{rocka}")},
			)
			result := Successful(Document(doc, fatboySlimDict))
			Expect(result.Keys()).To(HaveExactElements("z", "n", "y", "s"))
			Expect(valueOf(result, "y").(*document.Mapping).Keys()).To(HaveExactElements("x", "w"))
		})

		DescribeTable("passes through non-string leaves regardless of matcher and dictionary",
			func(v document.Value, matcher PathMatcher) {
				doc := m("leaf", v)
				result := Successful(DocumentWith(doc, fatboySlimDict, WithMatcher(matcher)))
				Expect(valueOf(result, "leaf")).To(Equal(v))
			},
			Entry("null, all", document.Null{}, PathMatcher(MatchAll)),
			Entry("null, none", document.Null{}, AnyOf()),
			Entry("number", document.Opaque{V: 42}, PathMatcher(MatchAll)),
			Entry("boolean", document.Opaque{V: true}, PathMatcher(MatchAll)),
			Entry("sequence", document.Sequence{
				document.String("{rocka}"),
				m("nested", document.String("{rocka}")),
			}, PathMatcher(MatchAll)),
		)

		It("passes through opaque functions", func() {
			fn := func() string { return "" }
			result := Successful(Document(m("isAFunc", document.Opaque{V: fn}), nil))
			opaque := valueOf(result, "isAFunc").(document.Opaque)
			Expect(reflect.ValueOf(opaque.V).Pointer()).To(Equal(reflect.ValueOf(fn).Pointer()))
		})

		It("returns nil for a nil mapping", func() {
			Expect(Traverse(nil, nil, "")).To(BeNil())
		})

		It("aborts at the first error without a partial result", func() {
			visited := 0
			result, err := Traverse(m(
				"a", document.String("1"),
				"b", m("c", document.String("2")),
				"d", document.String("3"),
			), func(path Path, leaf string) (string, error) {
				visited++
				if path == "b.c" {
					return "", errors.New("D'OH!")
				}
				return leaf, nil
			}, "")
			Expect(err).To(MatchError("D'OH!"))
			Expect(result).To(BeNil())
			Expect(visited).To(Equal(2))
		})

	})

	Context("documents", func() {

		It("interpolates string leaves", func() {
			result := Successful(Document(m(
				"jamesBond", document.String("{bond} James {bond}"),
				"othello", document.String("{othello}, and then {othello}."),
				"richardIII", document.String("{richardIII} {richardIII} my kingdom for {richardIII}"),
				"isNotUsed", document.Null{},
			), map[string]string{
				"bond":       "Bond.",
				"othello":    "put out the light",
				"richardIII": "a horse!",
			}))
			Expect(result).To(Equal(m(
				"jamesBond", document.String("Bond. James Bond."),
				"othello", document.String("put out the light, and then put out the light."),
				"richardIII", document.String("a horse! a horse! my kingdom for a horse!"),
				"isNotUsed", document.Null{},
			)))
		})

		It("interpolates at all depths by default", func() {
			result := Successful(Document(m(
				"a", m("b", m("c", m("d", document.String("{rocka}")))),
				"e", document.String("{rocka}"),
			), fatboySlimDict))
			Expect(result.Plain()).To(Equal(map[string]any{
				"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": "rockafeller"}}},
				"e": "rockafeller",
			}))
		})

		It("interpolates only matching leaves", func() {
			result := Successful(DocumentWith(m(
				"matches", m(
					"asdf", document.String("{rocka}"),
					"qwer", m("deep", document.String("{rocka}")),
				),
				"fails", m("match", document.String("{rocka}")),
			), fatboySlimDict, WithMatcher(MustGlobPathMatcher("matches.**"))))
			Expect(result.Plain()).To(Equal(map[string]any{
				"matches": map[string]any{
					"asdf": "rockafeller",
					"qwer": map[string]any{"deep": "rockafeller"},
				},
				"fails": map[string]any{"match": "{rocka}"},
			}))
		})

		It("does not check unmatched leaves for unresolved placeholders", func() {
			Expect(DocumentWith(m(
				"a", document.String("{nada}"),
			), nil, WithMatcher(AnyOf()))).To(Equal(m("a", document.String("{nada}"))))
		})

		It("uses the specified resolver", func() {
			Expect(DocumentWith(m(
				"a", document.String("{nada}"),
			), nil, WithResolver(placeholder.Braces{Missing: placeholder.MissingEmpty}))).To(
				Equal(m("a", document.String(""))))
		})

		It("interpolates YAML", func() {
			doc := Successful(document.Parse([]byte(`
foo:
  fool: 42
  bar: baz=***{FOO}***
  seq:
    - "{FOO}"
`), document.YAML))
			result := Successful(Document(doc, map[string]string{"FOO": "---"}))
			var buff yamlBuffer
			Expect(document.Write(&buff, result, document.YAML, "")).To(Succeed())
			var plain map[string]any
			Expect(yaml.Unmarshal(buff, &plain)).To(Succeed())
			Expect(plain).To(HaveKeyWithValue("foo", And(
				HaveKeyWithValue("fool", 42),
				HaveKeyWithValue("bar", "baz=***---***"),
				HaveKeyWithValue("seq", ConsistOf("{FOO}")))))
		})

		It("returns interpolation errors", func() {
			doc := Successful(document.Parse([]byte(`
foo:
  fool: 42
  bar: baz={FOO
`), document.YAML))
			Expect(Document(doc, map[string]string{"FOO": "---"})).Error().To(
				MatchError(HavePrefix("error in 'foo.bar': malformed template")))
		})

	})

})

// yamlBuffer collects written YAML text.
type yamlBuffer []byte

func (b *yamlBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
