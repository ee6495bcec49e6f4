/*
Package interpolate resolves placeholders in the string leaves of documents,
optionally restricted to only those leaves whose dotted paths match glob
patterns.

A document is traversed depth-first, in the order of its keys. The dotted path
of a string leaf is formed by joining the keys from the top-level mapping down
to and including the leaf's own key using “.”. For instance, in

	{"services": {"web": {"image": "{REGISTRY}/web:{TAG}"}}}

the string leaf "{REGISTRY}/web:{TAG}" has the path “services.web.image”.

# Path Patterns

[GlobPathMatcher] compiles glob patterns where “.” separates path segments:

  - “*” matches any sequence of characters within a single segment,
  - “**” matches any sequence of characters across segments,
  - “?”, “[...]”, and “{a,b}” work as usual.

Patterns are anchored, so “services” matches only the leaf “services”, but not
“services.web”.

# Leaf Types

Only string leaves get interpolated. Nested mappings are traversed. Nulls,
sequences, and all other values are left alone; in particular, sequences are
not traversed.
*/
package interpolate
