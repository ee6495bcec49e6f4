/*
Package document models hierarchical, JSON-like documents as ordered mappings
and reads and writes them as JSON (with optional comments and trailing
commas) or YAML.

A document always has a [*Mapping] at its top level. The values inside a
mapping form a closed set of types:

  - [Null] for explicit nulls,
  - [String] for string leaves,
  - [*Mapping] for nested mappings,
  - [Sequence] for ordered lists,
  - [Opaque] for anything else, such as numbers and booleans.

Mappings keep the order of their keys as found in the document text, so
writing a document back produces the keys in their original order.
*/
package document
