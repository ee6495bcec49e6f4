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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSyntax is wrapped by all errors about malformed document texts.
var ErrSyntax = errors.New("SyntaxError")

// Format of a document text.
type Format int

const (
	JSON Format = iota // JSON, with optional comments and trailing commas
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath returns the document format based on the extension of the
// specified path: “.yaml” and “.yml” are YAML, everything else is considered
// to be JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Parse the specified document text in the given format, returning the
// top-level mapping. Malformed texts return an error wrapping [ErrSyntax].
func Parse(data []byte, format Format) (*Mapping, error) {
	return parse(data, format, "")
}

func parse(data []byte, format Format, name string) (*Mapping, error) {
	var m *Mapping
	var err error
	switch format {
	case JSON:
		m, err = decodeJSON(data)
	case YAML:
		m, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported document format %s", format)
	}
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("%w: malformed %s document %s, reason: %w",
				ErrSyntax, format, name, err)
		}
		return nil, fmt.Errorf("%w: malformed %s document, reason: %w",
			ErrSyntax, format, err)
	}
	return m, nil
}

// Load reads and parses the document file at the specified path, with the
// format derived from the path's extension. If the file cannot be read, the
// returned error wraps the underlying [*fs.PathError], so missing files can be
// detected using errors.Is(err, fs.ErrNotExist).
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read document, reason: %w", err)
	}
	return parse(data, FormatFromPath(path), path)
}

// LoadFS works like [Load], but reads the document from the specified file
// system.
func LoadFS(fsys fs.FS, name string) (*Mapping, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("cannot read document, reason: %w", err)
	}
	return parse(data, FormatFromPath(name), name)
}

// Write the mapping in the specified format to w. For JSON, a non-empty
// indent switches to indented output, otherwise compact JSON is written. For
// YAML, the indentation is the length of indent, defaulting to 2.
func Write(w io.Writer, m *Mapping, format Format, indent string) error {
	switch format {
	case JSON:
		var buff bytes.Buffer
		enc := json.NewEncoder(&buff)
		enc.SetEscapeHTML(false)
		if indent != "" {
			enc.SetIndent("", indent)
		}
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("cannot JSONize document, reason: %w", err)
		}
		if _, err := w.Write(buff.Bytes()); err != nil {
			return fmt.Errorf("cannot write document, reason: %w", err)
		}
		return nil
	case YAML:
		node, err := toNode(m)
		if err != nil {
			return fmt.Errorf("cannot YAMLize document, reason: %w", err)
		}
		enc := yaml.NewEncoder(w)
		spaces := len(indent)
		if spaces == 0 {
			spaces = 2
		}
		enc.SetIndent(spaces)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("cannot write document, reason: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("cannot write document, reason: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported document format %s", format)
}
