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

package envterpolate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/docker/go-units"
	"github.com/thediveo/envterpolate/dictionary"
	"github.com/thediveo/envterpolate/document"
	"github.com/thediveo/envterpolate/interpolate"
	"github.com/thediveo/envterpolate/placeholder"
	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// Interpolator interpolates document files using dictionaries from env files.
type Interpolator struct {
	fsys     fs.FS
	matcher  interpolate.PathMatcher
	resolver placeholder.Resolver
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithFS reads documents and env files from the specified file system instead
// of the operating system's file system. Paths then need to be valid fs.FS
// paths.
func WithFS(fsys fs.FS) Option {
	return func(i *Interpolator) { i.fsys = fsys }
}

// WithMatcher restricts interpolation to string leaves with accepted paths.
func WithMatcher(m interpolate.PathMatcher) Option {
	return func(i *Interpolator) { i.matcher = m }
}

// WithResolver sets the placeholder resolver to use.
func WithResolver(r placeholder.Resolver) Option {
	return func(i *Interpolator) { i.resolver = r }
}

// New returns a new Interpolator, configured using the specified options. By
// default, an Interpolator interpolates all string leaves, failing on
// placeholders missing from the dictionary.
func New(opts ...Option) *Interpolator {
	i := &Interpolator{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// InterpolateFile loads the document at docPath and the env file at envPath
// concurrently, and then returns the interpolated document. If either loading
// fails, the error of the first failure is returned. Missing files result in
// errors that include the offending path and for which errors.Is(err,
// fs.ErrNotExist) holds; malformed documents result in errors wrapping
// [document.ErrSyntax].
func (i *Interpolator) InterpolateFile(ctx context.Context, docPath, envPath string) (*document.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info(fmt.Sprintf("📄  loading document %q and 🔑  env file %q", docPath, envPath))
	var doc *document.Mapping
	var dict dictionary.Dictionary
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		doc, err = i.loadDocument(docPath)
		return
	})
	g.Go(func() (err error) {
		dict, err = i.loadDictionary(envPath)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug(fmt.Sprintf("   🔑  %d variables", len(dict)))
	return i.interpolate(docPath, doc, dict)
}

func (i *Interpolator) interpolate(name string, doc *document.Mapping, dict dictionary.Dictionary) (*document.Mapping, error) {
	log.Info(fmt.Sprintf("🪄  interpolating %q", name))
	result, err := interpolate.DocumentWith(doc, dict,
		interpolate.WithMatcher(i.matcher),
		interpolate.WithResolver(i.resolver))
	if err != nil {
		return nil, fmt.Errorf("cannot interpolate %s, reason: %w", name, err)
	}
	return result, nil
}

func (i *Interpolator) loadDocument(path string) (*document.Mapping, error) {
	if i.fsys != nil {
		return document.LoadFS(i.fsys, path)
	}
	return document.Load(path)
}

func (i *Interpolator) loadDictionary(path string) (dictionary.Dictionary, error) {
	if i.fsys != nil {
		return dictionary.LoadFS(i.fsys, path)
	}
	return dictionary.Load(path)
}

// Save writes the specified document in the given format to w. See
// [document.Write] for the meaning of indent.
func Save(w io.Writer, doc *document.Mapping, format document.Format, indent string) error {
	var buff bytes.Buffer
	if err := document.Write(&buff, doc, format, indent); err != nil {
		return err
	}
	n, err := w.Write(buff.Bytes())
	if err != nil {
		return fmt.Errorf("cannot write document, reason: %w", err)
	}
	log.Debug(fmt.Sprintf("   ✍  wrote %s of %s", units.HumanSize(float64(n)), format))
	return nil
}
