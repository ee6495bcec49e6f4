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
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/thediveo/envterpolate/document"
	"golang.org/x/exp/slices"

	log "github.com/sirupsen/logrus"
)

// Result is an interpolated document, together with its slash-separated path
// relative to the root directory it was found in.
type Result struct {
	Path     string
	Document *document.Mapping
}

// InterpolateFiles interpolates all document files below the root directory
// that match the specified doublestar pattern, such as “**/*.json”, using the
// env file at envPath. The env file is loaded only once. The results are
// sorted by their paths. InterpolateFiles stops at the first failure.
func (i *Interpolator) InterpolateFiles(ctx context.Context, root, pattern, envPath string) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rootfs, err := i.sub(root)
	if err != nil {
		return nil, err
	}
	names, err := doublestar.Glob(rootfs, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("cannot search for documents matching %q, reason: %w", pattern, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no documents matching %q in %s", pattern, root)
	}
	slices.Sort(names)
	log.Info(fmt.Sprintf("🗂  %d documents matching %q in %s", len(names), pattern, root))

	dict, err := i.loadDictionary(envPath)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug(fmt.Sprintf("   📄  loading document %q", name))
		doc, err := document.LoadFS(rootfs, name)
		if err != nil {
			return nil, err
		}
		result, err := i.interpolate(name, doc, dict)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Path: name, Document: result})
	}
	return results, nil
}

// sub returns the file system rooted at the specified directory.
func (i *Interpolator) sub(root string) (fs.FS, error) {
	if i.fsys == nil {
		return os.DirFS(root), nil
	}
	rootfs, err := fs.Sub(i.fsys, root)
	if err != nil {
		return nil, fmt.Errorf("invalid root directory %q, reason: %w", root, err)
	}
	return rootfs, nil
}
