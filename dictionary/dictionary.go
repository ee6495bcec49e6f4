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

/*
Package dictionary reads substitution dictionaries from env files, that is,
files with “KEY=value” lines as known from “.env” files.

	# comment
	ROSES=red
	export VIOLETS="blue"
	SUGAR='sweet'

When a key is defined multiple times, the last definition wins.
*/
package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Dictionary maps placeholder names to their replacement values.
type Dictionary map[string]string

// Parse the env file definitions read from r into a Dictionary.
func Parse(r io.Reader) (Dictionary, error) {
	vars, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("malformed env file, reason: %w", err)
	}
	return Dictionary(vars), nil
}

// Load the env file at the specified path into a Dictionary. Read errors wrap
// the underlying [*fs.PathError], which includes the path.
func Load(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file, reason: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// LoadFS works like [Load], but reads the env file from the specified file
// system.
func LoadFS(fsys fs.FS, name string) (Dictionary, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file, reason: %w", err)
	}
	return Parse(bytes.NewReader(data))
}
