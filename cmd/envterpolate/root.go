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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/envterpolate"
	"github.com/thediveo/envterpolate/document"
	"github.com/thediveo/envterpolate/interpolate"
	"github.com/thediveo/envterpolate/placeholder"
	"golang.org/x/exp/slices"
)

const (
	envFlag     = "env"
	onlyFlag    = "only"
	missingFlag = "missing"
	outFlag     = "out"
	indentFlag  = "indent"
	globFlag    = "glob"
	debugFlag   = "debug"
)

// envPrefix is the prefix of environment variables overriding flag defaults,
// such as ENVTERPOLATE_ENV for --env.
const envPrefix = "ENVTERPOLATE"

func buildInfo(info *debug.BuildInfo, key string) string {
	idx := slices.IndexFunc(info.Settings,
		func(setting debug.BuildSetting) bool {
			return setting.Key == key
		})
	if idx < 0 {
		return ""
	}
	return info.Settings[idx].Value
}

// versionFromBuildInfo returns the (abbreviated) VCS commit or module version
// from the build info, or "" if neither is known.
func versionFromBuildInfo(info *debug.BuildInfo) string {
	if commit := buildInfo(info, "vcs.revision"); commit != "" {
		modified := ""
		if buildInfo(info, "vcs.modified") == "true" {
			modified = " (modified)"
		}
		return fmt.Sprintf("commit %s%s", commit[:min(len(commit), 8)], modified)
	}
	return info.Main.Version
}

func newRootCmd() (rootCmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd = &cobra.Command{
		Use:     "envterpolate [flags] document|directory",
		Short:   "envterpolate interpolates JSON and YAML string values with variables from env files",
		Version: "(devel)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if v.GetBool(debugFlag) {
				log.SetLevel(log.DebugLevel)
			}
			log.Debug(fmt.Sprintf("🗩  envterpolate %s", rootCmd.Version))

			opts, err := interpolatorOptions(v)
			if err != nil {
				return err
			}
			interpolator := envterpolate.New(opts...)

			envPath := v.GetString(envFlag)
			out := v.GetString(outFlag)
			indent := strings.Repeat(" ", v.GetInt(indentFlag))
			if pattern := v.GetString(globFlag); pattern != "" {
				if out == "" {
					return errors.New("--out directory is mandatory when using --glob")
				}
				results, err := interpolator.InterpolateFiles(cmd.Context(), args[0], pattern, envPath)
				if err != nil {
					return err
				}
				return writeResults(results, out, indent)
			}

			doc, err := interpolator.InterpolateFile(cmd.Context(), args[0], envPath)
			if err != nil {
				return err
			}
			if out == "" {
				return envterpolate.Save(cmd.OutOrStdout(), doc,
					document.FormatFromPath(args[0]), indent)
			}
			return writeFile(out, doc, indent)
		},
	}
	rootCmd.Flags().StringP(envFlag, "e", ".env",
		"env file with variables to substitute")
	rootCmd.Flags().StringSlice(onlyFlag, nil,
		"interpolate only string values with dotted paths matching glob pattern(s)")
	rootCmd.Flags().String(missingFlag, placeholder.MissingError.String(),
		"what to do about unresolved placeholders: error, keep, or empty")
	rootCmd.Flags().StringP(outFlag, "o", "",
		"output file (or directory with --glob), defaults to stdout")
	rootCmd.Flags().Int(indentFlag, 2,
		"indentation; 0 writes compact JSON")
	rootCmd.Flags().String(globFlag, "",
		"interpolate all documents matching this pattern inside the directory argument")
	rootCmd.Flags().Bool(debugFlag, false,
		"enable debug logging")
	_ = v.BindPFlags(rootCmd.Flags())

	if info, biok := debug.ReadBuildInfo(); biok {
		if version := versionFromBuildInfo(info); version != "" {
			rootCmd.Version = version
		}
	}

	return rootCmd
}

// interpolatorOptions returns the Interpolator options as configured by
// flags and environment variables.
func interpolatorOptions(v *viper.Viper) ([]envterpolate.Option, error) {
	policy, err := placeholder.ParseMissingPolicy(v.GetString(missingFlag))
	if err != nil {
		return nil, err
	}
	opts := []envterpolate.Option{
		envterpolate.WithResolver(placeholder.Braces{Missing: policy}),
	}
	patterns := v.GetStringSlice(onlyFlag)
	if len(patterns) == 0 {
		return opts, nil
	}
	matchers := make([]interpolate.PathMatcher, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := interpolate.GlobPathMatcher(pattern)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, matcher)
	}
	log.Info(fmt.Sprintf("🔎  interpolating only %s", strings.Join(patterns, ", ")))
	return append(opts, envterpolate.WithMatcher(interpolate.AnyOf(matchers...))), nil
}

// writeResults writes the interpolated documents into the out directory,
// keeping their relative paths.
func writeResults(results []envterpolate.Result, out string, indent string) error {
	for _, result := range results {
		path := filepath.Join(out, filepath.FromSlash(result.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create output directory, reason: %w", err)
		}
		if err := writeFile(path, result.Document, indent); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes the document to the specified path, in the format derived
// from the path.
func writeFile(path string, doc *document.Mapping, indent string) (err error) {
	log.Info(fmt.Sprintf("✍  writing %q", path))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file, reason: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cannot write output file, reason: %w", cerr)
		}
	}()
	return envterpolate.Save(f, doc, document.FormatFromPath(path), indent)
}

// execute the root command, returning an error if it failed.
func execute(ctx context.Context, args []string, stdout io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	return rootCmd.ExecuteContext(ctx)
}
