// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/bufbuild/combinator/report"
)

// errReported is returned by commands whose failures have already been
// rendered as diagnostics.
var errReported = errors.New("errors were reported")

// options holds the settings shared by every subcommand.
type options struct {
	configPath  string
	format      string
	parallelism int
	color       bool
	diagnostics string
}

// config is the contents of a configuration file. Flags given explicitly on
// the command line take precedence over it.
type config struct {
	// Output format for the parse command.
	Format string `toml:"format"`
	// Maximum number of files to parse at once.
	Parallelism int `toml:"parallelism"`
	// Whether to color diagnostics.
	Color bool `toml:"color"`
	// Diagnostic style, "simple" or "verbose".
	Diagnostics string `toml:"diagnostics"`
}

func newRootCommand() *cobra.Command {
	opts := new(options)

	root := &cobra.Command{
		Use:   "exprc",
		Short: "Parse and evaluate arithmetic expressions",
		Long: `exprc parses arithmetic expressions over non-negative integers, with the
operators + - * / and parentheses, and either prints their syntax trees or
evaluates them.

Settings may also be given in a TOML file passed with --config:

  format = "json"
  parallelism = 4
  color = false
  diagnostics = "verbose"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	flags.IntVar(&opts.parallelism, "parallelism", 0, "maximum number of files to parse at once (default: number of CPUs)")
	flags.BoolVar(&opts.color, "color", false, "render diagnostics with ANSI colors")
	flags.StringVar(&opts.diagnostics, "diagnostics", "simple", `diagnostic style: "simple" or "verbose"`)

	root.AddCommand(newParseCommand(opts), newEvalCommand(opts))
	return root
}

// load merges the config file, if any, into o, and validates the result.
func (o *options) load(cmd *cobra.Command) error {
	if o.configPath != "" {
		var cfg config
		meta, err := toml.DecodeFile(o.configPath, &cfg)
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q in config %s", undecoded[0].String(), o.configPath)
		}

		flags := cmd.Flags()
		if cfg.Format != "" && !flags.Changed("format") {
			o.format = cfg.Format
		}
		if cfg.Parallelism != 0 && !flags.Changed("parallelism") {
			o.parallelism = cfg.Parallelism
		}
		if cfg.Color && !flags.Changed("color") {
			o.color = true
		}
		if cfg.Diagnostics != "" && !flags.Changed("diagnostics") {
			o.diagnostics = cfg.Diagnostics
		}
	}

	switch o.format {
	case "", "yaml", "json", "flat":
	default:
		return fmt.Errorf("unknown format %q; expected yaml, json or flat", o.format)
	}
	switch o.diagnostics {
	case "simple", "verbose":
	default:
		return fmt.Errorf("unknown diagnostic style %q; expected simple or verbose", o.diagnostics)
	}
	if o.parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", o.parallelism)
	}
	return nil
}

// style returns the style to render diagnostics with.
func (o *options) style() report.Style {
	switch {
	case o.color:
		return report.Colored
	case o.diagnostics == "verbose":
		return report.Monochrome
	default:
		return report.Simple
	}
}
