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
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bufbuild/combinator"
	"github.com/bufbuild/combinator/expr"
	"github.com/bufbuild/combinator/report"
)

func newParseCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse expressions and print their syntax trees",
		Long: `Parse expressions and print their syntax trees.

The yaml and json formats print the tree produced by the full grammar. The
flat format prints the flat sequence of numbers and operators instead, as
YAML. When several files are given, the trees are printed as a mapping from
file name to tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var r report.Report
			var trees []*structpb.Value
			if opts.format == "flat" {
				trees, err = parseTrees(cmd, opts, expr.Flat, expr.ListToProto, files, &r)
			} else {
				trees, err = parseTrees(cmd, opts, expr.Expr, expr.ToProto, files, &r)
			}
			if err != nil {
				return err
			}

			if err := writeTrees(cmd, opts, files, trees); err != nil {
				return err
			}
			return finish(cmd, opts, &r)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "yaml", `output format: "yaml", "json" or "flat"`)
	return cmd
}

// parseTrees parses files with p, converting each success with toProto.
// Failed files have a nil tree.
func parseTrees[T any](
	cmd *cobra.Command,
	opts *options,
	p combinator.Parser[rune, T],
	toProto func(T) *structpb.Value,
	files []*report.IndexedFile,
	r *report.Report,
) ([]*structpb.Value, error) {
	outs, err := parseFiles(cmd.Context(), opts, p, files, r)
	if err != nil {
		return nil, err
	}

	trees := make([]*structpb.Value, len(outs))
	for i, out := range outs {
		if out.OK() {
			trees[i] = toProto(out.Value())
		}
	}
	return trees, nil
}

// writeTrees prints the trees that were successfully parsed.
func writeTrees(cmd *cobra.Command, opts *options, files []*report.IndexedFile, trees []*structpb.Value) error {
	var doc *structpb.Value
	if len(files) == 1 {
		doc = trees[0]
	} else {
		fields := make(map[string]*structpb.Value)
		for i, tree := range trees {
			if tree != nil {
				fields[files[i].File().Path] = tree
			}
		}
		if len(fields) > 0 {
			doc = structpb.NewStructValue(&structpb.Struct{Fields: fields})
		}
	}
	if doc == nil {
		return nil
	}

	var (
		text []byte
		err  error
	)
	if opts.format == "json" {
		text, err = expr.MarshalJSON(doc)
	} else {
		text, err = expr.MarshalYAML(doc)
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(text)
	return err
}
