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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bufbuild/combinator/expr"
	"github.com/bufbuild/combinator/report"
)

func newEvalCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [file...]",
		Short: "Evaluate expressions",
		Long: `Evaluate expressions and print their values.

Division truncates toward zero. When several files are given, each value is
prefixed with the name of its file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readFiles(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var r report.Report
			outs, err := parseFiles(cmd.Context(), opts, expr.Expr, files, &r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, parsed := range outs {
				if !parsed.OK() {
					continue
				}

				path := files[i].File().Path
				value, err := expr.Eval(parsed.Value())
				if err != nil {
					r.Error(err).Path = path
					continue
				}

				if len(files) == 1 {
					fmt.Fprintln(out, value)
				} else {
					fmt.Fprintf(out, "%s: %d\n", path, value)
				}
			}
			return finish(cmd, opts, &r)
		},
	}
}
