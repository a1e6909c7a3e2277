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
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/bufbuild/combinator"
	"github.com/bufbuild/combinator/report"
)

// readFiles loads each of paths, or standard input if there are none.
func readFiles(paths []string, stdin io.Reader) ([]*report.IndexedFile, error) {
	if len(paths) == 0 {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("could not read standard input: %w", err)
		}
		return []*report.IndexedFile{
			report.NewIndexedFile(report.File{Path: "<stdin>", Text: string(text)}),
		}, nil
	}

	files := make([]*report.IndexedFile, len(paths))
	for i, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
		files[i] = report.NewIndexedFile(report.File{Path: path, Text: string(text)})
	}
	return files, nil
}

// parseFiles runs p over every file concurrently. Each file must parse in its
// entirety; failures are diagnosed into r.
func parseFiles[T any](
	ctx context.Context,
	opts *options,
	p combinator.Parser[rune, T],
	files []*report.IndexedFile,
	r *report.Report,
) ([]combinator.Outcome[T], error) {
	inputs := make([][]rune, len(files))
	for i, file := range files {
		// Trailing whitespace, including the final newline, is not part of
		// the expression. Dropping it leaves all other offsets intact.
		inputs[i] = combinator.Runes(strings.TrimRightFunc(file.File().Text, unicode.IsSpace))
	}

	runner := combinator.Runner[rune, T]{
		Parser:         p,
		MaxParallelism: opts.parallelism,
		RequireEnd:     true,
	}
	outs, err := runner.Run(ctx, inputs...)
	if err != nil {
		return nil, err
	}

	for i, out := range outs {
		if !out.OK() {
			out.Failure().Diagnose(r, files[i])
		}
	}
	return outs, nil
}

// finish writes out any diagnostics in r, and returns [errReported] if any of
// them are errors.
func finish(cmd *cobra.Command, opts *options, r *report.Report) error {
	if len(*r) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), r.Render(opts.style()))
	}
	if r.Err() != nil {
		return errReported
	}
	return nil
}
