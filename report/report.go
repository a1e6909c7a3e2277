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

package report

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

const (
	Simple Style = 1 + iota
	Monochrome
	Colored
)

// Style indicates how a report should be rendered to show a user.
type Style int

// Report is a list of error diagnostics, in the order they were found.
type Report []*Diagnostic

// Error appends a diagnostic for err to this report, and returns it so that
// the caller can say where err happened.
func (r *Report) Error(err error) *Diagnostic {
	d := &Diagnostic{Err: err, trace: captureTrace(1)}
	*r = append(*r, d)
	return d
}

// Err joins the errors of every diagnostic in this report. It returns nil if
// there are none.
func (r Report) Err() error {
	errs := make([]error, len(r))
	for i, d := range r {
		errs[i] = d.Err
	}
	return errors.Join(errs...)
}

// Diagnostic is an error together with the places in the input it concerns.
type Diagnostic struct {
	// The error being reported. Its Error() return is the diagnostic's
	// message.
	Err error

	// The file the error is about, shown when no snippet pins it to a
	// location.
	Path string

	snippets []snippet
	notes    []string

	// Where the diagnostic was created. Only populated when COMBINATOR_DEBUG
	// is set.
	trace []runtime.Frame
}

type snippet struct {
	file       File
	start, end Location
	message    string
	primary    bool
}

// At marks span as a place the error concerns, annotated with a formatted
// message. The first span is the primary one: precisely the input that
// caused the error.
func (d *Diagnostic) At(span Span, format string, args ...any) *Diagnostic {
	d.snippets = append(d.snippets, snippet{
		file:    span.File(),
		start:   span.Start(),
		end:     span.End(),
		message: fmt.Sprintf(format, args...),
		primary: len(d.snippets) == 0,
	})
	return d
}

// Note attaches a formatted line of context, shown after the snippets.
func (d *Diagnostic) Note(format string, args ...any) *Diagnostic {
	d.notes = append(d.notes, fmt.Sprintf(format, args...))
	return d
}

// Primary returns the diagnostic's primary span. If it has none, file.Path
// is d.Path and the locations are zero.
func (d *Diagnostic) Primary() (file File, start, end Location) {
	if len(d.snippets) == 0 {
		file.Path = d.Path
		return file, start, end
	}
	return d.snippets[0].file, d.snippets[0].start, d.snippets[0].end
}

// Notes returns the notes attached to this diagnostic.
func (d *Diagnostic) Notes() []string {
	return d.notes
}

// traceDepth reads COMBINATOR_DEBUG: unset or false records nothing, "full"
// records the whole stack, and anything else only the innermost frame.
func traceDepth() int {
	switch strings.ToLower(os.Getenv("COMBINATOR_DEBUG")) {
	case "", "0", "off", "false":
		return 0
	case "full":
		return 64
	default:
		return 1
	}
}

// captureTrace returns the stack of the caller skip frames above its own
// caller, up to traceDepth frames.
func captureTrace(skip int) []runtime.Frame {
	depth := traceDepth()
	if depth == 0 {
		return nil
	}

	pc := make([]uintptr, depth)
	pc = pc[:runtime.Callers(skip+2, pc)]

	var trace []runtime.Frame
	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			trace = append(trace, frame)
		}
		if !more || len(trace) == depth {
			return trace
		}
	}
}
