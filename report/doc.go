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

/*
Package report turns parse failures into diagnostics and renders them.

Each [Diagnostic] is a Go error plus the spans of source it concerns and any
notes about it. They are collected into a [Report] with [Report.Error], whose
result is then pinned to the input with [Diagnostic.At]:

	r.Error(err).At(file.NewSpan(start, end), "expected %s", label)

Reports are rendered with [Report.Render], in one of three [Style]s: a single
line per diagnostic, like the Go compiler, or annotated source windows, like
the Rust compiler, with or without color.

The [IndexedFile] type converts byte offsets into text editor coordinates.
Callers construct it once per file, so that line offsets are not recomputed
for every diagnostic.

# Writing Diagnostics

Diagnostic messages do not begin with a capital letter and do not end in
punctuation. The words "error" and "note" are never capitalized. The first
span in a diagnostic (the primary span) should be precisely the input that
caused the error, and should be as small as possible.

When the COMBINATOR_DEBUG environment variable is set, every diagnostic records
where it was created; "full" records the whole stack instead of only the
innermost frame.
*/
package report
