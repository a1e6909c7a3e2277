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

package combinator

import (
	"unicode/utf8"

	"github.com/bufbuild/combinator/report"
)

// Diagnose pushes an error diagnostic describing f onto r.
//
// f must have been produced by parsing [Runes] of the text of file, so that
// its offsets are rune offsets into that text. The diagnostic points at the
// [Failure.Furthest] failure, since that is usually the one closest to the
// user's actual mistake; the failures of any alternatives tried at that
// point are attached as notes.
func (f *Failure) Diagnose(r *report.Report, file *report.IndexedFile) {
	at := f.Furthest()
	text := file.File().Text

	start := byteOffset(text, at.Offset)
	end := start
	if start < len(text) {
		_, n := utf8.DecodeRuneInString(text[start:])
		end += n
	}

	var message string
	if at.Label != "" {
		message = "expected " + at.Label
	}
	d := r.Error(at).At(file.NewSpan(start, end), "%s", message)
	if at != f {
		d.Note("while attempting: %s", f.Reason)
	}
	for _, attempt := range at.Attempts {
		d.Note("%s", attempt.Reason)
	}
}

// byteOffset converts an offset in runes into text to an offset in bytes.
// Offsets past the end map to len(text).
func byteOffset(text string, runes int) int {
	for i := range text {
		if runes <= 0 {
			return i
		}
		runes--
	}
	return len(text)
}
