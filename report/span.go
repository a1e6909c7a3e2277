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
	"slices"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/bufbuild/combinator/internal/width"
)

// The size we render all tabstops as.
const TabstopWidth int = 4

// Span is any type that can be used to generate source code information for a diagnostic.
type Span interface {
	File() File
	Start() Location
	End() Location
}

// File is a source file involved in a diagnostic.
type File struct {
	// The filesystem path for this text. It doesn't need to be a real path, but
	// it will be used to deduplicate spans according to their file.
	Path string

	// The complete text of the file.
	Text string
}

// Location is a user-displayable location within a source file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed.
	//
	// Note that Column is not Offset with the length of all previous lines
	// subtracted off; it takes into account the rendered width. The rune A is
	// one column wide, the rune 貓 is two columns wide.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line, Column int

	// The UTF-16 code unit offset from the start of the line for this
	// location, for editors that count columns that way.
	UTF16 int
}

// IndexedFile is an index of line information from a [File], which permits
// O(log n) calculation of [Location]s from offsets.
type IndexedFile struct {
	file File

	once sync.Once
	// The byte offset of the start of each line. Given a byte offset, the
	// line it is on is found with a binary search over this list.
	lines []int
}

// NewIndexedFile constructs a line index for the given file. The index itself
// is built lazily, on the first call to [IndexedFile.Search].
func NewIndexedFile(file File) *IndexedFile {
	return &IndexedFile{file: file}
}

// File returns the file that this index indexes.
func (i *IndexedFile) File() File {
	return i.file
}

// NewSpan generates a span over the byte range [start, end) using this index.
//
// Out-of-range offsets are clamped to the bounds of the file text.
func (i *IndexedFile) NewSpan(start, end int) Span {
	start = min(max(start, 0), len(i.file.Text))
	end = min(max(end, start), len(i.file.Text))
	return naiveSpan{
		file:  i.File(),
		start: i.Search(start),
		end:   i.Search(end),
	}
}

// Search searches this index to build full Location information for the given byte
// offset.
func (i *IndexedFile) Search(offset int) Location {
	i.once.Do(func() {
		i.lines = append(i.lines, 0)
		for j := range len(i.file.Text) {
			if i.file.Text[j] == '\n' {
				// The byte *after* the newline starts the next line.
				i.lines = append(i.lines, j+1)
			}
		}
	})

	// Find the greatest index in lines such that lines[line] <= offset.
	line, exact := slices.BinarySearch(i.lines, offset)
	if !exact {
		line--
	}

	chunk := i.file.Text[i.lines[line]:offset]
	column := width.Width(chunk, TabstopWidth)

	var utf16Col int
	for _, r := range chunk {
		utf16Col += utf16.RuneLen(r)
	}

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: column + 1,
		UTF16:  utf16Col,
	}
}

// Line returns the text of the given 1-indexed line, without its newline.
func (i *IndexedFile) Line(line int) string {
	i.Search(0) // Make sure the index is built.
	if line < 1 || line > len(i.lines) {
		return ""
	}

	text := i.file.Text[i.lines[line-1]:]
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	return text
}

type naiveSpan struct {
	file       File
	start, end Location
}

func (s naiveSpan) File() File      { return s.file }
func (s naiveSpan) Start() Location { return s.start }
func (s naiveSpan) End() Location   { return s.end }
