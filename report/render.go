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
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/bufbuild/combinator/internal/width"
)

// Render renders this report in a format suitable for showing to a user.
//
// The non-simple styles end with a count of the errors reported.
func (r Report) Render(style Style) string {
	var out strings.Builder
	for _, d := range r {
		out.WriteString(d.Render(style))
		out.WriteString("\n")
		if style != Simple {
			out.WriteString("\n")
		}
	}
	if style == Simple || len(r) == 0 {
		return out.String()
	}

	var color color
	if style == Colored {
		color = ansiColor()
	}
	if len(r) == 1 {
		fmt.Fprintln(&out, color.bRed+"encountered 1 error"+color.reset)
	} else {
		fmt.Fprintf(&out, "%sencountered %d errors%s\n", color.bRed, len(r), color.reset)
	}
	return out.String()
}

// Render renders this diagnostic in a format suitable for showing to a user.
func (d *Diagnostic) Render(style Style) string {
	// For the simple style, we imitate the Go compiler.
	if style == Simple {
		file, start, _ := d.Primary()
		if file.Path == "" {
			file.Path = "<unknown>"
		}
		if start.Line == 0 {
			return fmt.Sprintf("error: %s: %s", file.Path, d.Err.Error())
		}
		return fmt.Sprintf("error: %s:%d:%d: %s", file.Path, start.Line, start.Column, d.Err.Error())
	}

	// For the other styles, we imitate the Rust compiler. See
	// https://github.com/rust-lang/rustc-dev-guide/blob/master/src/diagnostics.md

	var color color
	if style == Colored {
		color = ansiColor()
	}

	var out strings.Builder
	fmt.Fprint(&out, color.bRed, "error: ", d.Err.Error(), color.reset)

	// The line bar is as wide as the greatest line number among the snippets.
	var greatestLine int
	for _, snip := range d.snippets {
		greatestLine = max(greatestLine, snip.start.Line)
	}
	lineBarWidth := max(2, len(strconv.Itoa(greatestLine)))
	bar := strings.Repeat(" ", lineBarWidth)

	for i, snippets := range partition(d.snippets, func(a, b *snippet) bool { return a.file.Path != b.file.Path }) {
		arrow, at := "-->", snippets[0]
		if i > 0 {
			arrow = ":::"
		}
		fmt.Fprintf(&out, "\n%s%s%s %s:%d:%d", color.nBlue, bar, arrow, at.file.Path, at.start.Line, at.start.Column)

		// A blank line after the file gives the window some visual breathing room.
		fmt.Fprintf(&out, "\n%s%s |%s", color.nBlue, bar, color.reset)
		renderWindow(snippets, bar, &color, &out)
	}

	// Render a remedial file name for spanless errors.
	if len(d.snippets) == 0 {
		path := d.Path
		if path == "" {
			path = "<unknown>"
		}
		fmt.Fprintf(&out, "\n%s%s--> %s:?:?%s", color.nBlue, bar, path, color.reset)
	}

	var footers [][2]string
	for _, note := range d.notes {
		footers = append(footers, [2]string{"note", note})
	}
	for _, frame := range d.trace {
		footers = append(footers, [2]string{"debug", "at " + frame.Function})
		footers = append(footers, [2]string{"debug", fmt.Sprintf("   %s:%d", frame.File, frame.Line)})
	}
	for _, footer := range footers {
		fmt.Fprintf(&out, "\n%s%s = %s%s: %s%s", color.nBlue, bar, color.bCyan, footer[0], color.reset, footer[1])
	}

	return out.String()
}

// renderWindow renders an annotated window of source for the given snippets,
// which must all refer to the same file.
func renderWindow(snippets []snippet, bar string, color *color, out *strings.Builder) {
	file := NewIndexedFile(snippets[0].file)

	byLine := make(map[int][]snippet)
	for _, snip := range snippets {
		byLine[snip.start.Line] = append(byLine[snip.start.Line], snip)
	}
	lines := make([]int, 0, len(byLine))
	for line := range byLine {
		lines = append(lines, line)
	}
	slices.Sort(lines)

	for i, line := range lines {
		if i > 0 && line > lines[i-1]+1 {
			// Visual break between lines that are not adjacent.
			fmt.Fprintf(out, "\n%s%s ~%s", color.bBlue, bar, color.reset)
		}

		text := expandTabs(file.Line(line))
		fmt.Fprintf(out, "\n%s%*d |%s %s", color.nBlue, len(bar), line, color.reset, text)

		annotated := byLine[line]
		slices.SortStableFunc(annotated, func(a, b snippet) int { return a.start.Column - b.start.Column })
		for _, snip := range annotated {
			start, end := snip.start.Column, snip.end.Column
			if snip.end.Line != line {
				// Multi-line spans are underlined to the end of their first line.
				end = width.Width(text, TabstopWidth) + 1
			}
			end = max(end, start+1)

			bold, mark := color.bBlue, "-"
			if snip.primary {
				bold, mark = color.bRed, "^"
			}

			fmt.Fprintf(out, "\n%s%s |%s %s%s%s",
				color.nBlue, bar, color.reset,
				strings.Repeat(" ", start-1),
				bold, strings.Repeat(mark, end-start))
			if snip.message != "" {
				out.WriteString(" ")
				out.WriteString(snip.message)
			}
			out.WriteString(color.reset)
		}
	}
}

// expandTabs replaces tabstops in line with spaces, so that columns computed
// with [width.Width] line up with the rendered text.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}

	var out strings.Builder
	for i, chunk := range strings.Split(line, "\t") {
		if i > 0 {
			column := width.Width(out.String(), TabstopWidth)
			out.WriteString(strings.Repeat(" ", TabstopWidth-column%TabstopWidth))
		}
		out.WriteString(chunk)
	}
	return out.String()
}

// color is the colors used for pretty-rendering diagnostics.
type color struct {
	reset string
	// Gutters and file names.
	nBlue string
	// Bold colors.
	bRed, bCyan, bBlue string
}

func ansiColor() color {
	return color{
		reset: "\033[0m",
		nBlue: "\033[0;34m",
		bRed:  "\033[1;31m",
		bCyan: "\033[1;36m",
		bBlue: "\033[1;34m",
	}
}

// partition returns an iterator of subslices of s such that each yielded
// slice is delimited according to delimit. Also yields the index of each
// subslice.
//
// In other words, suppose delimit is !=. Then, the slice [a a a b c c] is yielded
// as the subslices [a a a], [b], and [c c].
//
// Will never yield an empty slice.
func partition[T any](s []T, delimit func(a, b *T) bool) iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		var start, n int
		for i := 1; i < len(s); i++ {
			if delimit(&s[i-1], &s[i]) {
				if !yield(n, s[start:i]) {
					return
				}
				start = i
				n++
			}
		}
		if rest := s[start:]; len(rest) > 0 {
			yield(n, rest)
		}
	}
}
