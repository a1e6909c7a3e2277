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

// Package width measures the number of terminal cells that a Unicode string
// can be expected to use up, as grapheme clusters rather than runes.
//
// This functionality should not be confused with the golang.org/x/text/width
// package, which is about conversion between full- and half-width variants of
// runes as present in East Asian computing.
package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Width makes a best-effort guess at the width of s when displayed on a terminal.
// Tabstops (\t) are treated specially: they are assumed to justify text to the
// next column that is a multiple of tabstop.
func Width(s string, tabstop int) (width int) {
	for i, chunk := range strings.Split(s, "\t") {
		if i > 0 {
			width += tabstop - width%tabstop
		}
		width += uniseg.StringWidth(chunk)
	}
	return width
}

// Ruler tracks the state of an ongoing measurement.
//
// Measuring rune by rune is stateful: a rune may extend the grapheme cluster
// before it rather than start a new one, in which case it adds no width.
//
// A zero Ruler is ready to use.
type Ruler struct {
	cluster []byte
	width   int // Width of everything before cluster.
}

// Measure pushes a rune onto the running tally and returns the total width
// measured so far.
func (r *Ruler) Measure(ch rune) int {
	r.cluster = append(r.cluster, string(ch)...)
	first, rest, w, _ := uniseg.FirstGraphemeCluster(r.cluster, -1)
	if len(rest) > 0 {
		// ch started a new cluster; everything before it is settled.
		r.width += uniseg.StringWidth(string(first))
		r.cluster = append(r.cluster[:0], rest...)
		return r.width + uniseg.StringWidth(string(r.cluster))
	}
	return r.width + w
}

// Width returns the width this ruler has measured so far.
func (r *Ruler) Width() int {
	return r.width + uniseg.StringWidth(string(r.cluster))
}
