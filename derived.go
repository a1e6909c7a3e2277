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
	"fmt"
	"math"
	"strings"
)

// Digit matches a single decimal digit rune and produces its numeric value.
var Digit = Map(Range('0', '9'), func(r rune) int { return int(r - '0') }).Named("digit")

// PositiveInt matches a run of one or more decimal digits and produces the
// integer they spell. Leading zeros are permitted. Runs whose value does not
// fit in an int are rejected.
var PositiveInt = TryMap(AtLeast(Digit, 1), foldDigits).Named("positive integer")

func foldDigits(digits []int) (int, error) {
	var n int
	for _, d := range digits {
		if n > (math.MaxInt-d)/10 {
			var text strings.Builder
			for _, d := range digits {
				text.WriteByte(byte('0' + d))
			}
			return 0, fmt.Errorf("integer overflow: %s", text.String())
		}
		n = n*10 + d
	}
	return n, nil
}

// Runes splits text into rune tokens, suitable for the character-level
// parsers in this package.
//
// Offsets into the result are rune offsets, not byte offsets.
func Runes(text string) []rune {
	return []rune(text)
}
