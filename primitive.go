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
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.

	"github.com/bufbuild/combinator/internal/ext/cmpx"
	"github.com/bufbuild/combinator/internal/ext/slicesx"
	"github.com/bufbuild/combinator/internal/interval"
)

// One returns a parser that matches exactly the token want, and produces the
// matched token.
//
// Tokens are compared with deep equality; if C has an Equal method, it is
// used instead.
func One[C any](want C) Parser[C, C] {
	return New(format(want), func(tokens []C, offset int) Outcome[C] {
		if got, ok := slicesx.Get(tokens, offset); ok && cmpx.DeepEqual(got, want) {
			return Success(got, offset+1)
		}
		return Failedf[C](offset, "expect: %s, got: %s", format(want), describe(tokens, offset))
	})
}

// AnyOf returns a parser that matches a single token equal to any of the
// candidates, and produces the matched token.
//
// Panics if there are no candidates.
func AnyOf[C any](candidates ...C) Parser[C, C] {
	if len(candidates) == 0 {
		panic("combinator: AnyOf requires at least one candidate")
	}
	candidates = slices.Clone(candidates)
	list := formatAll(candidates)

	return New("any of "+list, func(tokens []C, offset int) Outcome[C] {
		if got, ok := slicesx.Get(tokens, offset); ok {
			for _, c := range candidates {
				if cmpx.DeepEqual(got, c) {
					return Success(got, offset+1)
				}
			}
		}
		return Failedf[C](offset, "expect any of: %s, got: %s", list, describe(tokens, offset))
	})
}

// Exact returns a parser that matches the tokens of want, in order, and
// produces the sub-slice of the input that matched.
//
// On a mismatch, the failure is placed at the first token that differs, and
// its reason lists both the expected sequence and the tokens seen before the
// mismatch.
//
// An empty want matches anywhere without consuming anything, and so succeeds
// at the offset it was given, even one past the end of tokens.
func Exact[C any](want ...C) Parser[C, []C] {
	want = slices.Clone(want)
	seq := formatAll(want)

	return New("["+seq+"]", func(tokens []C, offset int) Outcome[[]C] {
		for i, w := range want {
			at := offset + i
			if got, ok := slicesx.Get(tokens, at); ok && cmpx.DeepEqual(got, w) {
				continue
			}
			return Failedf[[]C](at,
				"expect: %s at index %d, got: %s, expected sequence: [%s], seen sequence: [%s]",
				format(w), i, describe(tokens, at), seq, formatAll(slicesx.Window(tokens, offset, at)))
		}
		end := offset + len(want)
		return Success(slices.Clip(slicesx.Window(tokens, offset, end)), end)
	})
}

// Range returns a parser that matches a single token t such that
// low <= t <= high, and produces the matched token.
//
// Panics if low > high.
func Range[C cmp.Ordered](low, high C) Parser[C, C] {
	return RangeFunc(low, high, cmp.Compare[C])
}

// RangeFunc is like [Range], but uses order to compare tokens.
func RangeFunc[C any](low, high C, order cmpx.Ordering[C]) Parser[C, C] {
	if order(low, high) > 0 {
		panic(fmt.Sprintf("combinator: empty range %s to %s", format(low), format(high)))
	}

	return New(format(low)+".."+format(high), func(tokens []C, offset int) Outcome[C] {
		if got, ok := slicesx.Get(tokens, offset); ok && cmpx.Between(order, got, low, high) {
			return Success(got, offset+1)
		}
		return Failedf[C](offset, "expect token in range %s to %s, got: %s",
			format(low), format(high), describe(tokens, offset))
	})
}

// InRanges returns a parser that matches a single token that falls within
// any of the given inclusive ranges, and produces the matched token.
//
// Overlapping ranges are merged. Panics if no ranges are given, or if any
// range has its endpoints out of order.
func InRanges[C constraints.Integer](ranges ...[2]C) Parser[C, C] {
	if len(ranges) == 0 {
		panic("combinator: InRanges requires at least one range")
	}

	intervals := make([]interval.Interval[C], len(ranges))
	for i, r := range ranges {
		if r[0] > r[1] {
			panic(fmt.Sprintf("combinator: empty range %s to %s", format(r[0]), format(r[1])))
		}
		intervals[i] = interval.Interval[C]{Start: r[0], End: r[1]}
	}
	set := interval.Of(intervals...)

	var list strings.Builder
	for in := range set.Intervals() {
		if list.Len() > 0 {
			list.WriteString(", ")
		}
		fmt.Fprintf(&list, "%s..%s", format(in.Start), format(in.End))
	}
	label := "[" + list.String() + "]"

	return New(label, func(tokens []C, offset int) Outcome[C] {
		if got, ok := slicesx.Get(tokens, offset); ok && set.Contains(got) {
			return Success(got, offset+1)
		}
		return Failedf[C](offset, "expect token in ranges %s, got: %s", label, describe(tokens, offset))
	})
}

// End returns a parser that succeeds, consuming nothing, only when there are
// no tokens left.
func End[C any]() Parser[C, struct{}] {
	return New("end of input", func(tokens []C, offset int) Outcome[struct{}] {
		if offset >= len(tokens) {
			return Success(struct{}{}, offset)
		}
		return Failedf[struct{}](offset, "expect: end of input, got: %s", describe(tokens, offset))
	})
}

// Succeed returns a parser that always succeeds with value, consuming
// nothing.
func Succeed[C, T any](value T) Parser[C, T] {
	return New("succeed", func(_ []C, offset int) Outcome[T] {
		return Success(value, offset)
	})
}

// Fail returns a parser that always fails with the given reason, consuming
// nothing.
func Fail[C, T any](reason string) Parser[C, T] {
	return New("fail", func(_ []C, offset int) Outcome[T] {
		return Failedf[T](offset, "%s", reason)
	})
}
