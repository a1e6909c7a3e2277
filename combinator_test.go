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

package combinator_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/combinator"
)

func TestMap(t *testing.T) {
	t.Parallel()

	upper := combinator.Map(combinator.One('a'), unicode.ToUpper)
	tokens := combinator.Runes("ab")

	out := upper.Parse(tokens, 0)
	require.True(t, out.OK())
	assert.Equal(t, 'A', out.Value())
	assert.Equal(t, 1, out.Offset())

	// A mapped parser fails exactly when the original does, for the same reason.
	for offset := range 3 {
		inner := combinator.One('a').Parse(tokens, offset)
		mapped := upper.Parse(tokens, offset)
		require.Equal(t, inner.OK(), mapped.OK(), "offset %d", offset)
		if !inner.OK() {
			assert.Equal(t, inner.Failure(), mapped.Failure())
		}
	}

	var calls int
	counted := combinator.Map(combinator.One('x'), func(r rune) rune { calls++; return r })
	counted.Parse(tokens, 0)
	assert.Zero(t, calls, "mapping function must not run on failure")
}

func TestTryMap(t *testing.T) {
	t.Parallel()

	even := combinator.TryMap(combinator.Digit, func(d int) (int, error) {
		if d%2 != 0 {
			return 0, fmt.Errorf("%d is odd", d)
		}
		return d, nil
	})
	tokens := combinator.Runes("x47")

	out := even.Parse(tokens, 1)
	require.True(t, out.OK())
	assert.Equal(t, 4, out.Value())
	assert.Equal(t, 2, out.Offset())

	out = even.Parse(tokens, 2)
	require.False(t, out.OK())
	assert.Equal(t, "7 is odd", out.Reason())
	assert.Equal(t, 2, out.Failure().Offset)

	out = even.Parse(tokens, 0)
	assert.Equal(t, "expect token in range '0' to '9', got: 'x'", out.Reason())
}

func TestSeq(t *testing.T) {
	t.Parallel()

	ab := combinator.Seq(combinator.One('a'), combinator.One('b'))

	out := ab.Parse(combinator.Runes("abc"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []rune("ab"), out.Value())
	assert.Equal(t, 2, out.Offset())

	out = ab.Parse(combinator.Runes("axc"), 0)
	require.False(t, out.OK())
	assert.Equal(t, "expect: 'b', got: 'x'", out.Reason())
	assert.Equal(t, 1, out.Failure().Offset)

	out = ab.Parse(combinator.Runes("a"), 0)
	assert.Equal(t, "expect: 'b', got: end of input", out.Reason())

	empty := combinator.Seq[rune, rune]().Parse(combinator.Runes("abc"), 1)
	require.True(t, empty.OK())
	assert.Empty(t, empty.Value())
	assert.Equal(t, 1, empty.Offset())
}

func TestSeqStopsAtFailure(t *testing.T) {
	t.Parallel()

	var calls int
	counted := combinator.New("counted", func(_ []rune, offset int) combinator.Outcome[rune] {
		calls++
		return combinator.Success('*', offset)
	})

	p := combinator.Seq(combinator.One('a'), combinator.One('b'), counted, counted)
	out := p.Parse(combinator.Runes("ax"), 0)
	require.False(t, out.OK())
	assert.Equal(t, "expect: 'b', got: 'x'", out.Reason())
	assert.Zero(t, calls)

	out = p.Parse(combinator.Runes("ab"), 0)
	require.True(t, out.OK())
	assert.Equal(t, 2, calls)

	// Likewise, Choice stops at the first alternative that succeeds.
	calls = 0
	first := combinator.Choice(combinator.One('a'), counted)
	require.True(t, first.Parse(combinator.Runes("a"), 0).OK())
	assert.Zero(t, calls)
}

func TestJoin(t *testing.T) {
	t.Parallel()

	percent := combinator.Join2(
		combinator.PositiveInt, combinator.One('%'),
		func(n int, _ rune) float64 { return float64(n) / 100 },
	)
	out := percent.Parse(combinator.Runes("25%"), 0)
	require.True(t, out.OK())
	assert.InDelta(t, 0.25, out.Value(), 1e-9)
	assert.Equal(t, 3, out.Offset())

	out = percent.Parse(combinator.Runes("25"), 0)
	require.False(t, out.OK())
	assert.Equal(t, "expect: '%', got: end of input", out.Reason())

	ratio := combinator.Join3(
		combinator.PositiveInt, combinator.One(':'), combinator.PositiveInt,
		func(a int, _ rune, b int) [2]int { return [2]int{a, b} },
	)
	out2 := ratio.Parse(combinator.Runes("16:9"), 0)
	require.True(t, out2.OK())
	assert.Equal(t, [2]int{16, 9}, out2.Value())
	assert.Equal(t, 4, out2.Offset())

	out2 = ratio.Parse(combinator.Runes("16:x"), 0)
	require.False(t, out2.OK())
	assert.Equal(t, 3, out2.Failure().Offset)
	assert.Equal(t, "positive integer", out2.Failure().Label)
}

func TestChoice(t *testing.T) {
	t.Parallel()

	p := combinator.Choice(combinator.One('a'), combinator.One('b'))

	out := p.Parse(combinator.Runes("b"), 0)
	require.True(t, out.OK())
	assert.Equal(t, 'b', out.Value())
	assert.Equal(t, 1, out.Offset())

	out = p.Parse(combinator.Runes("c"), 0)
	require.False(t, out.OK())
	assert.Equal(t, "expect to pass any of: ['a', 'b'] but failed", out.Reason())
	assert.Equal(t, 0, out.Failure().Offset)
	assert.Equal(t, []*combinator.Failure{
		{Reason: "expect: 'a', got: 'c'", Offset: 0, Label: "'a'"},
		{Reason: "expect: 'b', got: 'c'", Offset: 0, Label: "'b'"},
	}, out.Failure().Attempts)

	// The first alternative to succeed wins, even if a later one would
	// consume more.
	short := combinator.Choice(
		combinator.Exact('a'),
		combinator.Exact('a', 'b'),
	)
	out2 := short.Parse(combinator.Runes("ab"), 0)
	require.True(t, out2.OK())
	assert.Equal(t, 1, out2.Offset())

	none := combinator.Choice[rune, rune]().Parse(combinator.Runes("a"), 0)
	require.False(t, none.OK())
	assert.Equal(t, "expect to pass any of: [] but failed", none.Reason())
}

func TestChoiceBacktracks(t *testing.T) {
	t.Parallel()

	// Both alternatives start with the same tokens; the second must see the
	// input from the beginning after the first fails partway through.
	p := combinator.Choice(
		combinator.Exact('a', 'b', 'c'),
		combinator.Exact('a', 'b', 'd'),
	)
	out := p.Parse(combinator.Runes("abd"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []rune("abd"), out.Value())
	assert.Equal(t, 3, out.Offset())
}

func TestFurthest(t *testing.T) {
	t.Parallel()

	p := combinator.Choice(
		combinator.Exact('a', 'x'),
		combinator.Exact('a', 'b', 'c'),
		combinator.Exact('q'),
	)
	out := p.Parse(combinator.Runes("abd"), 0)
	require.False(t, out.OK())

	furthest := out.Failure().Furthest()
	assert.Equal(t, 2, furthest.Offset)
	assert.Equal(t, "expect: 'c' at index 2, got: 'd', expected sequence: ['a', 'b', 'c'], seen sequence: ['a', 'b']", furthest.Reason)

	// With no deeper attempt, a failure is its own furthest.
	leaf := &combinator.Failure{Reason: "x", Offset: 4}
	assert.Same(t, leaf, leaf.Furthest())
	tie := &combinator.Failure{Reason: "y", Offset: 4, Attempts: []*combinator.Failure{leaf}}
	assert.Same(t, tie, tie.Furthest())
}

func TestMany(t *testing.T) {
	t.Parallel()

	as := combinator.Many(combinator.One('a'))

	out := as.Parse(combinator.Runes("aab"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []rune("aa"), out.Value())
	assert.Equal(t, 2, out.Offset())

	// Many never fails; a failure of the first attempt yields nothing.
	for _, input := range []string{"", "b", "ba"} {
		out := as.Parse(combinator.Runes(input), 0)
		require.True(t, out.OK(), "input %q", input)
		assert.Empty(t, out.Value())
		assert.Equal(t, 0, out.Offset())
	}

	out = as.Parse(combinator.Runes("aaa"), 3)
	require.True(t, out.OK())
	assert.Empty(t, out.Value())
	assert.Equal(t, 3, out.Offset())

	// A parser that consumes nothing is applied only once.
	still := combinator.Many(combinator.Succeed[rune](1)).Parse(combinator.Runes("abc"), 0)
	require.True(t, still.OK())
	assert.Equal(t, []int{1}, still.Value())
	assert.Equal(t, 0, still.Offset())
}

func TestAtLeast(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 4; n++ {
		p := combinator.AtLeast(combinator.One('a'), n)

		out := p.Parse(combinator.Runes(strings.Repeat("a", n)), 0)
		require.True(t, out.OK(), "n = %d", n)
		assert.Len(t, out.Value(), n)
		assert.Equal(t, n, out.Offset())

		out = p.Parse(combinator.Runes(strings.Repeat("a", n-1)), 0)
		require.False(t, out.OK(), "n = %d", n)
		assert.Equal(t,
			fmt.Sprintf("expect at least: %d times pass of 'a', only got: %d times", n, n-1),
			out.Reason(),
		)
		assert.Equal(t, 0, out.Failure().Offset)
	}

	out := combinator.AtLeast(combinator.One('a'), 3).Parse(combinator.Runes("xaab"), 1)
	require.False(t, out.OK())
	assert.Equal(t, "expect at least: 3 times pass of 'a', only got: 2 times", out.Reason())
	assert.Equal(t, 1, out.Failure().Offset)
	require.Len(t, out.Failure().Attempts, 1)
	assert.Equal(t, "expect: 'a', got: 'b'", out.Failure().Attempts[0].Reason)
	assert.Equal(t, 3, out.Failure().Attempts[0].Offset)

	zero := combinator.AtLeast(combinator.One('a'), 0).Parse(combinator.Runes("b"), 0)
	require.True(t, zero.OK())
	assert.Empty(t, zero.Value())
}

func TestDerived(t *testing.T) {
	t.Parallel()

	digit := combinator.Digit.Parse(combinator.Runes("7"), 0)
	require.True(t, digit.OK())
	assert.Equal(t, 7, digit.Value())

	bad := combinator.Digit.Parse(combinator.Runes("x"), 0)
	require.False(t, bad.OK())
	assert.Equal(t, "expect token in range '0' to '9', got: 'x'", bad.Reason())
	assert.Equal(t, "digit", bad.Failure().Label)

	tests := []struct {
		input  string
		want   int
		offset int
		reason string
	}{
		{input: "042", want: 42, offset: 3},
		{input: "7", want: 7, offset: 1},
		{input: "12a", want: 12, offset: 2},
		{input: "2147483647x", want: 2147483647, offset: 10},
		{input: "x", reason: "expect at least: 1 times pass of digit, only got: 0 times"},
		{input: "", reason: "expect at least: 1 times pass of digit, only got: 0 times"},
		{input: "99999999999999999999", reason: "integer overflow: 99999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			out := combinator.PositiveInt.Parse(combinator.Runes(tt.input), 0)
			if tt.reason != "" {
				require.False(t, out.OK())
				assert.Equal(t, tt.reason, out.Reason())
				assert.Equal(t, 0, out.Failure().Offset)
				assert.Equal(t, "positive integer", out.Failure().Label)
				return
			}
			require.True(t, out.OK(), "%v", out)
			assert.Equal(t, tt.want, out.Value())
			assert.Equal(t, tt.offset, out.Offset())
		})
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()

	number := combinator.Map(combinator.PositiveInt, strconv.Itoa)
	operator := combinator.Map(combinator.AnyOf('+', '-', '*', '/'), func(r rune) string { return string(r) })
	binary := combinator.Join3(
		combinator.PositiveInt, combinator.AnyOf('+', '-', '*', '/'), combinator.PositiveInt,
		func(a int, op rune, b int) string { return fmt.Sprintf("(%d %c %d)", a, op, b) },
	)
	tokens := combinator.Runes("1+2*3/4")

	// The binary operation consumes "1+2", and then neither alternative can
	// begin at "*".
	out := combinator.AtLeast(combinator.Choice(binary, number), 1).Parse(tokens, 0)
	require.True(t, out.OK())
	assert.Equal(t, []string{"(1 + 2)"}, out.Value())
	assert.Equal(t, 3, out.Offset())

	flat := combinator.AtLeast(combinator.Choice(number, operator), 1).Parse(tokens, 0)
	require.True(t, flat.OK())
	assert.Equal(t, []string{"1", "+", "2", "*", "3", "/", "4"}, flat.Value())
	assert.Equal(t, 7, flat.Offset())
}

func TestLazy(t *testing.T) {
	t.Parallel()

	// nested := '(' nested ')' | 'x'
	var nested combinator.Parser[rune, int]
	nested = combinator.Choice(
		combinator.Join3(
			combinator.One('('),
			combinator.Lazy("nested", func() combinator.Parser[rune, int] { return nested }),
			combinator.One(')'),
			func(_ rune, depth int, _ rune) int { return depth + 1 },
		),
		combinator.Map(combinator.One('x'), func(rune) int { return 0 }),
	)

	depth, err := combinator.Run(nested, combinator.Runes("(((x)))"))
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	_, err = combinator.Run(nested, combinator.Runes("((x)"))
	require.Error(t, err)
}
