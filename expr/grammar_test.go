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

package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/combinator"
	"github.com/bufbuild/combinator/expr"
)

func op(left expr.Node, o expr.Operator, right expr.Node) expr.Op {
	return expr.Op{Left: left, Operator: o, Right: right}
}

func TestStream(t *testing.T) {
	t.Parallel()

	out := expr.Stream.Parse(combinator.Runes("1+2*3/4"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []expr.Node{op(expr.Number(1), expr.Add, expr.Number(2))}, out.Value())
	assert.Equal(t, 3, out.Offset())

	out = expr.Stream.Parse(combinator.Runes("12*3 4"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []expr.Node{op(expr.Number(12), expr.Mul, expr.Number(3))}, out.Value())
	assert.Equal(t, 4, out.Offset())

	out = expr.Stream.Parse(combinator.Runes("7"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []expr.Node{expr.Number(7)}, out.Value())

	out = expr.Stream.Parse(combinator.Runes("+1"), 0)
	require.False(t, out.OK())
	require.Len(t, out.Failure().Attempts, 1)
	choice := out.Failure().Attempts[0]
	assert.Equal(t, "expect to pass any of: [binary operation, number] but failed", choice.Reason)
	require.Len(t, choice.Attempts, 2)
	assert.Equal(t, "binary operation", choice.Attempts[0].Label)
	assert.Equal(t, "number", choice.Attempts[1].Label)
}

func TestFlat(t *testing.T) {
	t.Parallel()

	out := expr.Flat.Parse(combinator.Runes("1+2*3/4"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []expr.Node{
		expr.Number(1), expr.Add, expr.Number(2), expr.Mul,
		expr.Number(3), expr.Div, expr.Number(4),
	}, out.Value())
	assert.Equal(t, 7, out.Offset())

	// Flat does not care whether the stream makes sense.
	out = expr.Flat.Parse(combinator.Runes("+*10"), 0)
	require.True(t, out.OK())
	assert.Equal(t, []expr.Node{expr.Add, expr.Mul, expr.Number(10)}, out.Value())
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{text: "1", want: "1"},
		{text: "1+2*3/4", want: "(1 + ((2 * 3) / 4))"},
		{text: "1-2-3", want: "((1 - 2) - 3)"},
		{text: "8/4/2", want: "((8 / 4) / 2)"},
		{text: "(1+2)*3", want: "((1 + 2) * 3)"},
		{text: " ( 1 + 2 ) * ( 3 - 4 ) \n", want: "((1 + 2) * (3 - 4))"},
		{text: "((((7))))", want: "7"},
		{text: "007*1", want: "(7 * 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			n, err := expr.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestExprErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		offset int
		reason string
	}{
		{text: "", offset: 0, reason: "expect to pass any of: [number, seq['(', expression, ')']] but failed"},
		{text: "1+", offset: 1, reason: "unconsumed input at offset 1: '+'"},
		{text: "1 2", offset: 2, reason: "unconsumed input at offset 2: '2'"},
		{text: "(1", offset: 2, reason: "expect: ')', got: end of input"},
		{text: "1)", offset: 1, reason: "unconsumed input at offset 1: ')'"},
		{text: "x", offset: 0, reason: "expect to pass any of: [number, seq['(', expression, ')']] but failed"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			_, err := expr.Parse(tt.text)
			var failure *combinator.Failure
			require.ErrorAs(t, err, &failure)
			furthest := failure.Furthest()
			assert.Equal(t, tt.reason, furthest.Reason)
			assert.Equal(t, tt.offset, furthest.Offset)
		})
	}
}

func TestParseFlat(t *testing.T) {
	t.Parallel()

	n, err := expr.ParseFlat("1+2*3/4")
	require.NoError(t, err)
	assert.Equal(t, "(((1 + 2) * 3) / 4)", n.String())

	_, err = expr.ParseFlat("1+")
	require.ErrorIs(t, err, expr.ErrMalformed)

	_, err = expr.ParseFlat("1 + 2")
	var failure *combinator.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 1, failure.Offset)
}
