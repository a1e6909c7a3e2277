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

package expr

import (
	"github.com/bufbuild/combinator"
)

var (
	// Literal parses an integer literal into a [Number].
	Literal = combinator.Map(combinator.PositiveInt, func(n int) Node { return Number(n) }).Named("number")

	// Symbol parses one of the four operators into an [Operator].
	Symbol = combinator.Map(combinator.AnyOf('+', '-', '*', '/'), func(r rune) Node { return Operator(r) }).Named("operator")

	// Binary parses a single operation between two integer literals, such
	// as "12*3", into an [Op].
	Binary = combinator.Join3(
		combinator.PositiveInt, combinator.AnyOf('+', '-', '*', '/'), combinator.PositiveInt,
		func(a int, op rune, b int) Node { return Op{Left: Number(a), Operator: Operator(op), Right: Number(b)} },
	).Named("binary operation")

	// Stream parses a run of binary operations or literals, preferring the
	// former. It stops at the first position where neither applies, so on
	// "1+2*3" it produces just (1 + 2).
	Stream = combinator.AtLeast(combinator.Choice(Binary, Literal), 1)

	// Flat parses a run of literals and operators, in any order, as separate
	// nodes. Use [Fold] to assemble the result into a tree.
	Flat = combinator.AtLeast(combinator.Choice(Literal, Symbol), 1)

	// Expr parses a complete expression, with * and / binding tighter than
	// + and -, all four associating to the left, and parentheses for
	// grouping. Whitespace is permitted between tokens.
	Expr = newExpr()
)

func newExpr() combinator.Parser[rune, Node] {
	var expr combinator.Parser[rune, Node]

	group := combinator.Join3(
		lexeme(combinator.One('(')),
		combinator.Lazy("expression", func() combinator.Parser[rune, Node] { return expr }),
		lexeme(combinator.One(')')),
		func(_ rune, inner Node, _ rune) Node { return inner },
	)
	factor := combinator.Choice(lexeme(Literal), group).Named("operand")
	term := chain(factor, Mul, Div)
	expr = chain(term, Add, Sub)

	return combinator.Join2(spaces, expr, func(_ []rune, n Node) Node { return n }).Named("expression")
}

// spaces skips any amount of whitespace.
var spaces = combinator.Many(combinator.AnyOf(' ', '\t', '\r', '\n'))

// lexeme makes p also consume any whitespace that follows it.
func lexeme[T any](p combinator.Parser[rune, T]) combinator.Parser[rune, T] {
	return combinator.Join2(p, spaces, func(v T, _ []rune) T { return v }).Named(p.Label())
}

// chain parses one or more operands separated by any of ops, and folds them
// to the left.
func chain(operand combinator.Parser[rune, Node], ops ...Operator) combinator.Parser[rune, Node] {
	runes := make([]rune, len(ops))
	for i, op := range ops {
		runes[i] = rune(op)
	}
	operator := lexeme(combinator.Map(combinator.AnyOf(runes...), func(r rune) Operator { return Operator(r) }))

	type link struct {
		op    Operator
		right Node
	}
	links := combinator.Many(combinator.Join2(operator, operand, func(op Operator, right Node) link {
		return link{op, right}
	}))

	return combinator.Join2(operand, links, func(left Node, links []link) Node {
		for _, l := range links {
			left = Op{Left: left, Operator: l.op, Right: l.right}
		}
		return left
	})
}

// Parse parses text as a complete expression using [Expr].
//
// The returned error, if any, is a [*combinator.Failure] whose offsets are
// rune offsets into text.
func Parse(text string) (Node, error) {
	return combinator.Run(Expr, combinator.Runes(text))
}

// ParseFlat parses text with [Flat], and folds the result with [Fold].
func ParseFlat(text string) (Node, error) {
	nodes, err := combinator.Run(Flat, combinator.Runes(text))
	if err != nil {
		return nil, err
	}
	return Fold(nodes)
}
