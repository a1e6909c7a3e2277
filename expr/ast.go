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

// Package expr is an arithmetic expression grammar written with package
// combinator.
//
// Expressions are built out of non-negative integer literals and the four
// binary operators + - * /. The package offers the grammar at three levels:
//
//   - [Flat] reads an expression as a flat stream of numbers and operators,
//     which [Fold] then combines strictly left to right.
//   - [Stream] is the classic demonstration grammar, a run of number or
//     "number operator number" nodes.
//   - [Expr] is a full grammar with the usual precedence, left
//     associativity, parentheses and whitespace.
//
// Trees are evaluated with [Eval], and exported as protobuf values with
// [ToProto].
package expr

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDivideByZero is returned by [Eval] when a divisor evaluates to zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrMalformed is returned by [Fold] and [Eval] for node sequences that
	// do not alternate between operands and operators.
	ErrMalformed = errors.New("malformed expression")
)

// Kind identifies the concrete type of a [Node].
type Kind int8

const (
	KindNumber Kind = iota + 1
	KindOperator
	KindOp
)

var kindNames = [...]string{
	KindNumber:   "number",
	KindOperator: "operator",
	KindOp:       "op",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a node in an expression tree: a [Number], an [Operator], or an
// [Op] applying an operator to two nodes.
//
// Operators only appear on their own in the flat streams produced by [Flat].
type Node interface {
	fmt.Stringer

	Kind() Kind

	node()
}

// Number is an integer literal.
type Number int

// Operator is one of the four arithmetic operators.
type Operator rune

const (
	Add Operator = '+'
	Sub Operator = '-'
	Mul Operator = '*'
	Div Operator = '/'
)

// Operators lists every valid [Operator].
var Operators = []Operator{Add, Sub, Mul, Div}

// Op is a binary operation.
type Op struct {
	Left     Node
	Operator Operator
	Right    Node
}

func (Number) Kind() Kind   { return KindNumber }
func (Operator) Kind() Kind { return KindOperator }
func (Op) Kind() Kind       { return KindOp }

func (n Number) String() string   { return strconv.Itoa(int(n)) }
func (o Operator) String() string { return string(rune(o)) }
func (o Op) String() string       { return fmt.Sprintf("(%v %v %v)", o.Left, o.Operator, o.Right) }

func (Number) node()   {}
func (Operator) node() {}
func (Op) node()       {}

// Precedence returns how tightly o binds; higher binds tighter. Returns zero
// for an invalid operator.
func (o Operator) Precedence() int {
	switch o {
	case Add, Sub:
		return 1
	case Mul, Div:
		return 2
	default:
		return 0
	}
}

// Apply applies o to a and b. Division truncates toward zero.
func (o Operator) Apply(a, b int) (int, error) {
	switch o {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, fmt.Errorf("%w: %d / %d", ErrDivideByZero, a, b)
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrMalformed, rune(o))
	}
}
