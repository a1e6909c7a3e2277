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
	"fmt"
)

// Fold assembles a flat stream of nodes, as produced by [Flat], into a tree.
//
// The stream must alternate between operands and operators, beginning and
// ending with an operand. Operators are applied strictly from left to right,
// without regard for precedence: 1+2*3 folds to ((1 + 2) * 3).
func Fold(nodes []Node) (Node, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrMalformed)
	}

	left := nodes[0]
	if left.Kind() == KindOperator {
		return nil, fmt.Errorf("%w: expected operand at node 0, got operator %v", ErrMalformed, left)
	}

	for i := 1; i < len(nodes); i += 2 {
		op, ok := nodes[i].(Operator)
		if !ok {
			return nil, fmt.Errorf("%w: expected operator at node %d, got %v %v", ErrMalformed, i, nodes[i].Kind(), nodes[i])
		}
		if i+1 == len(nodes) {
			return nil, fmt.Errorf("%w: operator %v at node %d is missing its right operand", ErrMalformed, op, i)
		}
		right := nodes[i+1]
		if right.Kind() == KindOperator {
			return nil, fmt.Errorf("%w: expected operand at node %d, got operator %v", ErrMalformed, i+1, right)
		}
		left = Op{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

// Eval evaluates an expression tree.
func Eval(n Node) (int, error) {
	switch n := n.(type) {
	case Number:
		return int(n), nil
	case Op:
		left, err := Eval(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}
		return n.Operator.Apply(left, right)
	case nil:
		return 0, fmt.Errorf("%w: missing node", ErrMalformed)
	default:
		return 0, fmt.Errorf("%w: cannot evaluate %v %v", ErrMalformed, n.Kind(), n)
	}
}
