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
	"strconv"
	"strings"

	"github.com/bufbuild/combinator/internal/ext/slicesx"
)

// Parser is a parser over tokens of type C that produces values of type T.
//
// Parsers are immutable values and may be shared freely, including across
// goroutines. The zero Parser is not valid; calling Parse on it panics.
type Parser[C, T any] struct {
	label string
	parse func(tokens []C, offset int) Outcome[T]
}

// New constructs a parser out of a parsing function.
//
// parse must not modify tokens, and must return the same outcome every time
// it is called with the same arguments. When it fails, it should report the
// offset at which the failure was detected; its Label may be left empty, in
// which case it will be filled in with label.
func New[C, T any](label string, parse func(tokens []C, offset int) Outcome[T]) Parser[C, T] {
	if parse == nil {
		panic("combinator: New called with a nil parsing function")
	}
	return Parser[C, T]{label: label, parse: parse}
}

// Parse invokes this parser on tokens, starting at offset.
func (p Parser[C, T]) Parse(tokens []C, offset int) Outcome[T] {
	if p.parse == nil {
		panic("combinator: called Parse on the zero Parser")
	}
	out := p.parse(tokens, offset)
	if out.failure != nil && out.failure.Label == "" {
		labeled := *out.failure
		labeled.Label = p.label
		out.failure = &labeled
	}
	return out
}

// Label returns a short, human-readable description of what this parser
// accepts, used when composing failure reasons.
func (p Parser[C, T]) Label() string {
	return p.label
}

// Named returns a parser that behaves like p, but with a different label.
//
// Failures that p reports at the offset it was invoked at are relabeled too,
// so that they read as a failure to find label. Failures further into the
// input keep the label of whatever parser detected them.
func (p Parser[C, T]) Named(label string) Parser[C, T] {
	return New(label, func(tokens []C, offset int) Outcome[T] {
		out := p.Parse(tokens, offset)
		if out.failure != nil && out.failure.Offset == offset {
			relabeled := *out.failure
			relabeled.Label = label
			out.failure = &relabeled
		}
		return out
	})
}

// String implements [fmt.Stringer].
func (p Parser[C, T]) String() string {
	return p.label
}

// describe formats the token at offset, or notes that there is none.
func describe[C any](tokens []C, offset int) string {
	tok, ok := slicesx.Get(tokens, offset)
	if !ok {
		return "end of input"
	}
	return format(tok)
}

// format formats a single token for use in a failure reason.
//
// Runes and strings are quoted, so that whitespace and punctuation tokens are
// legible. Note that rune is an alias of int32, so int32 tokens are quoted as
// characters too.
func format(v any) string {
	switch v := v.(type) {
	case rune:
		return strconv.QuoteRune(v)
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// formatAll formats a list of tokens, comma-separated.
func formatAll[C any](tokens []C) string {
	var out strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(format(tok))
	}
	return out.String()
}

// labels renders the labels of parsers as a bracketed list.
func labels[C, T any](parsers []Parser[C, T]) string {
	return "[" + strings.Join(slicesx.Transform(parsers, Parser[C, T].Label), ", ") + "]"
}
