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
	"slices"
)

// Map returns a parser that runs p and transforms its value with f. Failures
// of p are passed through unchanged.
func Map[C, T, U any](p Parser[C, T], f func(T) U) Parser[C, U] {
	return New(p.Label(), func(tokens []C, offset int) Outcome[U] {
		return MapOutcome(p.Parse(tokens, offset), f)
	})
}

// TryMap is like [Map], but f may reject the value. A rejection becomes a
// failure at the offset p started at, whose reason is the error's message.
func TryMap[C, T, U any](p Parser[C, T], f func(T) (U, error)) Parser[C, U] {
	return New(p.Label(), func(tokens []C, offset int) Outcome[U] {
		out := p.Parse(tokens, offset)
		if !out.OK() {
			return Failed[U](out.Failure())
		}
		v, err := f(out.Value())
		if err != nil {
			return Failedf[U](offset, "%v", err)
		}
		return Success(v, out.Offset())
	})
}

// Seq returns a parser that runs each of parsers in order, each starting where
// the previous one stopped, and produces their values in order.
//
// The first failure stops the sequence, and is returned as-is.
func Seq[C, T any](parsers ...Parser[C, T]) Parser[C, []T] {
	parsers = slices.Clone(parsers)

	return New("seq"+labels(parsers), func(tokens []C, offset int) Outcome[[]T] {
		values := make([]T, 0, len(parsers))
		for _, p := range parsers {
			out := p.Parse(tokens, offset)
			if !out.OK() {
				return Failed[[]T](out.Failure())
			}
			values = append(values, out.value)
			offset = out.offset
		}
		return Success(values, offset)
	})
}

// Join2 is like [Seq], but for two parsers of different types, whose values
// are combined with f.
func Join2[C, A, B, R any](a Parser[C, A], b Parser[C, B], f func(A, B) R) Parser[C, R] {
	return New(fmt.Sprintf("seq[%s, %s]", a.Label(), b.Label()), func(tokens []C, offset int) Outcome[R] {
		outA := a.Parse(tokens, offset)
		if !outA.OK() {
			return Failed[R](outA.failure)
		}
		outB := b.Parse(tokens, outA.offset)
		if !outB.OK() {
			return Failed[R](outB.failure)
		}
		return Success(f(outA.value, outB.value), outB.offset)
	})
}

// Join3 is like [Join2], but for three parsers.
func Join3[C, A, B, D, R any](a Parser[C, A], b Parser[C, B], d Parser[C, D], f func(A, B, D) R) Parser[C, R] {
	return New(fmt.Sprintf("seq[%s, %s, %s]", a.Label(), b.Label(), d.Label()), func(tokens []C, offset int) Outcome[R] {
		outA := a.Parse(tokens, offset)
		if !outA.OK() {
			return Failed[R](outA.failure)
		}
		outB := b.Parse(tokens, outA.offset)
		if !outB.OK() {
			return Failed[R](outB.failure)
		}
		outD := d.Parse(tokens, outB.offset)
		if !outD.OK() {
			return Failed[R](outD.failure)
		}
		return Success(f(outA.value, outB.value, outD.value), outD.offset)
	})
}

// Choice returns a parser that tries each of parsers in order at the same
// offset, and produces the outcome of the first one that succeeds.
//
// If all of them fail, the failure is placed at the starting offset, and the
// failure of each alternative is recorded in its Attempts.
func Choice[C, T any](parsers ...Parser[C, T]) Parser[C, T] {
	parsers = slices.Clone(parsers)
	list := labels(parsers)

	return New("any"+list, func(tokens []C, offset int) Outcome[T] {
		var attempts []*Failure
		for _, p := range parsers {
			out := p.Parse(tokens, offset)
			if out.OK() {
				return out
			}
			attempts = append(attempts, out.failure)
		}
		return Failed[T](&Failure{
			Reason:   fmt.Sprintf("expect to pass any of: %s but failed", list),
			Offset:   offset,
			Attempts: attempts,
		})
	})
}

// Many returns a parser that applies p as many times as it can, and produces
// the values of every successful application. It never fails.
//
// Repetition stops at the first failure of p, or when no tokens remain. A
// success of p that consumes nothing is kept, but also stops the repetition.
func Many[C, T any](p Parser[C, T]) Parser[C, []T] {
	return New("many("+p.Label()+")", func(tokens []C, offset int) Outcome[[]T] {
		values, end, _ := repeat(p, tokens, offset)
		return Success(values, end)
	})
}

// AtLeast is like [Many], but fails if p succeeds fewer than n times.
//
// The failure is placed at the starting offset. If repetition was stopped by
// a failure of p, that failure is recorded in its Attempts.
func AtLeast[C, T any](p Parser[C, T], n int) Parser[C, []T] {
	return New(fmt.Sprintf("at-least-%d(%s)", n, p.Label()), func(tokens []C, offset int) Outcome[[]T] {
		values, end, stop := repeat(p, tokens, offset)
		if len(values) >= n {
			return Success(values, end)
		}

		failure := &Failure{
			Reason: fmt.Sprintf("expect at least: %d times pass of %s, only got: %d times", n, p.Label(), len(values)),
			Offset: offset,
		}
		if stop != nil {
			failure.Attempts = []*Failure{stop}
		}
		return Failed[[]T](failure)
	})
}

// repeat is the loop shared by Many and AtLeast. It returns the values
// collected, the offset reached, and the failure of p that ended the loop,
// if any.
func repeat[C, T any](p Parser[C, T], tokens []C, offset int) (values []T, end int, stop *Failure) {
	values = []T{}
	for offset < len(tokens) {
		out := p.Parse(tokens, offset)
		if !out.OK() {
			return values, offset, out.failure
		}
		values = append(values, out.value)
		if out.offset == offset {
			break
		}
		offset = out.offset
	}
	return values, offset, nil
}

// Lazy returns a parser that defers to the parser returned by get, calling it
// anew on every invocation. It allows a grammar to refer to a parser that has
// not been constructed yet, which is how recursive rules are written.
//
// Lazy does nothing to guard against left recursion: a rule that can reach
// itself without consuming input will recurse until the stack is exhausted.
func Lazy[C, T any](label string, get func() Parser[C, T]) Parser[C, T] {
	return New(label, func(tokens []C, offset int) Outcome[T] {
		return get().Parse(tokens, offset)
	})
}
