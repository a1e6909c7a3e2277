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
)

// Outcome is the result of invoking a [Parser]: either a value and the offset
// just past what was consumed, or a [*Failure].
//
// The zero Outcome is a success holding the zero value at offset zero.
type Outcome[T any] struct {
	value   T
	offset  int
	failure *Failure
}

// Success returns a successful outcome holding value, where offset is the
// position just past the last token consumed.
func Success[T any](value T, offset int) Outcome[T] {
	return Outcome[T]{value: value, offset: offset}
}

// Failed returns an unsuccessful outcome wrapping f.
//
// Panics if f is nil.
func Failed[T any](f *Failure) Outcome[T] {
	if f == nil {
		panic("combinator: Failed called with a nil *Failure")
	}
	return Outcome[T]{failure: f}
}

// Failedf is a shorthand for constructing a [Failure] at offset with a
// formatted reason, and wrapping it in an outcome.
func Failedf[T any](offset int, format string, args ...any) Outcome[T] {
	return Failed[T](&Failure{
		Reason: fmt.Sprintf(format, args...),
		Offset: offset,
	})
}

// OK returns whether this outcome is a success.
func (o Outcome[T]) OK() bool {
	return o.failure == nil
}

// Value returns the value of a successful outcome.
//
// Panics if o is a failure.
func (o Outcome[T]) Value() T {
	o.mustSucceed("Value")
	return o.value
}

// Offset returns the position just past the tokens consumed by a successful
// outcome.
//
// Panics if o is a failure.
func (o Outcome[T]) Offset() int {
	o.mustSucceed("Offset")
	return o.offset
}

// Get returns the value and offset of o, or the failure if it did not
// succeed.
func (o Outcome[T]) Get() (value T, offset int, failure *Failure) {
	return o.value, o.offset, o.failure
}

// Reason returns the reason of a failed outcome.
//
// Panics if o is a success.
func (o Outcome[T]) Reason() string {
	if o.failure == nil {
		panic("combinator: called Reason on a successful Outcome")
	}
	return o.failure.Reason
}

// Failure returns the failure wrapped by o, or nil if o is a success.
func (o Outcome[T]) Failure() *Failure {
	return o.failure
}

// Err is like [Outcome.Failure], but returns an untyped nil error on
// success.
func (o Outcome[T]) Err() error {
	if o.failure == nil {
		return nil
	}
	return o.failure
}

// String implements [fmt.Stringer].
func (o Outcome[T]) String() string {
	if o.failure != nil {
		return fmt.Sprintf("failure(%d, %q)", o.failure.Offset, o.failure.Reason)
	}
	return fmt.Sprintf("success(%v, %d)", o.value, o.offset)
}

func (o Outcome[T]) mustSucceed(method string) {
	if o.failure != nil {
		panic(fmt.Sprintf("combinator: called %s on a failed Outcome: %s", method, o.failure.Reason))
	}
}

// MapOutcome applies f to the value of a successful outcome, preserving its
// offset. Failures pass through unchanged.
func MapOutcome[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	if o.failure != nil {
		return Outcome[U]{failure: o.failure}
	}
	return Outcome[U]{value: f(o.value), offset: o.offset}
}

// Failure describes why a parser rejected its input.
type Failure struct {
	// A human-readable explanation of what was expected and what was found.
	Reason string
	// The offset into the token sequence at which the failure was detected.
	Offset int
	// The label of the parser that produced this failure.
	Label string
	// Failures of alternatives that were attempted before giving up, in the
	// order they were tried. Only populated by combinators that backtrack.
	Attempts []*Failure
}

var _ error = (*Failure)(nil)

// Error implements [error].
func (f *Failure) Error() string {
	return f.Reason
}

// Furthest returns the failure in the tree rooted at f with the greatest
// offset. When several share that offset, the one closest to the root wins,
// with ties among siblings broken in favor of the earliest attempt.
func (f *Failure) Furthest() *Failure {
	best := f
	for _, attempt := range f.Attempts {
		if deep := attempt.Furthest(); deep.Offset > best.Offset {
			best = deep
		}
	}
	return best
}

// Equal returns whether two failures are the same, including all of their
// attempts.
func (f *Failure) Equal(that *Failure) bool {
	if f == nil || that == nil {
		return f == that
	}
	if f.Reason != that.Reason || f.Offset != that.Offset || f.Label != that.Label ||
		len(f.Attempts) != len(that.Attempts) {
		return false
	}
	for i := range f.Attempts {
		if !f.Attempts[i].Equal(that.Attempts[i]) {
			return false
		}
	}
	return true
}
