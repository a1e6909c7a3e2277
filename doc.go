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

// Package combinator is a small library of backtracking parser combinators.
//
// A [Parser] is a pure function from a token sequence and an offset into that
// sequence to an [Outcome]: either a value together with the offset just past
// the tokens it consumed, or a [Failure] describing why the tokens at that
// offset were rejected. Token sequences are ordinary slices, and parsers never
// mutate them, so one input may be shared among any number of parsers and
// goroutines.
//
// # Primitives
//
// Primitive parsers match single tokens or fixed runs of tokens:
//
//   - [One] matches a single token.
//   - [AnyOf] matches a single token drawn from a candidate set.
//   - [Exact] matches a fixed sequence of tokens.
//   - [Range] and [RangeFunc] match a single token within an inclusive range.
//   - [InRanges] matches a single token within a union of ranges.
//   - [End] matches only the end of input.
//
// # Combinators
//
// Combinators build new parsers out of existing ones. [Map] transforms a value;
// [Seq], [Join2] and [Join3] run parsers one after another; [Choice] tries
// alternatives in order, backtracking to the same offset after each failure;
// [Many] and [AtLeast] repeat a parser.
//
// Because every parser is pure, backtracking is simply a matter of calling
// another parser at the same offset.
//
// # Failures
//
// Failure values are plain data. The reason strings are meant for humans and
// are stable enough to compare against in tests. A [Failure] produced by
// [Choice] retains the failures of each alternative in its Attempts field,
// and [Failure.Furthest] digs out the one that made the most progress. To
// turn a failure into a diagnostic that points at a line and column of source
// text, use [Failure.Diagnose].
//
// # Running
//
// [Run] applies a parser to a whole input and requires that it consume every
// token. To parse many independent inputs at once, use a [Runner].
//
// Debugging output in diagnostics may be enabled by setting the
// COMBINATOR_DEBUG environment variable; see package report.
package combinator
