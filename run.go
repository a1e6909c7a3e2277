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
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Run applies p to the whole of tokens, starting at offset zero.
//
// Unlike calling [Parser.Parse] directly, Run requires p to consume every
// token; leftover input is reported as a failure. The returned error, if any,
// is always a [*Failure].
func Run[C, T any](p Parser[C, T], tokens []C) (T, error) {
	out := requireEnd(p, tokens, p.Parse(tokens, 0))
	if !out.OK() {
		var zero T
		return zero, out.failure
	}
	return out.value, nil
}

// requireEnd converts a success that stopped short of the end of tokens into
// a failure.
func requireEnd[C, T any](p Parser[C, T], tokens []C, out Outcome[T]) Outcome[T] {
	if !out.OK() || out.offset >= len(tokens) {
		return out
	}
	return Failed[T](&Failure{
		Reason: fmt.Sprintf("unconsumed input at offset %d: %s", out.offset, describe(tokens, out.offset)),
		Offset: out.offset,
		Label:  p.Label(),
	})
}

// Runner runs a single parser over many independent inputs concurrently.
//
// The zero value is not usable; Parser must be set.
type Runner[C, T any] struct {
	// The parser to run on each input.
	Parser Parser[C, T]

	// The maximum number of inputs to parse at once. If zero or negative,
	// defaults to the lesser of runtime.GOMAXPROCS and runtime.NumCPU.
	MaxParallelism int

	// If set, each input must be consumed in its entirety, as with [Run].
	RequireEnd bool
}

// Run parses each of inputs from offset zero, and returns their outcomes in
// the same order as inputs.
//
// Parse failures are reported in the returned outcomes, not as an error. The
// only error Run returns is that of ctx, if it is cancelled before every
// input has been parsed, in which case no outcomes are returned.
func (r *Runner[C, T]) Run(ctx context.Context, inputs ...[]C) ([]Outcome[T], error) {
	if len(inputs) == 0 {
		return nil, ctx.Err()
	}

	par := r.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}
	sem := semaphore.NewWeighted(int64(par))
	grp, ctx := errgroup.WithContext(ctx)

	results := make([]Outcome[T], len(inputs))
	for i, input := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			_ = grp.Wait()
			return nil, err
		}
		grp.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return err
			}
			out := r.Parser.Parse(input, 0)
			if r.RequireEnd {
				out = requireEnd(r.Parser, input, out)
			}
			results[i] = out
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
