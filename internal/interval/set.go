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

// Package interval provides interval-keyed data structures backed by a B-tree.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Interval is an inclusive range of values.
type Interval[K Endpoint] struct {
	Start, End K
}

// Contains returns whether an interval contains a given point.
func (i Interval[K]) Contains(point K) bool {
	return i.Start <= point && point <= i.End
}

// Set is a set of values described by a union of inclusive intervals.
//
// Overlapping intervals are merged on insertion, so the intervals stored in a
// Set are always pairwise disjoint.
//
// A zero value is ready to use.
type Set[K Endpoint] struct {
	// Keys in this map are the ends of intervals in the set; values are
	// their starts.
	tree btree.Map[K, K]
}

// Of builds a set out of the given intervals.
func Of[K Endpoint](intervals ...Interval[K]) *Set[K] {
	s := new(Set[K])
	for _, in := range intervals {
		s.Insert(in.Start, in.End)
	}
	return s
}

// Insert adds [start, end] to the set. Both endpoints are inclusive.
func (s *Set[K]) Insert(start, end K) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	// Let [a, b] be the new interval. Seek finds the least [c, d] with a <= d;
	// it overlaps [a, b] iff c <= b. Every later interval has a greater start,
	// so the first one that does not overlap ends the merge.
	for {
		iter := s.tree.Iter()
		if !iter.Seek(start) || iter.Value() > end {
			break
		}
		start = min(start, iter.Value())
		end = max(end, iter.Key())
		s.tree.Delete(iter.Key())
	}
	s.tree.Set(end, start)
}

// Contains returns whether point lies inside any interval of the set.
func (s *Set[K]) Contains(point K) bool {
	iter := s.tree.Iter()
	return iter.Seek(point) && iter.Value() <= point
}

// Intervals returns an iterator over the disjoint intervals in this set, in
// ascending order.
func (s *Set[K]) Intervals() iter.Seq[Interval[K]] {
	return func(yield func(Interval[K]) bool) {
		iter := s.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(Interval[K]{Start: iter.Value(), End: iter.Key()}) {
				return
			}
		}
	}
}
