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

// Package slicesx contains extensions to Go's package slices.
package slicesx

// Get performs a bounds check and returns the value at idx.
//
// If the bounds check fails, returns the zero value and false.
func Get[S ~[]E, E any](s S, idx int) (element E, ok bool) {
	if idx < 0 || idx >= len(s) {
		return element, false
	}
	return s[idx], true
}

// Window returns s[start:end], clamping both indices into the bounds of s.
func Window[S ~[]E, E any](s S, start, end int) S {
	start = min(max(start, 0), len(s))
	end = min(max(end, start), len(s))
	return s[start:end]
}

// Transform returns a new slice holding f applied to each element of s.
func Transform[S ~[]E, E, U any](s S, f func(E) U) []U {
	if s == nil {
		return nil
	}
	out := make([]U, len(s))
	for i, v := range s {
		out[i] = f(v)
	}
	return out
}
