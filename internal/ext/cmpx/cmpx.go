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

// Package cmpx contains extensions to Go's package cmp, including the deep
// equality used to compare tokens.
package cmpx

import (
	"cmp"
	"reflect"

	gocmp "github.com/google/go-cmp/cmp"
)

// Result is the type returned by an [Ordering], and in particular
// [cmp.Compare].
type Result = int

const (
	// [cmp.Compare] guarantees these return values.
	Less    Result = -1
	Equal   Result = 0
	Greater Result = 1
)

// Ordering is an ordering for the type T, which is any function with the same
// signature as [cmp.Compare].
type Ordering[T any] func(T, T) Result

// Key returns an ordering for T according to a key function, which must return
// a [cmp.Ordered] value.
func Key[T any, U cmp.Ordered](key func(T) U) Ordering[T] {
	return func(a, b T) Result { return cmp.Compare(key(a), key(b)) }
}

// Between returns whether low <= v <= high according to cmp.
func Between[T any](cmp Ordering[T], v, low, high T) bool {
	return cmp(low, v) <= Equal && cmp(v, high) <= Equal
}

// DeepEqual reports whether a and b are structurally equal.
//
// If T, or any type reachable from it, has a method of the form
// (T) Equal(T) bool, that method decides equality for values of that type.
// Otherwise values are compared field by field, unexported fields included,
// and pointers are compared by the values they point to.
func DeepEqual[T any](a, b T) bool {
	return gocmp.Equal(a, b, exportAll)
}

// exportAll lets DeepEqual look into unexported fields of any struct type,
// which tokens defined in other packages routinely have.
var exportAll = gocmp.Exporter(func(reflect.Type) bool { return true })
