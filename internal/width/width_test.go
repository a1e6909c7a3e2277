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

package width_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/combinator/internal/width"
)

func TestWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "1+2", want: 3},
		{text: "\t", want: 4},
		{text: "ab\tc", want: 5},
		{text: "貓", want: 2},
		{text: "é", want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, width.Width(tt.text, 4), "Width(%q)", tt.text)
	}
}

func TestRuler(t *testing.T) {
	t.Parallel()

	var r width.Ruler
	assert.Equal(t, 1, r.Measure('a'))
	assert.Equal(t, 3, r.Measure('貓'))
	assert.Equal(t, 4, r.Measure('e'))
	assert.Equal(t, 4, r.Measure('\u0301'), "combining mark extends the previous cluster")
	assert.Equal(t, 4, r.Width())
}
