// Copyright 2026 recflow Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseVector(t *testing.T) {
	vec := NewSparseVector()
	vec.Add(2, 1.0)
	vec.Add(0, 3.5)
	assert.Equal(t, 2, vec.Len())
	indices := make([]int32, 0)
	values := make([]float32, 0)
	vec.ForEach(func(i int, index int32, value float32) {
		indices = append(indices, index)
		values = append(values, value)
	})
	assert.Equal(t, []int32{2, 0}, indices)
	assert.Equal(t, []float32{1.0, 3.5}, values)
}

func TestSparseMatrix(t *testing.T) {
	m := NewSparseMatrix(4, 8)
	assert.Equal(t, int32(4), m.NumRows)
	assert.Equal(t, int32(8), m.NumCols)
	assert.Zero(t, m.NNZ())
	m.Append(0, 7, 5.0)
	m.Append(3, 1, 2.5)
	assert.Equal(t, 2, m.NNZ())
	rows := make([]int32, 0)
	cols := make([]int32, 0)
	m.ForEach(func(i int, row, col int32, value float32) {
		rows = append(rows, row)
		cols = append(cols, col)
	})
	assert.Equal(t, []int32{0, 3}, rows)
	assert.Equal(t, []int32{7, 1}, cols)
}

func TestMeanStd(t *testing.T) {
	mean, std := MeanStd(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)
	mean, std = MeanStd([]float32{2, 2, 2})
	assert.Equal(t, float32(2), mean)
	assert.InDelta(t, 0, std, 1e-6)
	mean, std = MeanStd([]float32{1, 3})
	assert.Equal(t, float32(2), mean)
	assert.InDelta(t, 1, std, 1e-6)
}
