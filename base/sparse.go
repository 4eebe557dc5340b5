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
	"github.com/chewxy/math32"
)

// SparseVector is the data structure for a sparse vector of ratings.
type SparseVector struct {
	Indices []int32
	Values  []float32
}

// NewSparseVector creates a SparseVector.
func NewSparseVector() *SparseVector {
	return &SparseVector{
		Indices: make([]int32, 0),
		Values:  make([]float32, 0),
	}
}

// Add a new entry.
func (vec *SparseVector) Add(index int32, value float32) {
	vec.Indices = append(vec.Indices, index)
	vec.Values = append(vec.Values, value)
}

// Len returns the number of entries.
func (vec *SparseVector) Len() int {
	return len(vec.Values)
}

// ForEach iterates entries in the sparse vector.
func (vec *SparseVector) ForEach(f func(i int, index int32, value float32)) {
	for i := range vec.Indices {
		f(i, vec.Indices[i], vec.Values[i])
	}
}

// SparseMatrix is a sparse matrix in coordinate format with an explicit shape.
// Entries outside the stored triples are implicitly zero.
type SparseMatrix struct {
	NumRows int32
	NumCols int32
	Rows    []int32
	Cols    []int32
	Values  []float32
}

// NewSparseMatrix creates an empty SparseMatrix with the given shape.
func NewSparseMatrix(numRows, numCols int32) *SparseMatrix {
	return &SparseMatrix{
		NumRows: numRows,
		NumCols: numCols,
		Rows:    make([]int32, 0),
		Cols:    make([]int32, 0),
		Values:  make([]float32, 0),
	}
}

// Append adds a (row, col, value) triple.
func (m *SparseMatrix) Append(row, col int32, value float32) {
	m.Rows = append(m.Rows, row)
	m.Cols = append(m.Cols, col)
	m.Values = append(m.Values, value)
}

// NNZ returns the number of stored triples.
func (m *SparseMatrix) NNZ() int {
	return len(m.Values)
}

// ForEach iterates stored triples.
func (m *SparseMatrix) ForEach(f func(i int, row, col int32, value float32)) {
	for i := range m.Values {
		f(i, m.Rows[i], m.Cols[i], m.Values[i])
	}
}

// MeanStd returns the mean and standard deviation of stored values.
func MeanStd(values []float32) (mean, std float32) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum, sumSq float32
	for _, v := range values {
		sum += v
		sumSq += v * v
	}
	mean = sum / float32(len(values))
	std = math32.Sqrt(math32.Abs(sumSq/float32(len(values)) - mean*mean))
	return
}
