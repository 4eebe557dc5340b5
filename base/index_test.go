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

func TestIndex(t *testing.T) {
	index := NewIndex()
	assert.Zero(t, index.Len())
	index.Add(100)
	index.Add(5)
	index.Add(100)
	index.Add(42)
	assert.Equal(t, int32(3), index.Len())
	assert.Equal(t, int32(0), index.ToNumber(100))
	assert.Equal(t, int32(1), index.ToNumber(5))
	assert.Equal(t, int32(2), index.ToNumber(42))
	assert.Equal(t, NotId, index.ToNumber(7))
	assert.Equal(t, 100, index.ToId(0))
	assert.Equal(t, 5, index.ToId(1))
	assert.Equal(t, 42, index.ToId(2))
	assert.Equal(t, []int{100, 5, 42}, index.GetIds())
}

func TestIndex_Nil(t *testing.T) {
	var index *Index
	assert.Zero(t, index.Len())
	assert.Equal(t, NotId, index.ToNumber(1))
}
