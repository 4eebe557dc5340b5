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

// Index manages the map between raw IDs and dense indices. A raw ID is a user
// ID or item ID as it appears in the input corpus. The dense index is the
// internal user index or item index optimized for faster parameter access and
// less memory usage. Indices are assigned in first-seen order starting at 0.
type Index struct {
	Numbers map[int]int32 // raw ID -> dense index
	Ids     []int         // dense index -> raw ID
}

// NotId represents an ID doesn't exist.
const NotId = int32(-1)

// NewIndex creates an Index.
func NewIndex() *Index {
	index := new(Index)
	index.Numbers = make(map[int]int32)
	index.Ids = make([]int, 0)
	return index
}

// Len returns the number of indexed IDs.
func (index *Index) Len() int32 {
	if index == nil {
		return 0
	}
	return int32(len(index.Ids))
}

// Add adds a new raw ID to the index. Adding an ID twice has no effect.
func (index *Index) Add(id int) {
	if _, exist := index.Numbers[id]; !exist {
		index.Numbers[id] = int32(len(index.Ids))
		index.Ids = append(index.Ids, id)
	}
}

// ToNumber converts a raw ID to a dense index. Returns NotId for unknown IDs.
func (index *Index) ToNumber(id int) int32 {
	if index == nil {
		return NotId
	}
	if denseId, exist := index.Numbers[id]; exist {
		return denseId
	}
	return NotId
}

// ToId converts a dense index back to a raw ID.
func (index *Index) ToId(number int32) int {
	return index.Ids[number]
}

// GetIds returns all raw IDs in dense index order.
func (index *Index) GetIds() []int {
	return index.Ids
}
