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

package dataset

import (
	"time"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/recflow/recflow/base"
	"github.com/recflow/recflow/base/log"
)

// DataProvider aggregates user-item-rating interactions keyed by the major
// dimension and serves them as sparse mini-batches. The interaction table is
// built once at construction and read-only afterwards; the provider assumes
// single-consumer access.
type DataProvider struct {
	config          *Config
	userIndex       *base.Index
	itemIndex       *base.Index
	majorIndex      *base.Index
	minorIndex      *base.Index
	vectorDim       int32
	data            map[int32]*base.SparseVector
	keys            []int32 // major keys in first-insertion order
	srcData         map[int32]*base.SparseVector
	numInteractions int
	rng             base.RandomGenerator
}

// NewDataProvider loads the corpus described by config. When userIndex and
// itemIndex are both nil, the identifier indices are built from the corpus in
// a first pass. Supplying existing indices keeps dense indices aligned across
// train and evaluation splits; supplying exactly one of them is a
// configuration error. When config.SrcDataDir is set, a second table is loaded
// from it with the same indices and attached as the evaluation source.
func NewDataProvider(config *Config, userIndex, itemIndex *base.Index) (*DataProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if (userIndex == nil) != (itemIndex == nil) {
		return nil, errors.Trace(&ConfigError{
			Message: "user and item identifier maps must be supplied together"})
	}
	if userIndex == nil {
		indexer, err := BuildIndex(config)
		if err != nil {
			return nil, errors.Trace(err)
		}
		userIndex, itemIndex = indexer.UserIndex, indexer.ItemIndex
	}
	p := &DataProvider{
		config:    config,
		userIndex: userIndex,
		itemIndex: itemIndex,
	}
	if config.Major == MajorUsers {
		p.majorIndex, p.minorIndex = userIndex, itemIndex
	} else {
		p.majorIndex, p.minorIndex = itemIndex, userIndex
	}
	p.vectorDim = p.minorIndex.Len()
	seed := config.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p.rng = base.NewRandomGenerator(seed)
	var err error
	if p.data, p.keys, err = p.loadTable(config.DataDir); err != nil {
		return nil, errors.Trace(err)
	}
	if config.SrcDataDir != "" {
		if p.srcData, _, err = p.loadTable(config.SrcDataDir); err != nil {
			return nil, errors.Trace(err)
		}
	}
	values := lo.FlatMap(lo.Values(p.data), func(vec *base.SparseVector, _ int) []float32 {
		return vec.Values
	})
	p.numInteractions = len(values)
	mean, std := base.MeanStd(values)
	log.Logger().Info("loaded interaction table",
		zap.String("data_dir", config.DataDir),
		zap.String("major", config.Major),
		zap.Int("num_keys", len(p.keys)),
		zap.Int("num_interactions", p.numInteractions),
		zap.Int32("vector_dim", p.vectorDim),
		zap.Float32("mean_rating", mean),
		zap.Float32("std_rating", std))
	return p, nil
}

// loadTable re-scans a corpus directory and aggregates interactions by major
// dense index. Every raw ID must already appear in the identifier indices.
func (p *DataProvider) loadTable(dir string) (map[int32]*base.SparseVector, []int32, error) {
	majorFieldInd, minorFieldInd := p.config.ItemIdInd, p.config.UserIdInd
	if p.config.Major == MajorUsers {
		majorFieldInd, minorFieldInd = minorFieldInd, majorFieldInd
	}
	table := make(map[int32]*base.SparseVector)
	keys := make([]int32, 0)
	err := forEachRecord(dir, p.config.Extension, p.config.Delimiter,
		func(file string, line int, fields []string) error {
			rawMajor, err := parseIDField(file, line, fields, majorFieldInd)
			if err != nil {
				return errors.Trace(err)
			}
			rawMinor, err := parseIDField(file, line, fields, minorFieldInd)
			if err != nil {
				return errors.Trace(err)
			}
			rating, err := parseRatingField(file, line, fields, p.config.RatingInd)
			if err != nil {
				return errors.Trace(err)
			}
			key := p.majorIndex.ToNumber(rawMajor)
			if key == base.NotId {
				return errors.Trace(&UnknownIDError{File: file, ID: rawMajor})
			}
			value := p.minorIndex.ToNumber(rawMinor)
			if value == base.NotId {
				return errors.Trace(&UnknownIDError{File: file, ID: rawMinor})
			}
			vec, exist := table[key]
			if !exist {
				vec = base.NewSparseVector()
				table[key] = vec
				keys = append(keys, key)
			}
			vec.Add(value, rating)
			return nil
		})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return table, keys, nil
}

// Config returns the provider configuration.
func (p *DataProvider) Config() *Config {
	return p.config
}

// UserIndex returns the user identifier index.
func (p *DataProvider) UserIndex() *base.Index {
	return p.userIndex
}

// ItemIndex returns the item identifier index.
func (p *DataProvider) ItemIndex() *base.Index {
	return p.itemIndex
}

// MajorIndex returns the identifier index of the major dimension. Dense major
// keys map back to raw IDs through it.
func (p *DataProvider) MajorIndex() *base.Index {
	return p.majorIndex
}

// VectorDim returns the dimensionality of batch rows, the size of the minor
// identifier index.
func (p *DataProvider) VectorDim() int32 {
	return p.vectorDim
}

// Keys returns the dense major keys in table order. Callers must not modify
// the returned slice.
func (p *DataProvider) Keys() []int32 {
	return p.keys
}

// NumInteractions returns the number of interactions in the table.
func (p *DataProvider) NumInteractions() int {
	return p.numInteractions
}

// AttachSource adopts another provider's interaction table as the source side
// of evaluation iteration. Both providers must have been built with the same
// identifier indices so that dense indices line up.
func (p *DataProvider) AttachSource(src *DataProvider) error {
	if src == nil {
		return errors.Trace(&ConfigError{Message: "source provider is nil"})
	}
	if src.vectorDim != p.vectorDim {
		return errors.Trace(&ConfigError{
			Message: "source table vector dimensionality does not match"})
	}
	p.srcData = src.data
	return nil
}

// BatchIterator is a lazy, finite sequence of training batches. A fresh
// iterator covers each included major key exactly once; it is not restartable
// after exhaustion.
type BatchIterator struct {
	provider *DataProvider
	keys     []int32
	cursor   int
}

// IterateOneEpoch starts one training epoch. Major keys are shuffled into a
// fresh uniformly random permutation on every call and partitioned into
// batches of shape (BatchSize, VectorDim). A trailing group of fewer than
// BatchSize keys is dropped.
func (p *DataProvider) IterateOneEpoch() *BatchIterator {
	keys := make([]int32, len(p.keys))
	copy(keys, p.keys)
	p.rng.ShuffleInt32s(keys)
	return &BatchIterator{provider: p, keys: keys}
}

// Next returns the next training batch, or false when fewer than BatchSize
// keys remain.
func (it *BatchIterator) Next() (*base.SparseMatrix, bool) {
	p := it.provider
	batchSize := p.config.BatchSize
	if it.cursor+batchSize > len(it.keys) {
		return nil, false
	}
	batch := base.NewSparseMatrix(int32(batchSize), p.vectorDim)
	for row := 0; row < batchSize; row++ {
		key := it.keys[it.cursor+row]
		localRow := int32(row)
		p.data[key].ForEach(func(_ int, index int32, value float32) {
			batch.Append(localRow, index, value)
		})
	}
	it.cursor += batchSize
	return batch, true
}

// EvalBatch pairs the target and source representations of one major key as
// single-row sparse matrices of shape (1, VectorDim).
type EvalBatch struct {
	Target *base.SparseMatrix
	Source *base.SparseMatrix
	// Key is the dense major key just processed, set only when the iterator
	// was started with forInf. Map it back to a raw ID through MajorIndex.
	Key int32
}

// EvalIterator visits every major key exactly once in table order.
type EvalIterator struct {
	provider *DataProvider
	forInf   bool
	cursor   int
}

// IterateOneEpochEval starts one evaluation pass over all major keys in table
// order, without shuffling. A source table must be attached beforehand, either
// through AttachSource or config.SrcDataDir. When forInf is true each batch
// carries the major key so that predictions can be re-associated with raw
// entities.
func (p *DataProvider) IterateOneEpochEval(forInf bool) (*EvalIterator, error) {
	if p.srcData == nil {
		return nil, errors.Trace(&MissingSourceError{NoTable: true})
	}
	return &EvalIterator{provider: p, forInf: forInf}, nil
}

// Next returns the next evaluation batch. It returns (nil, nil) when all keys
// have been visited and a MissingSourceError when the current key is absent
// from the source table.
func (it *EvalIterator) Next() (*EvalBatch, error) {
	p := it.provider
	if it.cursor >= len(p.keys) {
		return nil, nil
	}
	key := p.keys[it.cursor]
	it.cursor++
	src, exist := p.srcData[key]
	if !exist {
		return nil, errors.Trace(&MissingSourceError{Key: p.majorIndex.ToId(key)})
	}
	batch := &EvalBatch{
		Target: p.singleRow(p.data[key]),
		Source: p.singleRow(src),
		Key:    base.NotId,
	}
	if it.forInf {
		batch.Key = key
	}
	return batch, nil
}

func (p *DataProvider) singleRow(vec *base.SparseVector) *base.SparseMatrix {
	m := base.NewSparseMatrix(1, p.vectorDim)
	vec.ForEach(func(_ int, index int32, value float32) {
		m.Append(0, index, value)
	})
	return m
}
