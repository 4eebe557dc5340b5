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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recflow/recflow/base"
)

func writeLines(t *testing.T, path string, lines ...string) {
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "ratings.txt"),
		"100\t7\t5.0",
		"200\t7\t3.0",
		"100\t9\t4.0")
	config := NewConfig(dir, 1)
	indexer, err := BuildIndex(config)
	assert.NoError(t, err)
	// users indexed in first-seen order
	assert.Equal(t, int32(2), indexer.UserIndex.Len())
	assert.Equal(t, int32(0), indexer.UserIndex.ToNumber(7))
	assert.Equal(t, int32(1), indexer.UserIndex.ToNumber(9))
	// items indexed in first-seen order
	assert.Equal(t, int32(2), indexer.ItemIndex.Len())
	assert.Equal(t, int32(0), indexer.ItemIndex.ToNumber(100))
	assert.Equal(t, int32(1), indexer.ItemIndex.ToNumber(200))
	assert.Equal(t, base.NotId, indexer.ItemIndex.ToNumber(300))
}

func TestBuildIndexDeterminism(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "a.txt"),
		"3\t30\t1.0",
		"1\t10\t2.0")
	writeLines(t, filepath.Join(dir, "b.txt"),
		"2\t20\t3.0",
		"1\t30\t4.0")
	config := NewConfig(dir, 1)
	first, err := BuildIndex(config)
	assert.NoError(t, err)
	second, err := BuildIndex(config)
	assert.NoError(t, err)
	assert.Equal(t, first.UserIndex, second.UserIndex)
	assert.Equal(t, first.ItemIndex, second.ItemIndex)
	// files are scanned in name order
	assert.Equal(t, []int{3, 1, 2}, first.ItemIndex.GetIds())
	assert.Equal(t, []int{30, 10, 20}, first.UserIndex.GetIds())
}

func TestBuildIndexFileFilter(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "ratings.txt"), "1\t1\t1.0")
	writeLines(t, filepath.Join(dir, "ignored.dat"), "2\t2\t2.0")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writeLines(t, filepath.Join(dir, "nested", "nested.txt"), "3\t3\t3.0")
	indexer, err := BuildIndex(NewConfig(dir, 1))
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, indexer.ItemIndex.GetIds())
	assert.Equal(t, []int{1}, indexer.UserIndex.GetIds())
}

func TestBuildIndexMalformed(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "ratings.txt"),
		"1\t1\t1.0",
		"1\t2")
	_, err := BuildIndex(NewConfig(dir, 1))
	assert.Error(t, err)
	var malformed *MalformedRecordError
	assert.True(t, errors.As(err, &malformed))
	assert.Equal(t, filepath.Join(dir, "ratings.txt"), malformed.File)
	assert.Equal(t, 2, malformed.Line)

	// non-integer IDs are malformed as well
	dir = t.TempDir()
	writeLines(t, filepath.Join(dir, "ratings.txt"), "a\tb\t1.0")
	_, err = BuildIndex(NewConfig(dir, 1))
	assert.True(t, errors.As(err, &malformed))
}

func TestBuildIndexCustomFormat(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "ratings.csv"),
		"7,5.0,100",
		"9,3.0,200")
	config := NewConfig(dir, 1)
	config.Extension = ".csv"
	config.Delimiter = ","
	config.UserIdInd = 0
	config.RatingInd = 1
	config.ItemIdInd = 2
	indexer, err := BuildIndex(config)
	assert.NoError(t, err)
	assert.Equal(t, []int{7, 9}, indexer.UserIndex.GetIds())
	assert.Equal(t, []int{100, 200}, indexer.ItemIndex.GetIds())
}
