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
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/recflow/recflow/base"
	"github.com/recflow/recflow/base/log"
)

// Indexer assigns dense indices to raw user and item IDs in first-seen order
// over the corpus. Both indices are immutable once built.
type Indexer struct {
	UserIndex *base.Index
	ItemIndex *base.Index
}

// BuildIndex scans the corpus once and builds the user and item indices. For
// each record the user ID is indexed before the item ID.
func BuildIndex(config *Config) (*Indexer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	indexer := &Indexer{
		UserIndex: base.NewIndex(),
		ItemIndex: base.NewIndex(),
	}
	err := forEachRecord(config.DataDir, config.Extension, config.Delimiter,
		func(file string, line int, fields []string) error {
			userId, err := parseIDField(file, line, fields, config.UserIdInd)
			if err != nil {
				return errors.Trace(err)
			}
			itemId, err := parseIDField(file, line, fields, config.ItemIdInd)
			if err != nil {
				return errors.Trace(err)
			}
			indexer.UserIndex.Add(userId)
			indexer.ItemIndex.Add(itemId)
			return nil
		})
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("built identifier index",
		zap.String("data_dir", config.DataDir),
		zap.Int32("num_users", indexer.UserIndex.Len()),
		zap.Int32("num_items", indexer.ItemIndex.Len()))
	return indexer, nil
}

// listSourceFiles returns the interaction files directly inside dir whose name
// ends with extension. Subdirectories are ignored, no recursion. os.ReadDir
// returns entries sorted by name, which keeps index assignment stable for a
// fixed corpus.
func listSourceFiles(dir, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			return "", false
		}
		return filepath.Join(dir, entry.Name()), true
	}), nil
}

// forEachRecord scans every corpus file in order and calls handler with the
// split fields of each line. Scanning aborts at the first malformed line or
// handler error.
func forEachRecord(dir, extension, delimiter string,
	handler func(file string, line int, fields []string) error) error {
	files, err := listSourceFiles(dir, extension)
	if err != nil {
		return errors.Trace(err)
	}
	for _, file := range files {
		if err = scanRecords(file, delimiter, handler); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func scanRecords(path, delimiter string,
	handler func(file string, line int, fields []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(strings.TrimSpace(scanner.Text()), delimiter)
		if len(fields) < 3 {
			return errors.Trace(&MalformedRecordError{File: path, Line: line})
		}
		if err = handler(path, line, fields); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(scanner.Err())
}

func parseIDField(file string, line int, fields []string, ind int) (int, error) {
	if ind >= len(fields) {
		return 0, &MalformedRecordError{File: file, Line: line}
	}
	id, err := strconv.Atoi(strings.TrimSpace(fields[ind]))
	if err != nil {
		return 0, &MalformedRecordError{File: file, Line: line}
	}
	return id, nil
}

func parseRatingField(file string, line int, fields []string, ind int) (float32, error) {
	if ind >= len(fields) {
		return 0, &MalformedRecordError{File: file, Line: line}
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(fields[ind]), 32)
	if err != nil {
		return 0, &MalformedRecordError{File: file, Line: line}
	}
	return float32(rating), nil
}
