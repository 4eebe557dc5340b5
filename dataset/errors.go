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
	"fmt"
)

// ConfigError reports an invalid configuration, such as an unknown major
// dimension or a single identifier map supplied without its counterpart.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Message
}

// MalformedRecordError reports a line that cannot be parsed as an interaction
// record. Loading aborts at the first malformed line.
type MalformedRecordError struct {
	File string
	Line int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("encountered badly formatted line in %s (line %d)", e.File, e.Line)
}

// UnknownIDError reports a raw ID absent from a supplied identifier map. This
// can only happen when externally supplied maps are inconsistent with the
// corpus being loaded.
type UnknownIDError struct {
	File string
	ID   int
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("unknown identifier %d in %s", e.ID, e.File)
}

// MissingSourceError reports an evaluation iteration without a usable source
// table: either no table was attached at all, or the major key with raw ID Key
// is absent from it.
type MissingSourceError struct {
	Key     int
	NoTable bool
}

func (e *MissingSourceError) Error() string {
	if e.NoTable {
		return "evaluation requires an attached source table"
	}
	return fmt.Sprintf("major key %d not found in source table", e.Key)
}
