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
	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Legal values for Config.Major.
const (
	MajorItems = "items"
	MajorUsers = "users"
)

// Config is the configuration for loading an interaction corpus. The major
// dimension is the aggregation key of the interaction table; the other
// dimension supplies the vector dimensionality of produced batches.
type Config struct {
	// DataDir is the directory holding the interaction files.
	DataDir string `mapstructure:"data_dir" validate:"required"`
	// BatchSize is the number of major keys per training batch.
	BatchSize int `mapstructure:"batch_size" validate:"gt=0"`
	// ItemIdInd, UserIdInd and RatingInd are the positions of the item ID,
	// user ID and rating within a split line.
	ItemIdInd int    `mapstructure:"itemIdInd" validate:"gte=0"`
	UserIdInd int    `mapstructure:"userIdInd" validate:"gte=0"`
	RatingInd int    `mapstructure:"ratingInd" validate:"gte=0"`
	Major     string `mapstructure:"major" validate:"oneof=items users"`
	Extension string `mapstructure:"extension" validate:"required"`
	Delimiter string `mapstructure:"delimiter" validate:"required"`
	// SrcDataDir is an optional second corpus loaded with the same identifier
	// maps and used as the source table of evaluation iteration.
	SrcDataDir string `mapstructure:"src_data_dir"`
	// RandomSeed seeds the epoch shuffle. Zero means seed from the clock.
	RandomSeed int64 `mapstructure:"random_seed"`
}

// NewConfig creates a Config with default format settings: tab-separated
// "item user rating" lines in ".txt" files, items as the major dimension.
func NewConfig(dataDir string, batchSize int) *Config {
	return &Config{
		DataDir:   dataDir,
		BatchSize: batchSize,
		ItemIdInd: 0,
		UserIdInd: 1,
		RatingInd: 2,
		Major:     MajorItems,
		Extension: ".txt",
		Delimiter: "\t",
	}
}

var validate = validator.New()

// Validate checks the configuration and returns a ConfigError when a value is
// out of range.
func (config *Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		return errors.Trace(&ConfigError{Message: err.Error()})
	}
	return nil
}

// LoadConfig loads and validates a configuration file. The format is decided
// by the file extension, TOML being the conventional choice.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("itemIdInd", 0)
	v.SetDefault("userIdInd", 1)
	v.SetDefault("ratingInd", 2)
	v.SetDefault("major", MajorItems)
	v.SetDefault("extension", ".txt")
	v.SetDefault("delimiter", "\t")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	config := new(Config)
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return config, nil
}
