// Copyright (c) Arista Networks, Inc. 2022
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hashtable

import (
	"errors"
	"fmt"
	"io"

	"github.com/phuslu/log"
	yaml "gopkg.in/yaml.v3"
)

// Config configures a Table. Zero fields take their defaults.
type Config struct {
	// Size is the requested bucket count. It is rounded up to a
	// prime. Defaults to DefaultSize.
	Size int `yaml:"size"`

	// GrowthRatio is the minimum buckets-per-key ratio a table keeps
	// before growing. Defaults to DefaultGrowthRatio.
	GrowthRatio int `yaml:"growth_ratio"`

	// MaxBuckets bounds growth. Insert fails with ErrAllocation
	// rather than grow past it. Defaults to DefaultMaxBuckets.
	MaxBuckets int `yaml:"max_buckets"`

	// Hash names a registered strategy, see StrategyByName. It is
	// ignored when Strategy is set.
	Hash string `yaml:"hash"`

	Strategy Strategy `yaml:"-"`

	// Logger, if set, receives a debug event for every rehash.
	Logger *log.Logger `yaml:"-"`
}

// ReadConfig decodes a YAML table config from r. Unknown fields are
// rejected.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.withDefaults(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) withDefaults() (Config, error) {
	if c.Size < 0 {
		return c, fmt.Errorf("%w: negative size %d", ErrInvalidConfig, c.Size)
	}
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.GrowthRatio < 0 {
		return c, fmt.Errorf("%w: negative growth ratio %d",
			ErrInvalidConfig, c.GrowthRatio)
	}
	if c.GrowthRatio == 0 {
		c.GrowthRatio = DefaultGrowthRatio
	}
	if c.MaxBuckets < 0 {
		return c, fmt.Errorf("%w: negative max buckets %d",
			ErrInvalidConfig, c.MaxBuckets)
	}
	if c.MaxBuckets == 0 {
		c.MaxBuckets = DefaultMaxBuckets
	}
	if p := NextPrime(uint64(c.Size)); p > uint64(c.MaxBuckets) {
		return c, fmt.Errorf("%w: size %d exceeds max buckets %d",
			ErrInvalidConfig, p, c.MaxBuckets)
	}
	if c.Strategy.Hash == nil && c.Strategy.Equal == nil && c.Hash != "" {
		s, err := StrategyByName(c.Hash)
		if err != nil {
			return c, err
		}
		c.Strategy = s
	}
	c.Strategy = c.Strategy.withDefaults()
	return c, nil
}
