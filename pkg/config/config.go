// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/antgroup/signalign/modules/diferenco"
	"github.com/antgroup/signalign/pkg/align"
	"github.com/go-sql-driver/mysql"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxCandidates = 256
	maxConfigSize        = 4 << 20
)

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Penalty overrides the alignment weights. All four weights set to zero is
// rejected: the matcher reads zero weights as the defaults.
type Penalty struct {
	Deletion     int `toml:"deletion"`
	Insertion    int `toml:"insertion"`
	Substitution int `toml:"substitution"`
	Match        int `toml:"match"`
}

type Optimizer struct {
	CompactRuns      bool `toml:"compact_runs"`
	PropagateMatches bool `toml:"propagate_matches"`
}

type Cache struct {
	NumCounters int64 `toml:"num_counters"`
	MaxCost     int64 `toml:"max_cost"`
	BufferItems int64 `toml:"buffer_items"`
}

type Database struct {
	Name    string   `toml:"name"`
	User    string   `toml:"user"`
	Host    string   `toml:"host"`
	Port    int      `toml:"port"`
	Passwd  string   `toml:"passwd"`
	Timeout Duration `toml:"timeout,omitempty"`
}

func (d *Database) MakeConfig() *mysql.Config {
	if d.Timeout.Duration == 0 {
		d.Timeout.Duration = 30 * time.Second
	}
	port := d.Port
	if port == 0 {
		port = 3306
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Passwd
	cfg.DBName = d.Name
	cfg.Net = "tcp"
	cfg.Addr = d.Host + ":" + strconv.Itoa(port)
	cfg.Timeout = d.Timeout.Duration
	cfg.ReadTimeout = d.Timeout.Duration
	cfg.WriteTimeout = d.Timeout.Duration
	cfg.ParseTime = true
	cfg.InterpolateParams = true
	return cfg
}

type Config struct {
	Algorithm     string    `toml:"algorithm"`
	Concurrency   int       `toml:"concurrency"`
	Timeout       Duration  `toml:"timeout"`
	MaxCandidates int       `toml:"max_candidates"`
	Penalty       Penalty   `toml:"penalty"`
	Optimizer     Optimizer `toml:"optimizer"`
	Cache         *Cache    `toml:"cache,omitempty"`
	DB            *Database `toml:"database,omitempty"`
}

func Default() *Config {
	return &Config{
		Algorithm:     diferenco.Myers.String(),
		Concurrency:   1,
		Timeout:       Duration{Duration: DefaultTimeout},
		MaxCandidates: DefaultMaxCandidates,
		Penalty: Penalty{
			Deletion:     align.DefaultWeights.Deletion,
			Insertion:    align.DefaultWeights.Insertion,
			Substitution: align.DefaultWeights.Substitution,
			Match:        align.DefaultWeights.Match,
		},
	}
}

// NewExpandReader opens file; with expandEnv $VAR and ${VAR} are replaced
// from the environment.
func NewExpandReader(file string, expandEnv bool) (io.ReadCloser, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	if !expandEnv {
		return fd, nil
	}
	defer fd.Close()
	buf, err := io.ReadAll(io.LimitReader(fd, maxConfigSize))
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(os.ExpandEnv(string(buf)))), nil
}

// Load decodes file over the defaults. An empty file name returns defaults.
func Load(file string, expandEnv bool) (*Config, error) {
	c := Default()
	if len(file) == 0 {
		return c, nil
	}
	r, err := NewExpandReader(file, expandEnv)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", file, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", file, err)
	}
	return c, nil
}

func (c *Config) Weights() align.Weights {
	return align.Weights{
		Deletion:     c.Penalty.Deletion,
		Insertion:    c.Penalty.Insertion,
		Substitution: c.Penalty.Substitution,
		Match:        c.Penalty.Match,
	}
}

func (c *Config) Validate() error {
	if _, err := diferenco.AlgorithmFromName(c.Algorithm); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative: %d", c.Concurrency)
	}
	w := c.Weights()
	if w == (align.Weights{}) {
		return fmt.Errorf("%w: all penalty weights are zero", align.ErrInvalidWeights)
	}
	return w.Validate()
}

// MatcherOptions builds matcher options; when a cache is configured the
// returned closer releases it.
func (c *Config) MatcherOptions() (*align.Options, func(), error) {
	a, err := diferenco.AlgorithmFromName(c.Algorithm)
	if err != nil {
		return nil, nil, err
	}
	opts := &align.Options{
		Weights:          c.Weights(),
		CompactRuns:      c.Optimizer.CompactRuns,
		PropagateMatches: c.Optimizer.PropagateMatches,
		Concurrency:      c.Concurrency,
	}
	if c.Cache == nil {
		opts.Differ = diferenco.NewDiffer(a)
		return opts, func() {}, nil
	}
	d, err := diferenco.NewCachedDiffer(a, &diferenco.CacheOptions{
		NumCounters: c.Cache.NumCounters,
		MaxCost:     c.Cache.MaxCost,
		BufferItems: c.Cache.BufferItems,
	})
	if err != nil {
		return nil, nil, err
	}
	opts.Differ = d
	return opts, d.Close, nil
}
