// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/antgroup/signalign/modules/diferenco"
	"github.com/antgroup/signalign/pkg/align"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "signalign.toml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("", false)
	require.NoError(t, err)
	require.Equal(t, align.DefaultWeights, c.Weights())
	require.False(t, c.Optimizer.CompactRuns)
	require.False(t, c.Optimizer.PropagateMatches)
	require.Equal(t, DefaultTimeout, c.Timeout.Duration)
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
algorithm = "onp"
concurrency = 4
timeout = "5s"

[penalty]
insertion = 3

[optimizer]
compact_runs = true

[cache]
num_counters = 1000
max_cost = 4096
buffer_items = 64
`)
	c, err := Load(p, false)
	require.NoError(t, err)
	require.Equal(t, "onp", c.Algorithm)
	require.Equal(t, 4, c.Concurrency)
	require.Equal(t, 5*time.Second, c.Timeout.Duration)
	require.Equal(t, align.Weights{Deletion: 10, Insertion: 3, Substitution: 1}, c.Weights())
	require.True(t, c.Optimizer.CompactRuns)

	opts, closer, err := c.MatcherOptions()
	require.NoError(t, err)
	defer closer()
	require.IsType(t, &diferenco.CachedDiffer{}, opts.Differ)
	require.True(t, opts.CompactRuns)
	require.Equal(t, 4, opts.Concurrency)
}

func TestLoadExpandEnv(t *testing.T) {
	t.Setenv("SIGNALIGN_DB_PASSWD", "secret")
	p := writeConfig(t, `
[database]
host = "127.0.0.1"
name = "sqe"
user = "reader"
passwd = "${SIGNALIGN_DB_PASSWD}"
`)
	c, err := Load(p, true)
	require.NoError(t, err)
	require.NotNil(t, c.DB)
	cfg := c.DB.MakeConfig()
	require.Equal(t, "secret", cfg.Passwd)
	require.Equal(t, "127.0.0.1:3306", cfg.Addr)
	require.True(t, cfg.ParseTime)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, `algorithm = "histogram"`), false)
	require.ErrorIs(t, err, diferenco.ErrUnsupportedAlgorithm)
	_, err = Load(writeConfig(t, "[penalty]\ndeletion = -2\n"), false)
	require.ErrorIs(t, err, align.ErrInvalidWeights)
	_, err = Load(writeConfig(t, "[penalty]\ndeletion = 0\ninsertion = 0\nsubstitution = 0\nmatch = 0\n"), false)
	require.ErrorIs(t, err, align.ErrInvalidWeights)
	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"), false)
	require.ErrorIs(t, err, os.ErrNotExist)
}
