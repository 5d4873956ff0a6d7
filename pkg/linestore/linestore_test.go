// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package linestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antgroup/signalign/pkg/align"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const batchText = `
[[pair]]
name = "col. 1 l. 3"
source = { text = "ABC" }
target = { text = "AB{X|}C" }

[[pair]]
name = "explicit"

[[pair.source.candidates]]
signs = [{ id = 7, char = "א" }, { id = 8, char = "ב" }]

[[pair.target.candidates]]
signs = [{ id = 70, char = "א" }]
`

func TestDecodeBatch(t *testing.T) {
	b, err := DecodeBatch(strings.NewReader(batchText))
	require.NoError(t, err)
	require.Len(t, b.Pairs, 2)

	source, target, err := b.Pairs[0].Lines(nil)
	require.NoError(t, err)
	require.Len(t, source.Candidates(), 1)
	require.Len(t, target.Candidates(), 2)

	source, target, err = b.Pairs[1].Lines(nil)
	require.NoError(t, err)
	require.Equal(t, "אב", source.Candidates()[0].String())
	require.Equal(t, align.SignID(8), source.Candidates()[0].IDAt(1))
	c, err := target.Char(70)
	require.NoError(t, err)
	require.Equal(t, "א", c)
}

func TestLoadBatchZstd(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pairs.toml.zst")
	fd, err := os.Create(p)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(fd)
	require.NoError(t, err)
	_, err = enc.Write([]byte(batchText))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, fd.Close())

	b, err := LoadBatch(p)
	require.NoError(t, err)
	require.Len(t, b.Pairs, 2)
	require.Equal(t, "col. 1 l. 3", b.Pairs[0].Name)
}

func TestLineSpecAmbiguous(t *testing.T) {
	s := &LineSpec{Text: "a", Candidates: []SequenceSpec{{}}}
	_, err := s.Line(nil)
	require.ErrorIs(t, err, ErrAmbiguousLine)
}

func TestAssembleLine(t *testing.T) {
	l, err := assembleLine(3, []signRow{
		{Sequence: 2, Position: 0, ID: 1, Char: "a"},
		{Sequence: 1, Position: 1, ID: 2, Char: "b"},
		{Sequence: 1, Position: 0, ID: 1, Char: "a"},
		{Sequence: 2, Position: 1, ID: 3, Char: "c"},
	})
	require.NoError(t, err)
	require.Len(t, l.Candidates(), 2)
	require.Equal(t, "ab", l.Candidates()[0].String())
	require.Equal(t, "ac", l.Candidates()[1].String())

	_, err = assembleLine(4, nil)
	require.True(t, IsNotFound(err))

	_, err = assembleLine(5, []signRow{{Sequence: 1, Position: 0, ID: 1, Char: "a"}, {Sequence: 1, Position: 0, ID: 2, Char: "b"}})
	require.Error(t, err)
}
