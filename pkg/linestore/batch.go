// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package linestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/antgroup/signalign/pkg/align"
	"github.com/antgroup/signalign/pkg/textline"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrAmbiguousLine = errors.New("line sets both text and candidates")
)

type SignSpec struct {
	ID   uint64 `toml:"id"`
	Char string `toml:"char"`
}

type SequenceSpec struct {
	Signs []SignSpec `toml:"signs"`
}

// LineSpec describes one side of a pair either in variant notation or as
// explicit candidate sequences.
type LineSpec struct {
	Text       string         `toml:"text,omitempty"`
	Candidates []SequenceSpec `toml:"candidates,omitempty"`
}

func (s *LineSpec) Line(opts *textline.Options) (*align.Line, error) {
	if len(s.Candidates) == 0 {
		return textline.Parse(s.Text, opts)
	}
	if len(s.Text) != 0 {
		return nil, ErrAmbiguousLine
	}
	candidates := make([]*align.Sequence, 0, len(s.Candidates))
	for _, c := range s.Candidates {
		signs := make([]align.Sign, 0, len(c.Signs))
		for _, sign := range c.Signs {
			signs = append(signs, align.Sign{ID: align.SignID(sign.ID), Char: sign.Char})
		}
		candidates = append(candidates, align.NewSequence(signs...))
	}
	return align.NewLine(candidates...)
}

type Pair struct {
	Name   string   `toml:"name"`
	Source LineSpec `toml:"source"`
	Target LineSpec `toml:"target"`
}

// Lines resolves both sides of the pair.
func (p *Pair) Lines(opts *textline.Options) (*align.Line, *align.Line, error) {
	source, err := p.Source.Line(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("pair '%s' source: %w", p.Name, err)
	}
	target, err := p.Target.Line(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("pair '%s' target: %w", p.Name, err)
	}
	return source, target, nil
}

type Batch struct {
	Pairs []Pair `toml:"pair"`
}

func DecodeBatch(r io.Reader) (*Batch, error) {
	b := &Batch{}
	if _, err := toml.NewDecoder(r).Decode(b); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadBatch reads a batch file; names ending in .zst are zstd compressed.
func LoadBatch(file string) (*Batch, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	var r io.Reader = fd
	if strings.HasSuffix(file, ".zst") {
		dec, err := zstd.NewReader(fd)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream %s: %w", file, err)
		}
		defer dec.Close()
		r = dec
	}
	b, err := DecodeBatch(r)
	if err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", file, err)
	}
	return b, nil
}
