// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textline builds lines from a compact variant notation:
//
//	plain{a|bc|}text
//
// Characters outside braces are shared by every candidate. A brace group
// lists alternative readings separated by '|'; an alternative may be empty.
// A backslash escapes '{', '}', '|' and '\'. Groups do not nest.
package textline

import (
	"errors"
	"fmt"

	"github.com/antgroup/signalign/modules/diferenco"
	"github.com/antgroup/signalign/pkg/align"
)

const (
	DefaultMaxCandidates = 256
)

var (
	ErrTooManyCandidates = errors.New("too many candidate sequences")
)

type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Reason)
}

func IsSyntaxError(err error) bool {
	var e *SyntaxError
	return errors.As(err, &e)
}

type Options struct {
	// FirstID is the id given to the first sign; zero starts at 1.
	FirstID align.SignID
	// MaxCandidates bounds the cartesian product of groups; zero uses
	// DefaultMaxCandidates.
	MaxCandidates int
}

// segment is either shared text (one alternative) or a variant group.
type segment struct {
	alternatives [][]align.Sign
}

// Parse builds a line from text in variant notation. Signs are the grapheme
// clusters of the NFC-normalized text; ids are assigned in reading order.
func Parse(text string, opts *Options) (*align.Line, error) {
	if opts == nil {
		opts = &Options{}
	}
	maxCandidates := opts.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	next := opts.FirstID
	if next == 0 {
		next = 1
	}
	raw, err := scan(text)
	if err != nil {
		return nil, err
	}
	segments := make([]segment, 0, len(raw))
	total := 1
	for _, r := range raw {
		s := segment{alternatives: make([][]align.Sign, 0, len(r))}
		for _, alt := range r {
			tokens := diferenco.Graphemes(alt)
			signs := make([]align.Sign, 0, len(tokens))
			for _, t := range tokens {
				signs = append(signs, align.Sign{ID: next, Char: t})
				next++
			}
			s.alternatives = append(s.alternatives, signs)
		}
		total *= len(s.alternatives)
		if total > maxCandidates {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyCandidates, maxCandidates)
		}
		segments = append(segments, s)
	}
	return align.NewLine(expand(segments)...)
}

// expand returns the cartesian product of the segment alternatives with the
// first group varying slowest.
func expand(segments []segment) []*align.Sequence {
	prefixes := [][]align.Sign{{}}
	for _, s := range segments {
		grown := make([][]align.Sign, 0, len(prefixes)*len(s.alternatives))
		for _, p := range prefixes {
			for _, alt := range s.alternatives {
				signs := make([]align.Sign, 0, len(p)+len(alt))
				signs = append(signs, p...)
				signs = append(signs, alt...)
				grown = append(grown, signs)
			}
		}
		prefixes = grown
	}
	candidates := make([]*align.Sequence, 0, len(prefixes))
	for _, signs := range prefixes {
		candidates = append(candidates, align.NewSequence(signs...))
	}
	return candidates
}

// scan splits text into segments; shared text yields a single alternative.
func scan(text string) ([][]string, error) {
	var segments [][]string
	var buf []byte
	var group []string
	inGroup := false
	groupStart := 0
	flushShared := func() {
		if len(buf) != 0 {
			segments = append(segments, []string{string(buf)})
			buf = buf[:0]
		}
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\\':
			if i+1 >= len(text) {
				return nil, &SyntaxError{Offset: i, Reason: "dangling escape"}
			}
			i++
			buf = append(buf, text[i])
		case '{':
			if inGroup {
				return nil, &SyntaxError{Offset: i, Reason: "nested variant group"}
			}
			flushShared()
			inGroup = true
			groupStart = i
			group = group[:0]
		case '|':
			if !inGroup {
				return nil, &SyntaxError{Offset: i, Reason: "'|' outside variant group"}
			}
			group = append(group, string(buf))
			buf = buf[:0]
		case '}':
			if !inGroup {
				return nil, &SyntaxError{Offset: i, Reason: "unbalanced '}'"}
			}
			group = append(group, string(buf))
			buf = buf[:0]
			segments = append(segments, append([]string(nil), group...))
			inGroup = false
		default:
			buf = append(buf, c)
		}
	}
	if inGroup {
		return nil, &SyntaxError{Offset: groupStart, Reason: "unterminated variant group"}
	}
	flushShared()
	return segments, nil
}
