// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SignID identifies a sign interpretation within its owning Line.
type SignID uint64

type Sign struct {
	ID   SignID
	Char string
}

// Sequence is one concrete rendition of a line. It is immutable.
type Sequence struct {
	signs  []Sign
	tokens []string
}

func NewSequence(signs ...Sign) *Sequence {
	s := &Sequence{
		signs:  make([]Sign, len(signs)),
		tokens: make([]string, len(signs)),
	}
	copy(s.signs, signs)
	for i, sign := range signs {
		s.tokens[i] = sign.Char
	}
	return s
}

func (s *Sequence) Len() int {
	return len(s.signs)
}

func (s *Sequence) IDAt(i int) SignID {
	return s.signs[i].ID
}

func (s *Sequence) CharAt(i int) string {
	return s.signs[i].Char
}

// Tokens returns the per-position characters used as diff input. The slice
// is shared and must not be modified.
func (s *Sequence) Tokens() []string {
	return s.tokens
}

// String returns the flattened characters in position order.
func (s *Sequence) String() string {
	return strings.Join(s.tokens, "")
}

// Line owns the candidate sequences for one logical text region together with
// the id to character lookup shared by all of them.
type Line struct {
	candidates []*Sequence
	chars      map[SignID]string
}

func NewLine(candidates ...*Sequence) (*Line, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	l := &Line{
		candidates: make([]*Sequence, 0, len(candidates)),
		chars:      make(map[SignID]string),
	}
	for _, seq := range candidates {
		if seq == nil {
			return nil, fmt.Errorf("nil candidate sequence: %w", ErrNoCandidates)
		}
		for _, sign := range seq.signs {
			if c, ok := l.chars[sign.ID]; ok && c != sign.Char {
				return nil, fmt.Errorf("sign %d is both %q and %q: %w", sign.ID, c, sign.Char, ErrConflictingSign)
			}
			l.chars[sign.ID] = sign.Char
		}
		l.candidates = append(l.candidates, seq)
	}
	return l, nil
}

// Candidates returns the candidate sequences in their stable order.
func (l *Line) Candidates() []*Sequence {
	if l == nil {
		return nil
	}
	return l.candidates
}

func (l *Line) Char(id SignID) (string, error) {
	if l != nil {
		if c, ok := l.chars[id]; ok {
			return c, nil
		}
	}
	return "", &ErrSignNotFound{ID: id}
}

// ChangeID pairs an optional source sign with an optional target sign.
// Source only is a deletion relative to the target, target only is an
// insertion relative to the source.
type ChangeID struct {
	Source    SignID
	Target    SignID
	HasSource bool
	HasTarget bool
}

func Pair(source, target SignID) ChangeID {
	return ChangeID{Source: source, Target: target, HasSource: true, HasTarget: true}
}

func Deleted(source SignID) ChangeID {
	return ChangeID{Source: source, HasSource: true}
}

func Inserted(target SignID) ChangeID {
	return ChangeID{Target: target, HasTarget: true}
}

func (c ChangeID) IsPaired() bool {
	return c.HasSource && c.HasTarget
}

func (c ChangeID) IsDeletion() bool {
	return c.HasSource && !c.HasTarget
}

func (c ChangeID) IsInsertion() bool {
	return !c.HasSource && c.HasTarget
}

func (c ChangeID) IsEmpty() bool {
	return !c.HasSource && !c.HasTarget
}

func (c ChangeID) String() string {
	s, t := "-", "-"
	if c.HasSource {
		s = fmt.Sprint(c.Source)
	}
	if c.HasTarget {
		t = fmt.Sprint(c.Target)
	}
	return "(" + s + "," + t + ")"
}

type changeJSON struct {
	Source *SignID `json:"source"`
	Target *SignID `json:"target"`
}

func (c ChangeID) MarshalJSON() ([]byte, error) {
	var v changeJSON
	if c.HasSource {
		v.Source = &c.Source
	}
	if c.HasTarget {
		v.Target = &c.Target
	}
	return json.Marshal(&v)
}

func (c *ChangeID) UnmarshalJSON(data []byte) error {
	var v changeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = ChangeID{}
	if v.Source != nil {
		c.Source, c.HasSource = *v.Source, true
	}
	if v.Target != nil {
		c.Target, c.HasTarget = *v.Target, true
	}
	return nil
}
