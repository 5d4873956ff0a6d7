// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package textline

import (
	"context"
	"testing"

	"github.com/antgroup/signalign/pkg/align"
	"github.com/stretchr/testify/require"
)

func candidates(l *align.Line) []string {
	out := make([]string, 0, len(l.Candidates()))
	for _, c := range l.Candidates() {
		out = append(out, c.String())
	}
	return out
}

func TestParsePlain(t *testing.T) {
	l, err := Parse("abc", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"abc"}, candidates(l))
	s := l.Candidates()[0]
	require.Equal(t, align.SignID(1), s.IDAt(0))
	require.Equal(t, align.SignID(3), s.IDAt(2))
}

func TestParseVariants(t *testing.T) {
	l, err := Parse("ab{c|d}e{|f}", &Options{FirstID: 100})
	require.NoError(t, err)
	require.Equal(t, []string{"abce", "abcef", "abde", "abdef"}, candidates(l))
	first, third := l.Candidates()[0], l.Candidates()[2]
	// shared signs keep their id in every candidate
	require.Equal(t, first.IDAt(0), third.IDAt(0))
	require.Equal(t, first.IDAt(3), third.IDAt(3))
	require.NotEqual(t, first.IDAt(2), third.IDAt(2))
	c, err := l.Char(first.IDAt(2))
	require.NoError(t, err)
	require.Equal(t, "c", c)
}

func TestParseEscapesAndGraphemes(t *testing.T) {
	l, err := Parse(`a\{\|\\\}e`+"\u0301", nil)
	require.NoError(t, err)
	seq := l.Candidates()[0]
	require.Equal(t, []string{"a", "{", "|", "\\", "}", "\u00e9"}, seq.Tokens())
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"a{b", "a}b", "a|b", "{a{b}}", `ab\`} {
		_, err := Parse(text, nil)
		require.True(t, IsSyntaxError(err), text)
	}
	_, err := Parse("{a|b}{a|b}{a|b}", &Options{MaxCandidates: 4})
	require.ErrorIs(t, err, ErrTooManyCandidates)
}

func TestParsedLinesAlign(t *testing.T) {
	source, err := Parse("ABC", nil)
	require.NoError(t, err)
	target, err := Parse("AB{Q|}C", nil)
	require.NoError(t, err)
	m, err := align.NewMatcher(nil)
	require.NoError(t, err)
	r, err := m.Match(context.Background(), source, target)
	require.NoError(t, err)
	require.Equal(t, 1, r.Target)
	require.Zero(t, r.Penalty)
}
