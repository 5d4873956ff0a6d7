package diferenco

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// https://neil.fraser.name/writing/diff/
// https://blog.robertelder.org/diff-algorithm/

type Algorithm int

const (
	Unspecified Algorithm = iota
	Myers
	ONP
)

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
)

var (
	algorithmValueMap = map[string]Algorithm{
		"myers": Myers,
		"onp":   ONP,
	}
	algorithmNameMap = map[Algorithm]string{
		Unspecified: "unspecified",
		Myers:       "myers",
		ONP:         "onp",
	}
)

func (a Algorithm) String() string {
	n, ok := algorithmNameMap[a]
	if ok {
		return n
	}
	return "unspecified"
}

func AlgorithmFromName(s string) (Algorithm, error) {
	if len(s) == 0 {
		return Unspecified, nil
	}
	if a, ok := algorithmValueMap[strings.ToLower(s)]; ok {
		return a, nil
	}
	return Unspecified, fmt.Errorf("algorithm '%s': %w", s, ErrUnsupportedAlgorithm)
}

// Change is one region of disagreement between two sequences. Regions are
// disjoint and ascending; the elements between two regions are equal.
type Change struct {
	P1  int // before: position in before
	P2  int // after: position in after
	Del int // number of elements that deleted from a
	Ins int // number of elements that inserted into b
}

// commonPrefixLength returns the length of the common prefix of two T slices.
func commonPrefixLength[E comparable](a, b []E) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// commonSuffixLength returns the length of the common suffix of two T slices.
func commonSuffixLength[E comparable](a, b []E) int {
	i1, i2 := len(a), len(b)
	n := min(i1, i2)
	i := 0
	for i < n && a[i1-1-i] == b[i2-1-i] {
		i++
	}
	return i
}

// Diff computes a minimal edit script between L1 and L2 and returns it as
// ascending change regions. Unspecified selects Myers.
func Diff[E comparable](ctx context.Context, L1, L2 []E, a Algorithm) ([]Change, error) {
	switch a {
	case Unspecified, Myers:
		return MyersDiff(ctx, L1, L2)
	case ONP:
		return OnpDiff(ctx, L1, L2)
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// Graphemes splits NFC-normalized text into user-perceived characters.
func Graphemes(s string) []string {
	s = norm.NFC.String(s)
	tokens := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		tokens = append(tokens, g.Str())
	}
	return tokens
}

// DiffStrings diffs two strings by grapheme cluster; offsets in the result
// are cluster indexes, not byte offsets.
func DiffStrings(ctx context.Context, s1, s2 string, a Algorithm) ([]Change, error) {
	return Diff(ctx, Graphemes(s1), Graphemes(s2), a)
}

// Differ computes change regions between two token sequences.
type Differ interface {
	Diff(ctx context.Context, a, b []string) ([]Change, error)
}

type differ struct {
	a Algorithm
}

func NewDiffer(a Algorithm) Differ {
	return &differ{a: a}
}

func (d *differ) Diff(ctx context.Context, a, b []string) ([]Change, error) {
	return Diff(ctx, a, b, d.a)
}

var (
	_ Differ = &differ{}
)
