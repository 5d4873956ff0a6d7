package diferenco

import (
	"context"
	"slices"
)

// Myers: An O(ND) Difference Algorithm and Its Variations
// http://www.xmailserver.org/diff2.pdf

type editKind int8

const (
	editEqual editKind = iota
	editDelete
	editInsert
)

// MyersDiff returns a shortest edit script between seq1 and seq2. The common
// prefix and suffix are trimmed before the search.
func MyersDiff[E comparable](ctx context.Context, seq1, seq2 []E) ([]Change, error) {
	prefix := commonPrefixLength(seq1, seq2)
	seq1 = seq1[prefix:]
	seq2 = seq2[prefix:]
	suffix := commonSuffixLength(seq1, seq2)
	seq1 = seq1[:len(seq1)-suffix]
	seq2 = seq2[:len(seq2)-suffix]
	// These are common special cases.
	if len(seq1) == 0 && len(seq2) == 0 {
		return []Change{}, nil
	}
	if len(seq1) == 0 {
		return []Change{{P1: prefix, P2: prefix, Ins: len(seq2)}}, nil
	}
	if len(seq2) == 0 {
		return []Change{{P1: prefix, P2: prefix, Del: len(seq1)}}, nil
	}
	edits, err := myersEdits(ctx, seq1, seq2)
	if err != nil {
		return nil, err
	}
	return groupEdits(edits, prefix), nil
}

// myersEdits runs the greedy forward search, keeping a snapshot of V for each
// d so the path can be walked back.
func myersEdits[E comparable](ctx context.Context, a, b []E) ([]editKind, error) {
	n, m := len(a), len(b)
	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)
	trace := make([][]int, 0, 16)
outer:
	for d := 0; d <= limit; d++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		trace = append(trace, slices.Clone(v))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break outer
			}
		}
	}
	edits := make([]editKind, 0, n+m)
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		vd := trace[d]
		k := x - y
		var prevK int
		if k == -d || (k != d && vd[offset+k-1] < vd[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[offset+prevK]
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			edits = append(edits, editEqual)
			x--
			y--
		}
		if d == 0 {
			break
		}
		if x == prevX {
			edits = append(edits, editInsert)
		} else {
			edits = append(edits, editDelete)
		}
		x, y = prevX, prevY
	}
	slices.Reverse(edits)
	return edits, nil
}

// groupEdits folds consecutive non-equal edits into change regions.
func groupEdits(edits []editKind, base int) []Change {
	changes := make([]Change, 0, 10)
	i, j := base, base
	var current *Change
	for _, e := range edits {
		switch e {
		case editEqual:
			if current != nil {
				changes = append(changes, *current)
				current = nil
			}
			i++
			j++
			continue
		}
		if current == nil {
			current = &Change{P1: i, P2: j}
		}
		if e == editDelete {
			current.Del++
			i++
			continue
		}
		current.Ins++
		j++
	}
	if current != nil {
		changes = append(changes, *current)
	}
	return changes
}
