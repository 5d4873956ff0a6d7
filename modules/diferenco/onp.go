//	Copyright (c) 2014-2021 Akinori Hattori <hattya@gmail.com>
//
//	SPDX-License-Identifier: MIT
//
//	SOURCE: https://github.com/hattya/go.diff
//
// The O(NP) search is based upon S. Wu, U. Manber, G. Myers, and W. Miller,
// "An O(NP) Sequence Comparison Algorithm" August 1989.

package diferenco

import "context"

type onpCtx[E comparable] struct {
	L1, L2 []E
	P1, P2 int
	M, N   int
	Δ      int
	fp     []point
	xchg   bool
}

type point struct {
	y   int
	lcs *lcs
}

type lcs struct {
	x, y int
	n    int
	next *lcs
}

func newOnpCtx[E comparable](L1 []E, P1 int, L2 []E, P2 int) *onpCtx[E] {
	c := &onpCtx[E]{L1: L1, L2: L2, P1: P1, P2: P2}
	if m, n := len(L1), len(L2); n >= m {
		c.M, c.N = m, n
	} else {
		c.M, c.N = n, m
		c.xchg = true
	}
	c.Δ = c.N - c.M
	return c
}

func (c *onpCtx[E]) compare(ctx context.Context) ([]Change, error) {
	c.fp = make([]point, (c.M+1)+(c.N+1)+1)
	for i := range c.fp {
		c.fp[i].y = -1
	}
	Δ := c.Δ + (c.M + 1)
	for p := 0; c.fp[Δ].y != c.N; p++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for k := -p; k < c.Δ; k++ {
			c.snake(k)
		}
		for k := c.Δ + p; k > c.Δ; k-- {
			c.snake(k)
		}
		c.snake(c.Δ)
	}
	head, n := reverseLcs(c.fp[Δ].lcs)
	changes := make([]Change, 0, n+1)
	var x, y int
	for ; head != nil; head = head.next {
		if x < head.x || y < head.y {
			changes = append(changes, c.change(x, y, head.x-x, head.y-y))
		}
		x = head.x + head.n
		y = head.y + head.n
	}
	if x < c.M || y < c.N {
		changes = append(changes, c.change(x, y, c.M-x, c.N-y))
	}
	return changes, nil
}

// change maps a region in search coordinates back onto L1 and L2.
func (c *onpCtx[E]) change(x, y, dx, dy int) Change {
	if !c.xchg {
		return Change{P1: x + c.P1, P2: y + c.P2, Del: dx, Ins: dy}
	}
	return Change{P1: y + c.P1, P2: x + c.P2, Del: dy, Ins: dx}
}

func (c *onpCtx[E]) equal(x, y int) bool {
	if !c.xchg {
		return c.L1[x] == c.L2[y]
	}
	return c.L1[y] == c.L2[x]
}

func (c *onpCtx[E]) snake(k int) {
	var y int
	var prev *lcs
	kk := k + (c.M + 1)

	h := &c.fp[kk-1]
	v := &c.fp[kk+1]
	if h.y+1 >= v.y {
		y = h.y + 1
		prev = h.lcs
	} else {
		y = v.y
		prev = v.lcs
	}

	x := y - k
	n := 0
	for x < c.M && y < c.N && c.equal(x, y) {
		x++
		y++
		n++
	}

	p := &c.fp[kk]
	p.y = y
	if n == 0 {
		p.lcs = prev
		return
	}
	p.lcs = &lcs{x: x - n, y: y - n, n: n, next: prev}
}

func reverseLcs(curr *lcs) (next *lcs, n int) {
	for ; curr != nil; n++ {
		curr.next, next, curr = next, curr, curr.next
	}
	return
}

// OnpDiff returns the differences between L1 and L2 using the O(NP) search.
func OnpDiff[E comparable](ctx context.Context, L1, L2 []E) ([]Change, error) {
	prefix := commonPrefixLength(L1, L2)
	L1 = L1[prefix:]
	L2 = L2[prefix:]
	suffix := commonSuffixLength(L1, L2)
	L1 = L1[:len(L1)-suffix]
	L2 = L2[:len(L2)-suffix]
	if len(L1) == 0 && len(L2) == 0 {
		return []Change{}, nil
	}
	return newOnpCtx(L1, prefix, L2, prefix).compare(ctx)
}
