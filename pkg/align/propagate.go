// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"context"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/sets/hashset"
)

// PropagateMatches moves a correct character match that the diff placed one
// slot away. For adjacent changes i and i+1 where i+1 is paired:
//
//   - i is a deletion and its source character equals the target of i+1:
//     the target moves back into i, i+1 becomes a deletion.
//   - i is an insertion and its target character equals the source of i+1:
//     the source moves back into i, i+1 becomes an insertion.
//
// Swaps are repeated until no boundary qualifies. The input is not modified.
func PropagateMatches(ctx context.Context, changes []ChangeID, source, target *Line) ([]ChangeID, error) {
	out := make([]ChangeID, len(changes))
	copy(out, changes)
	if len(out) < 2 {
		return out, nil
	}
	queue := linkedlistqueue.New()
	queued := hashset.New()
	push := func(i int) {
		if i < 0 || i >= len(out)-1 || queued.Contains(i) {
			return
		}
		queued.Add(i)
		queue.Enqueue(i)
	}
	for i := 0; i < len(out)-1; i++ {
		push(i)
	}
	for !queue.Empty() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, _ := queue.Dequeue()
		i := v.(int)
		queued.Remove(i)
		swapped, err := swapMatch(out, i, source, target)
		if err != nil {
			return nil, err
		}
		if swapped {
			push(i - 1)
			push(i + 1)
		}
	}
	return out, nil
}

// swapMatch applies the propagation rule to the boundary between i and i+1.
func swapMatch(changes []ChangeID, i int, source, target *Line) (bool, error) {
	cur, next := changes[i], changes[i+1]
	if !next.IsPaired() {
		return false, nil
	}
	switch {
	case cur.IsDeletion():
		sc, err := source.Char(cur.Source)
		if err != nil {
			return false, err
		}
		tc, err := target.Char(next.Target)
		if err != nil {
			return false, err
		}
		if sc != tc {
			return false, nil
		}
		changes[i] = Pair(cur.Source, next.Target)
		changes[i+1] = Deleted(next.Source)
		return true, nil
	case cur.IsInsertion():
		sc, err := source.Char(next.Source)
		if err != nil {
			return false, err
		}
		tc, err := target.Char(cur.Target)
		if err != nil {
			return false, err
		}
		if sc != tc {
			return false, nil
		}
		changes[i] = Pair(next.Source, cur.Target)
		changes[i+1] = Inserted(next.Target)
		return true, nil
	}
	return false, nil
}
