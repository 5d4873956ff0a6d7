// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"github.com/antgroup/signalign/modules/diferenco"
)

// Align turns the change regions computed over the tokens of source and
// target into a gap-free list of correspondences. Every position of both
// sequences appears exactly once, in order.
//
// Unchanged runs are copied one to one only while both cursors are in range
// and below the region start on their own side. Inside a region the first
// min(Del, Ins) positions are paired as substitutions, the rest become
// deletions or insertions.
func Align(source, target *Sequence, changes []diferenco.Change) []ChangeID {
	n, m := source.Len(), target.Len()
	out := make([]ChangeID, 0, max(n, m))
	i, j := 0, 0
	for _, c := range changes {
		for i < n && j < m && i < c.P1 && j < c.P2 {
			out = append(out, Pair(source.IDAt(i), target.IDAt(j)))
			i++
			j++
		}
		del := min(c.Del, n-i)
		ins := min(c.Ins, m-j)
		paired := min(del, ins)
		for k := 0; k < paired; k++ {
			out = append(out, Pair(source.IDAt(i), target.IDAt(j)))
			i++
			j++
		}
		for k := paired; k < del; k++ {
			out = append(out, Deleted(source.IDAt(i)))
			i++
		}
		for k := paired; k < ins; k++ {
			out = append(out, Inserted(target.IDAt(j)))
			j++
		}
	}
	for i < n && j < m {
		out = append(out, Pair(source.IDAt(i), target.IDAt(j)))
		i++
		j++
	}
	for ; i < n; i++ {
		out = append(out, Deleted(source.IDAt(i)))
	}
	for ; j < m; j++ {
		out = append(out, Inserted(target.IDAt(j)))
	}
	return out
}
