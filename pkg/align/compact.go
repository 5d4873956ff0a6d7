// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package align

// CompactRuns folds deletions and insertions that sit in the same unpaired run
// into substitutions. A deletion is merged into the earliest pending insertion
// of the run and vice versa; a paired change ends the run. Empty changes are
// dropped. The input is not modified.
func CompactRuns(changes []ChangeID) []ChangeID {
	out := make([]ChangeID, 0, len(changes))
	// indexes into out of unmerged deletions and insertions of the current run
	var deletions, insertions []int
	for _, c := range changes {
		switch {
		case c.IsPaired():
			deletions = deletions[:0]
			insertions = insertions[:0]
			out = append(out, c)
		case c.IsDeletion():
			if len(insertions) != 0 {
				out[insertions[0]].Source, out[insertions[0]].HasSource = c.Source, true
				insertions = insertions[1:]
				continue
			}
			deletions = append(deletions, len(out))
			out = append(out, c)
		case c.IsInsertion():
			if len(deletions) != 0 {
				out[deletions[0]].Target, out[deletions[0]].HasTarget = c.Target, true
				deletions = deletions[1:]
				continue
			}
			insertions = append(insertions, len(out))
			out = append(out, c)
		}
	}
	return out
}
