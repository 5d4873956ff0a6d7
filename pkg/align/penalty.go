// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package align

import "fmt"

// Weights is the cost of each correspondence shape. The defaults favour
// alignments that keep target side content.
type Weights struct {
	Deletion     int // source sign without target counterpart
	Insertion    int // target sign without source counterpart
	Substitution int // paired signs with different characters
	Match        int // paired signs with equal characters
}

var DefaultWeights = Weights{
	Deletion:     10,
	Insertion:    5,
	Substitution: 1,
	Match:        0,
}

func (w Weights) Validate() error {
	if w.Deletion < 0 || w.Insertion < 0 || w.Substitution < 0 || w.Match < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidWeights, w)
	}
	return nil
}

// Penalty sums the cost of every change. Source ids resolve against source
// and target ids against target; an unresolvable id means the lines do not
// belong to the changes and is returned as *ErrSignNotFound.
func Penalty(changes []ChangeID, source, target *Line, w Weights) (int, error) {
	total := 0
	for _, c := range changes {
		cost, err := w.cost(c, source, target)
		if err != nil {
			return 0, err
		}
		total += cost
	}
	return total, nil
}

func (w Weights) cost(c ChangeID, source, target *Line) (int, error) {
	var sc, tc string
	var err error
	if c.HasSource {
		if sc, err = source.Char(c.Source); err != nil {
			return 0, fmt.Errorf("resolve source: %w", err)
		}
	}
	if c.HasTarget {
		if tc, err = target.Char(c.Target); err != nil {
			return 0, fmt.Errorf("resolve target: %w", err)
		}
	}
	switch {
	case c.IsPaired():
		if sc == tc {
			return w.Match, nil
		}
		return w.Substitution, nil
	case c.IsDeletion():
		return w.Deletion, nil
	case c.IsInsertion():
		return w.Insertion, nil
	}
	return 0, ErrEmptyChange
}
