// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"context"
	"fmt"

	"github.com/antgroup/signalign/modules/diferenco"
	"github.com/antgroup/signalign/modules/trace"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Weights of the penalty model; the zero value selects DefaultWeights.
	Weights Weights
	// Differ computes change regions; nil uses Myers.
	Differ diferenco.Differ
	// CompactRuns enables run compaction on the selected alignment.
	CompactRuns bool
	// PropagateMatches enables match propagation, applied after compaction.
	PropagateMatches bool
	// Concurrency bounds the pairings evaluated at once; <= 1 is sequential.
	Concurrency int
	Debuger     trace.Debuger
}

// Result is the cheapest alignment found for a line pair.
type Result struct {
	Changes []ChangeID
	// Penalty of Changes after optimization.
	Penalty int
	// Selected is the penalty of the raw alignment that won the selection.
	Selected int
	// Source and Target are the winning candidate indexes.
	Source   int
	Target   int
	Pairings int
}

type Matcher struct {
	weights          Weights
	differ           diferenco.Differ
	compactRuns      bool
	propagateMatches bool
	concurrency      int
	dbg              trace.Debuger
}

func NewMatcher(opts *Options) (*Matcher, error) {
	if opts == nil {
		opts = &Options{Weights: DefaultWeights}
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	m := &Matcher{
		weights:          opts.Weights,
		differ:           opts.Differ,
		compactRuns:      opts.CompactRuns,
		propagateMatches: opts.PropagateMatches,
		concurrency:      opts.Concurrency,
		dbg:              opts.Debuger,
	}
	if m.weights == (Weights{}) {
		m.weights = DefaultWeights
	}
	if m.differ == nil {
		m.differ = diferenco.NewDiffer(diferenco.Myers)
	}
	if m.dbg == nil {
		m.dbg = trace.NewDebuger(false)
	}
	return m, nil
}

type scored struct {
	changes []ChangeID
	penalty int
	source  int
	target  int
}

// less orders by penalty, then candidate enumeration order.
func (s *scored) less(o *scored) bool {
	if s.penalty != o.penalty {
		return s.penalty < o.penalty
	}
	if s.source != o.source {
		return s.source < o.source
	}
	return s.target < o.target
}

func (m *Matcher) evaluate(ctx context.Context, source, target *Line, si, ti int) (*scored, error) {
	src, dst := source.candidates[si], target.candidates[ti]
	changes, err := m.differ.Diff(ctx, src.Tokens(), dst.Tokens())
	if err != nil {
		return nil, err
	}
	aligned := Align(src, dst, changes)
	penalty, err := Penalty(aligned, source, target, m.weights)
	if err != nil {
		return nil, fmt.Errorf("score pairing %d/%d: %w", si, ti, err)
	}
	return &scored{changes: aligned, penalty: penalty, source: si, target: ti}, nil
}

func (m *Matcher) sequential(ctx context.Context, source, target *Line) (*scored, error) {
	var best *scored
	for si := range source.candidates {
		for ti := range target.candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s, err := m.evaluate(ctx, source, target, si, ti)
			if err != nil {
				return nil, err
			}
			if best == nil || s.less(best) {
				best = s
			}
		}
	}
	return best, nil
}

func (m *Matcher) parallel(ctx context.Context, source, target *Line) (*scored, error) {
	cols := len(target.candidates)
	results := make([]*scored, len(source.candidates)*cols)
	g, newCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for k := range results {
		g.Go(func() error {
			if err := newCtx.Err(); err != nil {
				return err
			}
			s, err := m.evaluate(newCtx, source, target, k/cols, k%cols)
			if err != nil {
				return err
			}
			results[k] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var best *scored
	for _, s := range results {
		if best == nil || s.less(best) {
			best = s
		}
	}
	return best, nil
}

// Match evaluates every pairing of source and target candidates and returns
// the cheapest alignment. Ties keep the first pairing in source-major order,
// so the result depends on candidate order as well as content.
func (m *Matcher) Match(ctx context.Context, source, target *Line) (*Result, error) {
	if len(source.Candidates()) == 0 {
		return nil, fmt.Errorf("source: %w", ErrNoCandidates)
	}
	if len(target.Candidates()) == 0 {
		return nil, fmt.Errorf("target: %w", ErrNoCandidates)
	}
	pairings := len(source.candidates) * len(target.candidates)
	var best *scored
	var err error
	if m.concurrency > 1 && pairings > 1 {
		best, err = m.parallel(ctx, source, target)
	} else {
		best, err = m.sequential(ctx, source, target)
	}
	if err != nil {
		return nil, err
	}
	m.dbg.DbgPrint("selected pairing %d/%d of %d, penalty %d", best.source, best.target, pairings, best.penalty)
	result := &Result{
		Changes:  best.changes,
		Penalty:  best.penalty,
		Selected: best.penalty,
		Source:   best.source,
		Target:   best.target,
		Pairings: pairings,
	}
	if !m.compactRuns && !m.propagateMatches {
		return result, nil
	}
	if err := m.optimize(ctx, result, source, target); err != nil {
		return nil, err
	}
	return result, nil
}

func (m *Matcher) optimize(ctx context.Context, result *Result, source, target *Line) error {
	changes := result.Changes
	if m.compactRuns {
		changes = CompactRuns(changes)
	}
	if m.propagateMatches {
		var err error
		if changes, err = PropagateMatches(ctx, changes, source, target); err != nil {
			return err
		}
	}
	penalty, err := Penalty(changes, source, target, m.weights)
	if err != nil {
		return err
	}
	m.dbg.DbgPrint("optimized %d -> %d changes, penalty %d -> %d", len(result.Changes), len(changes), result.Selected, penalty)
	result.Changes = changes
	result.Penalty = penalty
	return nil
}
