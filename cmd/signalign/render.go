// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/antgroup/signalign/modules/term"
	"github.com/antgroup/signalign/pkg/align"
)

type matchOutput struct {
	Name     string           `json:"name,omitempty"`
	Changes  []align.ChangeID `json:"changes,omitempty"`
	Penalty  int              `json:"penalty"`
	Selected int              `json:"selected"`
	Source   int              `json:"source_candidate"`
	Target   int              `json:"target_candidate"`
	Pairings int              `json:"pairings"`
	Error    string           `json:"error,omitempty"`
}

func newMatchOutput(name string, r *align.Result) *matchOutput {
	return &matchOutput{
		Name:     name,
		Changes:  r.Changes,
		Penalty:  r.Penalty,
		Selected: r.Selected,
		Source:   r.Source,
		Target:   r.Target,
		Pairings: r.Pairings,
	}
}

// match runs one pairing under the configured timeout.
func (s *session) match(ctx context.Context, source, target *align.Line) (*align.Result, error) {
	if s.cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout.Duration)
		defer cancel()
	}
	return s.matcher.Match(ctx, source, target)
}

func signText(l *align.Line, id align.SignID) string {
	c, err := l.Char(id)
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%s (%d)", c, id)
}

// renderChanges writes one row per entry: source sign, target sign and an
// operation mark colored by level.
func renderChanges(w io.Writer, level term.Level, r *align.Result, source, target *align.Line) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTARGET\tOP")
	for _, c := range r.Changes {
		left, right := "-", "-"
		if c.HasSource {
			left = signText(source, c.Source)
		}
		if c.HasTarget {
			right = signText(target, c.Target)
		}
		var op string
		switch {
		case c.IsDeletion():
			op = level.Red("-")
		case c.IsInsertion():
			op = level.Green("+")
		default:
			sc, _ := source.Char(c.Source)
			tc, _ := target.Char(c.Target)
			if sc == tc {
				op = "="
			} else {
				op = level.Yellow("~")
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", left, right, op)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join([]string{
		fmt.Sprintf("penalty: %d", r.Penalty),
		fmt.Sprintf("selected: %d", r.Selected),
		fmt.Sprintf("candidates: %d/%d of %d pairings", r.Source, r.Target, r.Pairings),
	}, ", "))
	return err
}
