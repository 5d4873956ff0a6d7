// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/antgroup/signalign/modules/term"
	"github.com/antgroup/signalign/pkg/textline"
	"github.com/sirupsen/logrus"
)

type Align struct {
	Source string `arg:"" name:"source" help:"Source line, variants written as {a|b}"`
	Target string `arg:"" name:"target" help:"Target line, variants written as {a|b}"`
	MatchFlags
}

func (c *Align) Run(g *Globals, ctx context.Context) error {
	s, err := g.newSession(&c.MatchFlags)
	if err != nil {
		return err
	}
	defer s.close()
	source, err := textline.Parse(c.Source, s.textOptions())
	if err != nil {
		logrus.Errorf("parse source line error: %v", err)
		return err
	}
	target, err := textline.Parse(c.Target, s.textOptions())
	if err != nil {
		logrus.Errorf("parse target line error: %v", err)
		return err
	}
	s.tracker.StepNext("parse", "parse %d x %d candidates", len(source.Candidates()), len(target.Candidates()))
	r, err := s.match(ctx, source, target)
	if err != nil {
		logrus.Errorf("align error: %v", err)
		return err
	}
	s.tracker.StepNext("match", "match %d pairings", r.Pairings)
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(newMatchOutput("", r))
	}
	return renderChanges(os.Stdout, term.StdoutLevel, r, source, target)
}
