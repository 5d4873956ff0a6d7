// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/antgroup/signalign/modules/term"
	"github.com/antgroup/signalign/pkg/linestore"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoDatabase = errors.New("database not configured")
)

type Line struct {
	Source int64 `arg:"" name:"source" help:"Source line id"`
	Target int64 `arg:"" name:"target" help:"Target line id"`
	MatchFlags
}

func (c *Line) Run(g *Globals, ctx context.Context) error {
	s, err := g.newSession(&c.MatchFlags)
	if err != nil {
		return err
	}
	defer s.close()
	if s.cfg.DB == nil {
		logrus.Errorf("load lines error: %v", ErrNoDatabase)
		return ErrNoDatabase
	}
	db, err := linestore.NewDB(s.cfg.DB.MakeConfig())
	if err != nil {
		logrus.Errorf("open database error: %v", err)
		return err
	}
	defer db.Close()
	source, err := db.Line(ctx, c.Source)
	if err != nil {
		logrus.Errorf("load source line %d error: %v", c.Source, err)
		return err
	}
	target, err := db.Line(ctx, c.Target)
	if err != nil {
		logrus.Errorf("load target line %d error: %v", c.Target, err)
		return err
	}
	s.tracker.StepNext("load", "load lines %d and %d", c.Source, c.Target)
	r, err := s.match(ctx, source, target)
	if err != nil {
		logrus.Errorf("align lines %d and %d error: %v", c.Source, c.Target, err)
		return err
	}
	s.tracker.StepNext("match", "match %d pairings", r.Pairings)
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(newMatchOutput(fmt.Sprintf("%d:%d", c.Source, c.Target), r))
	}
	return renderChanges(os.Stdout, term.StdoutLevel, r, source, target)
}
