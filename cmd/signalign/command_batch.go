// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/antgroup/signalign/pkg/linestore"
	"github.com/antgroup/signalign/pkg/progress"
	"github.com/sirupsen/logrus"
)

type Batch struct {
	File   string `arg:"" name:"file" help:"Batch file of line pairs, TOML or zstd compressed TOML" type:"path"`
	Output string `name:"output" short:"o" help:"Write JSON lines to file instead of stdout" type:"path"`
	Quiet  bool   `name:"quiet" short:"q" help:"Do not show progress"`
	MatchFlags
}

func (c *Batch) Run(g *Globals, ctx context.Context) error {
	s, err := g.newSession(&c.MatchFlags)
	if err != nil {
		return err
	}
	defer s.close()
	b, err := linestore.LoadBatch(c.File)
	if err != nil {
		logrus.Errorf("load batch %s error: %v", c.File, err)
		return err
	}
	var w io.Writer = os.Stdout
	if len(c.Output) != 0 {
		fd, err := os.Create(c.Output)
		if err != nil {
			logrus.Errorf("create output error: %v", err)
			return err
		}
		defer fd.Close()
		w = fd
	}
	// progress would interleave with results written to the terminal
	quiet := c.Quiet || len(c.Output) == 0
	failed, err := c.run(ctx, s, b, w, quiet)
	s.tracker.Summary()
	if err != nil {
		return err
	}
	if failed != 0 {
		err := fmt.Errorf("%d of %d pairs failed", failed, len(b.Pairs))
		logrus.Errorf("batch %s: %v", c.File, err)
		return err
	}
	return nil
}

// run aligns every pair in order. Pair failures are reported in the output
// and counted; cancellation and write errors stop the batch.
func (c *Batch) run(ctx context.Context, s *session, b *linestore.Batch, w io.Writer, quiet bool) (int, error) {
	enc := json.NewEncoder(w)
	bar := progress.NewBar("aligning", len(b.Pairs), quiet)
	defer bar.Finish()
	var failed int
	for i := range b.Pairs {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		p := &b.Pairs[i]
		name := p.Name
		if len(name) == 0 {
			name = fmt.Sprintf("pair-%d", i+1)
		}
		out, err := c.matchPair(ctx, s, p, name)
		if err != nil {
			failed++
			logrus.Errorf("pair %s: %v", name, err)
			out = &matchOutput{Error: err.Error()}
		}
		out.Name = name
		if err := enc.Encode(out); err != nil {
			return failed, fmt.Errorf("write result: %w", err)
		}
		bar.Add(1)
	}
	return failed, nil
}

func (c *Batch) matchPair(ctx context.Context, s *session, p *linestore.Pair, name string) (*matchOutput, error) {
	source, target, err := p.Lines(s.textOptions())
	if err != nil {
		return nil, err
	}
	s.tracker.StepNext("load", "pair %s lines", name)
	r, err := s.match(ctx, source, target)
	if err != nil {
		return nil, err
	}
	s.tracker.StepNext("match", "pair %s match", name)
	return newMatchOutput("", r), nil
}
