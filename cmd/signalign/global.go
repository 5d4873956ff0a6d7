// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/antgroup/signalign/modules/diferenco"
	"github.com/antgroup/signalign/modules/trace"
	"github.com/antgroup/signalign/pkg/align"
	"github.com/antgroup/signalign/pkg/config"
	"github.com/antgroup/signalign/pkg/textline"
	"github.com/antgroup/signalign/pkg/version"
	"github.com/sirupsen/logrus"
)

type Globals struct {
	Verbose   bool        `short:"V" name:"verbose" help:"Make the operation more talkative"`
	Config    string      `short:"c" name:"config" help:"Location of the configuration file" type:"path"`
	ExpandEnv bool        `short:"E" name:"expand-env" help:"Replaces $${var} or $$var in the config file according to the values of the current environment variables."`
	Version   VersionFlag `short:"v" name:"version" help:"Show version number and quit"`
}

type VersionFlag bool

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(version.GetVersionString())
	app.Exit(0)
	return nil
}

// MatchFlags override the optimizer and algorithm settings of the config file.
type MatchFlags struct {
	Algorithm   string `name:"algorithm" short:"a" help:"Diff algorithm, myers or onp"`
	Compact     bool   `name:"compact" help:"Merge pure deletion and insertion runs into paired entries"`
	Propagate   bool   `name:"propagate" help:"Move paired entries onto matching signs next to them"`
	Concurrency int    `name:"concurrency" short:"j" help:"Number of candidate pairings evaluated at once"`
	JSON        bool   `name:"json" short:"J" help:"Data will be returned in JSON format"`
}

func (f *MatchFlags) apply(cfg *config.Config) error {
	if len(f.Algorithm) != 0 {
		if _, err := diferenco.AlgorithmFromName(f.Algorithm); err != nil {
			return err
		}
		cfg.Algorithm = f.Algorithm
	}
	if f.Compact {
		cfg.Optimizer.CompactRuns = true
	}
	if f.Propagate {
		cfg.Optimizer.PropagateMatches = true
	}
	if f.Concurrency > 0 {
		cfg.Concurrency = f.Concurrency
	}
	return nil
}

// session is the loaded configuration together with a ready matcher.
type session struct {
	cfg     *config.Config
	matcher *align.Matcher
	tracker *trace.Tracker
	close   func()
}

func (g *Globals) newSession(flags *MatchFlags) (*session, error) {
	cfg, err := config.Load(g.Config, g.ExpandEnv)
	if err != nil {
		logrus.Errorf("load config error: %v", err)
		return nil, err
	}
	if flags != nil {
		if err := flags.apply(cfg); err != nil {
			logrus.Errorf("bad flags: %v", err)
			return nil, err
		}
	}
	opts, closer, err := cfg.MatcherOptions()
	if err != nil {
		logrus.Errorf("create matcher options error: %v", err)
		return nil, err
	}
	opts.Debuger = trace.NewDebuger(g.Verbose)
	m, err := align.NewMatcher(opts)
	if err != nil {
		closer()
		logrus.Errorf("create matcher error: %v", err)
		return nil, err
	}
	return &session{cfg: cfg, matcher: m, tracker: trace.NewTracker(g.Verbose), close: closer}, nil
}

func (s *session) textOptions() *textline.Options {
	return &textline.Options{MaxCandidates: s.cfg.MaxCandidates}
}
