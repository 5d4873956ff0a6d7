// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/antgroup/signalign/modules/trace"
	"github.com/antgroup/signalign/pkg/version"
)

type App struct {
	Globals
	Align   Align   `cmd:"align" help:"Align two lines written in variant notation"`
	Batch   Batch   `cmd:"batch" help:"Align every line pair of a batch file"`
	Line    Line    `cmd:"line" help:"Align two lines loaded from the sign database"`
	Version Version `cmd:"version" help:"Display version information"`
}

func main() {
	var app App
	ctx := kong.Parse(&app,
		kong.Name("signalign"),
		kong.Description("signalign - align sign sequences of ambiguous text lines"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.GetVersionString(),
		},
	)
	now := time.Now()
	if app.Verbose {
		trace.EnableDebugMode()
	}
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx.BindTo(sigCtx, (*context.Context)(nil))
	err := ctx.Run(&app.Globals)
	stop()
	if app.Verbose {
		trace.DbgPrint("time spent: %v", time.Since(now))
	}
	if err != nil {
		os.Exit(1)
	}
}
