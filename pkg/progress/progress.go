// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"io"
	"os"

	"github.com/antgroup/signalign/modules/term"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Bar struct {
	p       *mpb.Progress
	bar     *mpb.Bar
	total   int
	current int
}

// NewBar renders a counter bar on stderr. A quiet bar, or one whose stderr is
// not a terminal, discards its output.
func NewBar(description string, total int, quiet bool) *Bar {
	var w io.Writer = os.Stderr
	if quiet || !term.IsTerminal(os.Stderr.Fd()) {
		w = io.Discard
	}
	width := min(term.Width(os.Stderr.Fd(), 80)/2, 60)
	p := mpb.New(
		mpb.WithOutput(w),
		mpb.WithWidth(width),
	)
	filler := "#"
	if term.StderrLevel != term.LevelNone {
		filler = term.StderrLevel.Green("#")
	}
	bar := p.New(int64(total),
		mpb.BarStyle().Filler(filler).Padding(" "),
		mpb.PrependDecorators(
			decor.Name(description, decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WC{W: 5}), "done"),
		),
	)
	return &Bar{p: p, bar: bar, total: total}
}

func (b *Bar) Add(n int) {
	b.current += n
	b.bar.IncrBy(n)
}

// Finish completes the bar and waits for the final render. A bar stopped
// before reaching its total is aborted and left on screen.
func (b *Bar) Finish() {
	if b.current < b.total {
		b.bar.Abort(false)
	} else {
		b.bar.SetTotal(-1, true)
	}
	b.p.Wait()
}
