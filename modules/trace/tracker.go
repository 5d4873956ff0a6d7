package trace

import (
	"fmt"
	"time"
)

// Tracker times the steps of a run. Each step is charged to a stage and the
// stage totals are kept for Summary.
type Tracker struct {
	dbg    Debuger
	last   time.Time
	totals map[string]time.Duration
	stages []string
}

func NewTracker(verbose bool) *Tracker {
	return &Tracker{dbg: NewDebuger(verbose), last: time.Now(), totals: make(map[string]time.Duration)}
}

// StepNext charges the time since the previous step to stage.
func (t *Tracker) StepNext(stage string, format string, a ...any) {
	now := time.Now()
	spent := now.Sub(t.last)
	t.last = now
	if _, ok := t.totals[stage]; !ok {
		t.stages = append(t.stages, stage)
	}
	t.totals[stage] += spent
	t.dbg.DbgPrint("%s use time: %v", fmt.Sprintf(format, a...), spent)
}

func (t *Tracker) Elapsed(stage string) time.Duration {
	return t.totals[stage]
}

// Stages returns stage names in the order they were first seen.
func (t *Tracker) Stages() []string {
	return append([]string(nil), t.stages...)
}

func (t *Tracker) Summary() {
	for _, s := range t.stages {
		t.dbg.DbgPrint("%s total: %v", s, t.totals[s])
	}
}
