package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/antgroup/signalign/modules/term"
	"github.com/antgroup/signalign/pkg/align"
	"github.com/antgroup/signalign/pkg/linestore"
	"github.com/antgroup/signalign/pkg/textline"
	"github.com/stretchr/testify/require"
)

const batchText = `
[[pair]]
name = "insert"
source = { text = "ABC" }
target = { text = "ABXC" }

[[pair]]
source = { text = "a{b" }
target = { text = "ab" }
`

func TestBatchRun(t *testing.T) {
	s, err := (&Globals{}).newSession(nil)
	require.NoError(t, err)
	defer s.close()
	b, err := linestore.DecodeBatch(strings.NewReader(batchText))
	require.NoError(t, err)

	var out bytes.Buffer
	failed, err := (&Batch{}).run(context.Background(), s, b, &out, true)
	require.NoError(t, err)
	require.Equal(t, 1, failed)

	var results []matchOutput
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r matchOutput
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		results = append(results, r)
	}
	require.Len(t, results, 2)
	require.Equal(t, "insert", results[0].Name)
	require.Equal(t, 5, results[0].Penalty)
	require.Equal(t, []align.ChangeID{
		align.Pair(1, 1), align.Pair(2, 2), align.Inserted(3), align.Pair(3, 4),
	}, results[0].Changes)
	require.Equal(t, "pair-2", results[1].Name)
	require.NotEmpty(t, results[1].Error)
	require.Equal(t, []string{"load", "match"}, s.tracker.Stages())
}

func TestBatchCanceled(t *testing.T) {
	s, err := (&Globals{}).newSession(nil)
	require.NoError(t, err)
	defer s.close()
	b, err := linestore.DecodeBatch(strings.NewReader(batchText))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := (&Batch{}).run(ctx, s, b, &out, true)
		done <- err
	}()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "canceled batch did not return")
	}
	require.Zero(t, out.Len())
}

func TestMatchFlags(t *testing.T) {
	g := &Globals{}
	s, err := g.newSession(&MatchFlags{Algorithm: "onp", Compact: true, Concurrency: 4})
	require.NoError(t, err)
	defer s.close()
	require.Equal(t, "onp", s.cfg.Algorithm)
	require.True(t, s.cfg.Optimizer.CompactRuns)
	require.False(t, s.cfg.Optimizer.PropagateMatches)
	require.Equal(t, 4, s.cfg.Concurrency)

	_, err = g.newSession(&MatchFlags{Algorithm: "patience"})
	require.Error(t, err)
}

func TestRenderChanges(t *testing.T) {
	s, err := (&Globals{}).newSession(nil)
	require.NoError(t, err)
	defer s.close()
	source, err := textline.Parse("CAT", nil)
	require.NoError(t, err)
	target, err := textline.Parse("COT", nil)
	require.NoError(t, err)
	r, err := s.match(context.Background(), source, target)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, renderChanges(&out, term.LevelNone, r, source, target))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[1], "C (1)")
	require.True(t, strings.HasSuffix(lines[2], "~"))
	require.Equal(t, "penalty: 1, selected: 1, candidates: 0/0 of 1 pairings", lines[4])
}
