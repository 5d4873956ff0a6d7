// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func finishWithin(t *testing.T, b *Bar, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		b.Finish()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		require.FailNow(t, "Finish did not return")
	}
}

func TestBarQuiet(t *testing.T) {
	b := NewBar("aligning", 3, true)
	for range 3 {
		b.Add(1)
	}
	finishWithin(t, b, 5*time.Second)
}

func TestBarFinishIncomplete(t *testing.T) {
	tests := []struct {
		name  string
		total int
		add   int
	}{
		{name: "empty", total: 0, add: 0},
		{name: "untouched", total: 2, add: 0},
		{name: "partial", total: 3, add: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar("aligning", tt.total, true)
			for range tt.add {
				b.Add(1)
			}
			finishWithin(t, b, 5*time.Second)
		})
	}
}
