package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelColors(t *testing.T) {
	require.Equal(t, "x", LevelNone.Red("x"))
	require.Equal(t, "\x1b[32mx\x1b[0m", Level256.Green("x"))
	require.Equal(t, "\x1b[38;2;254;225;64mx\x1b[0m", Level16M.Yellow("x"))
}

func TestDetectColorLevel(t *testing.T) {
	t.Setenv("SIGNALIGN_FORCE_TRUECOLOR", "")
	t.Setenv("NO_COLOR", "1")
	require.Equal(t, LevelNone, detectColorLevel())
}
