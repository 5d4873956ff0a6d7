package term

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

type Level int

const (
	LevelNone Level = iota
	Level256
	Level16M
)

var (
	StderrLevel Level
	StdoutLevel Level
)

func simpleAtob(s string, dv bool) bool {
	if len(s) == 0 {
		return dv
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return dv
	}
	return b
}

func detectColorLevel() Level {
	if simpleAtob(os.Getenv("SIGNALIGN_FORCE_TRUECOLOR"), false) {
		return Level16M
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return LevelNone
	}
	if _, ok := os.LookupEnv("WT_SESSION"); ok {
		return Level16M
	}
	colorTermEnv := os.Getenv("COLORTERM")
	termEnv := os.Getenv("TERM")
	if strings.Contains(termEnv, "24bit") ||
		strings.Contains(termEnv, "truecolor") ||
		strings.Contains(colorTermEnv, "24bit") ||
		strings.Contains(colorTermEnv, "truecolor") {
		return Level16M
	}
	if strings.Contains(termEnv, "256") || strings.Contains(colorTermEnv, "256") {
		return Level256
	}
	return LevelNone
}

func init() {
	level := detectColorLevel()
	if IsTerminal(os.Stderr.Fd()) {
		StderrLevel = level
	}
	if IsTerminal(os.Stdout.Fd()) {
		StdoutLevel = level
	}
}

func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Width returns the width of the terminal attached to fd, or fallback.
func Width(fd uintptr, fallback int) int {
	if !isatty.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(int(fd))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
