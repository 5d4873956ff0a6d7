package trace

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/antgroup/signalign/modules/term"
	"github.com/sirupsen/logrus"
)

type Debuger interface {
	DbgPrint(format string, args ...any)
}

var (
	debugMode atomic.Bool
	output    io.Writer = os.Stderr
)

// EnableDebugMode turns on DbgPrint output and debug level logging.
func EnableDebugMode() {
	debugMode.Store(true)
	logrus.SetLevel(logrus.DebugLevel)
}

func IsDebugMode() bool {
	return debugMode.Load()
}

func NewDebuger(verbose bool) Debuger {
	return &debuger{verbose: verbose}
}

type debuger struct {
	verbose bool
}

func render(level term.Level, message string) []byte {
	var buffer bytes.Buffer
	for _, s := range strings.Split(strings.TrimSuffix(message, "\n"), "\n") {
		switch level {
		case term.Level16M:
			_, _ = buffer.WriteString("\x1b[38;2;254;225;64m* ")
			_, _ = buffer.WriteString(s)
			_, _ = buffer.WriteString("\x1b[0m\n")
		case term.Level256:
			_, _ = buffer.WriteString("\x1b[33m* ")
			_, _ = buffer.WriteString(s)
			_, _ = buffer.WriteString("\x1b[0m\n")
		default:
			_, _ = buffer.WriteString("* ")
			_, _ = buffer.WriteString(s)
			_ = buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

func DbgPrint(format string, args ...any) {
	_, _ = output.Write(render(term.StderrLevel, fmt.Sprintf(format, args...)))
}

func (d debuger) DbgPrint(format string, args ...any) {
	if !d.verbose && !IsDebugMode() {
		return
	}
	DbgPrint(format, args...)
}

var (
	_ Debuger = &debuger{}
)
