package atomicfile

import (
	"fmt"
	"os"
)

// fallbackLogger writes error and critical diagnostics straight to stderr.
// It is used when no Logger has been injected so that a failed rollback is
// reported even from a process that never configured logging. Debug lines
// are dropped.
type fallbackLogger struct{}

func (fallbackLogger) Debug(msg string, args ...any) {}

func (fallbackLogger) Error(msg string, args ...any) {
	writeFallback("ERROR", msg, args)
}

func (fallbackLogger) Critical(msg string, args ...any) {
	writeFallback("CRITICAL", msg, args)
}

func writeFallback(level, msg string, args []any) {
	line := level + " atomicfile: " + msg
	for i := 0; i+1 < len(args); i += 2 {
		line += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	fmt.Fprintln(os.Stderr, line)
}
