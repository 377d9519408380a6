package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opskit/opskit/cmd/opskit/commands"
	"github.com/opskit/opskit/pkg/fatal"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	// Ctrl+C during a prompt or a long-running child must not leave a
	// half-finished swap ambiguous: report the interrupt and exit with
	// the conventional 130.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		<-sigCh
		fmt.Fprintf(os.Stderr, "(%d) Halted via interrupt.\n", fatal.ExitInterrupt)
		os.Exit(fatal.ExitInterrupt)
	}()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(fatal.CodeOf(err))
	}
}
