package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/opskit/opskit/pkg/fatal"
)

const (
	// DefaultTimeout bounds each attempt of a timed prompt.
	DefaultTimeout = 30 * time.Second

	// DefaultAttempts is how many times a timed prompt re-asks before
	// failing closed.
	DefaultAttempts = 5
)

// Prompter asks for operator confirmation on a line-oriented stream with a
// per-attempt timeout. It fails closed: no answer within the attempt budget
// yields a fatal error with ExitNoPerm, so unattended runs never proceed
// past a confirmation point.
//
// The zero value prompts on stdin/stdout with the default timeout and
// attempt budget.
type Prompter struct {
	In       io.Reader
	Out      io.Writer
	Timeout  time.Duration
	Attempts int

	// randCode overrides the confirmation code source in tests.
	randCode func() int
}

func (p *Prompter) in() io.Reader {
	if p.In != nil {
		return p.In
	}
	return os.Stdin
}

func (p *Prompter) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func (p *Prompter) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

func (p *Prompter) attempts() int {
	if p.Attempts > 0 {
		return p.Attempts
	}
	return DefaultAttempts
}

func (p *Prompter) code() int {
	if p.randCode != nil {
		return p.randCode()
	}
	return rand.Intn(90000) + 10000
}

// readLines feeds trimmed input lines to a channel, closing it at EOF.
// The reading goroutine may outlive the prompt when the operator never
// answers; that is fine for a process-lifetime stdin reader.
func (p *Prompter) readLines() <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in())
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()
	return lines
}

// RequestCode displays a random five-digit number and requires the operator
// to type it back. Each attempt is bounded by the timeout; exhausting the
// attempt budget or hitting EOF returns a fatal error with ExitNoPerm.
func (p *Prompter) RequestCode() error {
	code := fmt.Sprintf("%d", p.code())
	timeout := p.timeout()
	lines := p.readLines()

	for i := 0; i < p.attempts(); i++ {
		fmt.Fprintf(p.out(), "To continue, please enter the number '%s' within %.0f seconds: ", code, timeout.Seconds())

		select {
		case line, ok := <-lines:
			if !ok {
				return fatal.New(fatal.ExitNoPerm, "Failed to provide confirmation input.")
			}
			if line == code {
				return nil
			}
		case <-time.After(timeout):
		}
	}

	return fatal.New(fatal.ExitNoPerm, "Failed to provide confirmation input.")
}

// RequestYes asks the operator to answer y or n. "y" continues, "n" is a
// fatal error, anything else re-asks. Exhausting the attempt budget or
// hitting EOF returns a fatal error with ExitNoPerm.
func (p *Prompter) RequestYes() error {
	timeout := p.timeout()
	lines := p.readLines()

	for i := 0; i < p.attempts(); i++ {
		fmt.Fprint(p.out(), "Do you want to continue? (y/n): ")

		select {
		case line, ok := <-lines:
			if !ok {
				return fatal.New(fatal.ExitNoPerm, "Failed to provide confirmation input.")
			}
			switch strings.ToLower(line) {
			case "y":
				return nil
			case "n":
				return fatal.Newf(fatal.ExitGeneric, "Response received: %q. Exiting.", line)
			}
		case <-time.After(timeout):
		}
	}

	return fatal.New(fatal.ExitNoPerm, "Failed to provide confirmation input.")
}
