// Package fatal carries process exit codes on errors so calling tooling can
// terminate with a status reflecting the failure.
package fatal

import (
	"errors"
	"fmt"
)

// Exit codes used across opskit tooling.
const (
	// ExitGeneric is the default exit code for fatal conditions.
	ExitGeneric = 1

	// ExitNoPerm mirrors sysexits EX_NOPERM: the operation requires
	// elevated privilege or an operator declined/failed to confirm it.
	ExitNoPerm = 77

	// ExitInterrupt is the conventional status for termination by SIGINT.
	ExitInterrupt = 130
)

// Error is a fatal condition with an associated process exit code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("(%d) %s", e.Code, e.Message)
}

// New returns a fatal error with the given exit code. A code of zero is
// normalized to ExitGeneric.
func New(code int, message string) *Error {
	if code == 0 {
		code = ExitGeneric
	}
	return &Error{Code: code, Message: message}
}

// Newf is New with formatting.
func Newf(code int, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// CodeOf returns the exit code carried by err: the Code of a fatal.Error in
// its chain, ExitGeneric for any other non-nil error, and 0 for nil.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ExitGeneric
}
