// Package run executes external commands with captured output, optional
// working directory, and optional uid/gid switching, plus failure policies
// for operational scripts.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/opskit/opskit/internal/logger"
	"github.com/opskit/opskit/pkg/fatal"
)

// Command describes an external command to execute.
type Command struct {
	// Args is the command and its arguments. Args[0] is resolved via PATH.
	Args []string

	// Dir is the working directory. Empty means the caller's.
	Dir string

	// UID and GID, when non-nil, run the child under those credentials.
	// The switch happens in the child before exec and is irreversible
	// within it. Requires privilege, unix only.
	UID *uint32
	GID *uint32
}

// Result holds the outcome of an executed command. Stdout and Stderr are
// captured in full and trimmed of surrounding whitespace.
type Result struct {
	ExitStatus int
	Stdout     string
	Stderr     string
}

// String describes the command the way it will be executed, including the
// effective credentials.
func (c Command) String() string {
	s := fmt.Sprintf("Executing %v", c.Args)
	if c.Dir != "" {
		s = fmt.Sprintf("%s within %s", s, c.Dir)
	}
	uid := os.Getuid()
	if c.UID != nil {
		uid = int(*c.UID)
	}
	gid := os.Getegid()
	if c.GID != nil {
		gid = int(*c.GID)
	}
	return fmt.Sprintf("%s as %d:%d", s, uid, gid)
}

// Run executes the command and returns its exit status and captured output.
// A non-zero exit status is not an error here; failure policies layer on
// top. The returned error is non-nil only when the command could not be
// started or was killed by the context.
func (c Command) Run(ctx context.Context) (Result, error) {
	if len(c.Args) == 0 {
		return Result{}, errors.New("run: empty command")
	}

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	if err := applyCredentials(cmd, c.UID, c.GID); err != nil {
		return Result{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitStatus = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("run: %s: %w", c.Args[0], err)
	}

	res.ExitStatus = cmd.ProcessState.ExitCode()
	return res, nil
}

// RunDebug executes the command and logs its description, exit status, and
// captured output at debug level.
func RunDebug(ctx context.Context, c Command) (Result, error) {
	logger.Debug(c.String())
	res, err := c.Run(ctx)
	if err != nil {
		return res, err
	}
	logger.Debug("command finished", "exit_status", res.ExitStatus)
	logger.Debug("command stdout", "stdout", res.Stdout)
	logger.Debug("command stderr", "stderr", res.Stderr)
	return res, nil
}

// RunFailHard executes the command and converts a non-zero exit status into
// a fatal error carrying that status as the process exit code. Stderr is
// logged at error level before returning.
func RunFailHard(ctx context.Context, c Command) (Result, error) {
	res, err := c.Run(ctx)
	if err != nil {
		return res, err
	}
	if res.ExitStatus != 0 {
		logger.Error("command stderr", "stderr", res.Stderr)
		return res, fatal.Newf(res.ExitStatus, "%s failed (%d).", c.String(), res.ExitStatus)
	}
	return res, nil
}

// PromptOptions control RunFailPrompt's behavior when the command fails.
type PromptOptions struct {
	// Yes means the operator pre-answered every prompt; a failure is
	// fatal because continuing was never confirmed interactively.
	Yes bool

	// Force continues past failures without prompting.
	Force bool
}

// RunFailPrompt executes the command and, on a non-zero exit status, either
// quits (Yes), continues (Force), or consults confirm, which should block
// until the operator decides and return an error to stop.
func RunFailPrompt(ctx context.Context, c Command, opts PromptOptions, confirm func() error) (Result, error) {
	res, err := c.Run(ctx)
	if err != nil {
		return res, err
	}
	if res.ExitStatus == 0 {
		return res, nil
	}

	logger.Error("command stderr", "stderr", res.Stderr)
	switch {
	case opts.Yes:
		return res, fatal.Newf(res.ExitStatus, "%s failed (%d). Yes option used. Exiting.", c.String(), res.ExitStatus)
	case opts.Force:
		logger.Debug("command failed, force option used, continuing",
			"command", c.String(), "exit_status", res.ExitStatus)
		return res, nil
	default:
		logger.Error("command failed", "command", c.String(), "exit_status", res.ExitStatus)
		if err := confirm(); err != nil {
			return res, err
		}
		return res, nil
	}
}

// VerifyRoot returns a fatal error with ExitNoPerm unless the effective uid
// is root.
func VerifyRoot() error {
	if os.Geteuid() != 0 {
		return fatal.New(fatal.ExitNoPerm, "must be root or equivalent (e.g. sudo)")
	}
	return nil
}
