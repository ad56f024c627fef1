package gitinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner runs a git subcommand and returns its trimmed standard output.
//
// Implementations report a non-zero exit as a *CommandError so the caller
// can classify the failure.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// CommandError describes a git invocation that did not succeed.
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int

	err error // classified sentinel
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}

	return fmt.Sprintf("gitinfo: git %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *CommandError) Unwrap() error { return e.err }

// ExecRunner runs the git binary found in PATH.
type ExecRunner struct {
	// Dir is the working directory of git. Empty means the current one.
	Dir string

	// Timeout bounds a single invocation. Zero disables it.
	Timeout time.Duration

	// Env is appended to the process environment.
	Env []string
}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A process killed by cancellation also exits non-zero.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: git %s: %w", ErrCommandFailed, strings.Join(args, " "), ctxErr)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: git %s: %w", ErrCommandFailed, strings.Join(args, " "), err)
		}

		return "", &CommandError{
			Args:     args,
			Stderr:   stderr.String(),
			ExitCode: exitErr.ExitCode(),
			err:      classify(stderr.String()),
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// NewCommandError builds a CommandError classified from its stderr, the same
// way ExecRunner does. It is meant for Runner implementations other than
// ExecRunner.
func NewCommandError(args []string, exitCode int, stderr string) *CommandError {
	return &CommandError{
		Args:     args,
		Stderr:   stderr,
		ExitCode: exitCode,
		err:      classify(stderr),
	}
}
