// Package runner executes external commands and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command is one external process invocation.
type Command struct {
	// Dir is the working directory. It must be set explicitly.
	Dir  string
	Name string
	Args []string
}

// String returns the command line for logs and messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the captured outcome of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stderr followed by stdout.
func (r Result) Combined() string {
	return r.Stderr + "\n" + r.Stdout
}

// Runner runs commands. Implementations must be safe for sequential reuse.
type Runner interface {
	// Run executes cmd and waits for it. A non-zero exit returns the
	// captured Result together with a *Error.
	Run(ctx context.Context, cmd Command) (Result, error)

	// LookPath resolves an executable on PATH.
	LookPath(name string) (string, error)
}

// Error reports a command that started but did not succeed.
type Error struct {
	Command Command
	Result  Result
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (exit code %d): %v", e.Command, e.Result.ExitCode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// For mocking in tests
	commandFunc  func(ctx context.Context, name string, args ...string) *exec.Cmd
	lookPathFunc func(name string) (string, error)
}

// NewExecRunner creates a runner backed by the real operating system.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		commandFunc:  exec.CommandContext,
		lookPathFunc: exec.LookPath,
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := r.commandFunc(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(c, err),
	}
	if err == nil {
		return res, nil
	}
	if isCommandNotFound(err) {
		return res, enhanceError(err, cmd.Name)
	}
	if ctx.Err() != nil {
		return res, fmt.Errorf("%s cancelled: %w", cmd.Name, ctx.Err())
	}
	return res, &Error{Command: cmd, Result: res, Err: err}
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	p, err := r.lookPathFunc(name)
	if err != nil {
		return "", enhanceError(err, name)
	}
	return p, nil
}

func exitCode(c *exec.Cmd, err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	if c.ProcessState != nil {
		return c.ProcessState.ExitCode()
	}
	return 0
}

// ErrCommandNotFound is matched by errors for executables missing from PATH.
var ErrCommandNotFound = errors.New("command not found")

// IsCommandNotFound reports whether err means the executable does not exist.
func IsCommandNotFound(err error) bool {
	return errors.Is(err, ErrCommandNotFound) || isCommandNotFound(err)
}

func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "executable file not found") ||
		strings.Contains(err.Error(), "command not found")
}

func enhanceError(err error, name string) error {
	return fmt.Errorf("%w: %s: %w", ErrCommandNotFound, name, err)
}
