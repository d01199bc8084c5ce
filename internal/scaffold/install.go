package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	oerrors "github.com/opmodel/kickstart/internal/errors"
	"github.com/opmodel/kickstart/internal/output"
	"github.com/opmodel/kickstart/internal/project"
	"github.com/opmodel/kickstart/internal/runner"
)

// InstallError is a failed dependency install. Its message is self-contained:
// it carries the tool output needed to diagnose the failure.
type InstallError struct {
	PackageManager project.PackageManager

	// Retried is set when a cleanup and second attempt also failed.
	Retried bool

	// Output of the first attempt and, when Retried, the second.
	Original Result
	Retry    Result

	Err error

	message string
}

// Result is the captured output of one install attempt.
type Result struct {
	runner.Result
	Err error
}

func (e *InstallError) Error() string {
	return e.message
}

// Unwrap exposes both ErrInstall and the underlying cause.
func (e *InstallError) Unwrap() []error {
	if e.Err == nil {
		return []error{oerrors.ErrInstall}
	}
	return []error{oerrors.ErrInstall, e.Err}
}

// installer runs the package manager with a single cleanup-and-retry for
// failures that look like stale local state.
type installer struct {
	dir        string
	pm         project.PackageManager
	runner     runner.Runner
	patterns   []string
	pruneCache bool
}

func (i *installer) logger() *log.Logger {
	return output.ScopedLogger("install")
}

// Install checks the package manager is available, installs, and on a
// recoverable failure cleans up and retries once.
func (i *installer) Install(ctx context.Context) error {
	pm := i.pm.String()
	path, err := i.runner.LookPath(pm)
	if err != nil {
		return i.missing()
	}
	i.logger().Debug("installing dependencies", "pm", pm, "path", path, "dir", i.dir)

	first := i.attempt(ctx)
	if first.Err == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}
	if runner.IsCommandNotFound(first.Err) {
		// Removed from PATH between the lookup and the run.
		return i.missing()
	}

	combined := first.Err.Error() + "\n" + first.Combined()
	if !IsRecoverableFailure(combined, i.patterns...) {
		i.logger().Debug("install failed, not retrying", "err", first.Err)
		return i.failure(first)
	}

	i.logger().Debug("install failed with a recoverable error, cleaning up", "err", first.Err)
	if err := i.cleanup(ctx); err != nil {
		return i.retryFailure(first, Result{Err: err})
	}

	retry := i.attempt(ctx)
	if retry.Err != nil {
		return i.retryFailure(first, retry)
	}
	i.logger().Debug("install succeeded after cleanup")
	return nil
}

func (i *installer) attempt(ctx context.Context) Result {
	res, err := i.runner.Run(ctx, runner.Command{
		Dir:  i.dir,
		Name: i.pm.String(),
		Args: i.pm.InstallArgs(),
	})
	return Result{Result: res, Err: err}
}

func (i *installer) missing() error {
	pm := i.pm.String()
	return oerrors.NewEnvironmentError(
		fmt.Sprintf("%s is not installed", pm),
		map[string]string{"package manager": pm},
		project.InstallHint(),
	)
}

// cleanup removes installed modules and every lockfile, then prunes the
// package manager store if configured. Prune errors are ignored.
func (i *installer) cleanup(ctx context.Context) error {
	nm := filepath.Join(i.dir, "node_modules")
	if err := os.RemoveAll(nm); err != nil {
		return fmt.Errorf("removing %s: %w", nm, err)
	}
	for _, lf := range project.Lockfiles() {
		p := filepath.Join(i.dir, lf)
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}

	args := i.pm.CachePruneArgs()
	if !i.pruneCache || len(args) == 0 {
		return nil
	}
	cmd := runner.Command{Dir: i.dir, Name: i.pm.String(), Args: args}
	if _, err := i.runner.Run(ctx, cmd); err != nil {
		i.logger().Debug("cache prune failed, continuing", "cmd", cmd.String(), "err", err)
	}
	return nil
}

func (i *installer) failure(first Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Failed to install dependencies with %s", i.pm)
	fmt.Fprintf(&b, "\n\nError: %v", first.Err)
	if s := trimOutput(first.Stderr); s != "" {
		b.WriteString("\n\nStderr:\n" + s)
	}
	if s := filterInstallOutput(first.Stdout); s != "" {
		b.WriteString("\n\nStdout:\n" + s)
	}
	return &InstallError{
		PackageManager: i.pm,
		Original:       first,
		Err:            first.Err,
		message:        b.String(),
	}
}

func (i *installer) retryFailure(first, retry Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Failed to install dependencies with %s (retry after cleanup also failed)", i.pm)
	if s := trimOutput(first.Stderr); s != "" {
		b.WriteString("\n\nOriginal error:\n" + s)
	}
	if s := trimOutput(retry.Stderr); s != "" {
		b.WriteString("\n\nRetry error:\n" + s)
	} else if retry.Err != nil {
		fmt.Fprintf(&b, "\n\nRetry error:\n%v", retry.Err)
	}
	if s := trimOutput(first.Stdout); s != "" && !strings.Contains(s, "Progress:") {
		b.WriteString("\n\nOriginal output:\n" + s)
	}
	if s := trimOutput(retry.Stdout); s != "" && !strings.Contains(s, "Progress:") {
		b.WriteString("\n\nRetry output:\n" + s)
	}
	return &InstallError{
		PackageManager: i.pm,
		Retried:        true,
		Original:       first,
		Retry:          retry,
		Err:            retry.Err,
		message:        b.String(),
	}
}

func trimOutput(s string) string {
	return strings.TrimSpace(s)
}
