package cmd

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/opmodel/kickstart/internal/config"
	"github.com/opmodel/kickstart/internal/runner"
)

// isolate points HOME at a temp dir and unsets every KICKSTART_* variable
// so the developer's own configuration never leaks into a test. Unsetting
// matters: an empty KICKSTART_PACKAGES selects no packages.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range []string{
		config.EnvConfig,
		config.EnvPackageManager,
		config.EnvPackages,
		config.EnvOutputDir,
		config.EnvSkipDependencies,
		config.EnvLogTimestamps,
		config.EnvRecoverablePatterns,
		config.EnvPruneCache,
	} {
		t.Setenv(env, "")
		if err := os.Unsetenv(env); err != nil {
			t.Fatalf("unsetting %s: %v", env, err)
		}
	}
	configFlag = ""
	loadedConfig = nil
	return home
}

type stubRunner struct {
	mu      sync.Mutex
	calls   []string
	missing map[string]bool
	stdout  string
}

func (s *stubRunner) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, cmd.String())
	return runner.Result{Stdout: s.stdout}, nil
}

func (s *stubRunner) LookPath(name string) (string, error) {
	if s.missing[name] {
		return "", runner.ErrCommandNotFound
	}
	return "/usr/bin/" + name, nil
}

func useRunner(t *testing.T, r runner.Runner) {
	t.Helper()
	orig := newRunner
	newRunner = func() runner.Runner { return r }
	t.Cleanup(func() { newRunner = orig })
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
