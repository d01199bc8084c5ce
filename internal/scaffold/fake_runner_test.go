package scaffold

import (
	"context"
	"errors"
	"sync"

	"github.com/opmodel/kickstart/internal/runner"
)

type response func(cmd runner.Command) (runner.Result, error)

// fakeRunner answers commands from queued responses keyed by command line.
// The last queued response for a key is reused once the queue drains.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string][]response
	missing   map[string]bool
	calls     []runner.Command
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string][]response),
		missing:   make(map[string]bool),
	}
}

func (f *fakeRunner) on(line string, rs ...response) *fakeRunner {
	f.responses[line] = append(f.responses[line], rs...)
	return f
}

func (f *fakeRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)

	line := cmd.String()
	queue := f.responses[line]
	if len(queue) == 0 {
		return runner.Result{}, nil
	}
	r := queue[0]
	if len(queue) > 1 {
		f.responses[line] = queue[1:]
	}
	return r(cmd)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", runner.ErrCommandNotFound
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) count(line string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.String() == line {
			n++
		}
	}
	return n
}

func (f *fakeRunner) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

func ok() response {
	return func(runner.Command) (runner.Result, error) {
		return runner.Result{}, nil
	}
}

func fail(stdout, stderr string) response {
	return func(cmd runner.Command) (runner.Result, error) {
		res := runner.Result{Stdout: stdout, Stderr: stderr, ExitCode: 1}
		return res, &runner.Error{Command: cmd, Result: res, Err: errors.New("exit status 1")}
	}
}
