package output

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	timeout time.Duration
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithTimeout bounds the action with a deadline. Zero means none.
func WithTimeout(timeout time.Duration) SpinnerOption {
	return func(c *spinnerConfig) {
		c.timeout = timeout
	}
}

// RunWithSpinner executes action while a spinner is shown on a TTY.
// Off a TTY the action runs directly. The action receives a context that
// honors WithTimeout.
func RunWithSpinner(ctx context.Context, action func(context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{title: "Working..."}
	for _, opt := range opts {
		opt(cfg)
	}

	actionCtx := ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		actionCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if !IsTTY() {
		return action(actionCtx)
	}

	return runWithIndicator(actionCtx, action, func(wait func()) error {
		return spinner.New().
			Title(cfg.title).
			Action(wait).
			Run()
	})
}

// runWithIndicator runs action in the background while show blocks. show
// receives a wait func that returns once the action is done. On a TTY the
// spinner reads Ctrl-C as a key press, so show can return early; the
// action's context is then cancelled and its result awaited.
func runWithIndicator(ctx context.Context, action func(context.Context) error, show func(wait func()) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result error
	done := make(chan struct{})
	go func() {
		defer close(done)
		result = action(ctx)
	}()

	showErr := show(func() { <-done })

	select {
	case <-done:
	default:
		cancel()
		<-done
		if result == nil {
			result = context.Canceled
		}
		return result
	}

	if showErr != nil {
		return fmt.Errorf("spinner error: %w", showErr)
	}
	return result
}
