// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the global logger instance.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// LogConfig controls logger construction.
type LogConfig struct {
	// Verbose enables debug level, timestamps and caller reporting.
	Verbose bool

	// Timestamps overrides timestamp display. nil means on.
	Timestamps *bool
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

func (c LogConfig) timestamps() bool {
	if c.Verbose {
		return true
	}
	if c.Timestamps != nil {
		return *c.Timestamps
	}
	return true
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	setupLogging(os.Stderr, cfg)
}

func setupLogging(w io.Writer, cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: cfg.timestamps(),
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// ScopedLogger returns a child logger whose lines are prefixed with scope,
// e.g. "install" or "git".
func ScopedLogger(scope string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render(scope))
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}
