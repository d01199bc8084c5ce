// Package version provides version information for the kickstart CLI.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// Platform is GOOS/GOARCH.
	Platform string `json:"platform"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("kickstart:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s (%s)",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.Platform)
}

// MajorCompatible reports whether two versions share the MAJOR component.
// Package managers only break their lockfile formats across majors.
func MajorCompatible(want, got string) bool {
	w := strings.Split(strings.TrimPrefix(want, "v"), ".")
	g := strings.Split(strings.TrimPrefix(got, "v"), ".")
	if w[0] == "" || g[0] == "" {
		return false
	}
	return w[0] == g[0]
}

// CompatibilityMessage explains the result of MajorCompatible.
func CompatibilityMessage(want, got string) string {
	if MajorCompatible(want, got) {
		return "compatible"
	}
	if got == "" {
		return "incompatible - invalid version format"
	}
	return fmt.Sprintf("incompatible - generated projects pin %s", want)
}

// FullVersionString returns complete version information including tools.
func FullVersionString(info Info, tools []ToolInfo) string {
	var b strings.Builder
	b.WriteString(info.String())
	b.WriteString("\n\nTools:\n")
	for _, t := range tools {
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
