package version

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/opmodel/kickstart/internal/project"
	"github.com/opmodel/kickstart/internal/runner"
)

// versionRegex matches version output like "9.12.3" or "git version 2.43.0".
var versionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// ToolInfo describes an external tool kickstart shells out to.
type ToolInfo struct {
	Name string `json:"name"`

	// Version is the detected version, empty when not found.
	Version string `json:"version"`

	Path string `json:"path"`

	// Found indicates the tool is on PATH.
	Found bool `json:"found"`

	// Pinned is the version generated projects declare, if any.
	Pinned string `json:"pinned,omitempty"`

	// Compatible is set when Pinned is empty or shares its major with Version.
	Compatible bool `json:"compatible"`

	// Message provides additional information about compatibility.
	Message string `json:"message,omitempty"`
}

// String returns a one-line summary.
func (t ToolInfo) String() string {
	if !t.Found {
		return fmt.Sprintf("  %-5s not found", t.Name)
	}
	if t.Message != "" {
		return fmt.Sprintf("  %-5s %s (%s)  %s", t.Name, t.Version, t.Message, t.Path)
	}
	return fmt.Sprintf("  %-5s %s  %s", t.Name, t.Version, t.Path)
}

// DetectTools checks every supported package manager and git.
func DetectTools(ctx context.Context, r runner.Runner, dir string) []ToolInfo {
	var tools []ToolInfo
	for _, pm := range project.PackageManagers() {
		tools = append(tools, DetectTool(ctx, r, dir, pm.String(), pm.Version()))
	}
	return append(tools, DetectTool(ctx, r, dir, "git", ""))
}

// DetectTool finds name on PATH and runs "name --version" in dir. When
// pinned is set the detected version is checked against it.
func DetectTool(ctx context.Context, r runner.Runner, dir, name, pinned string) ToolInfo {
	info := ToolInfo{Name: name, Pinned: pinned}

	path, err := r.LookPath(name)
	if err != nil {
		info.Message = name + " not found in PATH"
		return info
	}
	info.Path = path
	info.Found = true

	res, err := r.Run(ctx, runner.Command{Dir: dir, Name: name, Args: []string{"--version"}})
	if err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info
	}

	v, err := extractVersion(res.Stdout + "\n" + res.Stderr)
	if err != nil {
		info.Message = err.Error()
		return info
	}
	info.Version = v

	if pinned == "" {
		info.Compatible = true
		return info
	}
	info.Compatible = MajorCompatible(pinned, v)
	if !info.Compatible {
		info.Message = CompatibilityMessage(pinned, v)
	}
	return info
}

// extractVersion extracts the first version number from tool output.
func extractVersion(output string) (string, error) {
	match := versionRegex.FindString(output)
	if match == "" {
		return "", fmt.Errorf("no version found in output: %q", strings.TrimSpace(output))
	}
	return strings.TrimPrefix(match, "v"), nil
}
