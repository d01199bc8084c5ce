package project

import (
	"regexp"
	"strings"
)

var separatorRuns = regexp.MustCompile(`[\s_-]+`)

// NormalizeName lowercases and trims s and collapses runs of whitespace,
// underscores and hyphens into a single hyphen.
func NormalizeName(s string) string {
	n := strings.ToLower(strings.TrimSpace(s))
	n = separatorRuns.ReplaceAllString(n, "-")
	return strings.Trim(n, "-")
}

// ServiceName returns the container service name for a package, e.g. "demo-api".
func ServiceName(projectName, pkg string) string {
	return NormalizeName(projectName) + "-" + pkg
}

// VolumeName returns a compose volume name, e.g. "demo_postgres_data".
func VolumeName(projectName, volume string) string {
	return NormalizeName(projectName) + "_" + volume
}

// ScopedPackage returns the workspace package name, e.g. "@demo/ui".
func ScopedPackage(projectName, pkg string) string {
	return "@" + NormalizeName(projectName) + "/" + pkg
}

// PythonModule returns name converted to a valid Python identifier.
func PythonModule(name string) string {
	return strings.ReplaceAll(NormalizeName(name), "-", "_")
}
