package scaffold

import "strings"

// DefaultRecoverablePatterns are substrings of install output that point at
// stale or corrupted local package state: failed lifecycle scripts and
// native binaries that no longer match their package.
var DefaultRecoverablePatterns = []string{
	"postinstall",
	"esbuild",
	"ELIFECYCLE",
}

// IsRecoverableFailure reports whether install output looks like a failure
// that a clean reinstall may fix. extra adds patterns; empty ones are ignored.
func IsRecoverableFailure(output string, extra ...string) bool {
	for _, p := range DefaultRecoverablePatterns {
		if strings.Contains(output, p) {
			return true
		}
	}
	// esbuild reports a host/binary version mismatch as
	// `Expected "0.21.5" but got "0.19.2"`.
	if strings.Contains(output, "Expected") && strings.Contains(output, "but got") {
		return true
	}
	for _, p := range extra {
		if p != "" && strings.Contains(output, p) {
			return true
		}
	}
	return false
}

// noiseMarkers identify progress meter lines in package manager output.
var noiseMarkers = []string{"Progress:", "Packages:", "Scope:"}

// filterInstallOutput drops progress meter lines and blank lines.
func filterInstallOutput(out string) string {
	var kept []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" || isNoise(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isNoise(line string) bool {
	for _, m := range noiseMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
