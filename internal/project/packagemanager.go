package project

import (
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/opmodel/kickstart/internal/errors"
)

// PackageManager selects the JavaScript package manager used by the generated project.
type PackageManager string

const (
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	NPM  PackageManager = "npm"
)

// DefaultPackageManager is used when nothing else is configured.
const DefaultPackageManager = PNPM

// PackageManagers returns every supported package manager.
func PackageManagers() []PackageManager {
	return []PackageManager{PNPM, Yarn, NPM}
}

// ParsePackageManager validates and normalizes a package manager name.
func ParsePackageManager(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(strings.TrimSpace(s)))
	if !pm.Valid() {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("unsupported package manager %q", s),
			"",
			"Use one of: pnpm, yarn, npm",
		)
	}
	return pm, nil
}

// Valid reports whether pm is a supported package manager.
func (pm PackageManager) Valid() bool {
	switch pm {
	case PNPM, Yarn, NPM:
		return true
	default:
		return false
	}
}

func (pm PackageManager) String() string {
	return string(pm)
}

// Version is the version pinned in the root manifest's packageManager field.
func (pm PackageManager) Version() string {
	switch pm {
	case PNPM:
		return "9.0.0"
	case Yarn:
		return "4.0.0"
	case NPM:
		return "10.0.0"
	default:
		return "1.0.0"
	}
}

// Pinned returns the "name@version" form used by corepack.
func (pm PackageManager) Pinned() string {
	return string(pm) + "@" + pm.Version()
}

// InstallArgs returns the arguments for a dependency install.
func (pm PackageManager) InstallArgs() []string {
	return []string{"install"}
}

// Lockfile returns the lockfile this package manager writes.
func (pm PackageManager) Lockfile() string {
	switch pm {
	case Yarn:
		return "yarn.lock"
	case NPM:
		return "package-lock.json"
	default:
		return "pnpm-lock.yaml"
	}
}

// Lockfiles returns every lockfile name any supported package manager writes.
func Lockfiles() []string {
	return []string{"pnpm-lock.yaml", "package-lock.json", "yarn.lock"}
}

// CachePruneArgs returns the arguments that prune the local store, or nil
// when the package manager has no cheap prune command.
func (pm PackageManager) CachePruneArgs() []string {
	if pm == PNPM {
		return []string{"store", "prune"}
	}
	return nil
}

// InstallHint lists manual install instructions for every supported package manager.
func InstallHint() string {
	return strings.Join([]string{
		"Install a package manager and try again:",
		"  pnpm: npm install -g pnpm (or: corepack enable pnpm)",
		"  yarn: npm install -g yarn (or: corepack enable yarn)",
		"  npm:  install Node.js from https://nodejs.org (npm ships with it)",
		"Or re-run with --skip-dependencies and install later.",
	}, "\n")
}

// ScriptCommand returns the prefix for running a root script.
// npm needs "npm run", pnpm and yarn run scripts directly.
func (pm PackageManager) ScriptCommand() string {
	if pm == NPM {
		return "npm run"
	}
	return string(pm)
}

var scopePattern = regexp.MustCompile(`@[^/]+/`)

// WorkspaceScript returns a command running script inside one workspace package.
// With usePattern, pnpm filters by "@*/<pkg>" instead of the exact scope.
func (pm PackageManager) WorkspaceScript(pkg, script string, usePattern bool) string {
	switch pm {
	case PNPM:
		filter := pkg
		if usePattern {
			filter = scopePattern.ReplaceAllString(pkg, "@*/")
		}
		return fmt.Sprintf("pnpm --filter %s %s", filter, script)
	case Yarn:
		return fmt.Sprintf("yarn workspace %s %s", pkg, script)
	default:
		return fmt.Sprintf("npm run --workspace=%s %s", pkg, script)
	}
}

// RecursiveScript returns a command running script in every workspace.
// yarn has no --if-present so failures are ignored instead.
func (pm PackageManager) RecursiveScript(script string, ifPresent bool) string {
	switch pm {
	case PNPM:
		if ifPresent {
			return "pnpm -r --if-present " + script
		}
		return "pnpm -r " + script
	case Yarn:
		if ifPresent {
			return "yarn workspaces run " + script + " || true"
		}
		return "yarn workspaces run " + script
	default:
		if ifPresent {
			return "npm run --workspaces --if-present " + script
		}
		return "npm run --workspaces " + script
	}
}

// SetupCommand installs dependencies and runs install:deps in every workspace.
func (pm PackageManager) SetupCommand() string {
	return fmt.Sprintf("%s install && %s", pm, pm.RecursiveScript("install:deps", true))
}
