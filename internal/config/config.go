// Package config provides configuration loading and management.
package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/opmodel/kickstart/internal/features"
	"github.com/opmodel/kickstart/internal/project"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// InstallConfig tunes the dependency install step.
type InstallConfig struct {
	// RecoverablePatterns are extra substrings of install output that mark a
	// failure as worth one cleanup and retry.
	// Env: KICKSTART_INSTALL_RECOVERABLE_PATTERNS (comma-separated)
	RecoverablePatterns []string `mapstructure:"recoverablePatterns" yaml:"recoverablePatterns,omitempty"`

	// PruneCache runs the package manager's store prune before the retry.
	// Env: KICKSTART_INSTALL_PRUNE_CACHE, Default: true
	PruneCache *bool `mapstructure:"pruneCache" yaml:"pruneCache,omitempty"`
}

// Config represents the kickstart CLI configuration.
// Loaded from ~/.kickstart/config.yaml.
type Config struct {
	// PackageManager is used when --package-manager is not given.
	// Env: KICKSTART_PACKAGE_MANAGER, Default: pnpm
	PackageManager string `mapstructure:"packageManager" yaml:"packageManager,omitempty"`

	// Packages are the feature packages enabled when --packages is not given.
	// Env: KICKSTART_PACKAGES (comma-separated)
	Packages []string `mapstructure:"packages" yaml:"packages,omitempty"`

	// OutputDir is the parent directory for new projects.
	// Env: KICKSTART_OUTPUT_DIR, Default: the working directory
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir,omitempty"`

	// SkipDependencies skips the install step.
	// Env: KICKSTART_SKIP_DEPENDENCIES
	SkipDependencies bool `mapstructure:"skipDependencies" yaml:"skipDependencies"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	Install InstallConfig `mapstructure:"install" yaml:"install"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `kickstart config init` to generate initial config file.
func DefaultConfig() *Config {
	timestamps := true
	prune := true
	return &Config{
		PackageManager: string(project.DefaultPackageManager),
		Packages:       features.DefaultIDs(),
		Log:            LogConfig{Timestamps: &timestamps},
		Install:        InstallConfig{PruneCache: &prune},
	}
}

// PruneCacheEnabled returns Install.PruneCache, defaulting to true.
func (c *Config) PruneCacheEnabled() bool {
	if c.Install.PruneCache == nil {
		return true
	}
	return *c.Install.PruneCache
}

const fileHeader = `# kickstart configuration
#
# Command-line flags override environment variables (KICKSTART_*),
# which override the values below.
`

// Marshal renders the configuration as a commented YAML document.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	buf.WriteString("\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
