package config

import (
	"os"
	"path/filepath"
)

// Environment variables read by kickstart.
const (
	EnvConfig              = "KICKSTART_CONFIG"
	EnvPackageManager      = "KICKSTART_PACKAGE_MANAGER"
	EnvPackages            = "KICKSTART_PACKAGES"
	EnvOutputDir           = "KICKSTART_OUTPUT_DIR"
	EnvSkipDependencies    = "KICKSTART_SKIP_DEPENDENCIES"
	EnvLogTimestamps       = "KICKSTART_LOG_TIMESTAMPS"
	EnvRecoverablePatterns = "KICKSTART_INSTALL_RECOVERABLE_PATTERNS"
	EnvPruneCache          = "KICKSTART_INSTALL_PRUNE_CACHE"
)

// Paths contains standard filesystem paths for kickstart.
type Paths struct {
	// ConfigFile is the path to the config file (~/.kickstart/config.yaml).
	ConfigFile string

	// HomeDir is the kickstart home directory (~/.kickstart).
	HomeDir string
}

// DefaultPaths returns the default paths for kickstart.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".kickstart")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If KICKSTART_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
