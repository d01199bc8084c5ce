package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	oerrors "github.com/opmodel/kickstart/internal/errors"
	"github.com/opmodel/kickstart/internal/features"
	"github.com/opmodel/kickstart/internal/output"
	"github.com/opmodel/kickstart/internal/project"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records one resolved setting for verbose logging.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Flag is a command-line value and whether the user set it.
type Flag struct {
	Value   string
	Changed bool
}

// layer is one precedence level's value. set separates an explicit empty
// value from an absent one.
type layer struct {
	value string
	set   bool
}

func valueLayer(v string) layer {
	return layer{value: v, set: v != ""}
}

// envLayer reads envVar. An empty variable only counts as set when
// allowEmpty is true.
func envLayer(envVar string, allowEmpty bool) layer {
	v, ok := os.LookupEnv(envVar)
	return layer{value: v, set: ok && (allowEmpty || v != "")}
}

// resolve applies flag > env > config > default. An env value that only
// echoes into the config layer (the loader merges env) is not reported as
// shadowed twice.
func resolve(key string, flag Flag, env, cfg layer, defaultValue string) ResolvedValue {
	rv := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}
	if env.set && cfg.set && cfg.value == env.value {
		cfg.set = false
	}

	switch {
	case flag.Changed:
		rv.Value, rv.Source = flag.Value, SourceFlag
		if env.set {
			rv.Shadowed[SourceEnv] = env.value
		}
		if cfg.set {
			rv.Shadowed[SourceConfig] = cfg.value
		}
	case env.set:
		rv.Value, rv.Source = env.value, SourceEnv
		if cfg.set {
			rv.Shadowed[SourceConfig] = cfg.value
		}
	case cfg.set:
		rv.Value, rv.Source = cfg.value, SourceConfig
	case defaultValue != "":
		rv.Value, rv.Source = defaultValue, SourceDefault
	}
	return rv
}

// ResolvePackageManager resolves the package manager using precedence:
// (1) --package-manager flag, (2) KICKSTART_PACKAGE_MANAGER env,
// (3) config.packageManager, (4) pnpm.
func ResolvePackageManager(flag Flag, cfg *Config) (project.PackageManager, ResolvedValue, error) {
	rv := resolve("packageManager", flag, envLayer(EnvPackageManager, false),
		valueLayer(cfg.PackageManager), string(project.DefaultPackageManager))
	pm, err := project.ParsePackageManager(rv.Value)
	if err != nil {
		return "", rv, err
	}
	rv.Value = string(pm)
	return pm, rv, nil
}

// ResolvePackages resolves the enabled feature packages using precedence:
// (1) --packages flag, (2) KICKSTART_PACKAGES env, (3) config.packages,
// (4) registry defaults. An explicitly empty flag, env variable or config
// list (packages: []) enables no packages.
func ResolvePackages(flag Flag, cfg *Config) (features.Set, ResolvedValue, error) {
	cfgLayer := layer{value: strings.Join(cfg.Packages, ","), set: cfg.Packages != nil}
	rv := resolve("packages", flag, envLayer(EnvPackages, true),
		cfgLayer, strings.Join(features.DefaultIDs(), ","))
	fs, err := features.ParseList([]string{rv.Value})
	if err != nil {
		return features.Set{}, rv, err
	}
	rv.Value = fs.String()
	return fs, rv, nil
}

// ResolveSkipDependencies resolves whether to skip the install step using
// precedence: (1) --skip-dependencies flag, (2) KICKSTART_SKIP_DEPENDENCIES
// env, (3) config.skipDependencies, (4) false.
func ResolveSkipDependencies(flag Flag, cfg *Config) (bool, ResolvedValue, error) {
	configValue := ""
	if cfg.SkipDependencies {
		configValue = "true"
	}
	rv := resolve("skipDependencies", flag, envLayer(EnvSkipDependencies, false),
		valueLayer(configValue), "false")
	skip, err := strconv.ParseBool(rv.Value)
	if err != nil {
		return false, rv, oerrors.NewValidationError(
			"skipDependencies must be a boolean, got "+strconv.Quote(rv.Value),
			string(rv.Source),
			"Use true or false",
		)
	}
	return skip, rv, nil
}

// ResolveOutputDir resolves the parent directory for new projects using
// precedence: (1) --output-dir flag, (2) KICKSTART_OUTPUT_DIR env,
// (3) config.outputDir, (4) workingDir. The result is absolute.
func ResolveOutputDir(flag Flag, cfg *Config, workingDir string) (string, ResolvedValue, error) {
	rv := resolve("outputDir", flag, envLayer(EnvOutputDir, false),
		valueLayer(cfg.OutputDir), workingDir)
	dir, err := ExpandPath(rv.Value)
	if err != nil {
		return "", rv, err
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workingDir, dir)
	}
	rv.Value = filepath.Clean(dir)
	return rv.Value, rv, nil
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) KICKSTART_CONFIG env, (3) ~/.kickstart/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	if opts.FlagValue != "" {
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	} else if envValue != "" {
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	} else {
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
