// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/kickstart/internal/config"
	"github.com/opmodel/kickstart/internal/output"
	"github.com/opmodel/kickstart/internal/runner"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded configuration (set during PersistentPreRunE)
	loadedConfig *config.Config
	configPath   config.ResolveConfigPathResult

	// For mocking in tests
	newRunner = func() runner.Runner { return runner.NewExecRunner() }
)

// NewRootCmd creates the root command for the kickstart CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kickstart",
		Short: "Scaffold full-stack monorepos",
		Long: `kickstart generates a monorepo with a React frontend, a FastAPI backend,
a database package with migrations and a Helm chart, wired together with
shared lint and format configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: KICKSTART_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewCreateCmd())
	rootCmd.AddCommand(NewPackagesCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return err
	}
	configPath = resolved

	cfg, loadErr := config.NewLoader().Load(configPath.ConfigPath)
	if loadErr != nil {
		// Commands that don't need config still work; create reports it.
		cfg = &config.Config{}
	}
	loadedConfig = cfg

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Warn("could not load configuration, using defaults",
			"path", configPath.ConfigPath,
			"error", loadErr,
		)
	}

	if verboseFlag {
		output.Debug("initializing CLI",
			"config", configPath.ConfigPath,
			"source", configPath.Source,
		)
	}

	return nil
}

// GetConfig returns the loaded configuration, never nil.
func GetConfig() *config.Config {
	if loadedConfig == nil {
		return &config.Config{}
	}
	return loadedConfig
}

// GetConfigPath returns the resolved config path value.
func GetConfigPath() string {
	if configPath.ConfigPath != "" {
		return configPath.ConfigPath
	}
	return configFlag
}
