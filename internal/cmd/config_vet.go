package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/kickstart/internal/config"
	oerrors "github.com/opmodel/kickstart/internal/errors"
	"github.com/opmodel/kickstart/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the kickstart configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Values are known (package manager, packages, booleans)

The config path is resolved using precedence:
  --config flag > KICKSTART_CONFIG env > ~/.kickstart/config.yaml

Examples:
  # Validate default configuration
  kickstart config vet

  # Validate custom config path
  kickstart config vet --config /path/to/config.yaml`,
		RunE: runConfigVet,
	}
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	configFile := pathResult.ConfigPath

	output.Debug("validating config",
		"path", configFile,
		"source", pathResult.Source,
	)

	exists, err := config.ConfigFileExists(configFile)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not check "+configFile)
	}
	if !exists {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configFile,
			Hint:     "Run 'kickstart config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	if err := config.ValidateFile(configFile); err != nil {
		return oerrors.NewValidationError(err.Error(), configFile, "")
	}

	output.Println("Configuration is valid: " + configFile)
	return nil
}
