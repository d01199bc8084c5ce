package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/kickstart/internal/config"
	oerrors "github.com/opmodel/kickstart/internal/errors"
	"github.com/opmodel/kickstart/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a configuration file with the default settings.

The file is written to the path given by --config, KICKSTART_CONFIG or
~/.kickstart/config.yaml, in that order. It holds the default package
manager, the default package selection, the output directory and the
install retry settings.

Examples:
  # Initialize configuration
  kickstart config init

  # Overwrite existing configuration
  kickstart config init --force`,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}
	configFile := pathResult.ConfigPath

	exists, err := config.ConfigFileExists(configFile)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not check "+configFile)
	}
	if exists && !configInitForce {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: configFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := config.DefaultConfig().Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(configFile))
	}
	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+configFile)
	}

	output.Println("Configuration initialized at " + configFile)
	output.Println("Validate with: kickstart config vet")

	return nil
}
