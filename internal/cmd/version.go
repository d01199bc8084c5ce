package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opmodel/kickstart/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show kickstart version information.

Displays:
  - kickstart version, commit, and build date
  - package managers and git found on PATH, compared with the
    versions pinned into generated projects`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tools := version.DetectTools(ctx, newRunner(), "")
	fmt.Fprintln(cmd.OutOrStdout(), version.FullVersionString(version.GetInfo(), tools))
	return nil
}
