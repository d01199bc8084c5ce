package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/kickstart/internal/features"
	"github.com/opmodel/kickstart/internal/output"
)

// NewPackagesCmd creates the packages command.
func NewPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "packages",
		Aliases: []string{"pkgs"},
		Short:   "List selectable packages",
		Long: `List the optional packages that create can add to a project.

Packages marked enabled are selected when neither --packages,
KICKSTART_PACKAGES nor the config file choose otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := output.NewTable("ID", "NAME", "DEFAULT", "DIRECTORY", "DESCRIPTION")
			for _, f := range features.Registry() {
				status := output.StatusDisabled
				if f.DefaultEnabled {
					status = output.StatusEnabled
				}
				t.Row(
					output.StyleNoun.Render(f.ID),
					f.Name,
					output.StatusStyle(status).Render(status),
					f.Dir,
					f.Description,
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}
