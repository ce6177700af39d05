package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-leo/behavior/cmd/behavior/internal/cli"
)

// Cmd is the Cobra object representing the behavior version command.
var Cmd = &cobra.Command{
	Use:     "version",
	Short:   "Prints the version of this binary",
	Example: `  behavior version`,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", cli.Version)
	},
}
