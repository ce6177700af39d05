// Command behavior renders reports through the template skeleton and configures modems
// through visitor operations.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-leo/behavior/cmd/behavior/internal/cli"
	"github.com/go-leo/behavior/cmd/behavior/report"
	"github.com/go-leo/behavior/cmd/behavior/visit"
	"github.com/go-leo/behavior/cmd/behavior/version"
)

var rootCmd = &cobra.Command{
	Use:           "behavior",
	Short:         fmt.Sprintf("Runs template skeletons and visitor operations (version %v)", cli.Version),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(report.Cmd)
	rootCmd.AddCommand(visit.Cmd)
	rootCmd.AddCommand(version.Cmd)

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&cli.Verbosity, "verbosity", "v", 0, "Log verbosity, 1 traces every step and dispatch")
	pf.BoolVar(&cli.ShowMetrics, "metrics", false, "Write the collected metrics to stderr after the command")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
