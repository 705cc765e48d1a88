// Command displaymeta-scan is a development helper: it lists the struct types
// of a module directory for overlay scope blocks and prints the display
// decisions resolved for OpenAPI schemas.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "displaymeta-scan",
		Short:         "Inspect types and display metadata during development",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newResolveCmd())
	return rootCmd
}
