package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eclarrays",
	Short: "Inspect ECLIPSE keyword-array files",
	Long: `eclarrays lists and extracts the named, typed arrays stored in
ECLIPSE-compatible exchange files, binary or formatted.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
