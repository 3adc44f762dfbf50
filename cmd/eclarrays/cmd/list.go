package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scigolib/eclio"
)

// listCmd prints one line per array: name, type tag and element count.
var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List all arrays in a keyword-array file",
	Long: `List every array header in file order without reading payloads.

Example:
  eclarrays list CASE.UNRST`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := eclio.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		for i, hdr := range f.Headers() {
			fmt.Printf("%4d  %-8s  %-4v  %12d\n", i, hdr.Name, hdr.Type, hdr.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
