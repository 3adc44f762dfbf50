package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scigolib/eclio"
)

// dumpCmd prints the values of one named array, one value per line.
var dumpCmd = &cobra.Command{
	Use:   "dump <file> <array>",
	Short: "Print the values of one named array",
	Long: `Decode and print a single array by name.

Example:
  eclarrays dump CASE.INIT PORO`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := eclio.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		name := args[1]
		if !f.HasKey(name) {
			return fmt.Errorf("array %q not found in %s", name, args[0])
		}

		var hdr eclio.Header
		for _, h := range f.Headers() {
			if h.Name == name {
				hdr = h
				break
			}
		}

		switch hdr.Type {
		case eclio.Inte:
			values, err := f.GetInte(name)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(v)
			}
		case eclio.Real:
			values, err := f.GetReal(name)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(v)
			}
		case eclio.Doub:
			values, err := f.GetDoub(name)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(v)
			}
		case eclio.Logi:
			values, err := f.GetLogi(name)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(v)
			}
		case eclio.Char, eclio.C0nn:
			values, err := f.GetChar(name)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(v)
			}
		case eclio.Mess:
			fmt.Printf("%s is a MESS keyword and carries no data\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
