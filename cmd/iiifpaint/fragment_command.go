package main

import (
	"fmt"

	"github.com/filegrind/iiifpres-go/fragment"
	"github.com/spf13/cobra"
)

func newFragmentCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fragment FRAGMENT",
		Short: "Parse a media fragment and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := fragment.Parse(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, sel)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", sel, sel.Kind())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the FragmentSelector JSON")

	return cmd
}
