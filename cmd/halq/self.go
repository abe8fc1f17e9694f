package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSelfCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "self [file]",
		Short: "Print the self link of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := readResource(cmd, fileArg(args, 0))
			if err != nil {
				return err
			}

			self, err := res.Self()
			if err != nil {
				return err
			}

			u, err := a.absolute(self.URL())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
}
