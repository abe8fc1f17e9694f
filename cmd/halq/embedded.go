package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	halgo "github.com/jagregory/halgo/v2"
)

func newEmbeddedCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "embedded <rel> [file]",
		Short: "Print an embedded resource, or list embedded relations with --list",
		Example: `  halq embedded author book.json
  halq embedded --list book.json`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				if len(args) > 1 {
					return errors.New("--list takes at most one file argument")
				}
				res, err := readResource(cmd, fileArg(args, 0))
				if err != nil {
					return err
				}
				for _, rel := range res.Embedded.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), rel)
				}
				return nil
			}

			if len(args) == 0 {
				return errors.New("missing embedded relation")
			}
			res, err := readResource(cmd, fileArg(args, 1))
			if err != nil {
				return err
			}

			v, err := halgo.Embedded[interface{}](res.Embedded, args[0], halgo.DecodeOptions{UseNumber: true})
			if err != nil {
				return err
			}
			a.log.WithField("rel", args[0]).Debug("printing embedded resource")

			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list the embedded relations instead")
	return cmd
}
