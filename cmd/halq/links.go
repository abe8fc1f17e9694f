package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLinksCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "links [file]",
		Short: "List the link relations of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := readResource(cmd, fileArg(args, 0))
			if err != nil {
				return err
			}

			if asJSON {
				b, err := json.MarshalIndent(res.Links, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for rel, token := range res.Links.All() {
				links := token.Links()
				if len(links) == 0 {
					fmt.Fprintf(w, "%s\t%s\t\n", rel, token.Cardinality())
				}
				for _, link := range links {
					href := link.RawHref()
					if link.Templated() {
						href += " (templated)"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", rel, token.Cardinality(), href)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the _links section as JSON")
	return cmd
}
