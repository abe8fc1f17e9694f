package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	halgo "github.com/jagregory/halgo/v2"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		params []string
		name   string
		index  int
	)

	cmd := &cobra.Command{
		Use:   "resolve <rel> [file]",
		Short: "Resolve a link relation to a URL, expanding URI templates",
		Long: `Resolve a link relation to a URL. Templated links are expanded with the
parameters given by --param. A relation holding an array of links needs
--name or --index to pick one.`,
		Example: `  halq resolve find book.json --param q=zen
  halq resolve ea:admin book.json --name fred`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel := args[0]

			p, err := parseParams(params)
			if err != nil {
				return err
			}

			res, err := readResource(cmd, fileArg(args, 1))
			if err != nil {
				return err
			}

			link, err := pickLink(res.Links, rel, name, index)
			if err != nil {
				return err
			}

			a.log.WithFields(logrus.Fields{"rel": rel, "href": link.RawHref()}).Debug("resolving link")

			u, err := link.Resolve(p)
			if err != nil {
				return err
			}
			if u, err = a.absolute(u); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "template parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&name, "name", "", "pick the link with this name property")
	cmd.Flags().IntVar(&index, "index", -1, "pick the link at this position of an array relation")
	return cmd
}

func pickLink(links *halgo.LinksDictionary, rel, name string, index int) (*halgo.Link, error) {
	token, err := links.Get(rel)
	if err != nil {
		return nil, err
	}

	switch {
	case name != "":
		link, ok := token.Named(name)
		if !ok {
			return nil, errors.Errorf("relation %q has no link named %q", rel, name)
		}
		return link, nil

	case index >= 0:
		many, err := token.Many()
		if err != nil {
			return nil, err
		}
		if index >= len(many) {
			return nil, errors.Errorf("relation %q has %d links, no index %d", rel, len(many), index)
		}
		return many[index], nil
	}

	return token.Single()
}

func parseParams(params []string) (halgo.P, error) {
	p := halgo.P{}
	for _, param := range params {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid parameter %q, expected name=value", param)
		}
		p[key] = value
	}
	return p, nil
}
