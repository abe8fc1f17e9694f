package main

import (
	"io"
	"net/url"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	halgo "github.com/jagregory/halgo/v2"
)

// readResource decodes the HAL document named by path, or stdin when path
// is empty or "-".
func readResource(cmd *cobra.Command, path string) (*halgo.Resource, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	res := &halgo.Resource{}
	if err := halgo.Decode(r, res); err != nil {
		return nil, err
	}
	return res, nil
}

// fileArg returns args[i], or "" if it wasn't given.
func fileArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

// absolute resolves u against the configured base_url, if any.
func (a *app) absolute(u *url.URL) (*url.URL, error) {
	base := a.cfg.GetString(cfgKeyBaseURL)
	if base == "" {
		return u, nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s %q", cfgKeyBaseURL, base)
	}
	return b.ResolveReference(u), nil
}
