package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/report"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/source"
)

type admitOptions struct {
	location string
	heiRegex string
	trusted  bool
	json     bool
	output   string
}

func newAdmitCmd(c *cli) *cobra.Command {
	var opts admitOptions
	cmd := &cobra.Command{
		Use:   "admit <manifest.xml>",
		Short: "Run a manifest through the admission pipeline",
		Long: `Admit builds the manifest, applies the constraints of its source and
re-validates what is left. The source is looked up by --source in the sources
file; unknown locations are treated as regular sources.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.admit(args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.location, "source", "s", "", "URL the manifest was fetched from")
	cmd.Flags().StringVar(&opts.heiRegex, "hei-regex", "", "institutions allowed for an unregistered source")
	cmd.Flags().BoolVar(&opts.trusted, "trusted", false, "treat an unregistered source as trusted")
	cmd.Flags().BoolVar(&opts.json, "json", false, "write the report as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the constrained manifest to this file")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func (c *cli) admit(path string, opts admitOptions) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p, err := c.pipeline()
	if err != nil {
		return err
	}
	reg, err := c.sources()
	if err != nil {
		return err
	}

	src, ok := reg.Lookup(opts.location)
	if !ok {
		if opts.trusted {
			src, err = source.NewTrusted(opts.location)
		} else {
			src, err = source.NewRegular(opts.location, opts.heiRegex)
		}
		if err != nil {
			return err
		}
		c.logger.Debug("source not registered, using flags", zap.Stringer("source", src))
	}

	res, err := p.Admit(src, raw)
	if err != nil {
		return err
	}

	rep := res.Report()
	if opts.json {
		if err := rep.WriteJSON(c.stdout); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(c.stdout, "Run %s, source %s\n", res.ID, src)
		rep.WriteText(c.stdout)
	}

	if opts.output != "" && res.After.Parsed() {
		if err := os.WriteFile(opts.output, []byte(res.After.PrettyXML), 0o644); err != nil {
			return err
		}
	}

	switch {
	case !res.Before.Valid:
		return &exitError{code: 2}
	case res.Worst == report.Error:
		return &exitError{code: 1}
	}
	return nil
}
