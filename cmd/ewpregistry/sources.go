package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSourcesCmd(c *cli) *cobra.Command {
	var showChain bool
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the configured manifest sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.sources()
			if err != nil {
				return err
			}
			if reg.Len() == 0 {
				fmt.Fprintln(c.stdout, "No manifest sources configured.")
				return nil
			}
			for _, src := range reg.All() {
				fmt.Fprintln(c.stdout, src)
				if !showChain {
					continue
				}
				chain, err := src.Chain(c.cfg.Settings(), nil)
				if err != nil {
					return err
				}
				names := chain.Names()
				if len(names) == 0 {
					names = []string{"(none)"}
				}
				fmt.Fprintf(c.stdout, "    %s\n", strings.Join(names, " -> "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showChain, "chain", false, "show the constraints applied to each source")
	return cmd
}
