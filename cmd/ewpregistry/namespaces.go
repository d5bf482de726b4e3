package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
)

func newNamespacesCmd(c *cli) *cobra.Command {
	var catalogueOnly bool
	cmd := &cobra.Command{
		Use:   "namespaces",
		Short: "List the XML namespaces known to the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := namespaces.All()
			if catalogueOnly {
				entries = namespaces.CatalogueXmlns()
			}
			w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PREFIX\tCATALOGUE\tURI\tSCHEMA LOCATION")
			for _, e := range entries {
				mark := ""
				if e.CatalogueXmlns {
					mark = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Prefix, mark, e.URI, e.SchemaLocation)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&catalogueOnly, "catalogue-only", false, "only namespaces declared on the catalogue root")
	return cmd
}
