package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/docbuilder"
	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/namespaces"
)

var rootNames = map[string]namespaces.Element{
	"manifest-v5": namespaces.ManifestV5Root,
	"manifest-v6": namespaces.ManifestV6Root,
	"catalogue":   namespaces.CatalogueRoot,
}

func newValidateCmd(c *cli) *cobra.Command {
	var (
		pretty bool
		expect string
	)
	names := make([]string, 0, len(rootNames))
	for name := range rootNames {
		names = append(names, name)
	}
	slices.Sort(names)

	cmd := &cobra.Command{
		Use:   "validate <file.xml>",
		Short: "Validate a document against the bundled schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			in := docbuilder.BuildInput{Raw: raw, MakePretty: pretty}
			if expect != "" {
				el, ok := rootNames[expect]
				if !ok {
					return fmt.Errorf("--expect must be one of %s", strings.Join(names, ", "))
				}
				in = in.Expecting(el)
			}
			b, err := c.builder()
			if err != nil {
				return err
			}
			return c.printBuild(b.Build(in), pretty)
		},
	}
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print the document; error lines refer to the printed text")
	cmd.Flags().StringVar(&expect, "expect", "", "required root element ("+strings.Join(names, ", ")+")")
	return cmd
}

func (c *cli) printBuild(out docbuilder.BuildOutput, pretty bool) error {
	if pretty {
		width := len(fmt.Sprint(len(out.PrettyLines)))
		for i, line := range out.PrettyLines {
			fmt.Fprintf(c.stdout, "%*d  %s\n", width, i+1, line)
		}
	}
	for _, e := range out.Errors {
		fmt.Fprintln(c.stdout, e)
	}
	switch {
	case !out.Parsed():
		return &exitError{code: 2}
	case !out.Valid:
		return &exitError{code: 1}
	}
	name := fmt.Sprintf("{%s}%s", out.RootNamespace, out.RootLocalName)
	if el, ok := namespaces.FindElement(out.RootNamespace, out.RootLocalName); ok {
		name = el.Name
	}
	fmt.Fprintf(c.stdout, "Valid %s.\n", name)
	return nil
}
