package cmd

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/refbook/application/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema <" + strings.Join(schema.Documents(), "|") + ">",
		Short:     "Print the JSON Schema of a document",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: schema.Documents(),
		RunE: func(c *cobra.Command, args []string) error {
			data, err := schema.Generate(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), string(data))
			return err
		},
	}
}
