package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	js "github.com/reoring/statecanon/jsonschema"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the canonical document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.Schema()
			if err != nil {
				return err
			}
			sch, err := s.JSONSchema()
			if err != nil {
				return err
			}
			b, err := js.MarshalIndent(sch, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return err
		},
	}
}
