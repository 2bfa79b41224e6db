package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	js "github.com/reoring/statecanon/jsonschema"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Verify a JSON document is already canonical",
		Long: `Verify that a JSON state document is exactly its own canonical form and
that it validates against the exported JSON Schema. Exits 1 when it is not.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd, firstArg(args))
		},
	}
	return cmd
}

func runCheck(root *RootOptions, cmd *cobra.Command, path string) error {
	raw, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	s, err := root.Schema()
	if err != nil {
		return err
	}
	sch, err := s.JSONSchema()
	if err != nil {
		return err
	}
	v, err := js.Compile(sch)
	if err != nil {
		return WrapExitError(ExitCommandError, "compile schema", err)
	}
	if err := v.Validate(raw); err != nil {
		return WrapExitError(ExitFailure, "schema violation", err)
	}
	ok, err := s.IsCanonical(cmd.Context(), raw)
	if err != nil {
		return WrapExitError(ExitCommandError, "normalize", err)
	}
	if !ok {
		return NewExitError(ExitFailure, "document is not canonical; run normalize")
	}
	root.Logger.Debug("check passed", "path", path)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return err
}
