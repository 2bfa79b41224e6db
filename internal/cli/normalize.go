package cli

import (
	"github.com/spf13/cobra"

	"github.com/reoring/statecanon"
)

// NormalizeOptions holds flags for the normalize command.
type NormalizeOptions struct {
	Input   string
	Explain bool
	All     bool
	Compact bool
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Print the canonical form of a state document",
		Long: `Read a state document (stdin by default) and print its canonical form.

With --explain every correction is logged to stderr: the pointer and the
reason (missing, null, malformed, clamped, pruned or truncated). Defaults for
absent fields are only listed with --all.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(rootOpts, opts, cmd, firstArg(args))
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "input format (json|yaml); defaults from the file extension")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "log every correction")
	cmd.Flags().BoolVar(&opts.All, "all", false, "with --explain, include defaults for absent fields")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "print compact JSON")

	return cmd
}

func runNormalize(root *RootOptions, opts *NormalizeOptions, cmd *cobra.Command, path string) error {
	f, err := inputFormat(opts.Input, path)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	dm, err := root.decode(cmd.Context(), raw, f)
	if err != nil {
		return err
	}
	if opts.Explain {
		corrections := statecanon.Explain(dm.Presence, opts.All)
		for _, c := range corrections {
			root.Logger.Info("corrected", "path", c.Path, "reason", c.Reason())
		}
		root.Logger.Info("normalized", "corrections", len(corrections))
	}
	return writeDocument(cmd.OutOrStdout(), dm.Value, opts.Compact)
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
