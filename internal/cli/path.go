package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/statecanon/state"
)

// PatchOptions holds flags shared by set and unset.
type PatchOptions struct {
	Input  string
	String bool
	Stdout bool
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Print one value of the normalized document",
		Long: `Normalize the document and print the value at a dotted path such as
主角.生命值 or 命定系统.命定之人.艾拉.登神长阶. Exits 2 when nothing is there.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := inputFormat(input, args[0])
			if err != nil {
				return err
			}
			d, err := rootOpts.load(cmd, args[0], f)
			if err != nil {
				return err
			}
			res, err := state.Lookup(d, args[1])
			if err != nil {
				if errors.Is(err, state.ErrPathNotFound) {
					return WrapExitError(ExitCommandError, args[1], err)
				}
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Raw)
			return err
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input format (json|yaml)")
	return cmd
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatchOptions{}
	cmd := &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Write a value into a document and re-normalize it",
		Long: `Set the value at a dotted path, then normalize the result and write it back.
The value is JSON unless --string is given. An edit that breaks an invariant
is corrected on the way out, so setting 主角.生命值 above its cap stores the cap.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(rootOpts, opts, cmd, args[0], func(raw []byte) ([]byte, error) {
				if opts.String {
					return state.Patch(raw, args[1], args[2])
				}
				return state.PatchRaw(raw, args[1], []byte(args[2]))
			})
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "", "input format (json|yaml)")
	cmd.Flags().BoolVar(&opts.String, "string", false, "treat the value as a plain string")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "print the result instead of rewriting the file")
	return cmd
}

// NewUnsetCommand creates the unset command.
func NewUnsetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatchOptions{}
	cmd := &cobra.Command{
		Use:   "unset <file> <path>",
		Short: "Remove a value from a document and re-normalize it",
		Long: `Delete the value at a dotted path. Required fields come back with their
defaults when the document is normalized again.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(rootOpts, opts, cmd, args[0], func(raw []byte) ([]byte, error) {
				return state.Delete(raw, args[1])
			})
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "", "input format (json|yaml)")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "print the result instead of rewriting the file")
	return cmd
}

// runPatch normalizes the file, applies edit to the canonical JSON and
// normalizes again before writing.
func runPatch(root *RootOptions, opts *PatchOptions, cmd *cobra.Command, path string, edit func([]byte) ([]byte, error)) error {
	f, err := inputFormat(opts.Input, path)
	if err != nil {
		return err
	}
	d, err := root.load(cmd, path, f)
	if err != nil {
		return err
	}
	base, err := state.Marshal(d)
	if err != nil {
		return err
	}
	patched, err := edit(base)
	if err != nil {
		return WrapExitError(ExitCommandError, "patch", err)
	}
	dm, err := root.decode(cmd.Context(), patched, state.FormatJSON)
	if err != nil {
		return err
	}
	root.logCorrections(dm.Presence, false)

	if opts.Stdout || path == "" || path == "-" {
		return writeDocument(cmd.OutOrStdout(), dm.Value, false)
	}
	out, err := state.MarshalIndent(dm.Value, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, append(out, '\n')); err != nil {
		return WrapExitError(ExitCommandError, "write "+path, err)
	}
	root.Logger.Info("updated", "file", path)
	return nil
}
