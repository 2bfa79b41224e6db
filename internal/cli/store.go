package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/reoring/statecanon/internal/store"
	"github.com/reoring/statecanon/state"
)

// StoreOptions holds flags for the store commands.
type StoreOptions struct {
	DB string
}

// NewStoreCommand creates the store command group. Every write normalizes the
// document first, so the store only ever holds canonical payloads.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{}

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Read and write state documents in the variable store",
	}
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite database path (default from config)")

	cmd.AddCommand(newStoreGetCommand(rootOpts, opts))
	cmd.AddCommand(newStorePutCommand(rootOpts, opts))
	cmd.AddCommand(newStoreSetCommand(rootOpts, opts))
	cmd.AddCommand(newStoreListCommand(rootOpts, opts))
	cmd.AddCommand(newStoreDeleteCommand(rootOpts, opts))
	return cmd
}

// withStore opens the store for the duration of fn.
func (o *StoreOptions) withStore(root *RootOptions, fn func(*store.Store) error) error {
	path := o.DB
	if path == "" {
		path = root.Config.Store.Path
	}
	st, err := store.Open(path, store.WithLogger(root.Logger))
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	err = fn(st)
	if cerr := st.Close(); err == nil && cerr != nil {
		err = WrapExitError(ExitCommandError, "close store", cerr)
	}
	return err
}

// canonical normalizes raw JSON into the stored encoding.
func (o *RootOptions) canonical(ctx context.Context, raw []byte, f state.Format) ([]byte, error) {
	dm, err := o.decode(ctx, raw, f)
	if err != nil {
		return nil, err
	}
	o.logCorrections(dm.Presence, false)
	return state.Marshal(dm.Value)
}

func newStoreGetCommand(root *RootOptions, opts *StoreOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "get <scope>",
		Short: "Print the document stored under a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(root, func(st *store.Store) error {
				e, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "get", err)
				}
				out := e.Payload
				if path != "" {
					dm, err := root.decode(cmd.Context(), e.Payload, state.FormatJSON)
					if err != nil {
						return err
					}
					res, err := state.Lookup(dm.Value, path)
					if err != nil {
						return WrapExitError(ExitCommandError, path, err)
					}
					out = []byte(res.Raw)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "print only the value at this dotted path")
	return cmd
}

func newStorePutCommand(root *RootOptions, opts *StoreOptions) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "put <scope> [file]",
		Short: "Normalize a document and store it under a scope",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 1 {
				file = args[1]
			}
			f, err := inputFormat(input, file)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			payload, err := root.canonical(cmd.Context(), raw, f)
			if err != nil {
				return err
			}
			return opts.withStore(root, func(st *store.Store) error {
				e, err := st.Put(cmd.Context(), args[0], payload)
				if err != nil {
					return WrapExitError(ExitCommandError, "put", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), e.Revision)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input format (json|yaml)")
	return cmd
}

func newStoreSetCommand(root *RootOptions, opts *StoreOptions) *cobra.Command {
	var asString bool
	cmd := &cobra.Command{
		Use:   "set <scope> <path> <value>",
		Short: "Patch one value of a stored document",
		Long: `Patch the value at a dotted path inside the stored document and normalize
the result in the same transaction. A missing scope starts from the default
document.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withStore(root, func(st *store.Store) error {
				e, err := st.Update(ctx, args[0], func(cur []byte) ([]byte, error) {
					var (
						patched []byte
						err     error
					)
					if asString {
						patched, err = state.Patch(cur, args[1], args[2])
					} else {
						patched, err = state.PatchRaw(cur, args[1], []byte(args[2]))
					}
					if err != nil {
						return nil, WrapExitError(ExitCommandError, "patch", err)
					}
					return root.canonical(ctx, patched, state.FormatJSON)
				})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), e.Revision)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asString, "string", false, "treat the value as a plain string")
	return cmd
}

func newStoreListCommand(root *RootOptions, opts *StoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scopes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(root, func(st *store.Store) error {
				entries, err := st.List(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "list", err)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SCOPE\tREVISION\tSIZE\tUPDATED")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Scope, e.Revision, e.Size, e.UpdatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}
}

func newStoreDeleteCommand(root *RootOptions, opts *StoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <scope>",
		Short: "Remove a scope from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(root, func(st *store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return WrapExitError(ExitCommandError, "delete", err)
				}
				root.Logger.Info("deleted", "scope", args[0])
				return nil
			})
		},
	}
}
