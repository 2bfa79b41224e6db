package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/statecanon/state"
)

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "state [file]",
		Short: "Print the ladder state of every character",
		Long: `Normalize the document and print one line per character: the protagonist
first, then each fated partner in document order, with the ladder state and
the number of elements, powers and laws held.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			f, err := inputFormat(input, path)
			if err != nil {
				return err
			}
			d, err := rootOpts.load(cmd, path, f)
			if err != nil {
				return err
			}
			s, err := rootOpts.Schema()
			if err != nil {
				return err
			}
			lc := s.Ladder()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CHARACTER\tSTATE\tELEMENTS\tPOWERS\tLAWS\tTITLE")
			a := d.Player.Ladder
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", state.KeyPlayer, lc.Classify(a), a.Elements.Len(), a.Powers.Len(), a.Laws.Len(), a.Title)
			for name, p := range d.Fate.Partners.All() {
				a := p.Ladder
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n", name, lc.Classify(a), a.Elements.Len(), a.Powers.Len(), a.Laws.Len(), a.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "input format (json|yaml)")
	return cmd
}
