package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/favbox/opchain/components/learner"
)

var CapabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List learner capabilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Capability\tDescription")
		for _, c := range learner.Capabilities() {
			fmt.Fprintf(w, "%s\t%s\n", c, c.Description())
		}
		return w.Flush()
	},
}
