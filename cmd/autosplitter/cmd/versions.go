package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ror-speedrun/autosplitter/game/rorr"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the supported Risk of Rain Returns releases.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSIGNATURE ADDRESS\tSIGNATURE")

		for _, p := range rorr.Versions.Profiles() {
			fmt.Fprintf(w, "%s\t%#x\t%s\n",
				p.Version, p.SignatureAddress, strconv.Quote(string(p.Signature)))
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}
