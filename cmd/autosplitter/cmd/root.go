// Package cmd provides the command-line interface of the autosplitter.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autosplitter",
	Short: "Autosplitter for Risk of Rain and Risk of Rain Returns.",
	Long: `Autosplitter reads the memory of a running Risk of Rain or ` +
		`Risk of Rain Returns game and starts, splits and resets a ` +
		`LiveSplit timer through the LiveSplit Server component.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Exit handlers, such as the run log flush, run before the
// process exits.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
