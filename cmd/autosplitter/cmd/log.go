package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ror-speedrun/autosplitter/datarecording"
)

var logCmd = &cobra.Command{
	Use:   "log <file>",
	Short: "Print a run log.",
	Long: "`log <file>` prints the executions, attaches and timer commands " +
		"stored in a run log written by `run --record`.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		limit, _ := cmd.Flags().GetInt("limit")

		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		datarecording.MapRunTables(reader)

		return printRunLog(cmd, reader, session, limit)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().String("session", "", "Only print this execution")
	logCmd.Flags().Int("limit", 0, "Print at most this many commands")
}

func printRunLog(
	cmd *cobra.Command,
	reader datarecording.DataReader,
	session string,
	limit int,
) error {
	params := datarecording.QueryParams{OrderBy: "rowid"}
	if session != "" {
		params.Where = "Session = ?"
		params.Args = []any{session}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	execs, _, err := reader.Query(cmd.Context(), datarecording.ExecTable, params)
	if err != nil {
		return err
	}

	for _, e := range execs {
		info := e.(*datarecording.ExecInfo)
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Session, info.Property, info.Value)
	}

	fmt.Fprintln(w)

	attaches, _, err := reader.Query(
		cmd.Context(), datarecording.AttachTable, params)
	if err != nil {
		return err
	}

	for _, e := range attaches {
		a := e.(*datarecording.AttachEntry)
		fmt.Fprintf(w, "%s\t%s\t%s\tpid %d\t%s\n",
			a.Time, a.Event, a.Game, a.PID, a.Error)
	}

	fmt.Fprintln(w)

	params.Limit = limit

	commands, total, err := reader.Query(
		cmd.Context(), datarecording.CommandTable, params)
	if err != nil {
		return err
	}

	for _, e := range commands {
		c := e.(*datarecording.CommandEntry)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%.3f\n",
			c.Time, c.Tick, c.Game, c.Lifecycle, c.Command, c.GameTime)
	}

	if len(commands) < total {
		fmt.Fprintf(w, "... %d more commands\n", total-len(commands))
	}

	return w.Flush()
}
