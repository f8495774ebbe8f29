package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ror-speedrun/autosplitter/config"
	"github.com/ror-speedrun/autosplitter/game/ror1"
	"github.com/ror-speedrun/autosplitter/game/rorr"
	"github.com/ror-speedrun/autosplitter/runner"
	"github.com/ror-speedrun/autosplitter/timer"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the autosplitter until interrupted.",
	Long: "`run` waits for a supported game, follows it and drives the " +
		"timer. Options are read from a .env file, then from AUTOSPLITTER_* " +
		"environment variables, then from the flags.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}

		return run(cmd, c)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().AddFlagSet(runFlags())
}

// runFlags defines the options of run, defaulting to config.Default.
func runFlags() *pflag.FlagSet {
	d := config.Default()
	f := pflag.NewFlagSet("run", pflag.ContinueOnError)

	f.String("env-file", "", "Load options from this file instead of .env")
	f.String("timer", d.TimerAddress, "Address of the LiveSplit Server")
	f.String("poll-rate", d.PollRate.String(), "How often games are sampled")
	f.Bool("monitor", d.Monitor, "Serve the monitor web page")
	f.Int("monitor-port", d.MonitorPort, "Port of the monitor, 0 for any")
	f.Bool("open-browser", d.OpenBrowser, "Open the monitor in a browser")
	f.Bool("record", d.Record, "Keep a run log")
	f.String("record-path", d.RecordPath,
		"Run log file without extension, empty for a unique name")
	f.BoolP("verbose", "v", d.Verbose, "Log game samples")
	f.Bool("allow-start", d.Settings.AllowStart, "Start the timer")
	f.Bool("allow-split", d.Settings.AllowSplit, "Split")
	f.Bool("allow-reset", d.Settings.AllowReset, "Reset the timer")
	f.Bool("ror1-stages", d.ROR1Stages, "Split on every Risk of Rain stage")
	f.Bool("rorr-stages", d.RORRStages,
		"Split on every Risk of Rain Returns stage")

	return f
}

// loadConfig reads the .env file and the environment, and applies the flags
// that were set on top.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	var files []string
	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		files = append(files, envFile)
	}

	if err := config.LoadDotEnv(files...); err != nil {
		return config.Config{}, err
	}

	c, err := config.FromEnv(config.Default())
	if err != nil {
		return config.Config{}, err
	}

	if err := applyFlags(flags, &c); err != nil {
		return config.Config{}, err
	}

	return c, c.Validate()
}

func applyFlags(flags *pflag.FlagSet, c *config.Config) error {
	strs := map[string]*string{
		"timer":       &c.TimerAddress,
		"record-path": &c.RecordPath,
	}
	bools := map[string]*bool{
		"monitor":      &c.Monitor,
		"open-browser": &c.OpenBrowser,
		"record":       &c.Record,
		"verbose":      &c.Verbose,
		"allow-start":  &c.Settings.AllowStart,
		"allow-split":  &c.Settings.AllowSplit,
		"allow-reset":  &c.Settings.AllowReset,
		"ror1-stages":  &c.ROR1Stages,
		"rorr-stages":  &c.RORRStages,
	}

	for name, dst := range strs {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	for name, dst := range bools {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}

	if flags.Changed("monitor-port") {
		c.MonitorPort, _ = flags.GetInt("monitor-port")
	}

	if flags.Changed("poll-rate") {
		s, _ := flags.GetString("poll-rate")

		f, err := config.ParseFreq(s)
		if err != nil {
			return fmt.Errorf("--poll-rate: %w", err)
		}

		c.PollRate = f
	}

	return nil
}

func run(cmd *cobra.Command, c config.Config) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	client := timer.NewLiveSplitClient(c.TimerAddress, logger)
	defer client.Close()

	b := runner.MakeBuilder().
		WithTimer(client).
		WithGames(
			ror1.New().WithStageSplits(c.ROR1Stages),
			rorr.New().WithStageSplits(c.RORRStages),
		).
		WithSettings(c.Settings).
		WithPollRate(c.PollRate).
		WithLogger(logger).
		WithVerbose(c.Verbose)

	if !c.Monitor {
		b = b.WithoutMonitoring()
	} else if c.MonitorPort > 0 {
		b = b.WithMonitorPort(c.MonitorPort)
	}

	if !c.Record {
		b = b.WithoutRecording()
	} else if c.RecordPath != "" {
		b = b.WithOutputFileName(c.RecordPath)
	}

	r := b.Build()
	defer r.Terminate()

	if c.OpenBrowser {
		if err := browser.OpenURL(r.MonitorURL()); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open the monitor: %v\n", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Waiting for %s or %s, timer at %s\n",
		ror1.Name, rorr.Name, c.TimerAddress)

	return r.Run(ctx)
}
