// Package config collects the options of the autosplitter.
//
// Options come from, in increasing priority: the defaults, a .env file, the
// process environment and the command line. The command line is handled by
// the CLI, which uses a Config loaded from the other sources as its flag
// defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/timer"
	"github.com/ror-speedrun/autosplitter/timing"
)

// EnvPrefix prefixes every environment variable read.
const EnvPrefix = "AUTOSPLITTER_"

// Environment variables, without the prefix.
const (
	EnvTimerAddress = "TIMER_ADDRESS"
	EnvPollRate     = "POLL_RATE"
	EnvMonitor      = "MONITOR"
	EnvMonitorPort  = "MONITOR_PORT"
	EnvOpenBrowser  = "OPEN_BROWSER"
	EnvRecord       = "RECORD"
	EnvRecordPath   = "RECORD_PATH"
	EnvVerbose      = "VERBOSE"
	EnvAllowStart   = "ALLOW_START"
	EnvAllowSplit   = "ALLOW_SPLIT"
	EnvAllowReset   = "ALLOW_RESET"
	EnvROR1Stages   = "ROR1_STAGES"
	EnvRORRStages   = "RORR_STAGES"
)

// MaxPollRate is the fastest supported polling rate.
const MaxPollRate = 1 * timing.KHz

// Config holds every option.
type Config struct {
	// TimerAddress is the host:port of the LiveSplit Server.
	TimerAddress string

	// PollRate is how often the game is sampled.
	PollRate timing.Freq

	// Monitor starts the HTTP monitor. MonitorPort 0 picks a free port.
	Monitor     bool
	MonitorPort int
	OpenBrowser bool

	// Record keeps a run log. An empty RecordPath picks a unique name.
	Record     bool
	RecordPath string

	// Verbose logs the samples of the attached game.
	Verbose bool

	Settings autosplitter.Settings

	// ROR1Stages and RORRStages split on every stage of the respective
	// game.
	ROR1Stages bool
	RORRStages bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		TimerAddress: timer.DefaultLiveSplitAddress,
		PollRate:     timing.DefaultPollRate,
		Settings:     autosplitter.DefaultSettings(),
	}
}

// LoadDotEnv loads the .env files into the process environment. Variables
// that are already set win. Missing files are not an error when no file is
// named explicitly.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if err != nil && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	return godotenv.Load(files...)
}

// FromEnv overrides c with the options set in the environment.
func FromEnv(c Config) (Config, error) {
	return fromLookup(c, os.LookupEnv)
}

// FromMap overrides c with the options in env, keyed like the environment.
// It accepts what godotenv.Read or godotenv.Unmarshal return.
func FromMap(c Config, env map[string]string) (Config, error) {
	return fromLookup(c, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}

type lookupFunc func(key string) (string, bool)

func fromLookup(c Config, lookup lookupFunc) (Config, error) {
	l := loader{lookup: lookup}

	l.str(EnvTimerAddress, &c.TimerAddress)
	l.freq(EnvPollRate, &c.PollRate)
	l.boolean(EnvMonitor, &c.Monitor)
	l.integer(EnvMonitorPort, &c.MonitorPort)
	l.boolean(EnvOpenBrowser, &c.OpenBrowser)
	l.boolean(EnvRecord, &c.Record)
	l.str(EnvRecordPath, &c.RecordPath)
	l.boolean(EnvVerbose, &c.Verbose)
	l.boolean(EnvAllowStart, &c.Settings.AllowStart)
	l.boolean(EnvAllowSplit, &c.Settings.AllowSplit)
	l.boolean(EnvAllowReset, &c.Settings.AllowReset)
	l.boolean(EnvROR1Stages, &c.ROR1Stages)
	l.boolean(EnvRORRStages, &c.RORRStages)

	return c, errors.Join(l.errs...)
}

type loader struct {
	lookup lookupFunc
	errs   []error
}

func (l *loader) get(name string) (string, bool) {
	v, ok := l.lookup(EnvPrefix + name)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(v), true
}

func (l *loader) fail(name, value string, err error) {
	l.errs = append(l.errs,
		fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, name, value, err))
}

func (l *loader) str(name string, dst *string) {
	if v, ok := l.get(name); ok && v != "" {
		*dst = v
	}
}

func (l *loader) boolean(name string, dst *bool) {
	v, ok := l.get(name)
	if !ok || v == "" {
		return
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		l.fail(name, v, err)
		return
	}

	*dst = b
}

func (l *loader) integer(name string, dst *int) {
	v, ok := l.get(name)
	if !ok || v == "" {
		return
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		l.fail(name, v, err)
		return
	}

	*dst = i
}

func (l *loader) freq(name string, dst *timing.Freq) {
	v, ok := l.get(name)
	if !ok || v == "" {
		return
	}

	f, err := ParseFreq(v)
	if err != nil {
		l.fail(name, v, err)
		return
	}

	*dst = f
}

// ParseFreq parses a frequency such as "120", "120Hz" or "1kHz".
func ParseFreq(s string) (timing.Freq, error) {
	unit := timing.Hz
	num := strings.TrimSpace(s)

	lower := strings.ToLower(num)
	switch {
	case strings.HasSuffix(lower, "khz"):
		unit = timing.KHz
		num = num[:len(num)-3]
	case strings.HasSuffix(lower, "hz"):
		num = num[:len(num)-2]
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frequency %q", s)
	}

	return timing.Freq(f) * unit, nil
}

// Validate reports every invalid option.
func (c Config) Validate() error {
	var errs []error

	if _, _, err := net.SplitHostPort(c.TimerAddress); err != nil {
		errs = append(errs, fmt.Errorf("config: timer address: %w", err))
	}

	if c.PollRate <= 0 || c.PollRate > MaxPollRate {
		errs = append(errs, fmt.Errorf(
			"config: poll rate %s must be in (0, %s]", c.PollRate, MaxPollRate))
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		errs = append(errs, fmt.Errorf(
			"config: monitor port %d out of range", c.MonitorPort))
	}

	if c.OpenBrowser && !c.Monitor {
		errs = append(errs, errors.New(
			"config: opening a browser requires the monitor"))
	}

	return errors.Join(errs...)
}

// MustBeValid panics if the configuration is invalid.
func (c Config) MustBeValid() {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}
