package runner

import (
	"log"
	"os"

	"github.com/rs/xid"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/datarecording"
	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/monitoring"
	"github.com/ror-speedrun/autosplitter/timer"
	"github.com/ror-speedrun/autosplitter/timing"
)

// Builder can be used to build a runner.
type Builder struct {
	timer          timer.Timer
	games          []autosplitter.Adapter
	settings       autosplitter.Settings
	pollRate       timing.Freq
	yielder        timing.Yielder
	attach         autosplitter.AttachFunc
	monitorOn      bool
	monitorPort    int
	recordOn       bool
	outputFileName string
	logger         *log.Logger
	verbose        bool
}

// MakeBuilder creates a new builder. Monitoring and recording are on by
// default.
func MakeBuilder() Builder {
	return Builder{
		settings:  autosplitter.DefaultSettings(),
		pollRate:  timing.DefaultPollRate,
		attach:    memory.Attach,
		monitorOn: true,
		recordOn:  true,
	}
}

// WithTimer sets the timer to drive.
func (b Builder) WithTimer(t timer.Timer) Builder {
	b.timer = t
	return b
}

// WithGames appends games to look for, in priority order.
func (b Builder) WithGames(games ...autosplitter.Adapter) Builder {
	b.games = append(append([]autosplitter.Adapter(nil), b.games...), games...)
	return b
}

// WithSettings sets the initial settings.
func (b Builder) WithSettings(s autosplitter.Settings) Builder {
	b.settings = s
	return b
}

// WithPollRate sets how often games are sampled.
func (b Builder) WithPollRate(f timing.Freq) Builder {
	b.pollRate = f
	return b
}

// WithYielder replaces the wall-clock poller.
func (b Builder) WithYielder(y timing.Yielder) Builder {
	b.yielder = y
	return b
}

// WithAttachFunc replaces how game processes are found.
func (b Builder) WithAttachFunc(f autosplitter.AttachFunc) Builder {
	b.attach = f
	return b
}

// WithoutMonitoring sets the runner to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutRecording sets the runner to not keep a run log.
func (b Builder) WithoutRecording() Builder {
	b.recordOn = false
	return b
}

// WithOutputFileName sets the run log file, without the extension.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithLogger sets where commands and game events are logged.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithVerbose asks games to log their samples.
func (b Builder) WithVerbose(v bool) Builder {
	b.verbose = v
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.timer == nil {
		panic("timer must be set")
	}

	if len(b.games) == 0 {
		panic("at least one game must be registered")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the runner. If monitoring is on, the monitor server is
// started.
func (b Builder) Build() *Runner {
	b.parametersMustBeValid()

	r := &Runner{
		id:       xid.New().String(),
		settings: autosplitter.NewSettingsStore(b.settings),
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	yielder := b.yielder
	if yielder == nil {
		yielder = timing.NewPoller(b.pollRate)
	}

	r.coordinator = autosplitter.MakeBuilder().
		WithTimer(b.timer).
		WithSettings(r.settings).
		Build()

	r.dispatcher = autosplitter.MakeDispatcherBuilder().
		WithAdapters(b.games...).
		WithCoordinator(r.coordinator).
		WithYielder(yielder).
		WithAttachFunc(b.attach).
		WithLogger(logger).
		WithVerbose(b.verbose).
		Build()

	commandLogger := autosplitter.NewCommandLogger(logger)
	r.coordinator.AcceptHook(commandLogger)
	r.dispatcher.AcceptHook(commandLogger)

	if b.recordOn {
		b.buildRecorder(r)
	}

	if b.monitorOn {
		b.buildMonitor(r)
	}

	return r
}

func (b Builder) buildRecorder(r *Runner) {
	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "autosplitter_run_log_" + r.id
	}

	r.dataRecorder = datarecording.New(outputPath)
	r.runRecorder = datarecording.NewRunRecorder(r.dataRecorder)

	r.coordinator.AcceptHook(r.runRecorder)
	r.dispatcher.AcceptHook(r.runRecorder)
}

func (b Builder) buildMonitor(r *Runner) {
	r.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		r.monitor.WithPortNumber(b.monitorPort)
	}

	r.monitor.RegisterSettings(r.settings)

	for _, g := range b.games {
		if inspectable, ok := g.(monitoring.Game); ok {
			r.monitor.RegisterGame(inspectable)
		}
	}

	r.coordinator.AcceptHook(r.monitor)

	r.monitorURL = r.monitor.StartServer()
}
