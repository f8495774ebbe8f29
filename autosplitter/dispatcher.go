package autosplitter

import (
	"context"
	"errors"
	"log"

	"github.com/ror-speedrun/autosplitter/hooking"
	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/timing"
)

// AttachFunc opens the first running process matching one of the names.
type AttachFunc func(names ...string) (memory.Process, error)

// A Dispatcher looks for a supported game and hands the coordinator to its
// adapter while the game runs. Games are tried in the order they were
// registered. While no game runs, the dispatcher ticks the coordinator itself
// with no adapter.
type Dispatcher struct {
	*hooking.HookableBase

	adapters    []Adapter
	coordinator Ticker
	yielder     timing.Yielder
	attach      AttachFunc
	logger      *log.Logger
	verbose     bool
}

// DispatcherBuilder can build dispatchers.
type DispatcherBuilder struct {
	adapters    []Adapter
	coordinator Ticker
	yielder     timing.Yielder
	attach      AttachFunc
	logger      *log.Logger
	verbose     bool
}

// MakeDispatcherBuilder creates a builder that attaches to real processes
// and polls at the default rate.
func MakeDispatcherBuilder() DispatcherBuilder {
	return DispatcherBuilder{
		attach: memory.Attach,
	}
}

// WithAdapters appends games to look for.
func (b DispatcherBuilder) WithAdapters(adapters ...Adapter) DispatcherBuilder {
	b.adapters = append(append([]Adapter(nil), b.adapters...), adapters...)
	return b
}

// WithCoordinator sets the coordinator to tick.
func (b DispatcherBuilder) WithCoordinator(c Ticker) DispatcherBuilder {
	b.coordinator = c
	return b
}

// WithYielder sets what paces the ticks.
func (b DispatcherBuilder) WithYielder(y timing.Yielder) DispatcherBuilder {
	b.yielder = y
	return b
}

// WithAttachFunc replaces how processes are found.
func (b DispatcherBuilder) WithAttachFunc(f AttachFunc) DispatcherBuilder {
	b.attach = f
	return b
}

// WithLogger sets the logger handed to adapters.
func (b DispatcherBuilder) WithLogger(l *log.Logger) DispatcherBuilder {
	b.logger = l
	return b
}

// WithVerbose asks adapters to log their samples.
func (b DispatcherBuilder) WithVerbose(v bool) DispatcherBuilder {
	b.verbose = v
	return b
}

func (b DispatcherBuilder) parametersMustBeValid() {
	if b.coordinator == nil {
		panic("autosplitter: coordinator must be set")
	}

	if b.attach == nil {
		panic("autosplitter: attach function must be set")
	}
}

// Build creates the dispatcher.
func (b DispatcherBuilder) Build() *Dispatcher {
	b.parametersMustBeValid()

	y := b.yielder
	if y == nil {
		y = timing.NewPoller(timing.DefaultPollRate)
	}

	return &Dispatcher{
		HookableBase: hooking.NewHookableBase(),
		adapters:     b.adapters,
		coordinator:  b.coordinator,
		yielder:      y,
		attach:       b.attach,
		logger:       b.logger,
		verbose:      b.verbose,
	}
}

// Adapters returns the registered games in the order they are tried.
func (d *Dispatcher) Adapters() []Adapter {
	return d.adapters
}

// Run dispatches until ctx ends or the coordinator fails. It returns the
// context's error in the first case.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if err := d.Step(ctx); err != nil {
			return err
		}

		if err := d.yielder.Yield(ctx); err != nil {
			return err
		}
	}
}

// Step attaches to the first game found and runs its adapter until the game
// exits. If no game is running, it ticks the coordinator once with no
// adapter.
func (d *Dispatcher) Step(ctx context.Context) error {
	for _, a := range d.adapters {
		proc, err := d.attach(a.ProcessNames()...)
		if err != nil {
			continue
		}

		return d.runAttached(ctx, a, proc)
	}

	return d.coordinator.Tick(nil)
}

func (d *Dispatcher) runAttached(
	ctx context.Context,
	a Adapter,
	proc memory.Process,
) error {
	d.InvokeHook(hooking.HookCtx{
		Domain: d,
		Pos:    HookPosAttach,
		Item:   a,
		Detail: proc,
	})

	s := &Session{
		Process:     proc,
		Coordinator: d.coordinator,
		Yielder:     d.yielder,
		Logger:      d.logger,
		Verbose:     d.verbose,
	}

	err := a.Attached(ctx, s)
	_ = proc.Close()

	if errors.Is(err, ErrDetached) {
		err = nil
	}

	d.InvokeHook(hooking.HookCtx{
		Domain: d,
		Pos:    HookPosDetach,
		Item:   a,
		Detail: err,
	})

	return err
}
