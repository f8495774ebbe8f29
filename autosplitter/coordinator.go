// Package autosplitter coordinates the external timer with whichever game is
// attached.
//
// The Coordinator is a state machine keyed by the timer's lifecycle. It is
// ticked once per polling cycle, either by the adapter of the attached game
// or by the Dispatcher with no adapter while no game is running, and sends
// start, split, reset and in-game-time commands to the timer.
//
// Within one tick the checks run in a fixed order: reset, then split or
// completion, then the end of a game switch, then load removal. Later checks
// see the state changed by earlier ones.
package autosplitter

import (
	"time"

	"github.com/ror-speedrun/autosplitter/hooking"
	"github.com/ror-speedrun/autosplitter/timer"
)

// Coordinator translates game conditions into timer commands.
type Coordinator struct {
	*hooking.HookableBase

	timer          timer.Timer
	settingsSource SettingsSource

	settings  Settings
	state     RuntimeState
	lifecycle timer.Lifecycle
	game      string
	ticks     uint64
}

// Builder can build coordinators.
type Builder struct {
	timer    timer.Timer
	settings SettingsSource
	state    RuntimeState
}

// MakeBuilder creates a builder with default settings.
func MakeBuilder() Builder {
	return Builder{
		settings: NewSettingsStore(DefaultSettings()),
	}
}

// WithTimer sets the timer to drive.
func (b Builder) WithTimer(t timer.Timer) Builder {
	b.timer = t
	return b
}

// WithSettings sets where the settings are read from on every tick.
func (b Builder) WithSettings(s SettingsSource) Builder {
	b.settings = s
	return b
}

// WithState sets the runtime state the coordinator starts in.
func (b Builder) WithState(s RuntimeState) Builder {
	b.state = s
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.timer == nil {
		panic("autosplitter: timer must be set")
	}

	if b.settings == nil {
		panic("autosplitter: settings source must be set")
	}
}

// Build creates a coordinator in its initial state.
func (b Builder) Build() *Coordinator {
	b.parametersMustBeValid()

	return &Coordinator{
		HookableBase:   hooking.NewHookableBase(),
		timer:          b.timer,
		settingsSource: b.settings,
		settings:       b.settings.Settings(),
		state:          b.state,
	}
}

// State returns the runtime state.
func (c *Coordinator) State() RuntimeState {
	return c.state
}

// Snapshot returns the state after the last tick.
func (c *Coordinator) Snapshot() Snapshot {
	return Snapshot{
		Tick:      c.ticks,
		Game:      c.game,
		Lifecycle: c.lifecycle,
		Settings:  c.settings,
		State:     c.state,
	}
}

// Tick runs one polling cycle. a is the attached game's adapter, or nil when
// no game is attached. Tick returns an UnhandledLifecycleError if the timer
// reports a lifecycle with no defined transition while a game is attached;
// the coordinator must not be ticked again after that.
func (c *Coordinator) Tick(a Adapter) error {
	c.ticks++
	c.settings = c.settingsSource.Settings()
	c.lifecycle = c.timer.Lifecycle()
	c.game = ""

	if a == nil {
		c.tickDetached()
	} else {
		c.game = a.Name()

		if err := c.tickAttached(a); err != nil {
			return err
		}
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosAfterTick,
		Item:   c.Snapshot(),
	})

	return nil
}

// tickDetached keeps the in-game time frozen while switching between games.
func (c *Coordinator) tickDetached() {
	switch c.lifecycle {
	case timer.Running, timer.Paused:
		if c.state.SwitchingGames && !c.state.WasLoading {
			c.command(CmdPauseGameTime, 0)
			c.state.WasLoading = true
		}
	case timer.Ended:
		c.resetState()
	}
}

func (c *Coordinator) tickAttached(a Adapter) error {
	switch c.lifecycle {
	case timer.NotRunning:
		c.tickNotRunning(a)
	case timer.Running, timer.Paused:
		c.tickRunning(a)
	case timer.Ended:
		c.resetState()
	case timer.Unknown:
	default:
		return &UnhandledLifecycleError{Lifecycle: c.lifecycle}
	}

	return nil
}

func (c *Coordinator) tickNotRunning(a Adapter) {
	if !a.StartCondition() {
		return
	}

	if c.settings.AllowStart {
		c.command(CmdStart, 0)
		// The host's game time starts marginally ahead of real time; zero
		// it right after starting.
		c.command(CmdSetGameTime, 0)
	}

	c.resetState()
}

func (c *Coordinator) tickRunning(a Adapter) {
	if c.shouldReset(a) {
		c.command(CmdReset, 0)
		c.resetState()

		return
	}

	if !c.state.SwitchingGames {
		c.checkSplit(a)
	}

	if c.state.SwitchingGames && a.StartCondition() {
		c.state.SwitchingGames = false
	}

	c.updateLoading(a)
}

func (c *Coordinator) shouldReset(a Adapter) bool {
	return a.ResetCondition() &&
		!c.state.AutoresetLockout &&
		c.settings.AllowReset
}

func (c *Coordinator) checkSplit(a Adapter) {
	switch {
	case a.Completed():
		c.command(CmdSplit, 0)
		c.state.AutoresetLockout = true
		c.state.SwitchingGames = true
	case a.SplitCondition():
		if c.settings.AllowSplit {
			c.command(CmdSplit, 0)
		}

		c.state.AutoresetLockout = true
	}
}

func (c *Coordinator) updateLoading(a Adapter) {
	loading, known := a.Loading()
	if !known {
		loading = c.state.WasLoading
	}

	loading = loading || c.state.SwitchingGames

	switch {
	case loading && !c.state.WasLoading:
		c.command(CmdPauseGameTime, 0)
		c.state.WasLoading = true
	case !loading && c.state.WasLoading:
		c.command(CmdResumeGameTime, 0)
		c.state.WasLoading = false
	}
}

func (c *Coordinator) resetState() {
	c.state = RuntimeState{}
}

func (c *Coordinator) command(cmd Command, gameTime time.Duration) {
	switch cmd {
	case CmdStart:
		c.timer.Start()
	case CmdSplit:
		c.timer.Split()
	case CmdReset:
		c.timer.Reset()
	case CmdPauseGameTime:
		c.timer.PauseGameTime()
	case CmdResumeGameTime:
		c.timer.ResumeGameTime()
	case CmdSetGameTime:
		c.timer.SetGameTime(gameTime)
	default:
		panic("autosplitter: unknown command " + cmd.String())
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosCommand,
		Item: CommandRecord{
			Tick:      c.ticks,
			Command:   cmd,
			Game:      c.game,
			Lifecycle: c.lifecycle,
			GameTime:  gameTime,
		},
	})
}
