package autosplitter

import (
	"context"
	"errors"
	"log"

	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/timing"
)

// ErrDetached is returned by Session.Yield once the attached process has
// exited.
var ErrDetached = errors.New("autosplitter: process exited")

// An Adapter knows how to read one game. The coordinator drives every game
// through this interface without knowing which game it is.
type Adapter interface {
	// Name identifies the game in logs and records.
	Name() string

	// ProcessNames lists the executable names of the game. They are tried in
	// order and the first one found is attached.
	ProcessNames() []string

	// Attached runs for as long as the game process lives. It samples the
	// game once per tick, calls s.Coordinator.Tick with itself and then
	// yields with s.Yield. It returns ErrDetached when the process exits.
	Attached(ctx context.Context, s *Session) error

	// StartCondition reports whether the run starts on this tick.
	StartCondition() bool

	// ResetCondition reports whether the game is back at the start of a run.
	ResetCondition() bool

	// SplitCondition reports whether an intermediate split is due on this
	// tick. It never includes the completion of the game.
	SplitCondition() bool

	// Completed reports whether the game was finished on this tick, after
	// which another game may take over the run.
	Completed() bool

	// Loading reports whether in-game time should be frozen. known is false
	// when the game state does not tell, in which case the coordinator keeps
	// the last known loading state.
	Loading() (loading, known bool)
}

// A Ticker is the entry point adapters call once per tick.
type Ticker interface {
	Tick(a Adapter) error
}

// A Session is what an adapter gets to work with while attached.
type Session struct {
	// Process is the attached game process.
	Process memory.Process

	// Coordinator must be ticked once per tick.
	Coordinator Ticker

	// Yielder paces the ticks.
	Yielder timing.Yielder

	// Logger receives diagnostic output of the adapter.
	Logger *log.Logger

	// Verbose asks the adapter to log its samples.
	Verbose bool
}

// Yield waits for the next tick. It returns ErrDetached once the process has
// exited, so that a Session can be handed to timing.Retry and every wait ends
// with the process.
func (s *Session) Yield(ctx context.Context) error {
	if err := s.Yielder.Yield(ctx); err != nil {
		return err
	}

	if s.Process.Exited() {
		return ErrDetached
	}

	return nil
}

// Logf logs through the session logger, if any.
func (s *Session) Logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

var _ timing.Yielder = (*Session)(nil)
