// Package timer defines the external speedrun timer the autosplitter drives,
// and a client for the LiveSplit Server protocol.
package timer

import (
	"fmt"
	"time"
)

// Lifecycle is the phase the external timer reports.
type Lifecycle int

// Known lifecycle phases. A timer may report a value outside this set when it
// is newer than this program; such values are not handled.
const (
	NotRunning Lifecycle = iota
	Running
	Paused
	Ended
	Unknown
)

var lifecycleNames = map[Lifecycle]string{
	NotRunning: "NotRunning",
	Running:    "Running",
	Paused:     "Paused",
	Ended:      "Ended",
	Unknown:    "Unknown",
}

func (l Lifecycle) String() string {
	if name, ok := lifecycleNames[l]; ok {
		return name
	}

	return fmt.Sprintf("Lifecycle(%d)", int(l))
}

// MarshalText encodes the phase by name.
func (l Lifecycle) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a phase name.
func (l *Lifecycle) UnmarshalText(text []byte) error {
	parsed, ok := ParseLifecycle(string(text))
	if !ok {
		return fmt.Errorf("timer: unknown lifecycle %q", text)
	}

	*l = parsed

	return nil
}

// Known reports whether l is one of the known phases.
func (l Lifecycle) Known() bool {
	_, ok := lifecycleNames[l]
	return ok
}

// ParseLifecycle converts a phase name into a Lifecycle.
func ParseLifecycle(s string) (Lifecycle, bool) {
	for l, name := range lifecycleNames {
		if name == s {
			return l, true
		}
	}

	return Lifecycle(-1), false
}

// A Timer is the external timer. Commands are fire-and-forget: a timer
// ignores commands that do not apply to its current phase.
type Timer interface {
	// Lifecycle returns the current phase.
	Lifecycle() Lifecycle

	Start()
	Pause()
	Resume()
	Split()
	Reset()

	// PauseGameTime freezes the in-game-time clock.
	PauseGameTime()

	// ResumeGameTime lets the in-game-time clock run again.
	ResumeGameTime()

	// SetGameTime overwrites the in-game time.
	SetGameTime(d time.Duration)
}
