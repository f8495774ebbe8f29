package autosplitter

import "github.com/ror-speedrun/autosplitter/timer"

// RuntimeState is what the coordinator remembers between ticks. The zero
// value is the initial state.
type RuntimeState struct {
	// SwitchingGames is set between completing one game and the start of the
	// next one. The in-game time is frozen meanwhile.
	SwitchingGames bool `json:"switching_games"`

	// AutoresetLockout latches once a split condition was seen and disables
	// automatic resets for the rest of the run.
	AutoresetLockout bool `json:"autoreset_lockout"`

	// WasLoading remembers whether the in-game time is currently frozen, so
	// that pause and resume are sent only on changes.
	WasLoading bool `json:"was_loading"`
}

// A Snapshot is the coordinator's state after a tick.
type Snapshot struct {
	Tick      uint64          `json:"tick"`
	Game      string          `json:"game"`
	Lifecycle timer.Lifecycle `json:"lifecycle"`
	Settings  Settings        `json:"settings"`
	State     RuntimeState    `json:"state"`
}
