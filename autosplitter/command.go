package autosplitter

import (
	"fmt"
	"time"

	"github.com/ror-speedrun/autosplitter/hooking"
	"github.com/ror-speedrun/autosplitter/timer"
)

// Command is a command the coordinator sends to the timer.
type Command int

// Commands the coordinator sends.
const (
	CmdStart Command = iota
	CmdSplit
	CmdReset
	CmdPauseGameTime
	CmdResumeGameTime
	CmdSetGameTime
)

var commandNames = [...]string{
	CmdStart:          "start",
	CmdSplit:          "split",
	CmdReset:          "reset",
	CmdPauseGameTime:  "pause_game_time",
	CmdResumeGameTime: "resume_game_time",
	CmdSetGameTime:    "set_game_time",
}

func (c Command) String() string {
	if c >= 0 && int(c) < len(commandNames) {
		return commandNames[c]
	}

	return fmt.Sprintf("Command(%d)", int(c))
}

// MarshalText encodes the command by name.
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// A CommandRecord describes one command sent to the timer. It is the item of
// hooks invoked at HookPosCommand.
type CommandRecord struct {
	Tick      uint64          `json:"tick"`
	Command   Command         `json:"command"`
	Game      string          `json:"game"`
	Lifecycle timer.Lifecycle `json:"lifecycle"`
	GameTime  time.Duration   `json:"game_time"`
}

// Hook positions of the coordinator and the dispatcher.
var (
	// HookPosCommand fires after a command was sent to the timer. The item is
	// a CommandRecord.
	HookPosCommand = &hooking.HookPos{Name: "Command"}

	// HookPosAfterTick fires at the end of every tick. The item is a
	// Snapshot.
	HookPosAfterTick = &hooking.HookPos{Name: "AfterTick"}

	// HookPosAttach fires when a game process was attached. The item is the
	// Adapter and the detail the memory.Process.
	HookPosAttach = &hooking.HookPos{Name: "Attach"}

	// HookPosDetach fires when an attached game process is gone. The item is
	// the Adapter and the detail the error the adapter stopped with, or nil if the process exited.
	HookPosDetach = &hooking.HookPos{Name: "Detach"}
)
