package autosplitter

import (
	"log"

	"github.com/ror-speedrun/autosplitter/hooking"
)

// CommandLogger is a hook that prints timer commands and attach events.
type CommandLogger struct {
	hooking.LogHookBase
}

// NewCommandLogger returns a new CommandLogger which will write into the
// logger.
func NewCommandLogger(logger *log.Logger) *CommandLogger {
	h := new(CommandLogger)
	h.Logger = logger

	return h
}

// Func writes the hook information into the logger.
func (h *CommandLogger) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosCommand:
		rec, ok := ctx.Item.(CommandRecord)
		if !ok {
			return
		}

		if rec.Command == CmdSetGameTime {
			h.Printf("tick %d, %s, %s %s",
				rec.Tick, rec.Game, rec.Command, rec.GameTime)
			return
		}

		h.Printf("tick %d, %s, %s", rec.Tick, rec.Game, rec.Command)
	case HookPosAttach:
		a, ok := ctx.Item.(Adapter)
		if !ok {
			return
		}

		h.Printf("attached to %s", a.Name())
	case HookPosDetach:
		a, ok := ctx.Item.(Adapter)
		if !ok {
			return
		}

		if err, isErr := ctx.Detail.(error); isErr && err != nil {
			h.Printf("detached from %s: %v", a.Name(), err)
			return
		}

		h.Printf("detached from %s", a.Name())
	}
}
