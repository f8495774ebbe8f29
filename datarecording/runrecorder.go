package datarecording

import (
	"os"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/hooking"
	"github.com/ror-speedrun/autosplitter/memory"
)

// Tables written by a RunRecorder.
const (
	ExecTable    = "exec_info"
	CommandTable = "timer_command"
	AttachTable  = "game_attach"
)

const timeLayout = "2006-01-02 15:04:05.000000000"

// ExecInfo is a property of the program execution.
type ExecInfo struct {
	Session  string
	Property string
	Value    string
}

// CommandEntry is a command sent to the timer.
type CommandEntry struct {
	Session   string
	Time      string
	Tick      uint64
	Command   string
	Game      string
	Lifecycle string

	// GameTime is the in-game time that was set, in seconds.
	GameTime float64
}

// AttachEntry is a game process being attached or detached.
type AttachEntry struct {
	Session string
	Time    string
	Event   string
	Game    string
	PID     int
	Error   string
}

// RunRecorder is a hook that writes the command stream and attach events of
// one program execution into a DataRecorder. Hook it to both the coordinator
// and the dispatcher.
type RunRecorder struct {
	recorder DataRecorder
	session  string
	now      func() time.Time
}

// NewRunRecorder creates the tables and records the start of the execution.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	return newRunRecorder(recorder, time.Now)
}

func newRunRecorder(recorder DataRecorder, now func() time.Time) *RunRecorder {
	r := &RunRecorder{
		recorder: recorder,
		session:  xid.New().String(),
		now:      now,
	}

	recorder.CreateTable(ExecTable, ExecInfo{})
	recorder.CreateTable(CommandTable, CommandEntry{})
	recorder.CreateTable(AttachTable, AttachEntry{})

	r.start()

	return r
}

// Session returns the ID all entries of this execution carry.
func (r *RunRecorder) Session() string {
	return r.session
}

func (r *RunRecorder) start() {
	r.exec("Start Time", r.timestamp())
	r.exec("Command", strings.Join(os.Args, " "))

	if wd, err := os.Getwd(); err == nil {
		r.exec("Working Directory", wd)
	}
}

// End records the end of the execution and flushes.
func (r *RunRecorder) End() {
	r.exec("End Time", r.timestamp())
	r.recorder.Flush()
}

func (r *RunRecorder) exec(property, value string) {
	r.recorder.InsertData(ExecTable, ExecInfo{
		Session:  r.session,
		Property: property,
		Value:    value,
	})
}

func (r *RunRecorder) timestamp() string {
	return r.now().Format(timeLayout)
}

// Func records commands and attach events.
func (r *RunRecorder) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case autosplitter.HookPosCommand:
		r.recordCommand(ctx)
	case autosplitter.HookPosAttach, autosplitter.HookPosDetach:
		r.recordAttach(ctx)
	}
}

func (r *RunRecorder) recordCommand(ctx hooking.HookCtx) {
	rec, ok := ctx.Item.(autosplitter.CommandRecord)
	if !ok {
		return
	}

	r.recorder.InsertData(CommandTable, CommandEntry{
		Session:   r.session,
		Time:      r.timestamp(),
		Tick:      rec.Tick,
		Command:   rec.Command.String(),
		Game:      rec.Game,
		Lifecycle: rec.Lifecycle.String(),
		GameTime:  rec.GameTime.Seconds(),
	})

	// A reset ends a run; make it durable.
	if rec.Command == autosplitter.CmdReset {
		r.recorder.Flush()
	}
}

func (r *RunRecorder) recordAttach(ctx hooking.HookCtx) {
	a, ok := ctx.Item.(autosplitter.Adapter)
	if !ok {
		return
	}

	entry := AttachEntry{
		Session: r.session,
		Time:    r.timestamp(),
		Event:   "attach",
		Game:    a.Name(),
	}

	if ctx.Pos == autosplitter.HookPosDetach {
		entry.Event = "detach"
		if err, isErr := ctx.Detail.(error); isErr && err != nil {
			entry.Error = err.Error()
		}
	}

	if p, isProc := ctx.Detail.(memory.Process); isProc {
		entry.PID = p.PID()
	}

	r.recorder.InsertData(AttachTable, entry)

	if ctx.Pos == autosplitter.HookPosDetach {
		r.recorder.Flush()
	}
}

// MapRunTables maps the tables of a run log for reading.
func MapRunTables(r DataReader) {
	r.MapTable(ExecTable, ExecInfo{})
	r.MapTable(CommandTable, CommandEntry{})
	r.MapTable(AttachTable, AttachEntry{})
}
