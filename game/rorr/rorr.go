// Package rorr reads Risk of Rain Returns.
//
// The releases differ in layout, so the pointer chains are looked up by the
// build string of the running executable once the main module is mapped.
package rorr

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/signature"
	"github.com/ror-speedrun/autosplitter/timing"
	"github.com/ror-speedrun/autosplitter/watch"
)

// Name of the game.
const Name = "Risk of Rain Returns"

const processName = "Risk of Rain Returns.exe"

// Room IDs with a meaning of their own.
const (
	RoomTitle    int32 = 2
	RoomMainMenu int32 = 3
	RoomLobby    int32 = 4
	RoomOutro    int32 = 8
)

// Rooms that never split: the splash screens, menus, the lobby and the
// credits.
var menuRooms = []int32{1, 2, 3, 4, 7}

// State is what the adapter samples from the game.
type State struct {
	// Version is the release the pointer chains were resolved for.
	Version string

	// Room is the GameMaker room ID.
	Room watch.Sample[int32]

	// InGameTime is the run timer in seconds.
	InGameTime watch.Sample[float64]
}

// Game is the Risk of Rain Returns adapter.
type Game struct {
	versions *signature.Table
	stages   atomic.Bool

	mu    sync.RWMutex
	state State
}

// New creates the adapter for the supported releases. Stage splits are off.
func New() *Game {
	return NewWithVersions(Versions)
}

// NewWithVersions creates the adapter for the releases in t. The table must
// declare VarRoom and VarInGameTime.
func NewWithVersions(t *signature.Table) *Game {
	for _, v := range []signature.Var{VarRoom, VarInGameTime} {
		if t.MaxDepth(v) == 0 {
			panic("rorr: version table does not declare " + string(v))
		}
	}

	return &Game{versions: t}
}

// WithStageSplits turns splitting on every stage change on or off.
func (g *Game) WithStageSplits(on bool) *Game {
	g.SetStageSplits(on)
	return g
}

// SetStageSplits turns splitting on every stage change on or off. It may be
// called while the game is attached.
func (g *Game) SetStageSplits(on bool) {
	g.stages.Store(on)
}

// StageSplits reports whether stage changes split.
func (g *Game) StageSplits() bool {
	return g.stages.Load()
}

// Name implements autosplitter.Adapter.
func (g *Game) Name() string {
	return Name
}

// ProcessNames implements autosplitter.Adapter.
func (g *Game) ProcessNames() []string {
	return []string{processName}
}

// Inspect returns a copy of the current samples as a *State.
func (g *Game) Inspect() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := g.state

	return &state
}

// Attached implements autosplitter.Adapter. It waits for the main module and
// for a known build string; both waits only end with the process.
func (g *Game) Attached(ctx context.Context, s *autosplitter.Session) error {
	g.mu.Lock()
	g.state = State{}
	g.mu.Unlock()

	base, err := timing.Retry(ctx, s, func() (uint64, bool) {
		base, _, err := s.Process.ModuleRange(processName)
		return base, err == nil
	})
	if err != nil {
		return err
	}

	s.Logf("%s: main module at %#x", Name, base)

	binding, err := timing.Retry(ctx, s, func() (*signature.Binding, bool) {
		return signature.Resolve(s.Process, base, g.versions)
	})
	if err != nil {
		return err
	}

	s.Logf("%s: version %s", Name, binding.Version())

	g.mu.Lock()
	g.state.Version = binding.Version()
	g.mu.Unlock()

	room := binding.Chain(VarRoom)
	inGameTime := binding.Chain(VarInGameTime)

	for {
		g.sample(s.Process, room, inGameTime)

		if s.Verbose && g.state.Room.Changed() {
			s.Logf("%s: room %s, in-game time %s", Name,
				g.state.Room.String(), g.state.InGameTime.String())
		}

		if err := s.Coordinator.Tick(g); err != nil {
			return err
		}

		if err := s.Yield(ctx); err != nil {
			return err
		}
	}
}

func (g *Game) sample(r memory.Reader, room, inGameTime memory.DeepPointer) {
	roomV, roomErr := memory.Deref[int32](r, room)
	igtV, igtErr := memory.Deref[float64](r, inGameTime)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.Room.Update(roomV, roomErr == nil)
	g.state.InGameTime.Update(igtV, igtErr == nil)
}

// StartCondition is met when the lobby is left for anything but the menus.
func (g *Game) StartCondition() bool {
	if !g.state.Room.ChangedFrom(RoomLobby) {
		return false
	}

	cur, _ := g.state.Room.Current()

	return cur != RoomTitle && cur != RoomMainMenu && cur != RoomLobby
}

// ResetCondition is met in the lobby.
func (g *Game) ResetCondition() bool {
	cur, ok := g.state.Room.Current()
	return ok && cur == RoomLobby
}

// SplitCondition is met on a room change outside the menus, if stage splits
// are on.
func (g *Game) SplitCondition() bool {
	old, cur, ok := g.state.Room.Pair()
	if !ok || old == cur {
		return false
	}

	return g.StageSplits() &&
		!slices.Contains(menuRooms, old) &&
		!slices.Contains(menuRooms, cur)
}

// Completed is met when the outro cutscene starts.
func (g *Game) Completed() bool {
	return g.state.Room.ChangedTo(RoomOutro)
}

// Loading is always known to be false.
func (g *Game) Loading() (loading, known bool) {
	return false, true
}

var _ autosplitter.Adapter = (*Game)(nil)
