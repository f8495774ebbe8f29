// Package ror1 reads Risk of Rain (v1.2.2, GameMaker).
//
// The game is tracked through its room ID. Rooms fall into three groups:
// menus and cutscenes, lobbies, and stages. A run starts when a lobby is left
// for a stage and is completed when the control panel is activated on the
// final stage.
package ror1

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/timing"
	"github.com/ror-speedrun/autosplitter/watch"
)

// Name of the game.
const Name = "Risk of Rain"

var processNames = []string{"ROR_GMS_controller.exe", "Risk of Rain.exe"}

// Room IDs with a meaning of their own.
const (
	RoomMainMenu     int32 = 2
	RoomOnlineLobby  int32 = 40
	RoomContactLight int32 = 41
)

// Rooms that are not part of a run: the intro, the menus, the logs, the
// outro and the credits.
var menuRooms = []int32{0, 1, 2, 3, 4, 5, 9, 10, 11, 12, 13, 14, 15, 16, 17, 39}

// Single player, local co-op and online co-op lobbies.
var lobbyRooms = []int32{6, 7, 40}

// Pointer chains from the main module.
var (
	roomChain       = []uint64{0x2BED7A8}
	runEndFlagChain = []uint64{0x2BEB5E0, 0x0, 0x548, 0xC, 0xB4}
	inGameTimeChain = []uint64{
		0x02BEB5E0, 0x0, 0x28, 0xC, 0xBC, 0x8, 0x0, 0x720, 0x8, 0x1EC0,
	}
)

// State is what the adapter samples from the game.
type State struct {
	// Room is the GameMaker room ID.
	Room watch.Sample[int32]

	// RunEndFlag is set when the control panel is activated after the final
	// boss. It only exists on the final stage.
	RunEndFlag watch.Sample[int32]

	// InGameTime is the time alive in seconds.
	InGameTime watch.Sample[float64]
}

// Game is the Risk of Rain adapter.
type Game struct {
	stages atomic.Bool

	mu    sync.RWMutex
	state State
}

// New creates the adapter. Stage splits are off.
func New() *Game {
	return &Game{}
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
	return processNames
}

// Inspect returns a copy of the current samples as a *State.
func (g *Game) Inspect() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := g.state

	return &state
}

// Attached implements autosplitter.Adapter.
func (g *Game) Attached(ctx context.Context, s *autosplitter.Session) error {
	g.mu.Lock()
	g.state = State{}
	g.mu.Unlock()

	// The process does not tell which of its names it was found by, so
	// every name is tried as the main module.
	base, err := timing.Retry(ctx, s, func() (uint64, bool) {
		for _, name := range processNames {
			if base, _, err := s.Process.ModuleRange(name); err == nil {
				return base, true
			}
		}

		return 0, false
	})
	if err != nil {
		return err
	}

	s.Logf("%s: main module at %#x", Name, base)

	room := memory.NewDeepPointer(base, memory.Bit32, roomChain)
	runEndFlag := memory.NewDeepPointer(base, memory.Bit32, runEndFlagChain)
	inGameTime := memory.NewDeepPointer(base, memory.Bit32, inGameTimeChain)

	for {
		g.sample(s.Process, room, runEndFlag, inGameTime)

		if s.Verbose && g.state.Room.Changed() {
			s.Logf("%s: room %s, run end flag %s, in-game time %s", Name,
				g.state.Room.String(), g.state.RunEndFlag.String(),
				g.state.InGameTime.String())
		}

		if err := s.Coordinator.Tick(g); err != nil {
			return err
		}

		if err := s.Yield(ctx); err != nil {
			return err
		}
	}
}

func (g *Game) sample(r memory.Reader, room, runEndFlag, inGameTime memory.DeepPointer) {
	roomV, roomErr := memory.Deref[int32](r, room)
	flagV, flagErr := memory.Deref[int32](r, runEndFlag)
	igtV, igtErr := memory.Deref[float64](r, inGameTime)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.Room.Update(roomV, roomErr == nil)
	g.state.RunEndFlag.Update(flagV, flagErr == nil)
	g.state.InGameTime.Update(igtV, igtErr == nil)
}

// StartCondition is met when a lobby is left for a stage.
func (g *Game) StartCondition() bool {
	old, cur, ok := g.state.Room.Pair()

	return ok && old != cur &&
		slices.Contains(lobbyRooms, old) &&
		!slices.Contains(menuRooms, cur)
}

// ResetCondition is met in the main menu and the online co-op lobby.
func (g *Game) ResetCondition() bool {
	cur, ok := g.state.Room.Current()

	return ok && (cur == RoomMainMenu || cur == RoomOnlineLobby)
}

// SplitCondition is met on a change from one stage to another, if stage
// splits are on. Returning to or from a lobby or menu does not split.
func (g *Game) SplitCondition() bool {
	old, cur, ok := g.state.Room.Pair()
	if !ok || old == cur {
		return false
	}

	return g.StageSplits() && isStage(old) && isStage(cur)
}

func isStage(room int32) bool {
	return !slices.Contains(menuRooms, room) && !slices.Contains(lobbyRooms, room)
}

// Completed is met when the run end flag is raised on the final stage.
func (g *Game) Completed() bool {
	cur, ok := g.state.Room.Current()
	if !ok || cur != RoomContactLight {
		return false
	}

	return g.state.RunEndFlag.ChangedFromTo(0, 1)
}

// Loading is always known to be false. Risk of Rain has no load removal.
func (g *Game) Loading() (loading, known bool) {
	return false, true
}

var _ autosplitter.Adapter = (*Game)(nil)
