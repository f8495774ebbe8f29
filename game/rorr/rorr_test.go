package rorr

import (
	"bytes"
	"context"
	"log"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ror-speedrun/autosplitter/autosplitter"
	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/signature"
)

const moduleBase = 0x140000000

// plant builds a 64-bit pointer chain from base in img and returns the
// address the chain ends at.
func plant(img *memory.Image, base uint64, offsets []uint64, next *uint64) uint64 {
	addr := base
	for _, offset := range offsets[:len(offsets)-1] {
		if p, err := memory.ReadPointer(img, addr+offset, memory.Bit64); err == nil {
			addr = p
			continue
		}

		node := *next
		*next += 0x10000

		img.Map(addr+offset, make([]byte, 8))
		Expect(img.PutUint64(addr+offset, node)).To(Succeed())
		addr = node
	}

	end := addr + offsets[len(offsets)-1]
	img.Map(end, make([]byte, 8))

	return end
}

func profile(version string) signature.Profile {
	for _, p := range Versions.Profiles() {
		if p.Version == version {
			return p
		}
	}

	Fail("no profile " + version)

	return signature.Profile{}
}

type tickFunc func(a autosplitter.Adapter) error

func (f tickFunc) Tick(a autosplitter.Adapter) error { return f(a) }

type yieldFunc func(ctx context.Context) error

func (f yieldFunc) Yield(ctx context.Context) error { return f(ctx) }

var _ = Describe("Versions", func() {
	It("should know three releases in order", func() {
		var names []string
		for _, p := range Versions.Profiles() {
			names = append(names, p.Version)
		}

		Expect(names).To(Equal([]string{"1.0.3", "1.0.4", "1.0.5"}))
	})

	It("should size chains for the longest release", func() {
		Expect(Versions.MaxDepth(VarRoom)).To(Equal(1))
		Expect(Versions.MaxDepth(VarInGameTime)).To(Equal(13))
		Expect(Versions.PointerSize()).To(Equal(memory.Bit64))
	})

	It("should reject tables without the tracked variables", func() {
		t := signature.NewTable(memory.Bit64, signature.Profile{
			Version:   "x",
			Signature: []byte("x"),
			Chains:    map[signature.Var][]uint64{VarRoom: {0x10}},
		})

		Expect(func() { NewWithVersions(t) }).To(Panic())
	})
})

var _ = Describe("Game", func() {
	var g *Game

	BeforeEach(func() {
		g = New()
	})

	It("should be named after the game", func() {
		Expect(g.Name()).To(Equal("Risk of Rain Returns"))
		Expect(g.ProcessNames()).To(Equal([]string{"Risk of Rain Returns.exe"}))
	})

	DescribeTable("start",
		func(rooms []int32, start bool) {
			for _, r := range rooms {
				g.state.Room.Set(r)
			}

			Expect(g.StartCondition()).To(Equal(start))
		},
		Entry("lobby to stage", []int32{4, 10}, true),
		Entry("lobby to main menu", []int32{4, 3}, false),
		Entry("lobby to title", []int32{4, 2}, false),
		Entry("stage to stage", []int32{10, 11}, false),
		Entry("staying in the lobby", []int32{4, 4}, false),
	)

	It("should not start across a missing sample", func() {
		g.state.Room.Set(4)
		g.state.Room.Invalidate()
		g.state.Room.Set(10)

		Expect(g.StartCondition()).To(BeFalse())
	})

	It("should reset in the lobby", func() {
		Expect(g.ResetCondition()).To(BeFalse())

		g.state.Room.Set(4)
		Expect(g.ResetCondition()).To(BeTrue())

		g.state.Room.Set(10)
		Expect(g.ResetCondition()).To(BeFalse())
	})

	DescribeTable("split",
		func(old, cur int32, stages, split bool) {
			g.SetStageSplits(stages)
			g.state.Room.Set(old)
			g.state.Room.Set(cur)

			Expect(g.SplitCondition()).To(Equal(split))
		},
		Entry("stage to stage", int32(10), int32(11), true, true),
		Entry("stage splits off", int32(10), int32(11), false, false),
		Entry("same room", int32(10), int32(10), true, false),
		Entry("from the lobby", int32(4), int32(10), true, false),
		Entry("to the credits", int32(10), int32(7), true, false),
	)

	It("should complete when the outro starts", func() {
		g.state.Room.Set(30)
		g.state.Room.Set(8)
		Expect(g.Completed()).To(BeTrue())

		g.state.Room.Set(8)
		Expect(g.Completed()).To(BeFalse())
	})

	Context("when attached", func() {
		var (
			img    *memory.Image
			proc   *memory.ImageProcess
			next   uint64
			yields int
			ticks  int
			logs   bytes.Buffer
			s      *autosplitter.Session
		)

		plantVersion := func(version string) (roomAt, igtAt uint64) {
			p := profile(version)
			img.Map(moduleBase+p.SignatureAddress, append([]byte(nil), p.Signature...))
			roomAt = plant(img, moduleBase, p.Chains[VarRoom], &next)
			igtAt = plant(img, moduleBase, p.Chains[VarInGameTime], &next)

			return roomAt, igtAt
		}

		BeforeEach(func() {
			img = memory.NewImage()
			proc = memory.NewImageProcess("Risk of Rain Returns.exe", img)
			proc.AddModule("Risk of Rain Returns.exe", moduleBase, 0x2200000)
			next = 0x20000000
			yields = 0
			ticks = 0
			logs.Reset()

			s = &autosplitter.Session{
				Process: proc,
				Coordinator: tickFunc(func(autosplitter.Adapter) error {
					ticks++
					return nil
				}),
				Logger: log.New(&logs, "", 0),
			}
		})

		It("should read the variables of the running release", func() {
			roomAt, igtAt := plantVersion("1.0.4")
			Expect(img.PutUint32(roomAt, 4)).To(Succeed())
			Expect(img.PutUint64(igtAt, math.Float64bits(12.5))).To(Succeed())
			s.Yielder = yieldFunc(func(context.Context) error {
				proc.Exit()
				return nil
			})

			err := g.Attached(context.Background(), s)

			Expect(err).To(MatchError(autosplitter.ErrDetached))
			state := g.Inspect().(*State)
			Expect(state.Version).To(Equal("1.0.4"))
			room, ok := state.Room.Current()
			Expect(ok).To(BeTrue())
			Expect(room).To(Equal(int32(4)))
			igt, ok := state.InGameTime.Current()
			Expect(ok).To(BeTrue())
			Expect(igt).To(Equal(12.5))
			Expect(logs.String()).To(ContainSubstring("version 1.0.4"))
		})

		It("should wait for a known release", func() {
			s.Yielder = yieldFunc(func(context.Context) error {
				yields++
				switch yields {
				case 5:
					roomAt, _ := plantVersion("1.0.5")
					Expect(img.PutUint32(roomAt, 10)).To(Succeed())
				case 6:
					proc.Exit()
				}

				return nil
			})

			err := g.Attached(context.Background(), s)

			Expect(err).To(MatchError(autosplitter.ErrDetached))
			Expect(ticks).To(Equal(1))
			Expect(g.Inspect().(*State).Version).To(Equal("1.0.5"))
		})

		It("should stop waiting when the process exits", func() {
			s.Yielder = yieldFunc(func(context.Context) error {
				yields++
				if yields == 3 {
					proc.Exit()
				}

				return nil
			})

			err := g.Attached(context.Background(), s)

			Expect(err).To(MatchError(autosplitter.ErrDetached))
			Expect(ticks).To(BeZero())
			Expect(g.Inspect().(*State).Version).To(BeEmpty())
		})

		It("should stop waiting when the context ends", func() {
			ctx, cancel := context.WithCancel(context.Background())
			s.Yielder = yieldFunc(func(ctx context.Context) error {
				cancel()
				return ctx.Err()
			})

			err := g.Attached(ctx, s)

			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
