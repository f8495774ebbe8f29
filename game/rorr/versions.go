package rorr

import (
	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/signature"
)

// Tracked variables.
const (
	VarRoom       signature.Var = "room"
	VarInGameTime signature.Var = "in_game_time"
)

// Versions lists the supported releases. Each is recognized by the build
// string embedded in the executable. Releases not listed never resolve and
// the adapter waits forever.
var Versions = signature.NewTable(memory.Bit64,
	signature.Profile{
		Version:          "1.0.3",
		SignatureAddress: 0x1A7C700,
		Signature: []byte(
			"BUILD_ID: 234, BUILD_BRANCH: PATCH_1_0_3, VERSION_STRING: 1.0.3"),
		Chains: map[signature.Var][]uint64{
			VarRoom: {0x2127B18},
			VarInGameTime: {
				0x1F01C98, 0x10, 0x1CF0, 0x1B0, 0x48, 0x10, 0x0, 0x0, 0x48,
				0x10, 0x50, 0x0,
			},
		},
	},
	signature.Profile{
		Version:          "1.0.4",
		SignatureAddress: 0x1ABCB10,
		Signature: []byte(
			"BUILD_ID: 242, BUILD_BRANCH: the-mouse-aim-branch, " +
				"VERSION_STRING: 1.0.4"),
		Chains: map[signature.Var][]uint64{
			VarRoom: {0x2172888},
			VarInGameTime: {
				0x01F5F300, 0x170, 0x10, 0x90, 0x0, 0x48, 0x10, 0x60, 0x0,
				0x48, 0x10, 0x1B0, 0x0,
			},
		},
	},
	// 1.0.5 still reports 1.0.4 as its version string.
	signature.Profile{
		Version:          "1.0.5",
		SignatureAddress: 0x1ABC988,
		Signature: []byte(
			"BUILD_ID: 248, BUILD_BRANCH: master, VERSION_STRING: 1.0.4"),
		Chains: map[signature.Var][]uint64{
			VarRoom: {0x21729D8},
			VarInGameTime: {
				0x01F5F450, 0x120, 0x10, 0x90, 0x0, 0x48, 0x10, 0xd0, 0x0,
				0x48, 0x10, 0x2e0, 0x0,
			},
		},
	},
)
