package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ror-speedrun/autosplitter/game/rorr"
	"github.com/ror-speedrun/autosplitter/memory"
	"github.com/ror-speedrun/autosplitter/signature"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <dump>",
	Short: "Tell which Risk of Rain Returns release a module dump is.",
	Long: "`identify <dump> --base <addr>` loads a dump of the main module " +
		"of the game, mapped at addr, and matches it against the supported " +
		"releases. A partial dump taken from elsewhere in the module is " +
		"placed with --start.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := addressFlag(cmd, "base")
		if err != nil {
			return err
		}

		start := base
		if cmd.Flags().Changed("start") {
			start, err = addressFlag(cmd, "start")
			if err != nil {
				return err
			}
		}

		version, err := identify(args[0], base, start)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), version)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
	identifyCmd.Flags().String("base", "0x140000000",
		"Address of the main module")
	identifyCmd.Flags().String("start", "",
		"Address the dump starts at, if not the main module")
}

func addressFlag(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)

	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}

	return addr, nil
}

// identify returns the release the dump at path was taken from. The dump
// starts at start in a module loaded at base.
func identify(path string, base, start uint64) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	img := memory.NewImage()
	img.Map(start, data)

	p, ok := signature.Match(img, base, rorr.Versions)
	if !ok {
		return "", errors.New("unknown release")
	}

	return p.Version, nil
}
