// Command autosplitter drives a LiveSplit timer from the memory of a running
// Risk of Rain game.
package main

import "github.com/ror-speedrun/autosplitter/cmd/autosplitter/cmd"

func main() {
	cmd.Execute()
}
