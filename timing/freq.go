// Package timing paces the autosplitter. Everything happens on ticks: one
// tick samples the process, updates the timer and then yields until the next
// tick.
package timing

import (
	"fmt"
	"time"
)

// Freq defines the type of frequency.
type Freq float64

// Defines the unit of frequency.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
)

// DefaultPollRate is how often the autosplitter ticks unless configured
// otherwise.
const DefaultPollRate = 120 * Hz

// Period returns the time between two consecutive ticks.
func (f Freq) Period() time.Duration {
	if f <= 0 {
		panic(fmt.Sprintf("timing: frequency must be positive, got %g", float64(f)))
	}

	return time.Duration(float64(time.Second) / float64(f))
}

// Cycle converts an elapsed duration to the number of ticks it spans.
func (f Freq) Cycle(d time.Duration) uint64 {
	return uint64(d / f.Period())
}

func (f Freq) String() string {
	return fmt.Sprintf("%gHz", float64(f))
}
