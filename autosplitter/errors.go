package autosplitter

import (
	"errors"
	"fmt"

	"github.com/ror-speedrun/autosplitter/timer"
)

// ErrUnhandledLifecycle is matched by errors reporting a timer lifecycle the
// coordinator has no transition for.
var ErrUnhandledLifecycle = errors.New("autosplitter: unhandled timer lifecycle")

// UnhandledLifecycleError reports a timer lifecycle the coordinator does not
// know. The timer is newer than this program and the coordinator stops
// rather than guess.
type UnhandledLifecycleError struct {
	Lifecycle timer.Lifecycle
}

func (e *UnhandledLifecycleError) Error() string {
	return fmt.Sprintf(
		"autosplitter: unhandled timer lifecycle %s; "+
			"the autosplitter needs to be updated", e.Lifecycle)
}

// Is makes errors.Is(err, ErrUnhandledLifecycle) hold.
func (e *UnhandledLifecycleError) Is(target error) bool {
	return target == ErrUnhandledLifecycle
}
