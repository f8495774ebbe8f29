package memory

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/process"
)

// linuxCommLen is the number of characters of a process name the Linux
// kernel keeps.
const linuxCommLen = 15

// A Process is a running program whose memory can be read.
type Process interface {
	Reader

	// PID returns the operating-system process ID.
	PID() int

	// Name returns the name the process was found by.
	Name() string

	// ModuleRange returns the base address and the size of the named module.
	ModuleRange(name string) (base, size uint64, err error)

	// Exited reports whether the process is gone.
	Exited() bool

	// Close releases the handle to the process.
	Close() error
}

// Attach opens the first running process matching one of the names. Names are
// tried in order.
func Attach(names ...string) (Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("memory: list processes: %w", err)
	}

	for _, want := range names {
		for _, p := range procs {
			actual, err := p.Name()
			if err != nil {
				continue
			}

			if !MatchName(actual, want) {
				continue
			}

			proc, err := open(int(p.Pid), want)
			if err != nil {
				continue
			}

			return proc, nil
		}
	}

	return nil, ErrProcessNotFound
}

// MatchName reports whether a process name reported by the operating system
// refers to the wanted executable. Linux truncates process names to 15
// characters and Windows compares names case-insensitively.
func MatchName(actual, want string) bool {
	return matchName(runtime.GOOS, actual, want)
}

func matchName(goos, actual, want string) bool {
	if actual == want {
		return true
	}

	switch goos {
	case "linux":
		if len(want) > linuxCommLen {
			want = want[:linuxCommLen]
		}

		return actual == want
	case "windows":
		return strings.EqualFold(actual, want)
	default:
		return false
	}
}

func pidExists(pid int) bool {
	exists, err := process.PidExists(int32(pid))
	if err != nil {
		return false
	}

	return exists
}
