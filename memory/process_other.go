//go:build !linux && !windows

package memory

import (
	"fmt"
	"runtime"
)

func open(pid int, _ string) (Process, error) {
	return nil, fmt.Errorf(
		"memory: reading process %d is not supported on %s", pid, runtime.GOOS)
}
