//go:build linux

package memory

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

type linuxProcess struct {
	mu     sync.Mutex
	pid    int
	name   string
	closed bool
}

func open(pid int, name string) (Process, error) {
	if !pidExists(pid) {
		return nil, fmt.Errorf("memory: pid %d: %w", pid, ErrProcessNotFound)
	}

	return &linuxProcess{pid: pid, name: name}, nil
}

func (p *linuxProcess) PID() int {
	return p.pid
}

func (p *linuxProcess) Name() string {
	return p.name
}

func (p *linuxProcess) ReadBytes(addr uint64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return ErrProcessNotOpen
	}

	local := []unix.Iovec{{Base: (*byte)(unsafe.Pointer(&buf[0]))}}
	local[0].SetLen(len(buf))

	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}

	n, err := unix.ProcessVMReadv(p.pid, local, remote, 0)
	if err != nil {
		return fmt.Errorf("memory: read %d bytes at %#x: %w", len(buf), addr, err)
	}

	if n != len(buf) {
		return fmt.Errorf(
			"memory: read %d of %d bytes at %#x: %w", n, len(buf), addr, ErrPartialRead)
	}

	return nil
}

// ModuleRange looks up the mappings backed by a file with the module's name
// and returns the range they span.
func (p *linuxProcess) ModuleRange(name string) (base, size uint64, err error) {
	proc, err := procfs.NewProc(p.pid)
	if err != nil {
		return 0, 0, fmt.Errorf("memory: pid %d: %w", p.pid, err)
	}

	maps, err := proc.ProcMaps()
	if err != nil {
		return 0, 0, fmt.Errorf("memory: read maps: %w", err)
	}

	base, size, ok := moduleSpan(maps, name)
	if !ok {
		return 0, 0, fmt.Errorf("memory: module %q: %w", name, ErrModuleNotFound)
	}

	return base, size, nil
}

func moduleSpan(maps []*procfs.ProcMap, name string) (base, size uint64, ok bool) {
	var start, end uintptr

	for _, m := range maps {
		if m.Pathname == "" || !strings.EqualFold(filepath.Base(m.Pathname), name) {
			continue
		}

		if !ok || m.StartAddr < start {
			start = m.StartAddr
		}

		if !ok || m.EndAddr > end {
			end = m.EndAddr
		}

		ok = true
	}

	return uint64(start), uint64(end - start), ok
}

func (p *linuxProcess) Exited() bool {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	return closed || !pidExists(p.pid)
}

func (p *linuxProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	return nil
}
