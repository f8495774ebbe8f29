//go:build windows

package memory

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	stillActive    = 259
	listModulesAll = 0x03
	maxModules     = 1024
)

type windowsProcess struct {
	mu     sync.Mutex
	pid    int
	name   string
	handle windows.Handle
	closed bool
}

func open(pid int, name string) (Process, error) {
	access := uint32(windows.PROCESS_VM_READ | windows.PROCESS_QUERY_INFORMATION)

	h, err := windows.OpenProcess(access, false, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("memory: open pid %d: %w", pid, err)
	}

	return &windowsProcess{pid: pid, name: name, handle: h}, nil
}

func (p *windowsProcess) PID() int {
	return p.pid
}

func (p *windowsProcess) Name() string {
	return p.name
}

func (p *windowsProcess) ReadBytes(addr uint64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessNotOpen
	}

	var n uintptr

	err := windows.ReadProcessMemory(
		p.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &n)
	if err != nil {
		return fmt.Errorf("memory: read %d bytes at %#x: %w", len(buf), addr, err)
	}

	if int(n) != len(buf) {
		return fmt.Errorf(
			"memory: read %d of %d bytes at %#x: %w", n, len(buf), addr, ErrPartialRead)
	}

	return nil
}

func (p *windowsProcess) ModuleRange(name string) (base, size uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, 0, ErrProcessNotOpen
	}

	modules := make([]windows.Handle, maxModules)
	var needed uint32

	err = windows.EnumProcessModulesEx(
		p.handle,
		&modules[0],
		uint32(len(modules))*uint32(unsafe.Sizeof(modules[0])),
		&needed,
		listModulesAll,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("memory: enumerate modules: %w", err)
	}

	count := int(needed) / int(unsafe.Sizeof(modules[0]))
	if count > len(modules) {
		count = len(modules)
	}

	for _, m := range modules[:count] {
		var nameBuf [windows.MAX_PATH]uint16

		err := windows.GetModuleBaseName(p.handle, m, &nameBuf[0], uint32(len(nameBuf)))
		if err != nil {
			continue
		}

		if !strings.EqualFold(windows.UTF16ToString(nameBuf[:]), name) {
			continue
		}

		var info windows.ModuleInfo

		err = windows.GetModuleInformation(
			p.handle, m, &info, uint32(unsafe.Sizeof(info)))
		if err != nil {
			return 0, 0, fmt.Errorf("memory: module info %q: %w", name, err)
		}

		return uint64(info.BaseOfDll), uint64(info.SizeOfImage), nil
	}

	return 0, 0, fmt.Errorf("memory: module %q: %w", name, ErrModuleNotFound)
}

func (p *windowsProcess) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return true
	}

	var code uint32
	if err := windows.GetExitCodeProcess(p.handle, &code); err != nil {
		return true
	}

	return code != stillActive
}

func (p *windowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	return windows.CloseHandle(p.handle)
}
