package memory

import (
	"fmt"
	"sync/atomic"
)

// ImageProcess is a Process whose address space is an Image, such as a
// module dumped from a game to disk. It never exits unless told to.
type ImageProcess struct {
	*Image

	pid     int
	name    string
	modules map[string][2]uint64
	exited  atomic.Bool
}

// NewImageProcess creates a process named name over img.
func NewImageProcess(name string, img *Image) *ImageProcess {
	return &ImageProcess{
		Image:   img,
		name:    name,
		modules: make(map[string][2]uint64),
	}
}

// WithPID sets the reported process ID.
func (p *ImageProcess) WithPID(pid int) *ImageProcess {
	p.pid = pid
	return p
}

// AddModule declares a module mapped at base.
func (p *ImageProcess) AddModule(name string, base, size uint64) {
	p.modules[name] = [2]uint64{base, size}
}

// PID implements Process.
func (p *ImageProcess) PID() int {
	return p.pid
}

// Name implements Process.
func (p *ImageProcess) Name() string {
	return p.name
}

// ModuleRange implements Process.
func (p *ImageProcess) ModuleRange(name string) (base, size uint64, err error) {
	r, ok := p.modules[name]
	if !ok {
		return 0, 0, fmt.Errorf("memory: module %q: %w", name, ErrModuleNotFound)
	}

	return r[0], r[1], nil
}

// Exit makes the process report that it has exited.
func (p *ImageProcess) Exit() {
	p.exited.Store(true)
}

// Exited implements Process.
func (p *ImageProcess) Exited() bool {
	return p.exited.Load()
}

// ReadBytes implements Reader. Reads fail once the process has exited.
func (p *ImageProcess) ReadBytes(addr uint64, buf []byte) error {
	if p.Exited() {
		return ErrProcessNotOpen
	}

	return p.Image.ReadBytes(addr, buf)
}

// Close marks the process as exited.
func (p *ImageProcess) Close() error {
	p.Exit()
	return nil
}

var _ Process = (*ImageProcess)(nil)
