package memory

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// An Image is an address space assembled from byte segments, such as a
// memory dump loaded from disk. Reads must fall entirely within one segment.
type Image struct {
	mu       sync.RWMutex
	segments []segment
}

type segment struct {
	addr uint64
	data []byte
}

// NewImage creates an empty Image.
func NewImage() *Image {
	return &Image{}
}

// Map places data at addr. A later segment shadows earlier ones where they
// overlap.
func (m *Image) Map(addr uint64, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.segments = append(m.segments, segment{addr: addr, data: data})
}

// Unmap removes every segment starting at addr.
func (m *Image) Unmap(addr uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.segments[:0]
	for _, s := range m.segments {
		if s.addr != addr {
			kept = append(kept, s)
		}
	}

	m.segments = kept
}

// Write copies data into the segment that covers addr.
func (m *Image) Write(addr uint64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.find(addr, len(data))
	if !ok {
		return fmt.Errorf("memory: write %d bytes at %#x: %w",
			len(data), addr, ErrInvalidPointer)
	}

	copy(s.data[addr-s.addr:], data)

	return nil
}

// PutUint32 writes a little-endian uint32 at addr.
func (m *Image) PutUint32(addr uint64, v uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)

	return m.Write(addr, buf)
}

// PutUint64 writes a little-endian uint64 at addr.
func (m *Image) PutUint64(addr uint64, v uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)

	return m.Write(addr, buf)
}

// ReadBytes implements Reader.
func (m *Image) ReadBytes(addr uint64, buf []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.find(addr, len(buf))
	if !ok {
		return fmt.Errorf("memory: read %d bytes at %#x: %w",
			len(buf), addr, ErrInvalidPointer)
	}

	copy(buf, s.data[addr-s.addr:])

	return nil
}

func (m *Image) find(addr uint64, n int) (segment, bool) {
	for i := len(m.segments) - 1; i >= 0; i-- {
		s := m.segments[i]
		if addr >= s.addr && addr+uint64(n) <= s.addr+uint64(len(s.data)) {
			return s, true
		}
	}

	return segment{}, false
}
