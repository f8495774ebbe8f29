// Package memory reads the memory of a live process.
//
// A Process is found by name and opened with Attach. Values are read either
// directly at an address or through a DeepPointer, a chain of offsets that is
// followed pointer by pointer from a base address. Every read may fail
// transiently, for example while the target is still loading or when a page
// is unmapped; callers treat a failed read as a missing sample.
package memory

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrProcessNotFound is returned when no running process matches any of
	// the requested names.
	ErrProcessNotFound = errors.New("memory: process not found")

	// ErrProcessNotOpen is returned when reading from a process that has been
	// closed or has exited.
	ErrProcessNotOpen = errors.New("memory: process not open")

	// ErrModuleNotFound is returned when the requested module is not mapped
	// into the process (yet).
	ErrModuleNotFound = errors.New("memory: module not found")

	// ErrInvalidPointer is returned when a pointer chain runs into a null
	// pointer.
	ErrInvalidPointer = errors.New("memory: invalid pointer read")

	// ErrPartialRead is returned when fewer bytes than requested could be
	// read.
	ErrPartialRead = errors.New("memory: partial read")
)

// A Reader can read bytes from an address space.
type Reader interface {
	// ReadBytes fills buf with the bytes stored at addr. It either fills the
	// whole buffer or returns an error.
	ReadBytes(addr uint64, buf []byte) error
}

// PointerSize is the width of a pointer in the target address space.
type PointerSize int

// Supported pointer sizes.
const (
	Bit32 PointerSize = 4
	Bit64 PointerSize = 8
)

// Scalar is the set of fixed-size values that can be decoded from memory.
type Scalar interface {
	~bool |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Read decodes a little-endian value of type T stored at addr.
func Read[T Scalar](r Reader, addr uint64) (T, error) {
	var v T

	buf := make([]byte, binary.Size(v))
	if err := r.ReadBytes(addr, buf); err != nil {
		return v, err
	}

	if _, err := binary.Decode(buf, binary.LittleEndian, &v); err != nil {
		return v, fmt.Errorf("memory: decode %T at %#x: %w", v, addr, err)
	}

	return v, nil
}

// ReadPointer reads a pointer of the given size stored at addr.
func ReadPointer(r Reader, addr uint64, size PointerSize) (uint64, error) {
	switch size {
	case Bit32:
		p, err := Read[uint32](r, addr)
		return uint64(p), err
	case Bit64:
		return Read[uint64](r, addr)
	default:
		panic(fmt.Sprintf("memory: unsupported pointer size %d", size))
	}
}
