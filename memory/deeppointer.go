package memory

import "fmt"

// MaxDepth is the largest number of offsets a DeepPointer can hold.
const MaxDepth = 16

// A DeepPointer is a chain of offsets bound to a base address.
//
// The chain is stored in a fixed-size array, so that chains of different
// lengths share one type and binding a chain never allocates.
type DeepPointer struct {
	base  uint64
	size  PointerSize
	path  [MaxDepth]uint64
	depth int
}

// NewDeepPointer binds offsets to base. It panics if the chain is empty or
// longer than MaxDepth.
func NewDeepPointer(base uint64, size PointerSize, offsets []uint64) DeepPointer {
	if len(offsets) == 0 {
		panic("memory: pointer chain must not be empty")
	}

	if len(offsets) > MaxDepth {
		panic(fmt.Sprintf(
			"memory: pointer chain of depth %d exceeds the maximum of %d",
			len(offsets), MaxDepth))
	}

	p := DeepPointer{
		base:  base,
		size:  size,
		depth: len(offsets),
	}
	copy(p.path[:], offsets)

	return p
}

// Base returns the address the chain is bound to.
func (p DeepPointer) Base() uint64 {
	return p.base
}

// Offsets returns a copy of the chain.
func (p DeepPointer) Offsets() []uint64 {
	offsets := make([]uint64, p.depth)
	copy(offsets, p.path[:p.depth])

	return offsets
}

// Depth returns the number of offsets in the chain.
func (p DeepPointer) Depth() int {
	return p.depth
}

// IsZero reports whether the pointer has not been bound.
func (p DeepPointer) IsZero() bool {
	return p.depth == 0
}

// Address follows every offset but the last one as a pointer and returns the
// final address.
func (p DeepPointer) Address(r Reader) (uint64, error) {
	if p.depth == 0 {
		return 0, fmt.Errorf("memory: unbound pointer chain: %w", ErrInvalidPointer)
	}

	addr := p.base
	for _, offset := range p.path[:p.depth-1] {
		next, err := ReadPointer(r, addr+offset, p.size)
		if err != nil {
			return 0, err
		}

		if next == 0 {
			return 0, fmt.Errorf(
				"memory: null pointer at %#x: %w", addr+offset, ErrInvalidPointer)
		}

		addr = next
	}

	return addr + p.path[p.depth-1], nil
}

// Deref resolves the chain and decodes the value of type T at its end.
func Deref[T Scalar](r Reader, p DeepPointer) (T, error) {
	addr, err := p.Address(r)
	if err != nil {
		var zero T
		return zero, err
	}

	return Read[T](r, addr)
}
