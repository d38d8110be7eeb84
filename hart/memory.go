package hart

import (
	"errors"
	"fmt"
)

// ErrMemoryOutOfRange is returned by any load or store whose effective
// address falls outside [0, len(Memory.bytes)).
var ErrMemoryOutOfRange = errors.New("hart: memory out of range")

// ErrImageTooLarge is returned by LoadImage when the supplied image does not
// fit in the memory the Hart was constructed with.
var ErrImageTooLarge = errors.New("hart: image does not fit in memory")

// Memory is a contiguous, byte-addressed array of physical RAM. It has no
// alignment requirement: an unaligned multi-byte load or store is simply the
// bytewise composition/decomposition at the given address, little-endian.
// Memory is not safe for concurrent use; a Hart owns its Memory exclusively
// for the duration of a run.
type Memory struct {
	bytes []byte
}

// NewMemory allocates a Memory of the given size, fixed for its lifetime.
func NewMemory(size uint32) *Memory {
	return &Memory{bytes: make([]byte, size)}
}

// Size returns the memory's fixed capacity in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.bytes))
}

func (m *Memory) checkRange(addr uint32, width uint32) error {
	// addr+width cannot be computed with plain uint32 arithmetic near the top
	// of the address space without risking wraparound, so widen to uint64.
	end := uint64(addr) + uint64(width)
	if end > uint64(len(m.bytes)) {
		return fmt.Errorf("%w: address 0x%08x width %d", ErrMemoryOutOfRange, addr, width)
	}
	return nil
}

// Load8 reads an unsigned byte at addr.
func (m *Memory) Load8(addr uint32) (uint8, error) {
	if err := m.checkRange(addr, 1); err != nil {
		return 0, err
	}
	return m.bytes[addr], nil
}

// Load16 reads a little-endian halfword at addr.
func (m *Memory) Load16(addr uint32) (uint16, error) {
	if err := m.checkRange(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.bytes[addr]) | uint16(m.bytes[addr+1])<<8, nil
}

// Load32 reads a little-endian word at addr.
func (m *Memory) Load32(addr uint32) (uint32, error) {
	if err := m.checkRange(addr, 4); err != nil {
		return 0, err
	}
	return uint32(m.bytes[addr]) |
		uint32(m.bytes[addr+1])<<8 |
		uint32(m.bytes[addr+2])<<16 |
		uint32(m.bytes[addr+3])<<24, nil
}

// Store8 writes the low 8 bits of value at addr.
func (m *Memory) Store8(addr uint32, value uint32) error {
	if err := m.checkRange(addr, 1); err != nil {
		return err
	}
	m.bytes[addr] = byte(value)
	return nil
}

// Store16 writes the low 16 bits of value, little-endian, at addr.
func (m *Memory) Store16(addr uint32, value uint32) error {
	if err := m.checkRange(addr, 2); err != nil {
		return err
	}
	m.bytes[addr] = byte(value)
	m.bytes[addr+1] = byte(value >> 8)
	return nil
}

// Store32 writes value, little-endian, at addr.
func (m *Memory) Store32(addr uint32, value uint32) error {
	if err := m.checkRange(addr, 4); err != nil {
		return err
	}
	m.bytes[addr] = byte(value)
	m.bytes[addr+1] = byte(value >> 8)
	m.bytes[addr+2] = byte(value >> 16)
	m.bytes[addr+3] = byte(value >> 24)
	return nil
}

// LoadImage copies image into memory starting at address 0.
func (m *Memory) LoadImage(image []byte) error {
	if uint64(len(image)) > uint64(len(m.bytes)) {
		return fmt.Errorf("%w: image is %d bytes, memory is %d bytes", ErrImageTooLarge, len(image), len(m.bytes))
	}
	copy(m.bytes, image)
	return nil
}
