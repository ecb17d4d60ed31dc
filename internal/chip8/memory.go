package chip8

import "fmt"

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: built-in font glyphs
//	0x050-0x1FF: interpreter area, unused
//	0x200-0xFFF: program and data space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address programs are loaded to and start executing at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest ROM that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// Memory is the flat 4KB byte store of the machine.
type Memory struct {
	data [MemorySize]uint8
}

// newMemory returns a memory with the font glyphs seeded at address 0.
func newMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.data = [MemorySize]uint8{}
	copy(m.data[FontAddress:], font[:])
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (uint8, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("reading address $%04X: %w", address, ErrOutOfBounds)
	}
	return m.data[address], nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value uint8) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("writing address $%04X: %w", address, ErrOutOfBounds)
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big-endian 16 bit word at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	high, err := m.Read(address)
	if err != nil {
		return 0, err
	}
	low, err := m.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// Load copies data verbatim into memory starting at origin.
// Memory is left unchanged if the data does not fit.
func (m *Memory) Load(data []byte, origin uint16) error {
	if int(origin)+len(data) > MemorySize {
		return fmt.Errorf("loading %d bytes at $%03X: %w", len(data), origin, ErrOutOfBounds)
	}
	copy(m.data[origin:], data)
	return nil
}

// Slice returns a copy of the memory range [start, end).
func (m *Memory) Slice(start, end uint16) []byte {
	if int(end) > MemorySize {
		end = MemorySize
	}
	if start >= end {
		return nil
	}
	b := make([]byte, end-start)
	copy(b, m.data[start:end])
	return b
}
