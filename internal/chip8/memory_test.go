package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemory_FontSeeded(t *testing.T) {
	m := New()

	for i, b := range font {
		value, err := m.Memory().Read(uint16(i))
		assert.NoError(t, err)
		assert.Equal(t, b, value, "font byte %d", i)
	}
	assert.Equal(t, 80, len(font))
}

func TestMemory_Read(t *testing.T) {
	tests := []struct {
		name    string
		address uint16
		wantErr bool
	}{
		{"first address", 0x000, false},
		{"program start", ProgramStart, false},
		{"last address", 0xFFF, false},
		{"past end", 0x1000, true},
		{"far past end", 0xFFFF, true},
	}

	mem := newMemory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mem.Read(tt.address)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrOutOfBounds))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemory_Write(t *testing.T) {
	mem := newMemory()

	assert.NoError(t, mem.Write(0xFFF, 0xAB))
	value, err := mem.Read(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xAB), value)

	err = mem.Write(0x1000, 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestMemory_ReadWord(t *testing.T) {
	mem := newMemory()
	assert.NoError(t, mem.Load([]byte{0x12, 0x34}, 0x300))

	word, err := mem.ReadWord(0x300)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), word)

	_, err = mem.ReadWord(0xFFF)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestMemory_Load(t *testing.T) {
	m := New()
	before := m.Memory().Slice(0, MemorySize)

	rom := make([]byte, 100)
	for i := range rom {
		rom[i] = 1
	}
	assert.NoError(t, m.Load(rom))

	after := m.Memory().Slice(0, MemorySize)
	assert.Equal(t, rom, after[ProgramStart:ProgramStart+len(rom)])
	assert.Equal(t, before[:ProgramStart], after[:ProgramStart])
	assert.Equal(t, before[ProgramStart+len(rom):], after[ProgramStart+len(rom):])
}

func TestMemory_LoadTooLarge(t *testing.T) {
	m := New()

	assert.NoError(t, m.Load(make([]byte, MaxProgramSize)))

	rom := make([]byte, MaxProgramSize+1)
	rom[0] = 0xFF
	err := m.Load(rom)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	value, err := m.Memory().Read(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), value)
}

func TestMemory_Slice(t *testing.T) {
	mem := newMemory()

	assert.Equal(t, font[:GlyphSize], mem.Slice(0, GlyphSize))
	assert.Len(t, mem.Slice(0xFF0, 0x2000), 0x10)
	assert.Len(t, mem.Slice(0x10, 0x10), 0)
}
