package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestCreateMachine(t *testing.T) {
	opts := options.NewEmulator()
	opts.Quirks = chip8.Quirks{ShiftUsesVy: true}

	m := CreateMachine(opts, log.NewTestLogger(t))
	assert.NoError(t, m.Load([]byte{0x62, 0x04, 0x81, 0x26}))
	assert.NoError(t, m.Cycle())
	assert.NoError(t, m.Cycle())
	assert.Equal(t, uint8(0x02), m.V(1))
	assert.Equal(t, uint16(chip8.ProgramStart+4), m.PC())
}
