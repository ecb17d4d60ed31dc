// Package options contains the program options.
package options

import (
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// Default emulation speed settings.
const (
	DefaultCyclesPerFrame = 10
	DefaultFrameRate      = 60
	DefaultHeadlessCycles = 10000
	DefaultKeyHold        = 150 * time.Millisecond
)

// Parameters contains file path options.
type Parameters struct {
	Input       string `flag:"i" usage:"input ROM file"`
	Batch       string `flag:"batch" usage:"run all files matching pattern headless (e.g. *.ch8)"`
	Breakpoints string `flag:"break" usage:"comma separated list of breakpoint addresses"`
}

// Flags contains behavior options.
type Flags struct {
	Headless       bool `flag:"headless" usage:"run without terminal UI and print the final screen"`
	Cycles         int  `flag:"cycles" usage:"number of cycles to execute in headless mode"`
	CyclesPerFrame int  `flag:"speed" usage:"instructions executed per 60 Hz frame"`
	ShiftUsesVy    bool `flag:"shift-vy" usage:"8xy6/8xyE shift Vy into Vx"`
	LoadExcludesVx bool `flag:"load-excl" usage:"Fx65 loads V0 to V(x-1) only"`
	IndexIncrement bool `flag:"index-inc" usage:"Fx55/Fx65 increment I"`
	Debug          bool `flag:"debug" usage:"enable debug logging"`
	Quiet          bool `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Emulator defines options to control the machine and its runner.
type Emulator struct {
	Quirks         chip8.Quirks
	CyclesPerFrame int           // instructions executed per frame
	FrameRate      int           // frames per second, timers tick once per frame
	MaxCycles      uint64        // stop after this many cycles, 0 for no limit
	Breakpoints    []uint16      // addresses that pause execution
	KeyHold        time.Duration // duration a terminal key press is held
}

// NewEmulator returns a new options instance with default options.
func NewEmulator() Emulator {
	return Emulator{
		CyclesPerFrame: DefaultCyclesPerFrame,
		FrameRate:      DefaultFrameRate,
		KeyHold:        DefaultKeyHold,
	}
}
