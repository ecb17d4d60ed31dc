// Package chip8 implements the CHIP-8 virtual machine.
//
// A Machine owns the complete machine state: 4KB of memory seeded with the
// hexadecimal font, the V0-VF registers, the index register I, the program
// counter, a 16 entry call stack, the delay and sound timers, the 64x32
// framebuffer and the 16 key keypad.
//
// The host loads a program with Load and then calls Cycle once per emulated
// instruction. Timer decay is not tied to the instruction rate: the host is
// expected to call TickTimers at 60 Hz. Key state is changed with PressKey and
// ReleaseKey between cycles.
//
// A Machine is not safe for concurrent use.
//
// # Quirks
//
// Some opcodes behave differently between interpreters. The defaults follow
// the classic opcode table:
//   - 8xy6/8xyE shift Vx in place, see Quirks.ShiftUsesVy
//   - Fx65 loads V0 through Vx inclusive, see Quirks.LoadExcludesVx
//   - Fx55/Fx65 leave I unchanged, see Quirks.IndexIncrement
package chip8
