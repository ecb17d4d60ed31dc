package chip8

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	memory      *Memory
	framebuffer *Framebuffer
	stack       Stack
	keypad      Keypad

	v  [16]uint8
	i  uint16
	pc uint16

	delayTimer uint8
	soundTimer uint8

	waiting bool // Fx0A is blocked until a key gets pressed
	cycles  uint64

	quirks Quirks
	random func() uint8
	logger *log.Logger
}

// State is a snapshot of the register file of a machine.
type State struct {
	V          [16]uint8
	I          uint16
	PC         uint16
	SP         uint8
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
	Keys       [KeyCount]bool
	Waiting    bool
	Cycles     uint64
}

// New returns a new machine with the font loaded into memory and the
// program counter set to the program start address.
func New(options ...Option) *Machine {
	m := &Machine{
		memory:      newMemory(),
		framebuffer: &Framebuffer{},
		pc:          ProgramStart,
		random:      randomByte,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Reset returns the machine to its initial state, all loaded program data
// is cleared.
func (m *Machine) Reset() {
	m.memory.reset()
	m.framebuffer.Clear()
	m.stack = Stack{}
	m.keypad = Keypad{}
	m.v = [16]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.delayTimer = 0
	m.soundTimer = 0
	m.waiting = false
	m.cycles = 0
}

// Load copies the program into memory at the program start address.
func (m *Machine) Load(rom []byte) error {
	if err := m.memory.Load(rom, ProgramStart); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// PressKey marks the key as pressed, the index is taken modulo 16.
func (m *Machine) PressKey(key uint8) {
	m.keypad.set(key, 1)
}

// ReleaseKey marks the key as released, the index is taken modulo 16.
func (m *Machine) ReleaseKey(key uint8) {
	m.keypad.set(key, 0)
}

// TickTimers decrements the delay and sound timers towards zero.
// It is expected to be called at 60 Hz by the host.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// SoundActive returns whether the sound timer is running and a tone
// should be played.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// Framebuffer returns the display memory.
func (m *Machine) Framebuffer() *Framebuffer {
	return m.framebuffer
}

// Memory returns the machine memory.
func (m *Machine) Memory() *Memory {
	return m.memory
}

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// I returns the index register.
func (m *Machine) I() uint16 { return m.i }

// V returns the value of register Vx, the index is taken modulo 16.
func (m *Machine) V(x uint8) uint8 { return m.v[x&0x0F] }

// SP returns the stack pointer.
func (m *Machine) SP() uint8 { return m.stack.Pointer() }

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 { return m.delayTimer }

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() uint8 { return m.soundTimer }

// Waiting returns whether the machine is blocked on a Fx0A key wait.
func (m *Machine) Waiting() bool { return m.waiting }

// Cycles returns the number of executed cycles. A cycle blocked on a Fx0A
// key wait is counted as well, so a cycle limit also ends a run that waits
// for a key that never arrives.
func (m *Machine) Cycles() uint64 { return m.cycles }

// State returns a snapshot of the registers, stack and timers.
func (m *Machine) State() State {
	return State{
		V:          m.v,
		I:          m.i,
		PC:         m.pc,
		SP:         m.stack.Pointer(),
		Stack:      m.stack.Entries(),
		DelayTimer: m.delayTimer,
		SoundTimer: m.soundTimer,
		Keys:       m.keypad.states(),
		Waiting:    m.waiting,
		Cycles:     m.cycles,
	}
}

// Cycle fetches, decodes and executes a single instruction.
// An undecodable instruction returns an error wrapping ErrUndecodableOpcode
// and leaves the machine state unchanged, as does a memory transfer that
// would reach past the end of memory.
func (m *Machine) Cycle() error {
	opcode, err := m.memory.ReadWord(m.pc)
	if err != nil {
		return fmt.Errorf("fetching instruction: %w", err)
	}

	ins, ok := disasm.Decode(opcode)
	if !ok {
		return m.undecodable(opcode)
	}
	if m.logger != nil {
		m.trace(ins)
	}

	if err := m.execute(opcode); err != nil {
		return err
	}
	m.cycles++
	return nil
}

func (m *Machine) trace(ins disasm.Instruction) {
	m.logger.Debug("Executing instruction",
		log.Hex("address", m.pc),
		log.Hex("opcode", ins.Opcode()),
		log.Stringer("instruction", ins))
}
