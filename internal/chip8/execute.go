package chip8

import "fmt"

// instructionSize is the size of an instruction word in bytes.
const instructionSize = 2

// operands holds the fields that can be extracted from an instruction word.
type operands struct {
	nnn uint16 // 12 bit address
	kk  uint8  // 8 bit immediate
	x   uint8  // register index in bits 8-11
	y   uint8  // register index in bits 4-7
	n   uint8  // 4 bit immediate
}

func decodeOperands(opcode uint16) operands {
	return operands{
		nnn: opcode & 0x0FFF,
		kk:  uint8(opcode & 0x00FF),
		x:   uint8((opcode & 0x0F00) >> 8),
		y:   uint8((opcode & 0x00F0) >> 4),
		n:   uint8(opcode & 0x000F),
	}
}

// execute decodes the instruction word by its top nibble and applies its
// effect to the machine state.
func (m *Machine) execute(opcode uint16) error {
	op := decodeOperands(opcode)

	switch opcode >> 12 {
	case 0x0:
		return m.executeSystem(opcode)

	case 0x1:
		m.pc = op.nnn

	case 0x2:
		if err := m.stack.Push(m.pc + instructionSize); err != nil {
			return fmt.Errorf("executing call at $%03X: %w", m.pc, err)
		}
		m.pc = op.nnn

	case 0x3:
		m.skipIf(m.v[op.x] == op.kk)

	case 0x4:
		m.skipIf(m.v[op.x] != op.kk)

	case 0x5:
		if op.n != 0 {
			return m.undecodable(opcode)
		}
		m.skipIf(m.v[op.x] == m.v[op.y])

	case 0x6:
		m.v[op.x] = op.kk
		m.next()

	case 0x7:
		m.v[op.x] += op.kk
		m.next()

	case 0x8:
		return m.executeArithmetic(opcode, op)

	case 0x9:
		if op.n != 0 {
			return m.undecodable(opcode)
		}
		m.skipIf(m.v[op.x] != m.v[op.y])

	case 0xA:
		m.i = op.nnn
		m.next()

	case 0xB:
		m.pc = op.nnn + uint16(m.v[0])

	case 0xC:
		m.v[op.x] = m.random() & op.kk
		m.next()

	case 0xD:
		if err := m.draw(op); err != nil {
			return fmt.Errorf("executing draw at $%03X: %w", m.pc, err)
		}
		m.next()

	case 0xE:
		return m.executeKeySkip(opcode, op)

	case 0xF:
		return m.executeMisc(opcode, op)
	}
	return nil
}

// executeSystem handles the 0x0 category, only clear screen and return
// are supported.
func (m *Machine) executeSystem(opcode uint16) error {
	switch opcode {
	case 0x00E0:
		m.framebuffer.Clear()
		m.next()

	case 0x00EE:
		address, err := m.stack.Pop()
		if err != nil {
			return fmt.Errorf("executing return at $%03X: %w", m.pc, err)
		}
		m.pc = address

	default:
		return m.undecodable(opcode)
	}
	return nil
}

// executeArithmetic handles the 8xyN register to register operations.
// Flag results are written to VF after the result so that the flag wins
// when x is F.
func (m *Machine) executeArithmetic(opcode uint16, op operands) error {
	vx, vy := m.v[op.x], m.v[op.y]

	switch op.n {
	case 0x0:
		m.v[op.x] = vy
	case 0x1:
		m.v[op.x] = vx | vy
	case 0x2:
		m.v[op.x] = vx & vy
	case 0x3:
		m.v[op.x] = vx ^ vy

	case 0x4:
		sum := uint16(vx) + uint16(vy)
		m.v[op.x] = uint8(sum)
		m.v[0xF] = boolToFlag(sum > 0xFF)

	case 0x5:
		m.v[op.x] = vx - vy
		m.v[0xF] = boolToFlag(vx > vy)

	case 0x6:
		src := vx
		if m.quirks.ShiftUsesVy {
			src = vy
		}
		m.v[op.x] = src >> 1
		m.v[0xF] = src & 0x01

	case 0x7:
		m.v[op.x] = vy - vx
		m.v[0xF] = boolToFlag(vy > vx)

	case 0xE:
		src := vx
		if m.quirks.ShiftUsesVy {
			src = vy
		}
		m.v[op.x] = src << 1
		m.v[0xF] = src >> 7

	default:
		return m.undecodable(opcode)
	}

	m.next()
	return nil
}

// executeKeySkip handles Ex9E and ExA1.
func (m *Machine) executeKeySkip(opcode uint16, op operands) error {
	switch op.kk {
	case 0x9E:
		m.skipIf(m.keypad.Pressed(m.v[op.x]))
	case 0xA1:
		m.skipIf(!m.keypad.Pressed(m.v[op.x]))
	default:
		return m.undecodable(opcode)
	}
	return nil
}

// executeMisc handles the FxNN timer, keypad, index and memory transfer
// operations.
func (m *Machine) executeMisc(opcode uint16, op operands) error {
	switch op.kk {
	case 0x07:
		m.v[op.x] = m.delayTimer

	case 0x0A:
		key, ok := m.keypad.firstPressed()
		if !ok {
			m.waiting = true
			return nil
		}
		m.waiting = false
		m.v[op.x] = key

	case 0x15:
		m.delayTimer = m.v[op.x]

	case 0x18:
		m.soundTimer = m.v[op.x]

	case 0x1E:
		m.i += uint16(m.v[op.x])

	case 0x29:
		if vx := m.v[op.x]; vx < 16 {
			m.i = FontAddress + uint16(vx)*GlyphSize
		}

	case 0x33:
		if err := m.storeBCD(m.v[op.x]); err != nil {
			return fmt.Errorf("executing bcd at $%03X: %w", m.pc, err)
		}

	case 0x55:
		if err := m.storeRegisters(op.x); err != nil {
			return fmt.Errorf("executing register store at $%03X: %w", m.pc, err)
		}

	case 0x65:
		if err := m.loadRegisters(op.x); err != nil {
			return fmt.Errorf("executing register load at $%03X: %w", m.pc, err)
		}

	default:
		return m.undecodable(opcode)
	}

	m.next()
	return nil
}

// draw XORs an n byte sprite read from I onto the framebuffer at (Vx, Vy).
// VF is set if any pixel was switched off.
func (m *Machine) draw(op operands) error {
	var sprite [15]uint8
	for row := range int(op.n) {
		b, err := m.memory.Read(m.i + uint16(row))
		if err != nil {
			return err
		}
		sprite[row] = b
	}

	x, y := int(m.v[op.x]), int(m.v[op.y])
	var collision uint8
	for row, b := range sprite[:op.n] {
		for column := range 8 {
			if b&(0x80>>column) == 0 {
				continue
			}
			if m.framebuffer.flip(x+column, y+row) {
				collision = 1
			}
		}
	}
	m.v[0xF] = collision
	return nil
}

// storeBCD writes the hundreds, tens and units digits of value to I, I+1, I+2.
func (m *Machine) storeBCD(value uint8) error {
	digits := [3]uint8{value / 100, (value / 10) % 10, value % 10}
	if err := m.checkIndexRange(len(digits)); err != nil {
		return err
	}
	for offset, digit := range digits {
		if err := m.memory.Write(m.i+uint16(offset), digit); err != nil {
			return err
		}
	}
	return nil
}

// storeRegisters writes V0 through Vx to memory starting at I.
func (m *Machine) storeRegisters(x uint8) error {
	if err := m.checkIndexRange(int(x) + 1); err != nil {
		return err
	}
	for reg := range x + 1 {
		if err := m.memory.Write(m.i+uint16(reg), m.v[reg]); err != nil {
			return err
		}
	}
	if m.quirks.IndexIncrement {
		m.i += uint16(x) + 1
	}
	return nil
}

// loadRegisters reads V0 through Vx from memory starting at I.
func (m *Machine) loadRegisters(x uint8) error {
	count := x + 1
	if m.quirks.LoadExcludesVx {
		count = x
	}
	if err := m.checkIndexRange(int(count)); err != nil {
		return err
	}
	for reg := range count {
		b, err := m.memory.Read(m.i + uint16(reg))
		if err != nil {
			return err
		}
		m.v[reg] = b
	}
	if m.quirks.IndexIncrement {
		m.i += uint16(x) + 1
	}
	return nil
}

// checkIndexRange returns an error if count bytes starting at I do not fit
// into memory, so that a failing transfer does not leave a partial result.
func (m *Machine) checkIndexRange(count int) error {
	if int(m.i)+count > MemorySize {
		return fmt.Errorf("accessing %d bytes at $%03X: %w", count, m.i, ErrOutOfBounds)
	}
	return nil
}

func (m *Machine) next() {
	m.pc += instructionSize
}

// skipIf advances to the next instruction, skipping over it if the
// condition is true.
func (m *Machine) skipIf(condition bool) {
	m.pc += instructionSize
	if condition {
		m.pc += instructionSize
	}
}

func (m *Machine) undecodable(opcode uint16) error {
	return &OpcodeError{Address: m.pc, Opcode: opcode}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
