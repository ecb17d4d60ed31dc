package chip8

import "fmt"

// StackDepth is the number of return addresses the call stack can hold.
const StackDepth = 16

// Stack is the fixed depth return address stack.
// The stack pointer indexes the next free entry.
type Stack struct {
	entries [StackDepth]uint16
	sp      uint8
}

// Push stores a return address and increments the stack pointer.
func (s *Stack) Push(address uint16) error {
	if int(s.sp) >= StackDepth {
		return fmt.Errorf("pushing return address $%03X: stack overflow: %w", address, ErrOutOfBounds)
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

// Pop decrements the stack pointer and returns the stored return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, fmt.Errorf("popping return address: stack underflow: %w", ErrOutOfBounds)
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Pointer returns the current stack pointer.
func (s *Stack) Pointer() uint8 {
	return s.sp
}

// Entries returns a copy of the used stack entries, oldest first.
func (s *Stack) Entries() []uint16 {
	entries := make([]uint16, s.sp)
	copy(entries, s.entries[:s.sp])
	return entries
}
