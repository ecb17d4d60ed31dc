package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for memory accesses at or above MemorySize
	// and for stack pointer overflow or underflow.
	ErrOutOfBounds = errors.New("out of bounds access")

	// ErrUndecodableOpcode is returned when an instruction word does not
	// match any opcode of the instruction set.
	ErrUndecodableOpcode = errors.New("undecodable opcode")
)

// OpcodeError describes an instruction word that could not be decoded.
type OpcodeError struct {
	Address uint16 // address the word was fetched from
	Opcode  uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%s $%04X at address $%03X", ErrUndecodableOpcode, e.Opcode, e.Address)
}

// Unwrap allows errors.Is to match ErrUndecodableOpcode.
func (e *OpcodeError) Unwrap() error {
	return ErrUndecodableOpcode
}
