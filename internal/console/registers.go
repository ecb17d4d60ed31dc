package console

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/disasm"
)

// formatRegisters renders the register file, the memory at I, the pressed
// keys and the instruction at the program counter for the registers view.
func formatRegisters(state chip8.State, opcode uint16, atIndex []byte) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PC $%03X  I $%03X\n", state.PC, state.I)
	fmt.Fprintf(&sb, "SP %-2d    DT $%02X ST $%02X\n", state.SP, state.DelayTimer, state.SoundTimer)
	for x := 0; x < len(state.V); x += 4 {
		fmt.Fprintf(&sb, "V%X $%02X V%X $%02X V%X $%02X V%X $%02X\n",
			x, state.V[x], x+1, state.V[x+1], x+2, state.V[x+2], x+3, state.V[x+3])
	}

	fmt.Fprintf(&sb, "[I] % X\n", atIndex)
	sb.WriteString("keys")
	for key, pressed := range state.Keys {
		if pressed {
			fmt.Fprintf(&sb, " %X", key)
		}
	}
	sb.WriteString("\n")

	ins := "???"
	if decoded, ok := disasm.Decode(opcode); ok {
		ins = decoded.String()
	}
	fmt.Fprintf(&sb, "\n$%04X %s\n", opcode, ins)

	if state.Waiting {
		sb.WriteString("waiting for key\n")
	}
	fmt.Fprintf(&sb, "cycles %d\n", state.Cycles)
	return sb.String()
}
