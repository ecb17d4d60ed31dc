package disasm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected string
	}{
		{"clear screen", 0x00E0, "cls"},
		{"return", 0x00EE, "ret"},
		{"jump", 0x1234, "jp $234"},
		{"jump offset", 0xB300, "jp V0, $300"},
		{"call", 0x2300, "call $300"},
		{"skip equal byte", 0x3234, "se V2, $34"},
		{"skip not equal register", 0x9AB0, "sne VA, VB"},
		{"load byte", 0x6A12, "ld VA, $12"},
		{"load index", 0xA2F0, "ld I, $2F0"},
		{"add byte", 0x7105, "add V1, $05"},
		{"xor", 0x8123, "xor V1, V2"},
		{"random", 0xC0FF, "rnd V0, $FF"},
		{"draw", 0xD015, "drw V0, V1, $5"},
		{"skip key", 0xE59E, "skp V5"},
		{"skip no key", 0xE5A1, "sknp V5"},
		{"skip equal register", 0x5AB0, "se VA, VB"},
		{"skip not equal byte", 0x4A10, "sne VA, $10"},
		{"load register", 0x8120, "ld V1, V2"},
		{"or", 0x8121, "or V1, V2"},
		{"and", 0x8122, "and V1, V2"},
		{"add register", 0x8124, "add V1, V2"},
		{"sub", 0x8125, "sub V1, V2"},
		{"shift right", 0x8126, "shr V1"},
		{"subn", 0x8127, "subn V1, V2"},
		{"shift left", 0x812E, "shl V1"},
		{"load delay timer", 0xF307, "ld V3, DT"},
		{"wait key", 0xF30A, "ld V3, K"},
		{"set sound timer", 0xF318, "ld ST, V3"},
		{"add index", 0xF31E, "add I, V3"},
		{"font", 0xF329, "ld F, V3"},
		{"bcd", 0xF333, "ld B, V3"},
		{"store registers", 0xF355, "ld [I], V3"},
		{"load registers", 0xF365, "ld V3, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, ok := Decode(tt.opcode)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, ins.String())
			assert.Equal(t, tt.opcode, ins.Opcode())
		})
	}
}

func TestDecode_Unknown(t *testing.T) {
	for _, opcode := range []uint16{0x0123, 0x5121, 0x8128, 0xE100, 0xF1FF} {
		_, ok := Decode(opcode)
		assert.False(t, ok, "opcode %04X", opcode)
	}
}

func TestInstruction_NameNil(t *testing.T) {
	var ins Instruction
	assert.Equal(t, "", ins.Name())
	assert.Equal(t, "", ins.String())
}
