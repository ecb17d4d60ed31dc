package chip8

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Quirks selects between known behavioral divergences of CHIP-8 interpreters.
type Quirks struct {
	// ShiftUsesVy makes 8xy6 and 8xyE shift Vy and store the result in Vx.
	ShiftUsesVy bool
	// LoadExcludesVx makes Fx65 load V0 through V(x-1) only, while Fx55
	// still stores V0 through Vx.
	LoadExcludesVx bool
	// IndexIncrement makes Fx55 and Fx65 leave I pointing after the last
	// transferred byte.
	IndexIncrement bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithQuirks sets the interpreter quirks.
func WithQuirks(quirks Quirks) Option {
	return func(m *Machine) {
		m.quirks = quirks
	}
}

// WithRandom sets the random byte source used by Cxkk.
func WithRandom(random func() uint8) Option {
	return func(m *Machine) {
		if random != nil {
			m.random = random
		}
	}
}

// WithLogger enables debug tracing of every executed instruction.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

func randomByte() uint8 {
	return uint8(rand.UintN(256))
}
