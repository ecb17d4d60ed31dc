// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachine creates a machine configured by the emulator options.
// Instruction tracing is enabled if a trace logger is passed.
func CreateMachine(opts options.Emulator, traceLogger *log.Logger) *chip8.Machine {
	machineOptions := []chip8.Option{
		chip8.WithQuirks(opts.Quirks),
	}
	if traceLogger != nil {
		machineOptions = append(machineOptions, chip8.WithLogger(traceLogger))
	}
	return chip8.New(machineOptions...)
}
