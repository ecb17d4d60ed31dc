// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// ErrEmptyROM is returned for ROM files without content.
var ErrEmptyROM = errors.New("ROM file is empty")

// ErrROMTooLarge is returned for ROM files that do not fit into memory.
var ErrROMTooLarge = errors.New("ROM file does not fit into memory")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 ROM file. CHIP-8 ROMs have no header, the file
// content is the program image that gets loaded at the program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.Read(file)
}

// Read reads a raw ROM image from the reader and validates its size.
func (l *Loader) Read(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized files
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: maximum size is %d bytes", ErrROMTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
