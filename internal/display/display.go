// Package display renders the CHIP-8 framebuffer as text.
package display

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash"
	"github.com/retroenv/chip8vm/internal/chip8"
	"golang.org/x/term"
)

// Style selects the characters used to render pixels.
type Style int

const (
	// ASCII renders one text line per pixel row using '#' and '.'.
	ASCII Style = iota
	// HalfBlock renders two pixel rows per text line using Unicode half
	// block characters.
	HalfBlock
)

// Screen is the read access to a framebuffer.
type Screen interface {
	Pixel(x, y int) uint8
	Bytes() []byte
}

var _ Screen = (*chip8.Framebuffer)(nil)

// StyleFor returns HalfBlock if the file is a terminal and ASCII otherwise.
func StyleFor(file *os.File) Style {
	if term.IsTerminal(int(file.Fd())) {
		return HalfBlock
	}
	return ASCII
}

// Render writes the screen in the given style.
func Render(w io.Writer, screen Screen, style Style) error {
	buf := bufio.NewWriter(w)
	for _, line := range Lines(screen, style) {
		_, _ = buf.WriteString(line)
		_ = buf.WriteByte('\n')
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return nil
}

// Lines returns the screen rendered in the given style, one entry per
// text line.
func Lines(screen Screen, style Style) []string {
	height := chip8.ScreenHeight
	if style == HalfBlock {
		height /= 2
	}

	lines := make([]string, 0, height)
	line := make([]rune, chip8.ScreenWidth)
	for row := range height {
		for x := range chip8.ScreenWidth {
			if style == HalfBlock {
				line[x] = halfBlock(screen.Pixel(x, row*2), screen.Pixel(x, row*2+1))
			} else {
				line[x] = asciiPixel(screen.Pixel(x, row))
			}
		}
		lines = append(lines, string(line))
	}
	return lines
}

// Hash returns a hash of the pixel data, it can be used to detect screen
// changes or compare the output of test ROMs.
func Hash(screen Screen) uint64 {
	return xxhash.Sum64(screen.Bytes())
}

func asciiPixel(pixel uint8) rune {
	if pixel != 0 {
		return '#'
	}
	return '.'
}

func halfBlock(upper, lower uint8) rune {
	switch {
	case upper != 0 && lower != 0:
		return '█'
	case upper != 0:
		return '▀'
	case lower != 0:
		return '▄'
	default:
		return ' '
	}
}
