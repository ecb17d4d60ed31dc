package display

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

// drawGlyphZero returns a machine that has drawn font glyph 0 at (0, 0).
func drawGlyphZero(t *testing.T) *chip8.Machine {
	t.Helper()

	m := chip8.New()
	assert.NoError(t, m.Load([]byte{0xA0, 0x00, 0xD0, 0x05}))
	assert.NoError(t, m.Cycle())
	assert.NoError(t, m.Cycle())
	return m
}

func TestRender_ASCII(t *testing.T) {
	m := drawGlyphZero(t)

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, m.Framebuffer(), ASCII))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, chip8.ScreenHeight)
	assert.Equal(t, "####....", lines[0][:8])
	assert.Equal(t, "#..#....", lines[1][:8])
	assert.Equal(t, "####....", lines[4][:8])
	assert.Equal(t, strings.Repeat(".", chip8.ScreenWidth), lines[5])
}

func TestRender_HalfBlock(t *testing.T) {
	m := drawGlyphZero(t)

	lines := Lines(m.Framebuffer(), HalfBlock)
	assert.Len(t, lines, chip8.ScreenHeight/2)
	// rows 0+1: F0/90, rows 2+3: 90/90, row 4: F0
	assert.Equal(t, "█▀▀█", string([]rune(lines[0])[:4]))
	assert.Equal(t, "█  █", string([]rune(lines[1])[:4]))
	assert.Equal(t, "▀▀▀▀", string([]rune(lines[2])[:4]))
}

func TestHash(t *testing.T) {
	empty := chip8.New()
	m := drawGlyphZero(t)

	assert.True(t, Hash(empty.Framebuffer()) != Hash(m.Framebuffer()))
	assert.Equal(t, Hash(empty.Framebuffer()), Hash(chip8.New().Framebuffer()))
}

func TestStyleFor(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	assert.NoError(t, err)
	defer func() { _ = file.Close() }()

	assert.Equal(t, ASCII, StyleFor(file))
}
