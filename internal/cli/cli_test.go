package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_EmulatorOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Emulator
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: options.Emulator{CyclesPerFrame: options.DefaultCyclesPerFrame},
		},
		{
			name: "speed flag",
			args: []string{"prog", "-speed", "20", "test.ch8"},
			want: options.Emulator{CyclesPerFrame: 20},
		},
		{
			name: "headless cycles",
			args: []string{"prog", "-headless", "-cycles", "500", "test.ch8"},
			want: options.Emulator{CyclesPerFrame: options.DefaultCyclesPerFrame, MaxCycles: 500},
		},
		{
			name: "batch implies headless",
			args: []string{"prog", "-batch", "*.ch8"},
			want: options.Emulator{CyclesPerFrame: options.DefaultCyclesPerFrame, MaxCycles: options.DefaultHeadlessCycles},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want.CyclesPerFrame, got.CyclesPerFrame)
			assert.Equal(t, tt.want.MaxCycles, got.MaxCycles)
			assert.Equal(t, options.DefaultFrameRate, got.FrameRate)
		})
	}
}

func TestParseFlags_Quirks(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-shift-vy", "-load-excl", "-index-inc", "game.ch8"}

	opts, got, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.True(t, got.Quirks.ShiftUsesVy)
	assert.True(t, got.Quirks.LoadExcludesVx)
	assert.True(t, got.Quirks.IndexIncrement)
}

func TestParseFlags_Usage(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog"}

	_, _, err := ParseFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestParseBreakpoints(t *testing.T) {
	tests := []struct {
		name     string
		list     string
		expected []uint16
		wantErr  bool
	}{
		{"empty", "", nil, false},
		{"hex", "0x200", []uint16{0x200}, false},
		{"dollar hex", "$23C", []uint16{0x23C}, false},
		{"decimal", "512", []uint16{0x200}, false},
		{"list", "0x200, $210,0x220", []uint16{0x200, 0x210, 0x220}, false},
		{"invalid", "abc", nil, true},
		{"outside memory", "0x1000", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBreakpoints(tt.list)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
