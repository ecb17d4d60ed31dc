// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Emulator{}, err
	}

	if opts.Input == "" && opts.Batch == "" {
		opts.Input = args[0]
	}
	if opts.Batch != "" {
		opts.Headless = true
	}

	emulatorOptions, err := createEmulatorOptions(opts)
	if err != nil {
		return opts, options.Emulator{}, err
	}
	return opts, emulatorOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// createEmulatorOptions creates emulator options based on program options
func createEmulatorOptions(opts options.Program) (options.Emulator, error) {
	emulatorOptions := options.NewEmulator()
	emulatorOptions.Quirks = chip8.Quirks{
		ShiftUsesVy:    opts.ShiftUsesVy,
		LoadExcludesVx: opts.LoadExcludesVx,
		IndexIncrement: opts.IndexIncrement,
	}

	if opts.CyclesPerFrame < 1 {
		return emulatorOptions, fmt.Errorf("invalid speed %d, at least 1 cycle per frame is required", opts.CyclesPerFrame)
	}
	emulatorOptions.CyclesPerFrame = opts.CyclesPerFrame

	if opts.Headless {
		if opts.Cycles < 1 {
			return emulatorOptions, fmt.Errorf("invalid cycle count %d for headless mode", opts.Cycles)
		}
		emulatorOptions.MaxCycles = uint64(opts.Cycles)
	}

	breakpoints, err := parseBreakpoints(opts.Breakpoints)
	if err != nil {
		return emulatorOptions, err
	}
	emulatorOptions.Breakpoints = breakpoints

	return emulatorOptions, nil
}

// parseBreakpoints parses a comma separated list of addresses, the formats
// 0x200, $200 and 512 are accepted.
func parseBreakpoints(list string) ([]uint16, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "$") {
			s = "0x" + s[1:]
		}
		address, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint '%s': %w", s, err)
		}
		if address >= chip8.MemorySize {
			return nil, fmt.Errorf("breakpoint $%04X is outside of memory", address)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of given path and file mask headless, for example *.ch8")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated list of breakpoint addresses, for example 0x200,$23C")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal UI and print the screen after the cycle limit")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultHeadlessCycles, "number of cycles to execute in headless mode")
	flags.IntVar(&opts.CyclesPerFrame, "speed", options.DefaultCyclesPerFrame, "instructions executed per 60 Hz frame")
	flags.BoolVar(&opts.ShiftUsesVy, "shift-vy", false, "quirk: 8xy6/8xyE shift Vy into Vx instead of shifting Vx")
	flags.BoolVar(&opts.LoadExcludesVx, "load-excl", false, "quirk: Fx65 loads V0 to V(x-1) only")
	flags.BoolVar(&opts.IndexIncrement, "index-inc", false, "quirk: Fx55/Fx65 leave I after the last transferred byte")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
