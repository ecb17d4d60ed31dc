// Package fileprocessor handles ROM loading and emulation runs
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/console"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete emulation workflow for a single ROM file
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, emulatorOptions options.Emulator) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Running CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", len(rom)),
			log.Int("speed", emulatorOptions.CyclesPerFrame),
		)
	}

	var traceLogger *log.Logger
	if opts.Debug && opts.Headless {
		traceLogger = logger
	}
	machine := config.CreateMachine(emulatorOptions, traceLogger)
	if err := machine.Load(rom); err != nil {
		return fmt.Errorf("loading ROM into memory: %w", err)
	}

	if !opts.Headless {
		// log output would corrupt the terminal UI, only errors are shown
		uiLogger := config.CreateLogger(false, true)
		result, err := console.Run(ctx, uiLogger, machine, emulatorOptions)
		if err != nil {
			return fmt.Errorf("running emulator: %w", err)
		}
		logResult(logger, result)
		return nil
	}

	r := runner.New(machine, logger, emulatorOptions, runner.Handlers{})
	result, runErr := r.RunHeadless(ctx)
	logResult(logger, result)

	if err := WriteScreen(os.Stdout, machine.Framebuffer(), display.StyleFor(os.Stdout)); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("running emulator: %w", runErr)
	}
	return nil
}

// WriteScreen writes the framebuffer followed by its hash.
func WriteScreen(w io.Writer, screen display.Screen, style display.Style) error {
	if err := display.Render(w, screen, style); err != nil {
		return fmt.Errorf("rendering screen: %w", err)
	}
	if _, err := fmt.Fprintf(w, "screen hash: %016x\n", display.Hash(screen)); err != nil {
		return fmt.Errorf("writing screen hash: %w", err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}

func logResult(logger *log.Logger, result runner.Result) {
	logger.Info("Emulation stopped",
		log.Stringer("reason", result.Reason),
		log.String("cycles", fmt.Sprintf("%d", result.Cycles)),
		log.Hex("pc", result.PC),
	)
}
