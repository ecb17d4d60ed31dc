// Package runner drives a CHIP-8 machine: it executes instructions at the
// configured speed, ticks the timers at the frame rate, applies key events
// between cycles and reports frames, sound changes and breakpoints.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// keyEventBuffer is the number of key events that can be queued between frames.
const keyEventBuffer = 64

// Machine is the machine interface used by the runner.
type Machine interface {
	Cycle() error
	TickTimers()
	PressKey(key uint8)
	ReleaseKey(key uint8)
	PC() uint16
	Cycles() uint64
	SoundActive() bool
	State() chip8.State
	Framebuffer() *chip8.Framebuffer
	Memory() *chip8.Memory
}

var _ Machine = (*chip8.Machine)(nil)

// StopReason describes why execution stopped or paused.
type StopReason int

const (
	// Canceled means the context was canceled.
	Canceled StopReason = iota
	// CycleLimit means the configured maximum number of cycles was executed.
	CycleLimit
	// Breakpoint means the program counter reached a breakpoint address.
	Breakpoint
	// Failed means the machine returned an error.
	Failed
	// Stepped means a single instruction was executed while paused.
	Stepped
)

func (r StopReason) String() string {
	switch r {
	case Canceled:
		return "canceled"
	case CycleLimit:
		return "cycle limit"
	case Breakpoint:
		return "breakpoint"
	case Failed:
		return "failed"
	case Stepped:
		return "stepped"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result describes the final state of a run.
type Result struct {
	Reason StopReason
	Cycles uint64
	PC     uint16
	Hash   uint64 // framebuffer hash
}

// KeyEvent is a key press or release of the CHIP-8 keypad.
type KeyEvent struct {
	Key     uint8
	Pressed bool
}

// Handlers are optional callbacks, they are called from the goroutine that
// executes Run and may access the machine for the duration of the call.
type Handlers struct {
	// Frame is called once per frame, screenChanged reports whether the
	// framebuffer content differs from the previous frame.
	Frame func(m Machine, screenChanged bool)
	// Sound is called when the sound timer starts or stops.
	Sound func(active bool)
	// Paused is called when execution pauses at a breakpoint or after a
	// single step.
	Paused func(m Machine, reason StopReason)
}

type command int

const (
	pauseCommand command = iota
	resumeCommand
	stepCommand
)

// Runner executes a machine.
type Runner struct {
	machine     Machine
	logger      *log.Logger
	opts        options.Emulator
	handlers    Handlers
	breakpoints set.Set[uint16]

	keys     chan KeyEvent
	commands chan command

	paused         bool
	skipBreakpoint bool // the current PC was already reported as breakpoint
	sound          bool
	lastHash       uint64
}

// New returns a new runner for the machine.
func New(machine Machine, logger *log.Logger, opts options.Emulator, handlers Handlers) *Runner {
	breakpoints := set.New[uint16]()
	for _, address := range opts.Breakpoints {
		breakpoints.Add(address)
	}
	if opts.CyclesPerFrame < 1 {
		opts.CyclesPerFrame = options.DefaultCyclesPerFrame
	}
	if opts.FrameRate < 1 {
		opts.FrameRate = options.DefaultFrameRate
	}

	return &Runner{
		machine:     machine,
		logger:      logger,
		opts:        opts,
		handlers:    handlers,
		breakpoints: breakpoints,
		keys:        make(chan KeyEvent, keyEventBuffer),
		commands:    make(chan command, keyEventBuffer),
		lastHash:    display.Hash(machine.Framebuffer()),
	}
}

// SendKey queues a key event, it is applied before the next cycle.
// It is safe to call from any goroutine, events are dropped if the queue
// is full.
func (r *Runner) SendKey(event KeyEvent) {
	select {
	case r.keys <- event:
	default:
		r.logger.Debug("Key event queue full, dropping event", log.Uint8("key", event.Key))
	}
}

// Pause pauses execution, it is safe to call from any goroutine.
func (r *Runner) Pause() { r.sendCommand(pauseCommand) }

// Resume resumes paused execution, it is safe to call from any goroutine.
func (r *Runner) Resume() { r.sendCommand(resumeCommand) }

// Step executes a single instruction while paused, it is safe to call from
// any goroutine.
func (r *Runner) Step() { r.sendCommand(stepCommand) }

func (r *Runner) sendCommand(cmd command) {
	select {
	case r.commands <- cmd:
	default:
	}
}

// Run executes the machine paced by the frame rate until the context is
// canceled, the cycle limit is reached or the machine fails.
// Breakpoints pause the execution.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	ticker := time.NewTicker(time.Second / time.Duration(r.opts.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.result(Canceled), nil
		case <-ticker.C:
		}

		r.applyKeys()
		reason, stopped, err := r.applyCommands()
		if stopped {
			return r.result(reason), err
		}

		if !r.paused {
			reason, stopped, err = r.runFrame(true)
			if stopped {
				return r.result(reason), err
			}
		}

		// timers are frozen together with the program counter while paused
		if !r.paused {
			r.machine.TickTimers()
			r.updateSound()
		}
		r.frame()
	}
}

// RunHeadless executes the machine as fast as possible until the context
// is canceled, the cycle limit is reached, a breakpoint is hit or the
// machine fails. Timers are ticked once per CyclesPerFrame instructions.
func (r *Runner) RunHeadless(ctx context.Context) (Result, error) {
	if r.opts.MaxCycles == 0 {
		return Result{}, errors.New("headless mode requires a cycle limit")
	}

	for {
		if err := ctx.Err(); err != nil {
			return r.result(Canceled), nil
		}

		r.applyKeys()
		reason, stopped, err := r.runFrame(false)
		if stopped {
			return r.result(reason), err
		}

		r.machine.TickTimers()
		r.updateSound()
		r.frame()
	}
}

// runFrame executes the instructions of one frame. If pauseAtBreakpoint is
// set, a breakpoint pauses execution instead of stopping it.
func (r *Runner) runFrame(pauseAtBreakpoint bool) (StopReason, bool, error) {
	for range r.opts.CyclesPerFrame {
		if r.opts.MaxCycles > 0 && r.machine.Cycles() >= r.opts.MaxCycles {
			return CycleLimit, true, nil
		}

		if r.atBreakpoint() {
			if !pauseAtBreakpoint {
				return Breakpoint, true, nil
			}
			r.pause(Breakpoint)
			return Breakpoint, false, nil
		}

		if err := r.step(); err != nil {
			return Failed, true, err
		}
	}
	return 0, false, nil
}

func (r *Runner) step() error {
	r.skipBreakpoint = false
	if err := r.machine.Cycle(); err != nil {
		return fmt.Errorf("executing cycle %d at $%03X: %w", r.machine.Cycles(), r.machine.PC(), err)
	}
	return nil
}

func (r *Runner) atBreakpoint() bool {
	if r.skipBreakpoint || !r.breakpoints.Contains(r.machine.PC()) {
		return false
	}
	r.skipBreakpoint = true
	r.logger.Info("Breakpoint reached", log.Hex("address", r.machine.PC()))
	return true
}

func (r *Runner) pause(reason StopReason) {
	r.paused = true
	if r.handlers.Paused != nil {
		r.handlers.Paused(r.machine, reason)
	}
}

func (r *Runner) applyKeys() {
	for {
		select {
		case event := <-r.keys:
			if event.Pressed {
				r.machine.PressKey(event.Key)
			} else {
				r.machine.ReleaseKey(event.Key)
			}
		default:
			return
		}
	}
}

func (r *Runner) applyCommands() (StopReason, bool, error) {
	for {
		select {
		case cmd := <-r.commands:
			switch cmd {
			case pauseCommand:
				r.paused = true
			case resumeCommand:
				r.paused = false
			case stepCommand:
				if !r.paused {
					continue
				}
				if err := r.step(); err != nil {
					return Failed, true, err
				}
				r.pause(Stepped)
			}
		default:
			return 0, false, nil
		}
	}
}

func (r *Runner) updateSound() {
	active := r.machine.SoundActive()
	if active == r.sound {
		return
	}
	r.sound = active
	if r.handlers.Sound != nil {
		r.handlers.Sound(active)
	}
}

func (r *Runner) frame() {
	if r.handlers.Frame == nil {
		return
	}
	hash := display.Hash(r.machine.Framebuffer())
	changed := hash != r.lastHash
	r.lastHash = hash
	r.handlers.Frame(r.machine, changed)
}

func (r *Runner) result(reason StopReason) Result {
	return Result{
		Reason: reason,
		Cycles: r.machine.Cycles(),
		PC:     r.machine.PC(),
		Hash:   display.Hash(r.machine.Framebuffer()),
	}
}
