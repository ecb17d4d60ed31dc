// Package console implements an interactive terminal frontend for the
// emulator based on gocui.
//
// The screen view shows the framebuffer using half block characters, the
// registers view shows the machine state and the status view shows messages.
// The keys 1-4, q-r, a-f and z-v form the hexadecimal keypad, p toggles
// pause, n executes a single instruction while paused and Ctrl+C quits.
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

const (
	screenView    = "screen"
	registersView = "registers"
	statusView    = "status"

	screenWidth    = chip8.ScreenWidth + 2 // including frame
	screenHeight   = chip8.ScreenHeight/2 + 2
	registersWidth = 30
	statusHeight   = 6

	memoryViewSize = 8 // bytes shown at I
)

var errStopped = errors.New("emulation stopped")

// Console is the terminal frontend.
type Console struct {
	g      *gocui.Gui
	runner *runner.Runner
	keys   *keyHolder

	mu     sync.Mutex
	paused bool
}

// Run shows the terminal frontend and executes the machine until the user
// quits or the machine fails.
func Run(ctx context.Context, logger *log.Logger, machine *chip8.Machine, opts options.Emulator) (runner.Result, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return runner.Result{}, fmt.Errorf("creating terminal UI: %w", err)
	}
	defer g.Close()

	c := &Console{g: g}
	c.runner = runner.New(machine, logger, opts, runner.Handlers{
		Frame:  c.onFrame,
		Sound:  c.onSound,
		Paused: c.onPaused,
	})
	c.keys = newKeyHolder(c.runner, opts.KeyHold)
	defer c.keys.stop()

	g.SetManagerFunc(layout)
	if err := c.setKeybindings(); err != nil {
		return runner.Result{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type runResult struct {
		result runner.Result
		err    error
	}
	done := make(chan runResult, 1)
	go func() {
		result, err := c.runner.Run(ctx)
		done <- runResult{result: result, err: err}
		g.Update(func(*gocui.Gui) error { return errStopped })
	}()

	err = g.MainLoop()
	cancel()
	res := <-done

	if err != nil && !errors.Is(err, gocui.ErrQuit) && !errors.Is(err, errStopped) {
		return res.result, fmt.Errorf("running terminal UI: %w", err)
	}
	return res.result, res.err
}

func layout(g *gocui.Gui) error {
	if v, err := g.SetView(screenView, 0, 0, screenWidth-1, screenHeight-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "CHIP-8"
	}

	if v, err := g.SetView(registersView, screenWidth, 0, screenWidth+registersWidth, screenHeight-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Registers"
	}

	if v, err := g.SetView(statusView, 0, screenHeight, screenWidth+registersWidth, screenHeight+statusHeight); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Status"
		v.Autoscroll = true
		fmt.Fprintln(v, "keys: 1234 qwer asdf zxcv, p: pause, n: step, Ctrl+C: quit")
	}
	return nil
}

func (c *Console) setKeybindings() error {
	if err := c.g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return fmt.Errorf("setting quit keybinding: %w", err)
	}
	if err := c.g.SetKeybinding("", 'p', gocui.ModNone, c.togglePause); err != nil {
		return fmt.Errorf("setting pause keybinding: %w", err)
	}
	if err := c.g.SetKeybinding("", 'n', gocui.ModNone, c.step); err != nil {
		return fmt.Errorf("setting step keybinding: %w", err)
	}

	for ch := range keymap {
		chars := []rune{ch}
		if upper := toUpper(ch); upper != ch {
			chars = append(chars, upper)
		}
		for _, r := range chars {
			if err := c.g.SetKeybinding("", r, gocui.ModNone, c.keyHandler(r)); err != nil {
				return fmt.Errorf("setting keypad keybinding '%c': %w", r, err)
			}
		}
	}
	return nil
}

func (c *Console) keyHandler(ch rune) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if key, ok := MapKey(ch); ok {
			c.keys.press(key)
		}
		return nil
	}
}

func (c *Console) togglePause(g *gocui.Gui, _ *gocui.View) error {
	c.mu.Lock()
	c.paused = !c.paused
	paused := c.paused
	c.mu.Unlock()

	if paused {
		c.runner.Pause()
		return c.printStatus(g, "paused")
	}
	c.runner.Resume()
	return c.printStatus(g, "resumed")
}

func (c *Console) step(*gocui.Gui, *gocui.View) error {
	c.mu.Lock()
	paused := c.paused
	c.mu.Unlock()

	if paused {
		c.runner.Step()
	}
	return nil
}

// onFrame is called from the runner goroutine, the machine state is copied
// before the view update is queued.
func (c *Console) onFrame(m runner.Machine, screenChanged bool) {
	var screen string
	if screenChanged {
		screen = strings.Join(display.Lines(m.Framebuffer(), display.HalfBlock), "\n")
	}
	registers := c.registers(m)

	c.g.Update(func(g *gocui.Gui) error {
		if screenChanged {
			v, err := g.View(screenView)
			if err != nil {
				return err
			}
			v.Clear()
			fmt.Fprint(v, screen)
		}

		v, err := g.View(registersView)
		if err != nil {
			return err
		}
		v.Clear()
		fmt.Fprint(v, registers)
		return nil
	})
}

func (c *Console) onSound(active bool) {
	title := "CHIP-8"
	if active {
		title = "CHIP-8 ♪"
	}
	c.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(screenView)
		if err != nil {
			return err
		}
		v.Title = title
		return nil
	})
}

func (c *Console) onPaused(m runner.Machine, reason runner.StopReason) {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()

	msg := fmt.Sprintf("paused at $%03X: %s", m.PC(), reason)
	registers := c.registers(m)
	c.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(registersView)
		if err != nil {
			return err
		}
		v.Clear()
		fmt.Fprint(v, registers)
		return c.printStatus(g, msg)
	})
}

func (c *Console) registers(m runner.Machine) string {
	opcode, err := m.Memory().ReadWord(m.PC())
	if err != nil {
		opcode = 0
	}
	state := m.State()
	return formatRegisters(state, opcode, m.Memory().Slice(state.I, state.I+memoryViewSize))
}

func (c *Console) printStatus(g *gocui.Gui, msg string) error {
	v, err := g.View(statusView)
	if err != nil {
		return err
	}
	fmt.Fprintln(v, msg)
	return nil
}

func quit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}

func toUpper(ch rune) rune {
	if ch >= 'a' && ch <= 'z' {
		return ch - ('a' - 'A')
	}
	return ch
}
