package console

import (
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/runner"
)

// keySender receives keypad events.
type keySender interface {
	SendKey(event runner.KeyEvent)
}

type heldKey struct {
	timer      *time.Timer
	generation uint64
}

// keyHolder turns terminal key presses into press and release events.
// Terminals do not report key releases, so a key is released after it was
// not pressed again for the hold duration.
type keyHolder struct {
	sender keySender
	hold   time.Duration

	mu         sync.Mutex
	held       map[uint8]*heldKey
	generation uint64
}

func newKeyHolder(sender keySender, hold time.Duration) *keyHolder {
	return &keyHolder{
		sender: sender,
		hold:   hold,
		held:   make(map[uint8]*heldKey),
	}
}

// press sends a press event for a key that is not held yet and restarts
// its release timer.
func (k *keyHolder) press(key uint8) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if held, ok := k.held[key]; ok && held.timer.Stop() {
		held.timer.Reset(k.hold)
		return
	}

	k.generation++
	generation := k.generation
	if _, ok := k.held[key]; !ok {
		k.sender.SendKey(runner.KeyEvent{Key: key, Pressed: true})
	}
	k.held[key] = &heldKey{
		timer:      time.AfterFunc(k.hold, func() { k.release(key, generation) }),
		generation: generation,
	}
}

// release sends the release event, unless the key was pressed again after
// the timer of this generation fired.
func (k *keyHolder) release(key uint8, generation uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	held, ok := k.held[key]
	if !ok || held.generation != generation {
		return
	}
	delete(k.held, key)
	k.sender.SendKey(runner.KeyEvent{Key: key})
}

// stop cancels all pending release timers.
func (k *keyHolder) stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	for key, held := range k.held {
		held.timer.Stop()
		delete(k.held, key)
	}
}
