package chip8

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 keys, 1 for pressed.
type Keypad struct {
	keys [KeyCount]uint8
}

// Pressed returns whether the key is pressed, the index is taken modulo 16.
func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0x0F] != 0
}

// firstPressed returns the lowest index of all pressed keys.
func (k *Keypad) firstPressed() (uint8, bool) {
	for i, state := range k.keys {
		if state != 0 {
			return uint8(i), true
		}
	}
	return 0, false
}

func (k *Keypad) states() [KeyCount]bool {
	var states [KeyCount]bool
	for i, state := range k.keys {
		states[i] = state != 0
	}
	return states
}

func (k *Keypad) set(key, state uint8) {
	k.keys[key&0x0F] = state
}
