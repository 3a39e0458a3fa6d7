package internal

// SetKey records a key transition on the hex keypad.
func (vm *C8VM) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return &KeyIndexError{Key: key}
	}
	vm.keys[key] = pressed
	return nil
}

// IsKeyPressed returns the current state of a keypad key.
func (vm *C8VM) IsKeyPressed(key uint8) bool {
	return key < KeyCount && vm.keys[key]
}
