package internal

// TickTimers decrements the delay and sound timers toward zero. The tone flag
// is raised when the sound timer goes from 1 to 0.
func (vm *C8VM) TickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		if vm.soundTimer == 1 {
			vm.toneFlag = true
		}
		vm.soundTimer--
	}
}

// IsSoundActive reports whether the sound timer is still running.
func (vm *C8VM) IsSoundActive() bool {
	return vm.soundTimer > 0
}

// TimerMode returns who drives the timers of this VM.
func (vm *C8VM) TimerMode() TimerMode {
	return vm.timerMode
}
