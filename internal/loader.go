package internal

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// LoadProgram loads a given CHIP-8 program into the VM's memory
func (vm *C8VM) LoadProgram(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading program '%s': %w", filename, err)
	}
	if err := vm.LoadROM(data); err != nil {
		return fmt.Errorf("loading program '%s': %w", filename, err)
	}
	return nil
}

// LoadROM copies a raw program image to 0x200. Programs that do not fit are
// rejected without touching memory.
func (vm *C8VM) LoadROM(data []byte) error {
	if len(data) > maxProgramSize {
		return &ProgramTooLargeError{Size: len(data), Free: maxProgramSize}
	}
	n := copy(vm.memory[pcStartAddr:], data)
	for i := pcStartAddr + n; i < totalMemory; i++ {
		vm.memory[i] = 0
	}
	vm.logger.Info("Loaded program", log.Int("bytes", len(data)))
	return nil
}
