package internal

import (
	"errors"
	"fmt"
)

// UnknownOpcodeError is returned by Cycle when the fetched opcode matches no
// instruction. The VM state is left untouched, including the program counter.
type UnknownOpcodeError struct {
	Opcode uint16
	Addr   uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %03X", e.Opcode, e.Addr)
}

// ProgramTooLargeError is returned when a ROM does not fit into program memory.
type ProgramTooLargeError struct {
	Size int
	Free int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program size %d exceeds the available %d bytes", e.Size, e.Free)
}

// MemoryAccessError is returned when an instruction touches memory outside of
// the 4 KB address space.
type MemoryAccessError struct {
	Opcode uint16
	Addr   int
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("opcode %04X accessed memory out of bounds at %X", e.Opcode, e.Addr)
}

// StackOverflowError is returned when CALL is executed with a full stack.
type StackOverflowError struct {
	Addr uint16
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow at %03X", e.Addr)
}

// StackUnderflowError is returned when RET is executed with an empty stack.
type StackUnderflowError struct {
	Addr uint16
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow at %03X", e.Addr)
}

// KeyIndexError is returned for keypad indices outside 0x0-0xF.
type KeyIndexError struct {
	Key uint8
}

func (e *KeyIndexError) Error() string {
	return fmt.Sprintf("key index %X out of range", e.Key)
}

// IsRecoverable reports whether err leaves the VM in a consistent state that
// allows execution to continue.
func IsRecoverable(err error) bool {
	var unknown *UnknownOpcodeError
	var tooLarge *ProgramTooLargeError
	return errors.As(err, &unknown) || errors.As(err, &tooLarge)
}
