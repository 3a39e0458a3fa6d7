package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr
	maxAddr        = totalMemory - 1
	stackSize      = 16
	fontSpriteSize = 5

	ScreenWidth  = 64
	ScreenHeight = 32
	PixelCount   = ScreenWidth * ScreenHeight
	KeyCount     = 16
)

// TimerMode selects who drives the delay and sound timers.
type TimerMode int

const (
	// TimersPerCycle decrements both timers once at the end of every Cycle.
	TimersPerCycle TimerMode = iota
	// TimersExternal leaves timer ticks to the host, which is expected to call
	// TickTimers at 60Hz.
	TimersExternal
)

// Options configures a new VM. The zero value is usable.
type Options struct {
	Logger    *log.Logger
	Rand      *rand.Rand // source for RND, seeded from the clock when nil
	TimerMode TimerMode
}

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	opcode     uint16             // 16-bit opcode of the current instruction
	regV       [16]uint8          // 16 general purpose 8-bit registers
	regI       uint16             // 12-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer, the number of pushed return addresses
	stack      [stackSize]uint16  // A stack of 16 16-bit values
	memory     [totalMemory]uint8 // 4 KB global memory

	drawFlag bool // Set by CLS and DRW until the host presents the frame
	toneFlag bool // Set when the sound timer runs out

	keys [KeyCount]bool

	// 64 px x 32 px display, addressed as x + y*64
	pixels [PixelCount]uint8

	timerMode TimerMode
	rnd       *rand.Rand
	logger    *log.Logger
}

var fontset = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(opts Options) *C8VM {
	vm := &C8VM{
		timerMode: opts.TimerMode,
		rnd:       opts.Rand,
		logger:    opts.Logger,
	}
	if vm.rnd == nil {
		vm.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if vm.logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		vm.logger = log.NewWithConfig(cfg)
	}
	vm.Reset()
	return vm
}

// Reset returns the VM to its power-on state. Loaded program bytes are kept.
func (vm *C8VM) Reset() {
	vm.opcode = 0
	vm.regV = [16]uint8{}
	vm.regI = 0
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.pc = pcStartAddr
	vm.sp = 0
	vm.stack = [stackSize]uint16{}
	vm.drawFlag = false
	vm.toneFlag = false
	vm.keys = [KeyCount]bool{}
	vm.pixels = [PixelCount]uint8{}

	for i := 0; i < pcStartAddr; i++ {
		vm.memory[i] = 0
	}
	copy(vm.memory[:], fontset)
}

// Cycle fetches, decodes and executes a single instruction. An
// *UnknownOpcodeError leaves the VM untouched, every other error is fatal.
func (vm *C8VM) Cycle() error {
	if int(vm.pc)+1 > maxAddr {
		return &MemoryAccessError{Opcode: vm.opcode, Addr: int(vm.pc) + 1}
	}
	vm.opcode = uint16(vm.memory[vm.pc])<<8 | uint16(vm.memory[vm.pc+1]) // 16-bit instruction opcode

	ins := Decode(vm.opcode)
	if err := vm.execute(ins); err != nil {
		return err
	}

	if vm.timerMode == TimersPerCycle {
		vm.TickTimers()
	}
	return nil
}

// SkipInstruction steps the program counter over the current instruction. Hosts
// use it to continue past an unknown opcode.
func (vm *C8VM) SkipInstruction() {
	vm.pc += 2
}

// Pixels returns a snapshot of the framebuffer
func (vm *C8VM) Pixels() [PixelCount]uint8 {
	return vm.pixels
}

// Opcode returns the most recently fetched opcode
func (vm *C8VM) Opcode() uint16 {
	return vm.opcode
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// IsDrawFlagSet returns whether the framebuffer needs to be presented
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

// IsToneFlagSet returns whether the sound timer has run out since the flag was
// last unset
func (vm *C8VM) IsToneFlagSet() bool {
	return vm.toneFlag
}

// UnsetToneFlag unsets the tone flag
func (vm *C8VM) UnsetToneFlag() {
	vm.toneFlag = false
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}
