// Package host drives a CHIP-8 VM for a frontend: it paces instruction
// execution, ticks the timers at a fixed rate and hands finished frames to the
// display.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mnafees/chip8core/internal"
	"github.com/mnafees/chip8core/internal/config"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by a frontend poll function when the user closed the
// emulator.
var ErrQuit = errors.New("quit requested")

// Machine is the part of the VM the scheduler needs.
type Machine interface {
	Cycle() error
	SkipInstruction()
	PC() uint16
	Opcode() uint16
	Pixels() [internal.PixelCount]uint8
	IsDrawFlagSet() bool
	UnsetDrawFlag()
	TickTimers()
	IsToneFlagSet() bool
	UnsetToneFlag()
}

// Display receives full frames.
type Display interface {
	Present(pixels *[internal.PixelCount]uint8) error
}

// Beeper is notified when the sound timer runs out.
type Beeper interface {
	Beep()
}

// Scheduler runs a Machine in frames of a fixed number of cycles.
type Scheduler struct {
	vm             Machine
	display        Display
	beeper         Beeper
	logger         *log.Logger
	cyclesPerFrame int
	frameInterval  time.Duration
	tickTimers     bool
	skipUnknown    bool
}

// NewScheduler returns a scheduler for the given VM and display. beeper may be nil.
func NewScheduler(vm Machine, display Display, beeper Beeper, cfg config.Config, logger *log.Logger) *Scheduler {
	return &Scheduler{
		vm:             vm,
		display:        display,
		beeper:         beeper,
		logger:         logger,
		cyclesPerFrame: cfg.CyclesPerFrame(),
		frameInterval:  time.Second / time.Duration(cfg.TimerHz),
		tickTimers:     cfg.Timers == config.TimersExternal,
		skipUnknown:    cfg.OnUnknown == config.UnknownSkip,
	}
}

// Frame executes one frame worth of cycles, presenting the framebuffer after
// every cycle that requested a redraw, then ticks the timers once.
func (s *Scheduler) Frame() error {
	for i := 0; i < s.cyclesPerFrame; i++ {
		if err := s.step(); err != nil {
			return err
		}
	}

	if s.tickTimers {
		s.vm.TickTimers()
	}
	if s.vm.IsToneFlagSet() {
		s.vm.UnsetToneFlag()
		if s.beeper != nil {
			s.beeper.Beep()
		}
	}
	return nil
}

func (s *Scheduler) step() error {
	err := s.vm.Cycle()
	if err != nil {
		var unknown *internal.UnknownOpcodeError
		if !errors.As(err, &unknown) || !s.skipUnknown {
			return fmt.Errorf("executing '%s' at %03X: %w", internal.Decode(s.vm.Opcode()), s.vm.PC(), err)
		}
		s.logger.Warn("Skipping unknown opcode",
			log.String("opcode", fmt.Sprintf("0x%04X", unknown.Opcode)),
			log.String("address", fmt.Sprintf("0x%03X", unknown.Addr)))
		s.vm.SkipInstruction()
		return nil
	}

	if s.vm.IsDrawFlagSet() {
		pixels := s.vm.Pixels()
		if err := s.display.Present(&pixels); err != nil {
			return fmt.Errorf("presenting frame: %w", err)
		}
		s.vm.UnsetDrawFlag()
	}
	return nil
}

// Run calls Frame at the timer frequency until the context is cancelled, poll
// returns an error or a cycle fails. poll is called once per frame before the
// cycles run and is where frontends feed input into the VM. ErrQuit ends the
// run without an error.
func (s *Scheduler) Run(ctx context.Context, poll func() error) error {
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := poll(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		if err := s.Frame(); err != nil {
			return err
		}
	}
}
