// Package term is a terminal frontend built on termbox. Every CHIP-8 pixel is
// drawn as two terminal cells.
package term

import (
	"context"
	"fmt"
	"os"

	"github.com/mnafees/chip8core/internal"
	"github.com/mnafees/chip8core/pkg/host"
	"github.com/nsf/termbox-go"
)

// Terminals only report key presses. A pressed key is held down for this many
// frames unless the terminal repeats it.
const holdFrames = 6

// Terminal is the termbox display and keyboard of the VM.
type Terminal struct {
	vm     *internal.C8VM
	events chan termbox.Event
	held   [internal.KeyCount]int
}

// New returns a terminal frontend for the VM.
func New(vm *internal.C8VM) *Terminal {
	return &Terminal{
		vm:     vm,
		events: make(chan termbox.Event, 32),
	}
}

// Init takes over the terminal and starts reading keyboard events.
func (t *Terminal) Init() error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			t.events <- ev
		}
	}()
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	termbox.Interrupt()
	termbox.Close()
}

// Loop runs the scheduler until escape is pressed.
func (t *Terminal) Loop(ctx context.Context, scheduler *host.Scheduler) error {
	return scheduler.Run(ctx, t.poll)
}

// Present draws the frame into the terminal back buffer and flushes it.
func (t *Terminal) Present(pixels *[internal.PixelCount]uint8) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	for y := 0; y < internal.ScreenHeight; y++ {
		for x := 0; x < internal.ScreenWidth; x++ {
			if pixels[x+y*internal.ScreenWidth] == 1 {
				termbox.SetCell(2*x, y, ' ', termbox.ColorWhite, termbox.ColorWhite)
				termbox.SetCell(2*x+1, y, ' ', termbox.ColorWhite, termbox.ColorWhite)
			}
		}
	}
	return termbox.Flush()
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	fmt.Fprint(os.Stdout, "\a")
}

func (t *Terminal) poll() error {
	if err := t.releaseKeys(); err != nil {
		return err
	}
	for {
		select {
		case ev := <-t.events:
			if err := t.handleEvent(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// releaseKeys lets go of keys whose hold time ran out.
func (t *Terminal) releaseKeys() error {
	for key := range t.held {
		if t.held[key] == 0 {
			continue
		}
		t.held[key]--
		if t.held[key] == 0 {
			if err := t.vm.SetKey(uint8(key), false); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Terminal) handleEvent(ev termbox.Event) error {
	switch ev.Type {
	case termbox.EventError:
		return fmt.Errorf("reading terminal input: %w", ev.Err)
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
			return host.ErrQuit
		}
		key, ok := host.KeyForRune(ev.Ch)
		if !ok {
			return nil
		}
		t.held[key] = holdFrames
		return t.vm.SetKey(key, true)
	}
	return nil
}
