package sdl

import (
	"context"
	"fmt"

	"github.com/mnafees/chip8core/internal"
	"github.com/mnafees/chip8core/pkg/host"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface

	vm        *internal.C8VM
	logger    *log.Logger
	pixelSize int32
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(vm *internal.C8VM, pixelSize int, logger *log.Logger) *IO {
	return &IO{
		vm:        vm,
		logger:    logger,
		pixelSize: int32(pixelSize),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("clearing window surface: %w", err)
	}
	return io.window.UpdateSurface()
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Loop runs the scheduler until the window is closed
func (io *IO) Loop(ctx context.Context, scheduler *host.Scheduler) error {
	return scheduler.Run(ctx, io.poll)
}

// Present draws the current sprite configuration on screen
func (io *IO) Present(pixels *[internal.PixelCount]uint8) error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return err
	}
	for h := int32(0); h < internal.ScreenHeight; h++ {
		for w := int32(0); w < internal.ScreenWidth; w++ {
			if pixels[w+h*internal.ScreenWidth] == 1 {
				rect := &sdl.Rect{X: w * io.pixelSize, Y: h * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
				if err := io.surface.FillRect(rect, spriteColor); err != nil {
					return err
				}
			}
		}
	}
	return io.window.UpdateSurface()
}

// Beep is called when the sound timer runs out. SDL audio is not opened, the
// signal is only logged.
func (io *IO) Beep() {
	io.logger.Debug("Beep")
}

func (io *IO) poll() error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			if t.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return host.ErrQuit
			}
			code := keymap(t.Keysym.Scancode)
			if code == -1 {
				continue
			}
			if err := io.vm.SetKey(uint8(code), t.GetType() == sdl.KEYDOWN); err != nil {
				return err
			}
		case *sdl.QuitEvent:
			return host.ErrQuit
		}
	}
	return nil
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8, see host.Layout
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
