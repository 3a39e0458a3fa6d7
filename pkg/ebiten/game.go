// Package ebiten is a windowed frontend built on the Ebitengine game loop.
package ebiten

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mnafees/chip8core/internal"
	"github.com/mnafees/chip8core/pkg/host"
	"github.com/retroenv/retrogolib/log"
)

var (
	screenColor = [4]byte{0x1A, 0x23, 0x7E, 0xFF}
	spriteColor = [4]byte{0x9F, 0xA8, 0xDA, 0xFF}
)

// keys maps the Ebitengine keys of the QWERTY layout to their characters.
var keys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3', ebiten.KeyDigit4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
}

// Game implements ebiten.Game. Update runs one scheduler frame, Draw shows the
// last presented frame.
type Game struct {
	vm        *internal.C8VM
	scheduler *host.Scheduler
	logger    *log.Logger
	frame     []byte
	image     *ebiten.Image
	err       error
}

// NewGame returns a game for the VM. The scheduler must be created with the
// game as its display, see Attach.
func NewGame(vm *internal.C8VM, logger *log.Logger) *Game {
	g := &Game{
		vm:     vm,
		logger: logger,
		frame:  make([]byte, internal.PixelCount*4),
	}
	g.fill(&[internal.PixelCount]uint8{})
	return g
}

// Attach sets the scheduler that Update drives.
func (g *Game) Attach(scheduler *host.Scheduler) {
	g.scheduler = scheduler
}

// Run opens the window and blocks until it is closed or the VM fails.
func (g *Game) Run(title string, scale, tps int) error {
	ebiten.SetWindowSize(internal.ScreenWidth*scale, internal.ScreenHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.err
}

// Update feeds the keyboard state into the VM and runs one frame.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for key, r := range keys {
		code, _ := host.KeyForRune(r)
		if err := g.vm.SetKey(code, ebiten.IsKeyPressed(key)); err != nil {
			g.err = err
			return ebiten.Termination
		}
	}

	if err := g.scheduler.Frame(); err != nil {
		g.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw copies the last presented frame to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(internal.ScreenWidth, internal.ScreenHeight)
	}
	g.image.WritePixels(g.frame)
	screen.DrawImage(g.image, nil)
}

// Layout keeps the logical screen at the CHIP-8 resolution, Ebitengine scales
// it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return internal.ScreenWidth, internal.ScreenHeight
}

// Present converts a frame to RGBA. It is called from Update, Draw picks the
// result up on the same goroutine.
func (g *Game) Present(pixels *[internal.PixelCount]uint8) error {
	g.fill(pixels)
	return nil
}

// Beep is called when the sound timer runs out.
func (g *Game) Beep() {
	g.logger.Debug("Beep")
}

func (g *Game) fill(pixels *[internal.PixelCount]uint8) {
	for i, px := range pixels {
		color := screenColor
		if px == 1 {
			color = spriteColor
		}
		copy(g.frame[i*4:], color[:])
	}
}
