package term

import (
	"errors"
	"testing"

	"github.com/mnafees/chip8core/internal"
	"github.com/mnafees/chip8core/pkg/host"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestTerminal(t *testing.T) (*Terminal, *internal.C8VM) {
	t.Helper()
	vm := internal.NewC8VM(internal.Options{Logger: log.NewTestLogger(t)})
	return New(vm), vm
}

func TestKeyPressIsHeld(t *testing.T) {
	term, vm := newTestTerminal(t)

	term.events <- termbox.Event{Type: termbox.EventKey, Ch: 'w'}
	assert.NoError(t, term.poll())
	assert.True(t, vm.IsKeyPressed(0x5))

	for i := 0; i < holdFrames-1; i++ {
		assert.NoError(t, term.poll())
		assert.True(t, vm.IsKeyPressed(0x5))
	}
	assert.NoError(t, term.poll())
	assert.False(t, vm.IsKeyPressed(0x5))
}

func TestKeyRepeatExtendsHold(t *testing.T) {
	term, vm := newTestTerminal(t)

	term.events <- termbox.Event{Type: termbox.EventKey, Ch: 'V'}
	assert.NoError(t, term.poll())
	for i := 0; i < holdFrames-1; i++ {
		term.events <- termbox.Event{Type: termbox.EventKey, Ch: 'v'}
		assert.NoError(t, term.poll())
	}
	assert.True(t, vm.IsKeyPressed(0xF))
}

func TestUnmappedKeyIsIgnored(t *testing.T) {
	term, vm := newTestTerminal(t)

	term.events <- termbox.Event{Type: termbox.EventKey, Ch: 'p'}
	assert.NoError(t, term.poll())
	for key := uint8(0); key < internal.KeyCount; key++ {
		assert.False(t, vm.IsKeyPressed(key))
	}
}

func TestEscapeQuits(t *testing.T) {
	term, _ := newTestTerminal(t)

	term.events <- termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}
	assert.True(t, errors.Is(term.poll(), host.ErrQuit))
}

func TestEventError(t *testing.T) {
	term, _ := newTestTerminal(t)
	ioErr := errors.New("tty closed")

	term.events <- termbox.Event{Type: termbox.EventError, Err: ioErr}
	assert.True(t, errors.Is(term.poll(), ioErr))
}
