package host

import (
	"context"
	"errors"
	"testing"

	"github.com/mnafees/chip8core/internal"
	"github.com/mnafees/chip8core/internal/config"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type recordingDisplay struct {
	frames []*[internal.PixelCount]uint8
	err    error
}

func (d *recordingDisplay) Present(pixels *[internal.PixelCount]uint8) error {
	frame := *pixels
	d.frames = append(d.frames, &frame)
	return d.err
}

type countingBeeper struct {
	beeps int
}

func (b *countingBeeper) Beep() {
	b.beeps++
}

func newTestScheduler(t *testing.T, cfg config.Config, rom ...byte) (*Scheduler, *internal.C8VM, *recordingDisplay, *countingBeeper) {
	t.Helper()
	logger := log.NewTestLogger(t)
	mode := internal.TimersExternal
	if cfg.Timers == config.TimersCycle {
		mode = internal.TimersPerCycle
	}
	vm := internal.NewC8VM(internal.Options{Logger: logger, TimerMode: mode})
	assert.NoError(t, vm.LoadROM(rom))

	display := &recordingDisplay{}
	beeper := &countingBeeper{}
	return NewScheduler(vm, display, beeper, cfg, logger), vm, display, beeper
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.CyclesPerSecond = 240
	cfg.TimerHz = 60
	return cfg
}

func TestFramePresentsAndClearsDrawFlag(t *testing.T) {
	s, vm, display, _ := newTestScheduler(t, testConfig(),
		0xA0, 0x00, // LD I, 000
		0xD0, 0x05, // DRW V0, V0, 5
		0x00, 0xE0, // CLS
		0x12, 0x06, // JP 206
	)

	assert.NoError(t, s.Frame())
	assert.Equal(t, 2, len(display.frames))
	assert.Equal(t, uint8(1), display.frames[0][0])
	assert.Equal(t, uint8(0), display.frames[1][0])
	assert.False(t, vm.IsDrawFlagSet())
	assert.Equal(t, uint16(0x206), vm.PC())
}

func TestFrameTicksTimersOnce(t *testing.T) {
	s, vm, _, beeper := newTestScheduler(t, testConfig(),
		0x60, 0x01, // LD V0, 01
		0xF0, 0x18, // LD ST, V0
		0xF0, 0x15, // LD DT, V0
		0x12, 0x06, // JP 206
	)

	assert.NoError(t, s.Frame())
	assert.Equal(t, uint8(0), vm.DelayTimer())
	assert.Equal(t, uint8(0), vm.SoundTimer())
	assert.Equal(t, 1, beeper.beeps)
	assert.False(t, vm.IsToneFlagSet())

	assert.NoError(t, s.Frame())
	assert.Equal(t, 1, beeper.beeps)
}

func TestFrameCycleTimers(t *testing.T) {
	cfg := testConfig()
	cfg.Timers = config.TimersCycle
	s, vm, _, _ := newTestScheduler(t, cfg,
		0x60, 0x10, // LD V0, 10
		0xF0, 0x15, // LD DT, V0
		0x12, 0x04, // JP 204
	)

	assert.NoError(t, s.Frame())
	// DT was set on cycle 2 and ticked by cycles 2, 3 and 4
	assert.Equal(t, uint8(0x10-3), vm.DelayTimer())
}

func TestFrameUnknownOpcodeHalts(t *testing.T) {
	s, vm, _, _ := newTestScheduler(t, testConfig(), 0xFF, 0xFF)

	err := s.Frame()
	var unknown *internal.UnknownOpcodeError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, uint16(0x200), vm.PC())
}

func TestFrameUnknownOpcodeSkips(t *testing.T) {
	cfg := testConfig()
	cfg.OnUnknown = config.UnknownSkip
	s, vm, _, _ := newTestScheduler(t, cfg,
		0xFF, 0xFF, // unknown
		0x60, 0x07, // LD V0, 07
		0x12, 0x04, // JP 204
	)

	assert.NoError(t, s.Frame())
	assert.Equal(t, uint16(0x204), vm.PC())
}

func TestFrameFatalError(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, testConfig(), 0x00, 0xEE)

	err := s.Frame()
	var underflow *internal.StackUnderflowError
	assert.True(t, errors.As(err, &underflow))
	assert.ErrorContains(t, err, "executing 'RET' at 200")
}

func TestFrameDisplayError(t *testing.T) {
	s, _, display, _ := newTestScheduler(t, testConfig(), 0x00, 0xE0)
	display.err = errors.New("window gone")

	assert.Error(t, s.Frame())
}

func TestRunStopsOnQuit(t *testing.T) {
	cfg := testConfig()
	cfg.TimerHz = 1000
	cfg.CyclesPerSecond = 1000
	s, vm, _, _ := newTestScheduler(t, cfg, 0x12, 0x00) // JP 200

	polls := 0
	err := s.Run(context.Background(), func() error {
		polls++
		if polls == 3 {
			return ErrQuit
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, polls)
	assert.Equal(t, uint16(0x200), vm.PC())
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, testConfig(), 0x12, 0x00)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Run(ctx, func() error { return nil }))
}

func TestRunReturnsPollError(t *testing.T) {
	cfg := testConfig()
	cfg.TimerHz = 1000
	cfg.CyclesPerSecond = 1000
	s, _, _, _ := newTestScheduler(t, cfg, 0x12, 0x00)

	pollErr := errors.New("input device lost")
	err := s.Run(context.Background(), func() error { return pollErr })
	assert.True(t, errors.Is(err, pollErr))
}

func TestKeyForRune(t *testing.T) {
	key, ok := KeyForRune('Q')
	assert.True(t, ok)
	assert.Equal(t, uint8(0x4), key)

	key, ok = KeyForRune('x')
	assert.True(t, ok)
	assert.Equal(t, uint8(0x0), key)

	_, ok = KeyForRune('p')
	assert.False(t, ok)
	assert.Equal(t, internal.KeyCount, len(Layout))
}
