package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mnafees/chip8core/internal/app"
	"github.com/mnafees/chip8core/pkg/host"
	"github.com/mnafees/chip8core/pkg/sdl"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	cfg, logger, vm, err := app.Setup("sdl", os.Args)
	if err != nil {
		if logger != nil {
			logger.Error("Starting emulator failed", log.Err(err))
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}

	io := sdl.NewIO(vm, cfg.Scale, logger)
	if err := run(io, host.NewScheduler(vm, io, io, cfg, logger)); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(io *sdl.IO, scheduler *host.Scheduler) error {
	defer io.Destroy()
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return io.Loop(ctx, scheduler)
}
