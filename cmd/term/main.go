package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mnafees/chip8core/internal/app"
	"github.com/mnafees/chip8core/pkg/host"
	"github.com/mnafees/chip8core/pkg/term"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	cfg, logger, vm, err := app.Setup("term", os.Args)
	if err != nil {
		if logger != nil {
			logger.Error("Starting emulator failed", log.Err(err))
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}

	terminal := term.New(vm)
	if err := terminal.Init(); err != nil {
		logger.Error("Opening terminal failed", log.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = terminal.Loop(ctx, host.NewScheduler(vm, terminal, terminal, cfg, logger))
	stop()
	terminal.Close()

	if err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}
