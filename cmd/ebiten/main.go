package main

import (
	"fmt"
	"os"

	"github.com/mnafees/chip8core/internal/app"
	"github.com/mnafees/chip8core/pkg/ebiten"
	"github.com/mnafees/chip8core/pkg/host"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	cfg, logger, vm, err := app.Setup("ebiten", os.Args)
	if err != nil {
		if logger != nil {
			logger.Error("Starting emulator failed", log.Err(err))
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}

	game := ebiten.NewGame(vm, logger)
	game.Attach(host.NewScheduler(vm, game, game, cfg, logger))
	if err := game.Run("Chopper | CHIP-8 Emulator", cfg.Scale, cfg.TimerHz); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}
