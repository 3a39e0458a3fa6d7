// Package app contains the start up logic shared by all frontends
package app

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/mnafees/chip8core/internal"
	"github.com/mnafees/chip8core/internal/config"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Setup parses the command line, prints the banner and returns a VM with the
// requested program loaded.
func Setup(frontend string, args []string) (config.Config, *log.Logger, *internal.C8VM, error) {
	name := filepath.Base(args[0])
	cfg, err := config.ParseFlags(name, args[1:])
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			usage.ShowUsage(os.Stderr, name)
		}
		return cfg, nil, nil, err
	}

	logger := config.CreateLogger(cfg.Debug, cfg.Quiet)
	if !cfg.Quiet {
		PrintBanner(os.Stdout, frontend)
	}

	vm := internal.NewC8VM(VMOptions(cfg, logger))
	if err := vm.LoadProgram(cfg.ROM); err != nil {
		return cfg, logger, nil, err
	}

	logger.Info("Starting emulation",
		log.String("program", cfg.ROM),
		log.String("frontend", frontend),
		log.Int("hz", cfg.CyclesPerSecond),
		log.String("timers", cfg.Timers),
		log.String("on_unknown", cfg.OnUnknown))
	if cfg.Timers == config.TimersCycle {
		logger.Warn("Timers tick once per instruction, delays and sounds depend on the -hz setting")
	}
	return cfg, logger, vm, nil
}

// VMOptions converts the configuration into VM options.
func VMOptions(cfg config.Config, logger *log.Logger) internal.Options {
	opts := internal.Options{
		Logger:    logger,
		TimerMode: internal.TimersExternal,
	}
	if cfg.Timers == config.TimersCycle {
		opts.TimerMode = internal.TimersPerCycle
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	}
	return opts
}

// PrintBanner prints the program name and version.
func PrintBanner(w io.Writer, frontend string) {
	fmt.Fprintln(w, "[-----------------------------------]")
	fmt.Fprintln(w, "[ chopper - CHIP-8 virtual machine  ]")
	fmt.Fprintf(w, "[-----------------------------------]\n\n")
	fmt.Fprintf(w, "version: %s, frontend: %s\n\n", buildinfo.Version(version, commit, date), frontend)
}
