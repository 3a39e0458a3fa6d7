// Package config handles command line configuration and logger setup
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Timer modes accepted by the -timers flag.
const (
	TimersExternal = "external"
	TimersCycle    = "cycle"
)

// Unknown opcode policies accepted by the -on-unknown flag.
const (
	UnknownHalt = "halt"
	UnknownSkip = "skip"
)

// Config holds the settings of an emulator run.
type Config struct {
	ROM string

	// Instructions executed per second.
	CyclesPerSecond int
	// Frequency of the delay and sound timers, and of frame presentation.
	TimerHz int
	// Timers selects whether the host (external) or every cycle decrements the timers.
	Timers string
	// OnUnknown selects what happens when an unknown opcode is fetched.
	OnUnknown string
	// Size of a CHIP-8 pixel on screen, for windowed frontends.
	Scale int
	// Seed for the RND instruction, 0 seeds from the clock.
	Seed int64

	Debug bool
	Quiet bool
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		CyclesPerSecond: 700,
		TimerHz:         60,
		Timers:          TimersExternal,
		OnUnknown:       UnknownHalt,
		Scale:           20,
	}
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "usage: %s [options] <CHIP-8 program>\n\n", name)
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, excluding the program name.
func ParseFlags(name string, args []string) (Config, error) {
	cfg := Default()
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.IntVar(&cfg.CyclesPerSecond, "hz", cfg.CyclesPerSecond, "instructions executed per second")
	flags.IntVar(&cfg.TimerHz, "timer-hz", cfg.TimerHz, "timer and display refresh frequency")
	flags.StringVar(&cfg.Timers, "timers", cfg.Timers, "timer driver: external (fixed rate) or cycle (one tick per instruction)")
	flags.StringVar(&cfg.OnUnknown, "on-unknown", cfg.OnUnknown, "unknown opcode policy: halt or skip")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixel size")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random number seed, 0 seeds from the clock")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&cfg.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(args)
	rest := flags.Args()
	if err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(rest) != 1 {
		return cfg, &UsageError{flags: flags, msg: "expected exactly one CHIP-8 program"}
	}
	cfg.ROM = rest[0]

	cfg.Timers = strings.ToLower(cfg.Timers)
	cfg.OnUnknown = strings.ToLower(cfg.OnUnknown)
	if err := cfg.Validate(); err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}
	return cfg, nil
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (c Config) Validate() error {
	if c.TimerHz <= 0 {
		return fmt.Errorf("timer frequency must be positive, got %d", c.TimerHz)
	}
	if c.CyclesPerSecond < c.TimerHz {
		return fmt.Errorf("cycles per second must be >= %d, got %d", c.TimerHz, c.CyclesPerSecond)
	}
	if c.Timers != TimersExternal && c.Timers != TimersCycle {
		return fmt.Errorf("unsupported timer mode '%s'", c.Timers)
	}
	if c.OnUnknown != UnknownHalt && c.OnUnknown != UnknownSkip {
		return fmt.Errorf("unsupported unknown opcode policy '%s'", c.OnUnknown)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be >= 1, got %d", c.Scale)
	}
	return nil
}

// CyclesPerFrame returns how many instructions run between two timer ticks.
func (c Config) CyclesPerFrame() int {
	return c.CyclesPerSecond / c.TimerHz
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
