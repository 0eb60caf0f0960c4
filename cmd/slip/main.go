package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"go.uber.org/zap"
)

var globalArgs struct {
	Config   string `flag:"config,Path to a TOML configuration file"`
	Capacity int    `flag:"capacity,Codec buffer size in bytes (overrides config)"`
	NoHeader bool   `flag:"no-header,Do not write or expect a leading END byte"`
	LogLevel string `flag:"log-level,Log level: debug, info, warn or error (overrides config)"`
}

var encodeArgs struct {
	Lines bool `flag:"lines,Frame each input line as its own packet"`
}

var decodeArgs struct {
	Hex bool `flag:"hex,Print each packet as a line of hex"`
}

func main() {
	root := &command.C{
		Name:     "slip",
		Usage:    "command args...",
		Help:     "Frame and unframe SLIP packets on stdin and stdout.",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:     "encode",
				Usage:    "encode [--lines]",
				Help:     "Read a payload from stdin and write it to stdout as a SLIP packet.",
				SetFlags: command.Flags(flax.MustBind, &encodeArgs),
				Run:      command.Adapt(runEncode),
			},
			{
				Name:  "decode",
				Usage: "decode [--hex]",
				Help: `Read a SLIP stream from stdin and write the packets it contains to stdout.

Without --hex the packets are written back to back, so their boundaries are
lost. Use --hex to print one packet per line.`,
				SetFlags: command.Flags(flax.MustBind, &decodeArgs),
				Run:      command.Adapt(runDecode),
			},
			{
				Name:  "roundtrip",
				Usage: "roundtrip",
				Help: `Encode each line of stdin and decode it again through a pipe.

The encoder and decoder run concurrently, as they would on either end of a
serial link, and every decoded packet is compared with the line it came
from. Use it to check a capacity and header configuration before deploying
it.`,
				Run: command.Adapt(runRoundTrip),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

// setup resolves the configuration for a run and builds its logger.
func setup() (config, *zap.Logger, error) {
	cfg := defaultConfig()
	if globalArgs.Config != "" {
		var err error
		cfg, err = loadConfig(globalArgs.Config)
		if err != nil {
			return config{}, nil, err
		}
	}
	if globalArgs.Capacity != 0 {
		if globalArgs.Capacity < 2 {
			return config{}, nil, fmt.Errorf("--capacity must be at least 2, got %d", globalArgs.Capacity)
		}
		cfg.Capacity = globalArgs.Capacity
	}
	if globalArgs.NoHeader {
		cfg.NoHeader = true
	}
	if globalArgs.LogLevel != "" {
		cfg.LogLevel = globalArgs.LogLevel
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config{}, nil, err
	}
	return cfg, logger, nil
}

func runEncode(env *command.Env) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := encodeStream(cfg, logger, os.Stdin, os.Stdout, encodeArgs.Lines); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return nil
}

func runDecode(env *command.Env) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := decodeStream(cfg, logger, os.Stdin, os.Stdout, decodeArgs.Hex); err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	return nil
}

func runRoundTrip(env *command.Env) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	n, err := roundTrip(env.Context(), cfg, logger, os.Stdin)
	if err != nil {
		return fmt.Errorf("round trip: %w", err)
	}
	fmt.Printf("%d packets ok\n", n)
	return nil
}
