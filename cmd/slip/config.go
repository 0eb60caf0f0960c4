package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dcreager/slip-buffers-go/slipio"
)

type fileConfig struct {
	Capacity  int    `toml:"capacity"`
	ReadSize  int    `toml:"read_size"`
	NoHeader  bool   `toml:"no_header"`
	KeepEmpty bool   `toml:"keep_empty"`
	Resync    bool   `toml:"resync"`
	LogLevel  string `toml:"log_level"`
}

// config is the resolved configuration for one run.
type config struct {
	Capacity  int
	ReadSize  int
	NoHeader  bool
	KeepEmpty bool
	Resync    bool
	LogLevel  string
}

func defaultConfig() config {
	return config{
		Capacity: 4096,
		ReadSize: 512,
		Resync:   true,
		LogLevel: "info",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("capacity") {
		if raw.Capacity < 2 {
			return config{}, fmt.Errorf("capacity must be at least 2, got %d", raw.Capacity)
		}
		cfg.Capacity = raw.Capacity
	}
	if meta.IsDefined("read_size") {
		if raw.ReadSize < 1 {
			return config{}, fmt.Errorf("read_size must be positive, got %d", raw.ReadSize)
		}
		cfg.ReadSize = raw.ReadSize
	}
	if meta.IsDefined("no_header") {
		cfg.NoHeader = raw.NoHeader
	}
	if meta.IsDefined("keep_empty") {
		cfg.KeepEmpty = raw.KeepEmpty
	}
	if meta.IsDefined("resync") {
		cfg.Resync = raw.Resync
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	return cfg, nil
}

func (c config) readerOptions(logger slipio.Logger) []slipio.Option {
	opts := c.commonOptions(logger)
	opts = append(opts, slipio.ReadSizeOption(c.ReadSize))
	if c.KeepEmpty {
		opts = append(opts, slipio.KeepEmptyOption())
	}
	if c.Resync {
		opts = append(opts, slipio.OnErrorOption(func(error) slipio.ErrorAction {
			return slipio.Resync
		}))
	}
	return opts
}

func (c config) writerOptions(logger slipio.Logger) []slipio.Option {
	return c.commonOptions(logger)
}

func (c config) commonOptions(logger slipio.Logger) []slipio.Option {
	opts := []slipio.Option{
		slipio.CapacityOption(c.Capacity),
		slipio.LoggerOption(logger),
	}
	if c.NoHeader {
		opts = append(opts, slipio.NoHeaderOption())
	}
	return opts
}
