package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// runConfig is the CLI's TOML configuration (parlay.toml).
type runConfig struct {
	// Model is the model used for sampling and fusion.
	Model string `toml:"model"`

	// Problems is the path to the YAML problem definitions.
	Problems string `toml:"problems"`

	// Emails is the path to the email corpus for the search tool.
	Emails string `toml:"emails"`

	// MaxWorkers bounds sampling concurrency. 0 means NumCPU.
	MaxWorkers int `toml:"max_workers"`

	// MaxRetries is the per-sample attempt limit.
	MaxRetries int `toml:"max_retries"`

	// Fuse enables the second-stage fusion call after the vote.
	Fuse bool `toml:"fuse"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Model:      "command-a-03-2025",
		Problems:   "data/problems.yaml",
		Emails:     "data/emails.jsonl",
		MaxRetries: 3,
		LogLevel:   "info",
	}
}

// loadRunConfig reads the TOML config at path, falling back to defaults
// when the file does not exist. An explicit path that is missing is an
// error; the default path is optional.
func loadRunConfig(path string, explicit bool) (runConfig, error) {
	cfg := defaultRunConfig()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// logLevel maps the config value to a slog level.
func (c runConfig) logLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger installs the process-wide structured logger.
func (c runConfig) setupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.logLevel(),
	}))
	slog.SetDefault(logger)
	return logger
}
