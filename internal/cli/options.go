package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/turbo-editor/internal/config"
	"github.com/aretw0/turbo-editor/internal/logging"
)

// Options carries the global command line flags. Non-empty fields override
// the project file.
type Options struct {
	Dir        string // project directory holding turbo.yaml
	ConfigPath string // explicit config file, overrides Dir/turbo.yaml
	Backend    string
	StoreDir   string
	RedisAddr  string
	Templates  string
	LogLevel   string
	Debug      bool
}

// ResolveConfig loads the project file and applies flag overrides.
// Relative paths in the file are taken relative to the project directory.
func ResolveConfig(opts Options) (config.Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	var (
		cfg config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadDir(dir)
	}
	if err != nil {
		return config.Config{}, err
	}

	cfg.Store.Dir = relativeTo(dir, cfg.Store.Dir)
	cfg.Templates = relativeTo(dir, cfg.Templates)
	cfg.Tools = relativeTo(dir, cfg.Tools)

	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.StoreDir != "" {
		cfg.Store.Dir = opts.StoreDir
	}
	if opts.RedisAddr != "" {
		cfg.Store.Redis.Addr = opts.RedisAddr
	}
	if opts.Templates != "" {
		cfg.Templates = opts.Templates
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the stderr logger for cfg.LogLevel.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	return logging.New(level), nil
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
