package cli

import (
	"github.com/aretw0/chembot/internal/config"
)

// Options holds the flags shared by every command.
type Options struct {
	ConfigPath string
	Library    string
	Debug      bool
	// JSON implies Headless.
	JSON     bool
	Headless bool
}

// LoadConfig reads the config file and applies command-line overrides on top.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Library != "" {
		cfg.Library = opts.Library
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
