// Package config loads ChemBot settings from a YAML or TOML file and
// CHEMBOT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/chembot/internal/logging"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the complete ChemBot configuration.
type Config struct {
	// Library is the directory of solution documents. Empty uses the built-in sample.
	Library      string `mapstructure:"library"`
	LogLevel     string `mapstructure:"log_level"`
	MaxInputSize int    `mapstructure:"max_input_size"`

	Chat   ChatConfig   `mapstructure:"chat"`
	Render RenderConfig `mapstructure:"render"`
	Server ServerConfig `mapstructure:"server"`
}

// ChatConfig tunes the conversation.
type ChatConfig struct {
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
	Greeting   string        `mapstructure:"greeting"`
	Replies    []string      `mapstructure:"replies"`
}

// RenderConfig tunes terminal output.
type RenderConfig struct {
	// Style is a glamour style name ("auto", "dark", "light", "notty") or a JSON style path.
	Style string `mapstructure:"style"`
	Width int    `mapstructure:"width"`
}

// ServerConfig tunes the local web UI.
type ServerConfig struct {
	Addr           string `mapstructure:"addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		MaxInputSize: 4096,
		Chat: ChatConfig{
			ReplyDelay: 600 * time.Millisecond,
		},
		Render: RenderConfig{
			Style: "auto",
			Width: 80,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			MaxUploadBytes: 5 << 20,
		},
	}
}

// envKeys maps environment variables to their key path in the file.
var envKeys = map[string][]string{
	"CHEMBOT_LIBRARY":          {"library"},
	"CHEMBOT_LOG_LEVEL":        {"log_level"},
	"CHEMBOT_MAX_INPUT_SIZE":   {"max_input_size"},
	"CHEMBOT_REPLY_DELAY":      {"chat", "reply_delay"},
	"CHEMBOT_GREETING":         {"chat", "greeting"},
	"CHEMBOT_STYLE":            {"render", "style"},
	"CHEMBOT_WIDTH":            {"render", "width"},
	"CHEMBOT_ADDR":             {"server", "addr"},
	"CHEMBOT_MAX_UPLOAD_BYTES": {"server", "max_upload_bytes"},
}

// Load reads path (if not empty), applies environment overrides on top and
// validates the result. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		var err error
		raw, err = readFile(path)
		if err != nil {
			return Config{}, err
		}
	}
	ApplyEnv(raw, os.LookupEnv)

	cfg := Default()
	if err := Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return raw, nil
}

// ApplyEnv copies CHEMBOT_* variables found by lookup into raw.
func ApplyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for env, keys := range envKeys {
		val, ok := lookup(env)
		if !ok || val == "" {
			continue
		}
		m := raw
		for _, k := range keys[:len(keys)-1] {
			next, ok := m[k].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[k] = next
			}
			m = next
		}
		m[keys[len(keys)-1]] = val
	}
}

// Decode merges raw into cfg. Strings are converted to numbers and
// durations where the field needs it.
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch {
	case c.MaxInputSize <= 0:
		return fmt.Errorf("max_input_size must be positive, got %d", c.MaxInputSize)
	case c.Chat.ReplyDelay < 0:
		return fmt.Errorf("chat.reply_delay must not be negative, got %s", c.Chat.ReplyDelay)
	case c.Render.Width < 0:
		return fmt.Errorf("render.width must not be negative, got %d", c.Render.Width)
	case c.Server.MaxUploadBytes <= 0:
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	return nil
}
