package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "chembot.yaml", `
library: ./solutions
log_level: debug
chat:
  reply_delay: 1.5s
  greeting: Hello chemist!
  replies:
    - one
    - two
render:
  style: dark
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./solutions", cfg.Library)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1500*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, "Hello chemist!", cfg.Chat.Greeting)
	assert.Equal(t, []string{"one", "two"}, cfg.Chat.Replies)
	assert.Equal(t, "dark", cfg.Render.Style)
	assert.Equal(t, 80, cfg.Render.Width, "unset keys keep defaults")
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "chembot.toml", `
max_input_size = 1024

[server]
addr = ":9090"
max_upload_bytes = 2048
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.MaxInputSize)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, int64(2048), cfg.Server.MaxUploadBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "chembot.yaml", "library: from-file\n")
	t.Setenv("CHEMBOT_LIBRARY", "from-env")
	t.Setenv("CHEMBOT_REPLY_DELAY", "0s")
	t.Setenv("CHEMBOT_WIDTH", "120")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Library)
	assert.Equal(t, time.Duration(0), cfg.Chat.ReplyDelay)
	assert.Equal(t, 120, cfg.Render.Width)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":   "colour: blue\n",
		"bad duration":  "chat:\n  reply_delay: soon\n",
		"bad log level": "log_level: loud\n",
		"negative size": "max_input_size: -1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "chembot.yaml", content))
			assert.Error(t, err)
		})
	}

	_, err := Load(writeConfig(t, "chembot.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv_CreatesSections(t *testing.T) {
	raw := map[string]any{}
	env := map[string]string{"CHEMBOT_ADDR": ":1234", "CHEMBOT_GREETING": ""}

	ApplyEnv(raw, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, map[string]any{"server": map[string]any{"addr": ":1234"}}, raw)
}

func TestLoad_ShippedExamples(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "chembot.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "examples/library", cfg.Library)
	assert.Equal(t, 600*time.Millisecond, cfg.Chat.ReplyDelay)

	cfg, err = Load(filepath.Join("..", "..", "examples", "chembot.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Thanks! Worked solutions are under Solve Past Papers."}, cfg.Chat.Replies)
	assert.Equal(t, 100, cfg.Render.Width)
}
