package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Convert.Model)
	assert.Equal(t, 200, cfg.Convert.DPI)
	assert.Equal(t, 4000, cfg.Convert.MaxTokens)
	assert.Equal(t, 0.0, cfg.Convert.Temperature)
	assert.Equal(t, "grid", cfg.Convert.CSSMode)
	assert.Equal(t, 3, cfg.Convert.MaxParallelWorkers)
	assert.Equal(t, 10, cfg.Convert.WorkerCeiling)
	assert.Equal(t, 120*time.Second, cfg.Convert.DownloadTimeout)
	assert.Equal(t, "info", cfg.Observability.LogLevel)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
llm:
  base_url: "https://llm.internal/v1"
convert:
  model: "gpt-4o"
  dpi: 300
  css_mode: "columns"
observability:
  log_level: "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://llm.internal/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.Convert.Model)
	assert.Equal(t, 300, cfg.Convert.DPI)
	assert.Equal(t, "columns", cfg.Convert.CSSMode)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)

	// Untouched fields keep their defaults
	assert.Equal(t, 4000, cfg.Convert.MaxTokens)
	assert.Equal(t, 3, cfg.Convert.MaxParallelWorkers)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadWithoutPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.internal/v1")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "https://proxy.internal/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.Convert.Model)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
	assert.Equal(t, "console", cfg.Observability.LogFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port above range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.LLM.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "zero worker ceiling",
			mutate:  func(c *Config) { c.Convert.WorkerCeiling = 0 },
			wantErr: "worker_ceiling",
		},
		{
			name:    "zero download timeout",
			mutate:  func(c *Config) { c.Convert.DownloadTimeout = 0 },
			wantErr: "download_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
