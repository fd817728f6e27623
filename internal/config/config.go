// Package config provides unified configuration loading for the pdf2html
// service. Supports YAML files, environment variables, and a .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pdf2html service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	LLM           LLMConfig           `yaml:"llm"`
	Convert       ConvertConfig       `yaml:"convert"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// LLMConfig holds vision-model API settings. The API key is taken from the
// environment only and never from a config file.
type LLMConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"-"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ConvertConfig holds per-request defaults and process-wide limits for the
// conversion pipeline.
type ConvertConfig struct {
	Model              string        `yaml:"model"`
	DPI                int           `yaml:"dpi"`
	MaxTokens          int           `yaml:"max_tokens"`
	Temperature        float64       `yaml:"temperature"`
	CSSMode            string        `yaml:"css_mode"`
	MaxParallelWorkers int           `yaml:"max_parallel_workers"`
	WorkerCeiling      int           `yaml:"worker_ceiling"`
	DownloadTimeout    time.Duration `yaml:"download_timeout"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	// Load .env if present; real environment wins
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     10 * time.Minute,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.openai.com/v1",
			RequestTimeout: 120 * time.Second,
		},
		Convert: ConvertConfig{
			Model:              "gpt-4o-mini",
			DPI:                200,
			MaxTokens:          4000,
			Temperature:        0.0,
			CSSMode:            "grid",
			MaxParallelWorkers: 3,
			WorkerCeiling:      10,
			DownloadTimeout:    120 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Validate checks process-level settings. Per-request bounds are enforced by
// the convert package when a request is turned into Settings.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm base_url must not be empty")
	}

	if c.Convert.WorkerCeiling < 1 {
		return fmt.Errorf("worker_ceiling must be at least 1")
	}

	if c.Convert.DownloadTimeout <= 0 {
		return fmt.Errorf("download_timeout must be positive")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}

	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Convert.Model = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
