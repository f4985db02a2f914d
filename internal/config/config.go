// Package config loads uiforge settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/uiforge/internal/log"
	"github.com/felixgeelhaar/uiforge/internal/telemetry"
)

// Supported oracle providers
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DefaultMaxMessageLength bounds the user instruction embedded in prompts.
const DefaultMaxMessageLength = 4000

// Config is the root configuration document
type Config struct {
	Oracle    OracleConfig     `yaml:"oracle"`
	Synth     SynthConfig      `yaml:"synth"`
	Server    ServerConfig     `yaml:"server"`
	Log       LogConfig        `yaml:"log"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// OracleConfig selects and parameterizes the language model backend.
// Empty URL and Model select the provider's defaults.
type OracleConfig struct {
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	URL       string        `yaml:"url"`
	APIKeyEnv string        `yaml:"api_key_env,omitempty"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens,omitempty"`
}

// APIKey resolves the provider API key from the environment. Ollama needs
// none.
func (o OracleConfig) APIKey() string {
	env := o.APIKeyEnv
	if env == "" {
		switch o.Provider {
		case ProviderOpenAI:
			env = "OPENAI_API_KEY"
		case ProviderAnthropic:
			env = "ANTHROPIC_API_KEY"
		default:
			return ""
		}
	}
	return os.Getenv(env)
}

// SynthConfig tunes the synthesis protocol
type SynthConfig struct {
	MaxMessageLength int `yaml:"max_message_length"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig configures the process logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with sensible defaults: a local Ollama
// oracle and a loopback server.
func Default() *Config {
	return &Config{
		Oracle: OracleConfig{
			Provider: ProviderOllama,
			Timeout:  120 * time.Second,
		},
		Synth: SynthConfig{
			MaxMessageLength: DefaultMaxMessageLength,
		},
		Server: ServerConfig{
			Address:         "127.0.0.1:8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: telemetry.DefaultConfig(),
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides and validates the result. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. OLLAMA_URL and
// OLLAMA_MODEL apply only to the ollama provider; UIFORGE_* variables win
// over them.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&c.Oracle.Provider, "UIFORGE_ORACLE_PROVIDER")
	if c.Oracle.Provider == ProviderOllama {
		set(&c.Oracle.URL, "OLLAMA_URL")
		set(&c.Oracle.Model, "OLLAMA_MODEL")
	}
	set(&c.Oracle.URL, "UIFORGE_ORACLE_URL")
	set(&c.Oracle.Model, "UIFORGE_ORACLE_MODEL")
	set(&c.Server.Address, "UIFORGE_SERVER_ADDRESS")
	set(&c.Log.Level, "UIFORGE_LOG_LEVEL")
	set(&c.Log.Format, "UIFORGE_LOG_FORMAT")
	set(&c.Telemetry.Endpoint, "UIFORGE_OTLP_ENDPOINT")
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	switch c.Oracle.Provider {
	case ProviderOllama, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown oracle provider %q (want ollama, openai or anthropic)", c.Oracle.Provider)
	}

	if c.Oracle.Timeout < 0 {
		return fmt.Errorf("oracle timeout must be non-negative")
	}

	if c.Synth.MaxMessageLength <= 0 {
		return fmt.Errorf("synth max_message_length must be positive")
	}

	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return err
	}

	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry sample_rate must be between 0 and 1")
	}

	return nil
}

// Save writes the configuration as YAML
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
