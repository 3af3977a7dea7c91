// Package config loads harmony-engine configuration from config.yaml with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for harmony-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys, passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// MigrationsPath is the directory holding schema migration files.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`

	// Text providers, tried in order: Gemini, OpenAI, Anthropic.
	Providers ProvidersConfig `yaml:"providers"`

	// Card image generation (fal.ai)
	Image ImageConfig `yaml:"image"`

	// Narration synthesis (ElevenLabs)
	Speech SpeechConfig `yaml:"speech"`

	// Workers is the number of concurrent background tasks.
	Workers int `yaml:"workers" env:"WORKERS" env-default:"4"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"harmony"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"harmony_engine"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// ProvidersConfig holds per-provider text generation settings. A provider
// with an empty API key is skipped when building the fallback chain.
type ProvidersConfig struct {
	Gemini    GeminiConfig    `yaml:"gemini"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
}

// GeminiConfig configures the primary text provider.
type GeminiConfig struct {
	APIKey string `yaml:"-" env:"GEMINI_API_KEY"` // Secret - not in YAML
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
}

// OpenAIConfig configures the secondary text provider. Endpoint may point
// at any OpenAI-compatible server.
type OpenAIConfig struct {
	APIKey   string `yaml:"-" env:"OPENAI_API_KEY"` // Secret - not in YAML
	Model    string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	Endpoint string `yaml:"endpoint" env:"OPENAI_ENDPOINT" env-default:""`
}

// AnthropicConfig configures the tertiary text provider.
type AnthropicConfig struct {
	APIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
	Model  string `yaml:"model" env:"ANTHROPIC_MODEL" env-default:"claude-3-5-haiku-latest"`
}

// ImageConfig configures fal.ai card image generation. An empty API key
// disables generation; readings fall back to static card assets.
type ImageConfig struct {
	APIKey         string        `yaml:"-" env:"FAL_API_KEY"` // Secret - not in YAML
	Model          string        `yaml:"model" env:"FAL_MODEL" env-default:"fal-ai/flux/schnell"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"FAL_REQUEST_TIMEOUT" env-default:"15s"`
}

// SpeechConfig configures ElevenLabs narration synthesis. An empty API key
// disables narration; readings are served without audio.
type SpeechConfig struct {
	APIKey        string `yaml:"-" env:"ELEVENLABS_API_KEY"` // Secret - not in YAML
	VoiceID       string `yaml:"voice_id" env:"ELEVENLABS_VOICE_ID" env-default:""`
	Model         string `yaml:"model" env:"ELEVENLABS_MODEL" env-default:"eleven_monolingual_v1"`
	FallbackModel string `yaml:"fallback_model" env:"ELEVENLABS_FALLBACK_MODEL" env-default:"eleven_multilingual_v2"`
}

// HasAnyProvider reports whether at least one text provider is configured.
func (c *ProvidersConfig) HasAnyProvider() bool {
	return c.Gemini.APIKey != "" || c.OpenAI.APIKey != "" || c.Anthropic.APIKey != ""
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on the
// returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	return cfg, nil
}
