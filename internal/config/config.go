// Package config loads tool configuration from ~/.sensei/config.toml,
// falling back to defaults when no file exists. The API key is never stored
// in the config file; it is resolved from the environment or supplied
// interactively per session.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pablasso/sensei/internal/ai"
)

// Config holds all tool configuration.
type Config struct {
	AI    AIConfig    `toml:"ai"`
	Serve ServeConfig `toml:"serve"`
}

// AIConfig controls the chat-completion request.
type AIConfig struct {
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// ServeConfig controls the HTTP API server.
type ServeConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		AI: AIConfig{
			Model:       ai.DefaultModel,
			BaseURL:     ai.DefaultBaseURL,
			MaxTokens:   ai.DefaultMaxTokens,
			Temperature: ai.DefaultTemperature,
		},
		Serve: ServeConfig{
			Host:        "127.0.0.1",
			Port:        8787,
			CORSOrigins: []string{"*"},
		},
	}
}

// Load reads config from <home>/config.toml, falling back to defaults.
func Load() (Config, error) {
	cfg := Default()
	path := filepath.Join(Home(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Home returns the sensei data directory, normally ~/.sensei.
func Home() string {
	if env := os.Getenv("SENSEI_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sensei")
}

// APIKey resolves the chat-service credential from the environment.
// SENSEI_API_KEY wins over OPENAI_API_KEY; an empty string means no key is
// configured and the caller must collect one from the user.
func APIKey() string {
	if key := os.Getenv("SENSEI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// Client builds an AI client from this config and the given credential.
func (c Config) Client(apiKey string) *ai.Client {
	return &ai.Client{
		APIKey:      apiKey,
		Model:       c.AI.Model,
		BaseURL:     c.AI.BaseURL,
		MaxTokens:   c.AI.MaxTokens,
		Temperature: c.AI.Temperature,
	}
}
