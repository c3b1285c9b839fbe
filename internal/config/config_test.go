package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pablasso/sensei/internal/ai"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("SENSEI_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Model != ai.DefaultModel {
		t.Errorf("Model = %q, want default", cfg.AI.Model)
	}
	if cfg.Serve.Port != 8787 {
		t.Errorf("Port = %d, want 8787", cfg.Serve.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SENSEI_HOME", home)

	content := `
[ai]
model = "local-model"
base_url = "http://localhost:11434"

[serve]
port = 9999
`
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Model != "local-model" {
		t.Errorf("Model = %q, want local-model", cfg.AI.Model)
	}
	if cfg.AI.BaseURL != "http://localhost:11434" {
		t.Errorf("BaseURL = %q", cfg.AI.BaseURL)
	}
	if cfg.Serve.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Serve.Port)
	}
	// Untouched sections keep their defaults.
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want default", cfg.Serve.Host)
	}
}

func TestLoadBadFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SENSEI_HOME", home)

	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("not toml ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() should fail on a malformed config file")
	}
}

func TestAPIKeyResolution(t *testing.T) {
	t.Setenv("SENSEI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	if APIKey() != "" {
		t.Error("APIKey() should be empty with no environment keys")
	}

	t.Setenv("OPENAI_API_KEY", "openai-key")
	if APIKey() != "openai-key" {
		t.Errorf("APIKey() = %q, want openai-key", APIKey())
	}

	t.Setenv("SENSEI_API_KEY", "sensei-key")
	if APIKey() != "sensei-key" {
		t.Errorf("APIKey() = %q, SENSEI_API_KEY should win", APIKey())
	}
}

func TestClientFromConfig(t *testing.T) {
	cfg := Default()
	cfg.AI.Model = "m"
	cfg.AI.BaseURL = "http://b"

	c := cfg.Client("key")
	if c.APIKey != "key" || c.Model != "m" || c.BaseURL != "http://b" {
		t.Errorf("unexpected client: %+v", c)
	}
}
