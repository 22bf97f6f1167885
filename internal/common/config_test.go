package common

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Chat.HistoryWindowSize != 5 {
		t.Errorf("Expected default history window 5, got %d", cfg.Chat.HistoryWindowSize)
	}
	if cfg.Chat.MaxChunks != 3 {
		t.Errorf("Expected default max chunks 3, got %d", cfg.Chat.MaxChunks)
	}
	if cfg.Chat.Category != "ALL" {
		t.Errorf("Expected default category ALL, got %s", cfg.Chat.Category)
	}
	if cfg.LLM.DefaultProvider != LLMProviderClaude {
		t.Errorf("Expected default provider claude, got %s", cfg.LLM.DefaultProvider)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate: %v", err)
	}
}

func TestLoadFromFiles_LaterFilesOverrideEarlier(t *testing.T) {
	base := writeConfigFile(t, "base.toml", `
[server]
port = 9000

[chat]
max_chunks = 7
`)
	override := writeConfigFile(t, "override.toml", `
[server]
port = 9100
`)

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Expected later file port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Chat.MaxChunks != 7 {
		t.Errorf("Expected base file max_chunks 7, got %d", cfg.Chat.MaxChunks)
	}
	// Untouched fields keep defaults
	if cfg.Chat.HistoryWindowSize != 5 {
		t.Errorf("Expected default history window, got %d", cfg.Chat.HistoryWindowSize)
	}
}

func TestLoadFromFiles_MissingFileFails(t *testing.T) {
	if _, err := LoadFromFiles("no-such-file.toml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAXCHAT_SERVER_PORT", "9999")
	t.Setenv("TAXCHAT_CATEGORY", "credits")
	t.Setenv("TAXCHAT_LLM_TIER", "small")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Expected env port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Chat.Category != "credits" {
		t.Errorf("Expected env category credits, got %s", cfg.Chat.Category)
	}
	if cfg.LLM.Tier != "small" {
		t.Errorf("Expected env tier small, got %s", cfg.LLM.Tier)
	}
	if cfg.Claude.APIKey != "test-key" {
		t.Errorf("Expected env API key applied, got %q", cfg.Claude.APIKey)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 7070, "0.0.0.0")
	if cfg.Server.Port != 7070 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected flag overrides applied, got %s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	// Zero values leave config untouched
	ApplyFlagOverrides(cfg, 0, "")
	if cfg.Server.Port != 7070 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected zero-value flags ignored, got %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad tier", func(c *Config) { c.LLM.Tier = "mistral-7b" }},
		{"bad provider", func(c *Config) { c.LLM.DefaultProvider = "openai" }},
		{"zero history window", func(c *Config) { c.Chat.HistoryWindowSize = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tc.name)
			}
		})
	}
}
