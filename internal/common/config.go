package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Storage    StorageConfig    `toml:"storage"`
	Logging    LoggingConfig    `toml:"logging"`
	Corpus     CorpusConfig     `toml:"corpus"`
	Chat       ChatConfig       `toml:"chat"`
	LLM        LLMConfig        `toml:"llm"`
	Claude     ClaudeConfig     `toml:"claude"`
	Gemini     GeminiConfig     `toml:"gemini"`
	Evaluation EvaluationConfig `toml:"evaluation"`
	Summary    SummaryConfig    `toml:"summary"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`                                       // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                  // Time format for logs (default: "15:04:05")
}

// CorpusConfig tells the loader where chunk corpus files live
type CorpusConfig struct {
	Dir string `toml:"dir"` // Directory containing chunk files (TOML/YAML)
}

// ChatConfig holds the defaults of the chat pipeline. Each field can be
// overridden per request.
type ChatConfig struct {
	HistoryWindowSize int    `toml:"history_window_size" validate:"gt=0"` // Prior exchanges kept per session (window W, history holds 2*W turns)
	MaxChunks         int    `toml:"max_chunks" validate:"gt=0"`          // Retrieval result cap
	Category          string `toml:"category"`                            // Default category filter ("ALL" or exact category)
	UseContext        bool   `toml:"use_context"`                         // Retrieve document context by default
}

// LLMProvider represents the completion provider type
type LLMProvider string

const (
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
)

// LLMConfig selects the completion provider and default quality tier
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=claude gemini"` // "claude" or "gemini"
	Tier            string      `toml:"tier" validate:"oneof=small large large2"`        // Default model tier
}

// ModelTierMap maps the three interchangeable quality tiers onto
// provider-specific model names
type ModelTierMap struct {
	Small  string `toml:"small"`
	Large  string `toml:"large"`
	Large2 string `toml:"large2"`
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string       `toml:"api_key"`     // Anthropic API key (ANTHROPIC_API_KEY or config)
	Timeout     string       `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	MaxTokens   int          `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	RateLimit   string       `toml:"rate_limit"`  // Minimum interval between calls (default: "1s")
	Temperature float32      `toml:"temperature"` // Completion temperature (default: 0.2)
	Models      ModelTierMap `toml:"models"`      // Tier to model-name mapping
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string       `toml:"api_key"`     // Google API key (GEMINI_API_KEY or config)
	Timeout     string       `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   string       `toml:"rate_limit"`  // Minimum interval between calls (default: "4s" for free tier)
	Temperature float32      `toml:"temperature"` // Completion temperature (default: 0.2)
	Models      ModelTierMap `toml:"models"`      // Tier to model-name mapping
}

// EvaluationConfig toggles per-turn response recording
type EvaluationConfig struct {
	Enabled bool `toml:"enabled"`
}

// SummaryConfig controls the periodic corpus summary refresh
type SummaryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Corpus: CorpusConfig{
			Dir: "./corpus",
		},
		Chat: ChatConfig{
			HistoryWindowSize: 5,
			MaxChunks:         3,
			Category:          "ALL",
			UseContext:        true,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderClaude,
			Tier:            "large",
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Timeout:     "2m",
			MaxTokens:   4096,
			RateLimit:   "1s",
			Temperature: 0.2,
			Models: ModelTierMap{
				Small:  "claude-haiku-3-5-20241022",
				Large:  "claude-sonnet-4-20250514",
				Large2: "claude-sonnet-4-5-20250929",
			},
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (GEMINI_API_KEY or config)
			Timeout:     "2m",
			RateLimit:   "4s",
			Temperature: 0.2,
			Models: ModelTierMap{
				Small:  "gemini-2.0-flash-lite",
				Large:  "gemini-2.0-flash",
				Large2: "gemini-2.5-flash",
			},
		},
		Evaluation: EvaluationConfig{
			Enabled: true,
		},
		Summary: SummaryConfig{
			Enabled:  true,
			Schedule: "*/30 * * * *", // Every 30 minutes
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files
// override earlier ones. Priority: CLI flags > env > last file > ... >
// first file > defaults.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// Validate checks the loaded configuration against the struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Server configuration
	if port := os.Getenv("TAXCHAT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("TAXCHAT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("TAXCHAT_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("TAXCHAT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("TAXCHAT_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Corpus configuration
	if dir := os.Getenv("TAXCHAT_CORPUS_DIR"); dir != "" {
		config.Corpus.Dir = dir
	}

	// Chat configuration
	if window := os.Getenv("TAXCHAT_HISTORY_WINDOW"); window != "" {
		if w, err := strconv.Atoi(window); err == nil {
			config.Chat.HistoryWindowSize = w
		}
	}
	if category := os.Getenv("TAXCHAT_CATEGORY"); category != "" {
		config.Chat.Category = category
	}

	// LLM provider selection
	if provider := os.Getenv("TAXCHAT_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
	if tier := os.Getenv("TAXCHAT_LLM_TIER"); tier != "" {
		config.LLM.Tier = tier
	}

	// API keys: provider-standard variables first, TAXCHAT_* as override
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("TAXCHAT_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("TAXCHAT_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
}
