// Package config provides application-wide configuration.
// Values come from three layers, lowest priority first: built-in defaults,
// an optional YAML file (EDUGEN_CONFIG), then environment variables.
// All fields have safe defaults so the binary runs locally without any setup,
// except the Gemini API key which has no sensible default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the EduGen server.
type Config struct {
	// HTTP
	Host        string   `yaml:"host"`         // HOST — default: "0.0.0.0"
	Port        int      `yaml:"port"`         // PORT — default: 10000
	CORSOrigins []string `yaml:"cors_origins"` // CORS_ORIGINS — comma-separated

	// Model transport
	GeminiAPIKey  string `yaml:"gemini_api_key"`  // GEMINI_API_KEY — required to serve
	GeminiBaseURL string `yaml:"gemini_base_url"` // GEMINI_BASE_URL
	GeminiModel   string `yaml:"gemini_model"`    // GEMINI_MODEL — default: "gemini-1.5-flash-latest"

	// Retry policy for model calls
	RetryMaxAttempts int           `yaml:"retry_max_attempts"` // RETRY_MAX_ATTEMPTS — default: 3
	RetryBaseDelay   time.Duration `yaml:"retry_base_delay"`   // RETRY_BASE_DELAY — default: 1s
	RetryJitterMax   time.Duration `yaml:"retry_jitter_max"`   // RETRY_JITTER_MAX — default: 1s

	// Document extraction
	ParserURL string `yaml:"parser_url"` // PARSER_URL — PDF parse sidecar; empty disables PDF support

	// Storage (usage log)
	DBPath string `yaml:"db_path"` // DB_PATH — default: "edugen.db"

	// Per-route rate limits (requests per minute, keyed by client IP)
	ChatRateLimit int `yaml:"chat_rate_limit"` // CHAT_RATE_LIMIT — default: 10
	QuizRateLimit int `yaml:"quiz_rate_limit"` // QUIZ_RATE_LIMIT — default: 5
}

const (
	envKeyConfigFile = "EDUGEN_CONFIG"

	envKeyHost        = "HOST"
	envKeyPort        = "PORT"
	envKeyCORSOrigins = "CORS_ORIGINS"

	envKeyGeminiAPIKey  = "GEMINI_API_KEY"
	envKeyGeminiBaseURL = "GEMINI_BASE_URL"
	envKeyGeminiModel   = "GEMINI_MODEL"

	envKeyRetryMaxAttempts = "RETRY_MAX_ATTEMPTS"
	envKeyRetryBaseDelay   = "RETRY_BASE_DELAY"
	envKeyRetryJitterMax   = "RETRY_JITTER_MAX"

	envKeyParserURL = "PARSER_URL"
	envKeyDBPath    = "DB_PATH"

	envKeyChatRateLimit = "CHAT_RATE_LIMIT"
	envKeyQuizRateLimit = "QUIZ_RATE_LIMIT"
)

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		Host: "0.0.0.0",
		Port: 10000,
		CORSOrigins: []string{
			"https://edugen-ai-zeta.vercel.app",
			"http://localhost:3000",
		},
		GeminiBaseURL:    "https://generativelanguage.googleapis.com",
		GeminiModel:      "gemini-1.5-flash-latest",
		RetryMaxAttempts: 3,
		RetryBaseDelay:   time.Second,
		RetryJitterMax:   time.Second,
		DBPath:           "edugen.db",
		ChatRateLimit:    10,
		QuizRateLimit:    5,
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file named by EDUGEN_CONFIG, then environment variable overrides.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv(envKeyConfigFile); path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// loadFile overlays values from a YAML file onto cfg.
// Fields absent from the file keep their current values.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Host = envOr(envKeyHost, cfg.Host)
	cfg.Port = envIntOr(envKeyPort, cfg.Port)
	if v := os.Getenv(envKeyCORSOrigins); v != "" {
		cfg.CORSOrigins = splitAndTrim(v)
	}

	cfg.GeminiAPIKey = envOr(envKeyGeminiAPIKey, cfg.GeminiAPIKey)
	cfg.GeminiBaseURL = envOr(envKeyGeminiBaseURL, cfg.GeminiBaseURL)
	cfg.GeminiModel = envOr(envKeyGeminiModel, cfg.GeminiModel)

	cfg.RetryMaxAttempts = envIntOr(envKeyRetryMaxAttempts, cfg.RetryMaxAttempts)
	cfg.RetryBaseDelay = envDurationOr(envKeyRetryBaseDelay, cfg.RetryBaseDelay)
	cfg.RetryJitterMax = envDurationOr(envKeyRetryJitterMax, cfg.RetryJitterMax)

	cfg.ParserURL = envOr(envKeyParserURL, cfg.ParserURL)
	cfg.DBPath = envOr(envKeyDBPath, cfg.DBPath)

	cfg.ChatRateLimit = envIntOr(envKeyChatRateLimit, cfg.ChatRateLimit)
	cfg.QuizRateLimit = envIntOr(envKeyQuizRateLimit, cfg.QuizRateLimit)
}

// Validate reports configuration errors that prevent the server from starting.
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config: %s is not set", envKeyGeminiAPIKey)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("config: retry max attempts must be at least 1, got %d", c.RetryMaxAttempts)
	}
	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
