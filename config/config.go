package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPort          = "8080"
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultLogLevel      = "info"
	defaultAnalysisDelay = 2 * time.Second
	defaultAIMaxInFlight = 4
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port          string
	GeminiKey     string
	GeminiModel   string
	LogLevel      log.Level
	AnalysisDelay time.Duration
	CORSOrigins   []string
	AIMaxInFlight int
}

// Load reads configuration from a .env file (if present) and environment variables.
// Values already set in the shell win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", defaultPort),
		GeminiKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", defaultGeminiModel),
		AnalysisDelay: defaultAnalysisDelay,
		AIMaxInFlight: defaultAIMaxInFlight,
	}

	level, err := log.ParseLevel(getenv("LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if v := os.Getenv("ANALYSIS_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("ANALYSIS_DELAY must be a non-negative duration, got %q", v)
		}
		cfg.AnalysisDelay = d
	}

	if v := os.Getenv("AI_MAX_INFLIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("AI_MAX_INFLIGHT must be a positive integer, got %q", v)
		}
		cfg.AIMaxInFlight = n
	}

	for _, o := range strings.Split(getenv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

// MaskedGeminiKey returns the API key with only its last four characters shown, for logging.
func (c *Config) MaskedGeminiKey() string {
	if c.GeminiKey == "" {
		return "(not set)"
	}
	if len(c.GeminiKey) <= 4 {
		return "***"
	}
	return "***" + c.GeminiKey[len(c.GeminiKey)-4:]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
