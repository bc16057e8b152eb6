package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/helmcode/seo-ai/pkg/llm"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Port is the listen address for the serve command.
	Port string `envconfig:"PORT" default:":8080"`

	LLMProvider string `envconfig:"LLM_PROVIDER" default:"gemini"`
	LLMModel    string `envconfig:"LLM_MODEL"`

	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
	LegacyAPIKey    string `envconfig:"API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`

	AnalysisDelay         time.Duration `envconfig:"ANALYSIS_DELAY" default:"2500ms"`
	AnalysisTimeout       time.Duration `envconfig:"ANALYSIS_TIMEOUT" default:"10s"`
	RecommendationTimeout time.Duration `envconfig:"RECOMMENDATION_TIMEOUT" default:"60s"`

	SessionCapacity int     `envconfig:"SESSION_CAPACITY" default:"1024"`
	RateLimitRPS    float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst  int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is the normal case outside local development.
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.Port = NormalizePort(cfg.Port)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings under which no analysis can ever finish.
// A non-positive ANALYSIS_TIMEOUT disables the timeout.
func (c *Config) Validate() error {
	if c.AnalysisDelay < 0 {
		return fmt.Errorf("%w: ANALYSIS_DELAY must not be negative, got %s", ErrInvalidConfig, c.AnalysisDelay)
	}
	if c.AnalysisTimeout > 0 && c.AnalysisDelay >= c.AnalysisTimeout {
		return fmt.Errorf("%w: ANALYSIS_DELAY (%s) must be shorter than ANALYSIS_TIMEOUT (%s)",
			ErrInvalidConfig, c.AnalysisDelay, c.AnalysisTimeout)
	}
	return nil
}

// Provider resolves the configured provider name.
func (c *Config) Provider() (llm.Provider, error) {
	return llm.ParseProvider(c.LLMProvider)
}

// APIKey returns the credential for provider, empty when none is set.
func (c *Config) APIKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderClaude:
		return strings.TrimSpace(c.AnthropicAPIKey)
	case llm.ProviderOpenAI:
		return strings.TrimSpace(c.OpenAIAPIKey)
	default:
		return firstNonEmpty(strings.TrimSpace(c.GeminiAPIKey), strings.TrimSpace(c.LegacyAPIKey))
	}
}

// NormalizePort turns a bare port number into a listen address.
func NormalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
