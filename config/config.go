package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Matching MatchingConfig
	Cache    CacheConfig
	Stores   StoresConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds extraction backend configuration
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"` // "openai", "anthropic" or "mock"
	Model          string        `mapstructure:"model"`
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

// MatchingConfig holds scoring and ranking configuration
type MatchingConfig struct {
	TopK                 int     `mapstructure:"top_k"`
	ScoreThreshold       float64 `mapstructure:"score_threshold"`
	HistoryBonusCap      float64 `mapstructure:"history_bonus_cap"`
	ExplicitWeight       float64 `mapstructure:"explicit_weight"`
	ImplicitWeight       float64 `mapstructure:"implicit_weight"`
	StrictContradictions bool    `mapstructure:"strict_contradictions"`
	DebugLogging         bool    `mapstructure:"debug_logging"`
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// StoresConfig holds paths to the catalog and history data files
type StoresConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
	HistoryPath string `mapstructure:"history_path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/salesiq/")

	// Environment variable settings
	v.SetEnvPrefix("SALESIQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// LLM defaults. The mock provider keeps the service runnable with no
	// credentials, which is also what the test suites use.
	v.SetDefault("llm.provider", "mock")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_tokens", 900)
	v.SetDefault("llm.request_timeout", "60s")
	v.SetDefault("llm.max_retries", 2)

	// Matching defaults
	v.SetDefault("matching.top_k", 5)
	v.SetDefault("matching.score_threshold", 5.0)
	v.SetDefault("matching.history_bonus_cap", 10.0)
	v.SetDefault("matching.explicit_weight", 2.0)
	v.SetDefault("matching.implicit_weight", 1.0)
	v.SetDefault("matching.strict_contradictions", false)
	v.SetDefault("matching.debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "1h")

	// Store defaults
	v.SetDefault("stores.catalog_path", "data/product_catalog.txt")
	v.SetDefault("stores.history_path", "data/purchase_history.csv")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.LLM.Provider {
	case "openai", "anthropic":
		if config.LLM.APIKey == "" {
			return fmt.Errorf("%s API key is required (set SALESIQ_LLM_API_KEY)", config.LLM.Provider)
		}
	case "mock":
	default:
		return fmt.Errorf("llm provider must be 'openai', 'anthropic' or 'mock', got: %s", config.LLM.Provider)
	}

	if config.Matching.TopK <= 0 {
		return fmt.Errorf("matching top_k must be positive, got: %d", config.Matching.TopK)
	}
	if config.Matching.ScoreThreshold < 0 {
		return fmt.Errorf("matching score_threshold must not be negative, got: %g", config.Matching.ScoreThreshold)
	}
	if config.Matching.ExplicitWeight <= 0 || config.Matching.ImplicitWeight <= 0 {
		return fmt.Errorf("matching weights must be positive")
	}

	if config.Stores.CatalogPath == "" {
		return fmt.Errorf("catalog path is required (set SALESIQ_STORES_CATALOG_PATH)")
	}
	if config.Stores.HistoryPath == "" {
		return fmt.Errorf("history path is required (set SALESIQ_STORES_HISTORY_PATH)")
	}

	return nil
}
