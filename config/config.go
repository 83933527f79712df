package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Search   SearchConfig
	Fetch    FetchConfig
	Matching MatchingConfig
	Cache    CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	APIKey         string   `mapstructure:"api_key"`
}

// SearchConfig holds search index configuration
type SearchConfig struct {
	APIKey          string   `mapstructure:"api_key"`
	BaseURL         string   `mapstructure:"base_url"`
	MaxResults      int      `mapstructure:"max_results"`
	RequestsPerHour int      `mapstructure:"requests_per_hour"`
	AllowedDomains  []string `mapstructure:"allowed_domains"`
}

// FetchConfig holds candidate page fetching configuration
type FetchConfig struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	Concurrency      int           `mapstructure:"concurrency"`
	UserAgent        string        `mapstructure:"user_agent"`
	PipelineDeadline time.Duration `mapstructure:"pipeline_deadline"`
}

// MatchingConfig holds identity gate configuration
type MatchingConfig struct {
	PassThreshold      float64 `mapstructure:"pass_threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds deal cache configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "sqlite"
	Path string        `mapstructure:"path"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// A local .env file (if present) seeds the environment for development
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelfscan/")

	// Environment variable settings
	v.SetEnvPrefix("SHELFSCAN")
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Search defaults
	v.SetDefault("search.base_url", "https://api.search.example.com")
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.requests_per_hour", 1000)
	v.SetDefault("search.allowed_domains", []string{
		"target.com",
		"walmart.com",
		"amazon.com",
		"ulta.com",
		"cvs.com",
		"walgreens.com",
		"sephora.com",
		"costco.com",
	})

	// Fetch defaults
	v.SetDefault("fetch.timeout", "10s")
	v.SetDefault("fetch.concurrency", 8)
	v.SetDefault("fetch.pipeline_deadline", "25s")

	// Matching defaults
	v.SetDefault("matching.pass_threshold", 4.0)
	v.SetDefault("matching.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.path", "shelfscan.db")
	v.SetDefault("cache.ttl", "6h")
}

// loadEnvFile loads KEY=VALUE pairs from a .env file in the working
// directory. Existing environment variables are never overridden.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, strings.TrimSpace(value))
	}
	return scanner.Err()
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Search.APIKey == "" {
		return fmt.Errorf("search API key is required (set SHELFSCAN_SEARCH_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "sqlite" {
		return fmt.Errorf("cache type must be 'memory' or 'sqlite', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "sqlite" && config.Cache.Path == "" {
		return fmt.Errorf("cache path is required when cache type is 'sqlite'")
	}

	if len(config.Search.AllowedDomains) == 0 {
		return fmt.Errorf("at least one allowed retail domain is required")
	}

	if config.Matching.PassThreshold <= 0 {
		return fmt.Errorf("matching pass threshold must be positive, got: %v", config.Matching.PassThreshold)
	}

	return nil
}
