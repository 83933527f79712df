package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SHELFSCAN_SERVER_PORT")
		os.Unsetenv("SHELFSCAN_SERVER_ENVIRONMENT")
		os.Unsetenv("SHELFSCAN_SERVER_API_KEY")
		os.Unsetenv("SHELFSCAN_SEARCH_API_KEY")
		os.Unsetenv("SHELFSCAN_SEARCH_BASE_URL")
		os.Unsetenv("SHELFSCAN_SEARCH_MAX_RESULTS")
		os.Unsetenv("SHELFSCAN_FETCH_CONCURRENCY")
		os.Unsetenv("SHELFSCAN_MATCHING_PASS_THRESHOLD")
		os.Unsetenv("SHELFSCAN_CACHE_TYPE")
		os.Unsetenv("SHELFSCAN_CACHE_PATH")
		os.Unsetenv("SHELFSCAN_CACHE_TTL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API key
		os.Setenv("SHELFSCAN_SEARCH_API_KEY", "test-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Search.MaxResults != 10 {
			t.Errorf("Search.MaxResults = %d, want 10", cfg.Search.MaxResults)
		}
		if cfg.Search.RequestsPerHour != 1000 {
			t.Errorf("Search.RequestsPerHour = %d, want 1000", cfg.Search.RequestsPerHour)
		}
		if len(cfg.Search.AllowedDomains) == 0 {
			t.Error("Search.AllowedDomains should default to the retailer allow-list")
		}
		if cfg.Fetch.Timeout != 10*time.Second {
			t.Errorf("Fetch.Timeout = %v, want 10s", cfg.Fetch.Timeout)
		}
		if cfg.Fetch.Concurrency != 8 {
			t.Errorf("Fetch.Concurrency = %d, want 8", cfg.Fetch.Concurrency)
		}
		if cfg.Fetch.PipelineDeadline != 25*time.Second {
			t.Errorf("Fetch.PipelineDeadline = %v, want 25s", cfg.Fetch.PipelineDeadline)
		}
		if cfg.Matching.PassThreshold != 4.0 {
			t.Errorf("Matching.PassThreshold = %v, want 4.0", cfg.Matching.PassThreshold)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 6*time.Hour {
			t.Errorf("Cache.TTL = %v, want 6h", cfg.Cache.TTL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SHELFSCAN_SERVER_PORT", "9090")
		os.Setenv("SHELFSCAN_SERVER_ENVIRONMENT", "production")
		os.Setenv("SHELFSCAN_SEARCH_API_KEY", "custom-api-key")
		os.Setenv("SHELFSCAN_SEARCH_BASE_URL", "https://custom.search.com")
		os.Setenv("SHELFSCAN_SEARCH_MAX_RESULTS", "25")
		os.Setenv("SHELFSCAN_FETCH_CONCURRENCY", "4")
		os.Setenv("SHELFSCAN_CACHE_TYPE", "sqlite")
		os.Setenv("SHELFSCAN_CACHE_PATH", "/tmp/deals.db")
		os.Setenv("SHELFSCAN_CACHE_TTL", "12h")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Search.APIKey != "custom-api-key" {
			t.Errorf("Search.APIKey = %s, want custom-api-key", cfg.Search.APIKey)
		}
		if cfg.Search.BaseURL != "https://custom.search.com" {
			t.Errorf("Search.BaseURL = %s, want https://custom.search.com", cfg.Search.BaseURL)
		}
		if cfg.Search.MaxResults != 25 {
			t.Errorf("Search.MaxResults = %d, want 25", cfg.Search.MaxResults)
		}
		if cfg.Fetch.Concurrency != 4 {
			t.Errorf("Fetch.Concurrency = %d, want 4", cfg.Fetch.Concurrency)
		}
		if cfg.Cache.Type != "sqlite" {
			t.Errorf("Cache.Type = %s, want sqlite", cfg.Cache.Type)
		}
		if cfg.Cache.Path != "/tmp/deals.db" {
			t.Errorf("Cache.Path = %s, want /tmp/deals.db", cfg.Cache.Path)
		}
		if cfg.Cache.TTL != 12*time.Hour {
			t.Errorf("Cache.TTL = %v, want 12h", cfg.Cache.TTL)
		}
	})

	t.Run("fails validation when search API key is missing", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing API key")
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SHELFSCAN_SEARCH_API_KEY", "test-key")
		os.Setenv("SHELFSCAN_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables, skipping comments and blanks", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		envContent := `
# Comment line
TEST_DEAL_VAR_1=value1

   # Another comment
TEST_DEAL_VAR_2=value2
# TEST_DEAL_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_DEAL_VAR_1")
		os.Unsetenv("TEST_DEAL_VAR_2")
		os.Unsetenv("TEST_DEAL_COMMENTED")
		defer func() {
			os.Unsetenv("TEST_DEAL_VAR_1")
			os.Unsetenv("TEST_DEAL_VAR_2")
		}()

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_DEAL_VAR_1") != "value1" {
			t.Errorf("TEST_DEAL_VAR_1 = %s, want value1", os.Getenv("TEST_DEAL_VAR_1"))
		}
		if os.Getenv("TEST_DEAL_VAR_2") != "value2" {
			t.Errorf("TEST_DEAL_VAR_2 = %s, want value2", os.Getenv("TEST_DEAL_VAR_2"))
		}
		if os.Getenv("TEST_DEAL_COMMENTED") != "" {
			t.Error("TEST_DEAL_COMMENTED should not be loaded from a comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		os.Setenv("TEST_DEAL_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_DEAL_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_DEAL_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_DEAL_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_DEAL_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_DEAL_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Search: SearchConfig{
				APIKey:         "test-key",
				AllowedDomains: []string{"target.com"},
			},
			Matching: MatchingConfig{PassThreshold: 4.0},
			Cache:    CacheConfig{Type: "memory"},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when search API key is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Search.APIKey = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty API key")
		}
	})

	t.Run("fails for invalid cache type", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "invalid-type"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for invalid cache type")
		}
	})

	t.Run("validates sqlite cache type with path", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "sqlite"
		cfg.Cache.Path = "deals.db"
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil for valid sqlite config", err)
		}
	})

	t.Run("fails for sqlite cache without path", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "sqlite"
		cfg.Cache.Path = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for sqlite without path")
		}
	})

	t.Run("fails with empty domain allow-list", func(t *testing.T) {
		cfg := valid()
		cfg.Search.AllowedDomains = nil
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty allow-list")
		}
	})

	t.Run("fails with non-positive pass threshold", func(t *testing.T) {
		cfg := valid()
		cfg.Matching.PassThreshold = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero threshold")
		}
	})
}
