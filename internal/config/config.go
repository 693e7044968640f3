// Package config loads and validates the server configuration from
// defaults, an optional YAML file, a .env file, and environment variables,
// in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogBaseURL is the public endoflife.date API root.
const DefaultCatalogBaseURL = "https://endoflife.date/api"

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string `json:"host" yaml:"host"`
	Port         int    `json:"port" yaml:"port"`
	ReadTimeout  int    `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeout int    `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

// CatalogConfig represents the endoflife.date catalog source configuration
type CatalogConfig struct {
	BaseURL         string `json:"base_url" yaml:"base_url"`
	TimeoutSeconds  int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	RetryAttempts   int    `json:"retry_attempts" yaml:"retry_attempts"`
	BreakerEnabled  bool   `json:"breaker_enabled" yaml:"breaker_enabled"`
	CacheEnabled    bool   `json:"cache_enabled" yaml:"cache_enabled"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         9080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Catalog: CatalogConfig{
			BaseURL:         DefaultCatalogBaseURL,
			TimeoutSeconds:  30,
			RetryAttempts:   3,
			BreakerEnabled:  true,
			CacheEnabled:    true,
			CacheTTLMinutes: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from defaults, an optional YAML file,
// .env, and environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := DefaultConfig()

	if err := loadFromFile(config); err != nil {
		return nil, err
	}

	loadFromEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile merges an optional YAML config file, either the path named
// by EOL_MCP_CONFIG_FILE or ./config.yaml when present.
func loadFromFile(config *Config) error {
	path := os.Getenv("EOL_MCP_CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(config *Config) {
	loadServerConfig(config)
	loadCatalogConfig(config)
	loadLoggingConfig(config)
}

// loadServerConfig loads server configuration from environment
func loadServerConfig(config *Config) {
	if host := os.Getenv("EOL_MCP_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("EOL_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if readTimeout := os.Getenv("EOL_MCP_READ_TIMEOUT_SECONDS"); readTimeout != "" {
		if rt, err := strconv.Atoi(readTimeout); err == nil {
			config.Server.ReadTimeout = rt
		}
	}
	if writeTimeout := os.Getenv("EOL_MCP_WRITE_TIMEOUT_SECONDS"); writeTimeout != "" {
		if wt, err := strconv.Atoi(writeTimeout); err == nil {
			config.Server.WriteTimeout = wt
		}
	}
}

// loadCatalogConfig loads catalog source configuration from environment
func loadCatalogConfig(config *Config) {
	if baseURL := os.Getenv("EOL_MCP_CATALOG_BASE_URL"); baseURL != "" {
		config.Catalog.BaseURL = baseURL
	}
	if timeout := os.Getenv("EOL_MCP_CATALOG_TIMEOUT_SECONDS"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			config.Catalog.TimeoutSeconds = t
		}
	}
	if retries := os.Getenv("EOL_MCP_CATALOG_RETRY_ATTEMPTS"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			config.Catalog.RetryAttempts = r
		}
	}
	if breaker := os.Getenv("EOL_MCP_CATALOG_BREAKER_ENABLED"); breaker != "" {
		if b, err := strconv.ParseBool(breaker); err == nil {
			config.Catalog.BreakerEnabled = b
		}
	}
	if cache := os.Getenv("EOL_MCP_CATALOG_CACHE_ENABLED"); cache != "" {
		if c, err := strconv.ParseBool(cache); err == nil {
			config.Catalog.CacheEnabled = c
		}
	}
	if ttl := os.Getenv("EOL_MCP_CATALOG_CACHE_TTL_MINUTES"); ttl != "" {
		if t, err := strconv.Atoi(ttl); err == nil {
			config.Catalog.CacheTTLMinutes = t
		}
	}
}

// loadLoggingConfig loads logging configuration from environment
func loadLoggingConfig(config *Config) {
	if level := os.Getenv("EOL_MCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("EOL_MCP_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Catalog.BaseURL == "" {
		return errors.New("catalog base URL is required")
	}
	if _, err := url.ParseRequestURI(c.Catalog.BaseURL); err != nil {
		return fmt.Errorf("invalid catalog base URL %q: %w", c.Catalog.BaseURL, err)
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		return fmt.Errorf("catalog timeout must be positive, got %d", c.Catalog.TimeoutSeconds)
	}
	if c.Catalog.RetryAttempts < 0 {
		return fmt.Errorf("catalog retry attempts must not be negative, got %d", c.Catalog.RetryAttempts)
	}
	if c.Catalog.CacheEnabled && c.Catalog.CacheTTLMinutes <= 0 {
		return fmt.Errorf("catalog cache TTL must be positive, got %d", c.Catalog.CacheTTLMinutes)
	}
	return nil
}
