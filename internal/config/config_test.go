package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultCatalogBaseURL, cfg.Catalog.BaseURL)
	assert.Equal(t, 9080, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Catalog.CacheTTLMinutes)
	assert.True(t, cfg.Catalog.CacheEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EOL_MCP_PORT", "9999")
	t.Setenv("EOL_MCP_CATALOG_BASE_URL", "http://catalog.test/api")
	t.Setenv("EOL_MCP_CATALOG_CACHE_ENABLED", "false")
	t.Setenv("EOL_MCP_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "http://catalog.test/api", cfg.Catalog.BaseURL)
	assert.False(t, cfg.Catalog.CacheEnabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eol.yaml")
	content := []byte("server:\n  port: 7070\ncatalog:\n  retry_attempts: 5\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("EOL_MCP_CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Catalog.RetryAttempts)
	// File values stay below env precedence
	t.Setenv("EOL_MCP_PORT", "6060")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("EOL_MCP_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"empty base url", func(c *Config) { c.Catalog.BaseURL = "" }},
		{"bad base url", func(c *Config) { c.Catalog.BaseURL = "not a url" }},
		{"zero timeout", func(c *Config) { c.Catalog.TimeoutSeconds = 0 }},
		{"negative retries", func(c *Config) { c.Catalog.RetryAttempts = -1 }},
		{"zero ttl with cache", func(c *Config) { c.Catalog.CacheTTLMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
