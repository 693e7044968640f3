package di

import (
	"testing"

	"eol-mcp-server/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		validate func(*testing.T, *Container)
	}{
		{
			name:   "default configuration wires breaker and cache",
			mutate: func(_ *config.Config) {},
			validate: func(t *testing.T, c *Container) {
				assert.NotNil(t, c.GetService())
				assert.NotNil(t, c.Source)
				stats := c.Stats()
				assert.Contains(t, stats, "breaker_state")
				assert.Contains(t, stats, "cache_hits")
			},
		},
		{
			name: "breaker disabled",
			mutate: func(cfg *config.Config) {
				cfg.Catalog.BreakerEnabled = false
			},
			validate: func(t *testing.T, c *Container) {
				stats := c.Stats()
				assert.NotContains(t, stats, "breaker_state")
				assert.Contains(t, stats, "cache_hits")
			},
		},
		{
			name: "cache disabled",
			mutate: func(cfg *config.Config) {
				cfg.Catalog.CacheEnabled = false
			},
			validate: func(t *testing.T, c *Container) {
				stats := c.Stats()
				assert.NotContains(t, stats, "cache_hits")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			container, err := NewContainer(cfg, nil)
			require.NoError(t, err)
			defer func() { require.NoError(t, container.Shutdown()) }()

			tt.validate(t, container)
		})
	}
}

func TestNewContainer_RequiresConfig(t *testing.T) {
	_, err := NewContainer(nil, nil)
	assert.Error(t, err)
}
