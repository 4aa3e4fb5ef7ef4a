package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "templates/fm", cfg.TemplateDir)
	assert.Equal(t, 0.70, cfg.SemanticThreshold)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ProviderLexical, cfg.Embedding.Provider)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "connectmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
template_dir: /opt/templates
semantic_threshold: 0.85
workers: 8
embedding:
  provider: http
  base_url: http://localhost:8082
  model: all-mpnet-base-v2
log_level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/templates", cfg.TemplateDir)
	assert.Equal(t, 0.85, cfg.SemanticThreshold)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, ProviderHTTP, cfg.Embedding.Provider)
	assert.Equal(t, "http://localhost:8082", cfg.Embedding.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched fields keep their defaults.
	assert.Equal(t, 10.0, cfg.Embedding.RequestsPerSecond)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"missing template dir", func(c *Config) { c.TemplateDir = "" }, false},
		{"threshold above one", func(c *Config) { c.SemanticThreshold = 1.2 }, false},
		{"negative threshold", func(c *Config) { c.SemanticThreshold = -0.1 }, false},
		{"threshold at boundary", func(c *Config) { c.SemanticThreshold = 1.0 }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, false},
		{"unknown provider", func(c *Config) { c.Embedding.Provider = "neural" }, false},
		{"http without base url", func(c *Config) {
			c.Embedding.Provider = ProviderHTTP
			c.Embedding.Model = "m"
		}, false},
		{"http complete", func(c *Config) {
			c.Embedding.Provider = ProviderHTTP
			c.Embedding.BaseURL = "http://localhost:8082"
			c.Embedding.Model = "m"
		}, true},
		{"cache bucket without nats url", func(c *Config) { c.Embedding.CacheBucket = "embeddings" }, false},
		{"cache bucket with nats url", func(c *Config) {
			c.Embedding.CacheBucket = "embeddings"
			c.Embedding.NATSURL = "nats://localhost:4222"
		}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
