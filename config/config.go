package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/connectmap/errors"
)

// Embedding provider identifiers.
const (
	ProviderLexical = "lexical"
	ProviderHTTP    = "http"
)

// Config is the engine configuration.
type Config struct {
	// TemplateDir holds the FM template JSON files.
	TemplateDir string `yaml:"template_dir"`

	// TransformFallback is an optional JSON file mapping plugin types
	// to supported transform lists, used when a template bundles no
	// supported_transforms of its own.
	TransformFallback string `yaml:"transform_fallback"`

	// SemanticThreshold is the minimum similarity score for accepting
	// a semantic property match.
	SemanticThreshold float64 `yaml:"semantic_threshold"`

	// Workers bounds how many connectors are mapped in parallel.
	Workers int `yaml:"workers"`

	// Embedding selects and configures the similarity backend.
	Embedding EmbeddingConfig `yaml:"embedding"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// EmbeddingConfig configures the similarity backend.
type EmbeddingConfig struct {
	// Provider is "lexical" (pure Go BM25, no external service) or
	// "http" (OpenAI-compatible embedding API).
	Provider string `yaml:"provider"`

	// BaseURL of the embedding service (http provider).
	BaseURL string `yaml:"base_url"`

	// Model identifier (http provider).
	Model string `yaml:"model"`

	// APIKey for the embedding service; optional for local services.
	APIKey string `yaml:"api_key"`

	// RequestsPerSecond caps embedding API calls.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// CacheBucket names a NATS KV bucket for the embedding cache.
	// Empty selects the in-memory cache.
	CacheBucket string `yaml:"cache_bucket"`

	// NATSURL is the NATS server for the KV cache, when CacheBucket
	// is set.
	NATSURL string `yaml:"nats_url"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		TemplateDir:       "templates/fm",
		SemanticThreshold: 0.70,
		Workers:           4,
		Embedding: EmbeddingConfig{
			Provider:          ProviderLexical,
			Model:             "all-MiniLM-L6-v2",
			RequestsPerSecond: 10,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a YAML config file over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapFatal(err, "config", "Load", "read config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "config", "Load", "decode config file")
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.TemplateDir == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "template_dir is required")
	}
	if c.SemanticThreshold < 0 || c.SemanticThreshold > 1 {
		return errors.WrapInvalid(
			fmt.Errorf("semantic_threshold %v outside [0,1]", c.SemanticThreshold),
			"config", "Validate", "check semantic_threshold")
	}
	if c.Workers < 1 {
		return errors.WrapInvalid(
			fmt.Errorf("workers %d must be at least 1", c.Workers),
			"config", "Validate", "check workers")
	}

	switch c.Embedding.Provider {
	case ProviderLexical:
	case ProviderHTTP:
		if c.Embedding.BaseURL == "" {
			return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "embedding.base_url is required for http provider")
		}
		if c.Embedding.Model == "" {
			return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "embedding.model is required for http provider")
		}
	default:
		return errors.WrapInvalid(
			fmt.Errorf("unknown embedding provider %q", c.Embedding.Provider),
			"config", "Validate", "check embedding.provider")
	}

	if c.Embedding.CacheBucket != "" && c.Embedding.NATSURL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "Validate", "embedding.nats_url is required with cache_bucket")
	}
	return nil
}
