// Package main implements the connectmap CLI. It reads a self-managed
// Kafka Connect connector export, maps every connector onto its
// fully-managed template, and writes one result file per connector.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360/connectmap/config"
	"github.com/c360/connectmap/connector"
	"github.com/c360/connectmap/mapping"
	"github.com/c360/connectmap/metric"
	"github.com/c360/connectmap/similarity"
	"github.com/c360/connectmap/template"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "connectmap"
)

// Result file subdirectories, one per outcome.
const (
	successfulDir   = "successful_configs"
	unsuccessfulDir = "unsuccessful_configs_with_errors"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mapper, cleanup, err := buildMapper(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	conns, err := loadConnectors(cliCfg.InputPath, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	results := mapper.MapAll(ctx, conns)

	if err := writeResults(cliCfg.OutputDir, results); err != nil {
		return err
	}

	successful := 0
	for _, res := range results {
		if res.Successful() {
			successful++
		}
	}
	slog.Info("Mapping complete",
		"connectors", len(results),
		"successful", successful,
		"unsuccessful", len(results)-successful,
		"duration", time.Since(start),
		"output_dir", cliCfg.OutputDir)
	return nil
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting connectmap (SM to FM connector config mapping)",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath,
		"input_path", cliCfg.InputPath)

	return cliCfg, logger, false, nil
}

// buildMapper assembles the mapping engine from the engine config:
// template catalog, transform registry, similarity provider, metrics.
func buildMapper(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mapping.Mapper, func(), error) {
	catalog, err := template.NewCatalog(template.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("create template catalog: %w", err)
	}
	count, err := catalog.LoadDir(cfg.TemplateDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load templates: %w", err)
	}
	slog.Info("Loaded FM templates", "count", count, "dir", cfg.TemplateDir)

	registry := template.NewTransformRegistry()
	if cfg.TransformFallback != "" {
		if err := registry.LoadFile(cfg.TransformFallback); err != nil {
			return nil, nil, fmt.Errorf("load transform fallback: %w", err)
		}
	}

	provider, cleanup, err := buildProvider(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build similarity provider: %w", err)
	}

	_, metrics, err := metric.NewRegistry()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create metrics: %w", err)
	}

	mapper := mapping.New(catalog,
		mapping.WithTransformRegistry(registry),
		mapping.WithSimilarityProvider(provider),
		mapping.WithThreshold(cfg.SemanticThreshold),
		mapping.WithWorkers(cfg.Workers),
		mapping.WithLogger(logger),
		mapping.WithMetrics(metrics),
	)
	return mapper, cleanup, nil
}

// buildProvider creates the similarity backend selected by config.
func buildProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (similarity.Provider, func(), error) {
	var embedder similarity.Embedder
	switch cfg.Embedding.Provider {
	case config.ProviderHTTP:
		var err error
		embedder, err = similarity.NewHTTPEmbedder(similarity.HTTPConfig{
			BaseURL:           cfg.Embedding.BaseURL,
			Model:             cfg.Embedding.Model,
			APIKey:            cfg.Embedding.APIKey,
			RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
			Logger:            logger,
		})
		if err != nil {
			return nil, nil, err
		}
	default:
		embedder = similarity.NewLexicalEmbedder(similarity.LexicalConfig{})
	}
	slog.Info("Similarity backend ready",
		"provider", cfg.Embedding.Provider, "model", embedder.Model())

	opts := []similarity.ProviderOption{similarity.WithProviderLogger(logger)}
	cleanup := func() { _ = embedder.Close() }

	if cfg.Embedding.CacheBucket != "" {
		nc, err := nats.Connect(cfg.Embedding.NATSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to NATS: %w", err)
		}
		js, err := jetstream.New(nc)
		if err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("create JetStream context: %w", err)
		}
		bucket, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      cfg.Embedding.CacheBucket,
			Description: "connectmap embedding cache",
		})
		if err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("open KV bucket %s: %w", cfg.Embedding.CacheBucket, err)
		}
		opts = append(opts, similarity.WithCache(similarity.NewNATSCache(bucket)))
		cleanup = func() {
			_ = embedder.Close()
			nc.Close()
		}
		slog.Info("Embedding cache backed by NATS KV", "bucket", cfg.Embedding.CacheBucket)
	}

	return similarity.NewEmbedderProvider(embedder, opts...), cleanup, nil
}

// loadConnectors reads and parses the SM connector export file.
func loadConnectors(path string, logger *slog.Logger) ([]connector.Connector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	conns, err := connector.Parse(data, logger)
	if err != nil {
		return nil, fmt.Errorf("parse input file: %w", err)
	}
	slog.Info("Parsed SM connector configs", "count", len(conns))
	return conns, nil
}

// writeResults writes one JSON file per connector, split by outcome.
func writeResults(outputDir string, results []*mapping.Result) error {
	for _, dir := range []string{successfulDir, unsuccessfulDir} {
		if err := os.MkdirAll(filepath.Join(outputDir, dir), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for i, res := range results {
		dir := unsuccessfulDir
		if res.Successful() {
			dir = successfulDir
		}

		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result for %s: %w", res.Name, err)
		}

		path := filepath.Join(outputDir, dir, resultFileName(res.Name, i))
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write result file: %w", err)
		}
		slog.Debug("Wrote mapping result", "connector", res.Name, "path", path)
	}
	return nil
}

// resultFileName derives a safe file name from a connector name. The
// positional index keeps unnamed connectors distinct.
func resultFileName(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("connector_%d.json", index)
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
	return safe + ".json"
}
