package main

import (
	"flag"
	"fmt"
	"os"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	InputPath   string
	OutputDir   string
	LogLevel    string
	LogFormat   string
	Debug       bool
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("CONNECTMAP_CONFIG", ""),
		"Path to engine configuration file, empty for defaults (env: CONNECTMAP_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("CONNECTMAP_CONFIG", ""),
		"Path to engine configuration file, empty for defaults (env: CONNECTMAP_CONFIG)")

	flag.StringVar(&cfg.InputPath, "input",
		getEnv("CONNECTMAP_INPUT", ""),
		"Path to SM connector config JSON file (env: CONNECTMAP_INPUT)")

	flag.StringVar(&cfg.InputPath, "i",
		getEnv("CONNECTMAP_INPUT", ""),
		"Path to SM connector config JSON file (env: CONNECTMAP_INPUT)")

	flag.StringVar(&cfg.OutputDir, "output",
		getEnv("CONNECTMAP_OUTPUT", "output"),
		"Directory for mapping result files (env: CONNECTMAP_OUTPUT)")

	flag.StringVar(&cfg.OutputDir, "o",
		getEnv("CONNECTMAP_OUTPUT", "output"),
		"Directory for mapping result files (env: CONNECTMAP_OUTPUT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("CONNECTMAP_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: CONNECTMAP_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("CONNECTMAP_LOG_FORMAT", "text"),
		"Log format: json, text (env: CONNECTMAP_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("CONNECTMAP_DEBUG", false),
		"Enable debug mode (env: CONNECTMAP_DEBUG)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if !cfg.Validate {
		if cfg.InputPath == "" {
			return fmt.Errorf("input file is required (use -input)")
		}
		if _, err := os.Stat(cfg.InputPath); err != nil {
			return fmt.Errorf("input file not found: %s", cfg.InputPath)
		}
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Kafka Connect SM to FM configuration mapper

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Map a connector export with default settings
  %s --input=connectors.json --output=results

  # Run with a custom engine config and debug logging
  %s --config=/etc/connectmap/config.yaml --input=connectors.json --log-level=debug

  # Run with environment variables
  export CONNECTMAP_INPUT=/data/connectors.json
  export CONNECTMAP_LOG_LEVEL=debug
  %s

  # Validate configuration only
  %s --config=/etc/connectmap/config.yaml --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "1", "true", "TRUE", "True":
			return true
		case "0", "false", "FALSE", "False":
			return false
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
