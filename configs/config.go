// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/language"

	"codeberg.org/lokal/lokal/catalog"
	"codeberg.org/lokal/lokal/localize"
)

// Global exposes the tool configuration.
var Global Config

// Config holds the configuration shared by the lokal command-line tools.
type Config struct {
	Build buildInfo `yaml:"-"`

	Catalog struct {
		// Format selects the catalogue backend: "po", "toml" or "json".
		Format string `env:"LOKAL_CATALOG_FORMAT,overwrite" yaml:"format"`
		// Dir is the directory holding the catalogue files.
		Dir string `env:"LOKAL_CATALOG_DIR,overwrite" yaml:"dir"`
		// Table is the strings table consulted on lookup.
		Table string `env:"LOKAL_CATALOG_TABLE,overwrite" yaml:"table"`
		// DefaultLocale is the bundle default for the toml backend.
		DefaultLocale string `env:"LOKAL_CATALOG_DEFAULT_LOCALE,overwrite" yaml:"defaultLocale"`
	} `yaml:"catalog"`

	Markers struct {
		// Escape is the single character introducing interpolation markers.
		Escape string `env:"LOKAL_MARKER_ESCAPE,overwrite" yaml:"escape"`

		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key)
		// and visibly wrapped using markers.
		StrictMissing bool `env:"LOKAL_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"markers"`

	Log struct {
		Level   string   `env:"LOKAL_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"LOKAL_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"LOKAL_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *Config) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (LOKAL_CONFIGFILE)
	// 3. Default path with fallback check
	if configFlagUserSet {
		configFilePath = parsedConfigFlagValue
	} else if envVar := os.Getenv("LOKAL_CONFIGFILE"); envVar != "" {
		configFilePath = envVar
	} else {
		configFilePath = parsedConfigFlagValue
		// Perform a fallback check for "./config.yml".
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()

	cfg.print()

	return nil
}

// Open constructs the catalogue backend selected by the configuration.
func (cfg *Config) Open() (catalog.Table, error) {
	fsys := os.DirFS(cfg.Catalog.Dir)

	switch cfg.Catalog.Format {
	case "po":
		return catalog.NewGettext(fsys, ".")
	case "toml":
		tag, err := language.Parse(cfg.Catalog.DefaultLocale)
		if err != nil {
			return nil, fmt.Errorf("invalid default locale %q: %w", cfg.Catalog.DefaultLocale, err)
		}

		return catalog.NewMessages(fsys, ".", tag)
	case "json":
		return catalog.NewJSON(fsys, ".")
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCatalogFormat, cfg.Catalog.Format)
	}
}

// Options returns the localize options selected by the configuration.
// The configuration must have been validated.
func (cfg *Config) Options() localize.Options {
	escape, _ := utf8.DecodeRuneInString(cfg.Markers.Escape)

	return localize.Options{
		Escape:        escape,
		Table:         cfg.Catalog.Table,
		StrictMissing: cfg.Markers.StrictMissing,
	}
}
