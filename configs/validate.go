// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/language"
)

var (
	errUnknownCatalogFormat = errors.New("unknown catalogue format, want po, toml or json")
	errEscapeNotSingleRune  = errors.New("marker escape must be exactly one character")
	errEscapeReserved       = errors.New("marker escape conflicts with marker or format syntax")
	errUnknownLogLevel      = errors.New("unknown log level, want debug, info, warn or error")
	errUnknownLogFormat     = errors.New("unknown log format, want console or json")
)

// validate applies all rules to the loaded configuration.
func (cfg *Config) validate() error {
	if !slices.Contains([]string{"po", "toml", "json"}, cfg.Catalog.Format) {
		return fmt.Errorf("%w: %q", errUnknownCatalogFormat, cfg.Catalog.Format)
	}

	if _, err := language.Parse(cfg.Catalog.DefaultLocale); err != nil {
		return fmt.Errorf("invalid default locale %q: %w", cfg.Catalog.DefaultLocale, err)
	}

	if utf8.RuneCountInString(cfg.Markers.Escape) != 1 {
		return fmt.Errorf("%w, got %q", errEscapeNotSingleRune, cfg.Markers.Escape)
	}

	// '%' would collide with the printf escaping pass and parentheses with
	// the marker syntax itself.
	switch cfg.Markers.Escape {
	case "%", "(", ")":
		return fmt.Errorf("%w: %q", errEscapeReserved, cfg.Markers.Escape)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.Log.Level) {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.Log.Level)
	}

	if !slices.Contains([]string{"console", "json"}, cfg.Log.Format) {
		return fmt.Errorf("%w: %q", errUnknownLogFormat, cfg.Log.Format)
	}

	return nil
}
