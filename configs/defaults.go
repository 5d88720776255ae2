// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/lokal/lokal/catalog"

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Catalog.Format = "po"
	cfg.Catalog.Dir = "./locales"
	cfg.Catalog.Table = catalog.DefaultTable
	cfg.Catalog.DefaultLocale = "en"

	cfg.Markers.Escape = "@"
	cfg.Markers.StrictMissing = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
