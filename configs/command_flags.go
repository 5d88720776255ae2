// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses flags, returning the value of the
// "config" flag.
func parseCommandLineArgs() string {
	var configFilePath string

	if flag.Lookup("config") == nil {
		flag.StringVar(&configFilePath, "config", "./config.yaml", "Path to a lokal configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return configFilePath
}
