// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "golang.org/x/text/language"

var _ Table = Static{}

// Static is an in-memory Table, useful for programmatic tables and tests.
// The outer map is keyed by table name, the inner by lookup key.
//
// Lookups ignore the language tag: a Static table holds exactly one locale's
// strings.
type Static map[string]map[string]string

// Lookup implements Table.
func (s Static) Lookup(key, table string, _ language.Tag) (string, bool) {
	entries, ok := s[table]
	if !ok {
		return "", false
	}

	value, ok := entries[key]

	return value, ok
}
