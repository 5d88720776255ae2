// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/lokal/lokal/catalog"
	"codeberg.org/lokal/lokal/localize"
)

func TestResolveSubstitutes(t *testing.T) {
	t.Parallel()

	table := catalog.Static{
		"Localizable": {
			"Hello, @(name)": "Bonjour, @(name)",
		},
	}
	loc, _ := newTestLocalizer(table, localize.Options{})

	got := loc.Tr(t.Context(), "Hello, @(name)", "name", localize.Text("World"))
	assert.Equal(t, "Bonjour, World", got)
}

// TestResolveMissingKey verifies the fallback path: the key itself is the
// template, so interpolations still substitute, and a warning is raised.
func TestResolveMissingKey(t *testing.T) {
	t.Parallel()

	loc, buf := newTestLocalizer(catalog.Static{}, localize.Options{})

	got := loc.Tr(t.Context(), "Hello, @(name)", "name", localize.Text("World"))
	assert.Equal(t, "Hello, World", got)
	assert.Contains(t, buf.String(), "Key not found in strings table")
}

func TestResolveMissingKeyNoArgs(t *testing.T) {
	t.Parallel()

	loc, buf := newTestLocalizer(catalog.Static{}, localize.Options{})

	got := loc.Resolve(t.Context(), localize.NewBuilder(8, 0).Literal("Greeting").Template())
	assert.Equal(t, "Greeting", got)
	assert.Contains(t, buf.String(), "Key not found in strings table")
}

func TestResolveEmptyValue(t *testing.T) {
	t.Parallel()

	table := catalog.Static{"Localizable": {"Greeting": ""}}
	loc, buf := newTestLocalizer(table, localize.Options{})

	got := loc.Tr(t.Context(), "Greeting")
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "Localized value is empty")
}

func TestResolveNoInterpolations(t *testing.T) {
	t.Parallel()

	table := catalog.Static{"Localizable": {"Plain": "Ordinaire, 100% pur"}}
	loc, _ := newTestLocalizer(table, localize.Options{})

	// A template without pairings skips substitution entirely, so a bare
	// percent sign in the translation survives.
	got := loc.Tr(t.Context(), "Plain")
	assert.Equal(t, "Ordinaire, 100% pur", got)
}

func TestResolvePrefix(t *testing.T) {
	t.Parallel()

	table := catalog.Static{"Localizable": {"settings.Title": "Réglages"}}
	loc, _ := newTestLocalizer(table, localize.Options{
		Prefix: func(string) string { return "settings" },
	})

	assert.Equal(t, "Réglages", loc.Tr(t.Context(), "Title"))
}

// TestResolvePrefixFallback verifies that the fallback for a missing key is
// the effective, prefixed key rather than the bare one.
func TestResolvePrefixFallback(t *testing.T) {
	t.Parallel()

	loc, _ := newTestLocalizer(catalog.Static{}, localize.Options{
		Prefix: func(string) string { return "settings" },
	})

	assert.Equal(t, "settings.Title", loc.Tr(t.Context(), "Title"))
}

// TestResolveUnknownMarker verifies that a marker with no recorded pairing
// aborts substitution, returns the resolved text unchanged, and lists the
// valid names in the diagnostic.
func TestResolveUnknownMarker(t *testing.T) {
	t.Parallel()

	table := catalog.Static{
		"Localizable": {
			"Hello, @(name)": "Bonjour, @(nom)",
		},
	}
	loc, buf := newTestLocalizer(table, localize.Options{})

	got := loc.Tr(t.Context(), "Hello, @(name)",
		"name", localize.Text("World"),
		"age", localize.Int(7),
	)
	assert.Equal(t, "Bonjour, @(nom)", got)

	diag := buf.String()
	assert.Contains(t, diag, "substitution aborted")
	assert.Contains(t, diag, "age, name")
}

func TestResolveCustomEscape(t *testing.T) {
	t.Parallel()

	table := catalog.Static{
		"Localizable": {
			"Hello, #(name)": "Bonjour, #(name)",
		},
	}
	loc, _ := newTestLocalizer(table, localize.Options{Escape: '#'})

	got := loc.Tr(t.Context(), "Hello, #(name)", "name", localize.Text("World"))
	assert.Equal(t, "Bonjour, World", got)
}

func TestResolveTable(t *testing.T) {
	t.Parallel()

	table := catalog.Static{
		"Errors": {"NotFound": "Introuvable"},
	}
	loc, _ := newTestLocalizer(table, localize.Options{Table: "Errors"})

	assert.Equal(t, "Introuvable", loc.Tr(t.Context(), "NotFound"))
}

func TestResolveStrictMissing(t *testing.T) {
	t.Parallel()

	loc, buf := newTestLocalizer(catalog.Static{}, localize.Options{StrictMissing: true})

	assert.Equal(t, "⟦Greeting⟧", loc.Tr(t.Context(), "Greeting"))

	// A second resolution of the same key must not log again.
	loc.Tr(t.Context(), "Greeting")
	assert.Equal(t, 1, strings.Count(buf.String(), "Key not found in strings table"))
}

func TestResolveIdempotent(t *testing.T) {
	t.Parallel()

	table := catalog.Static{
		"Localizable": {"Hello, @(name)": "Hello, @(name)"},
	}
	loc, _ := newTestLocalizer(table, localize.Options{})

	first := loc.Tr(t.Context(), "Hello, @(name)", "name", localize.Text("World"))
	second := loc.Tr(t.Context(), "Hello, @(name)", "name", localize.Text("World"))
	assert.Equal(t, first, second)
}

func TestTrPanicsOnBadArguments(t *testing.T) {
	t.Parallel()

	loc, _ := newTestLocalizer(catalog.Static{}, localize.Options{})

	assert.Panics(t, func() { loc.Tr(t.Context(), "Key", "name") })
	assert.Panics(t, func() { loc.Tr(t.Context(), "Key", 42, localize.Int(1)) })
	assert.Panics(t, func() { loc.Tr(t.Context(), "Key", "name", "not a pairing") })
}

func TestKeyResolve(t *testing.T) {
	t.Parallel()

	table := catalog.Static{"Localizable": {"Greeting": "Salut"}}
	loc, _ := newTestLocalizer(table, localize.Options{})

	require.Equal(t, "Salut", localize.Key("Greeting").Resolve(t.Context(), loc))
}

func TestResolvePairingPlaceholders(t *testing.T) {
	t.Parallel()

	table := catalog.Static{
		"Localizable": {
			"@(count) items at @(price)": "@(count) items at @(price)",
		},
	}
	loc, _ := newTestLocalizer(table, localize.Options{})

	got := loc.Tr(t.Context(), "@(count) items at @(price)",
		"count", localize.Int(3),
		"price", localize.Float64(1.5),
	)
	assert.Equal(t, "3 items at 1.500000", got)
}
