// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/lokal/lokal/catalog"
)

const enMessages = `Greeting = "Hello"
"Hello, @(name)" = "Hello, @(name)"

[Errors]
NotFound = "not found"
`

const frMessages = `Greeting = "Salut"

[Errors]
NotFound = "Introuvable"
`

func newMessagesFixture(t *testing.T) *catalog.Messages {
	t.Helper()

	fsys := fstest.MapFS{
		"locales/messages.en.toml": {Data: []byte(enMessages)},
		"locales/messages.fr.toml": {Data: []byte(frMessages)},
		"locales/ignored.txt":      {Data: []byte("not a message file")},
	}

	m, err := catalog.NewMessages(fsys, "locales", language.English)
	require.NoError(t, err)

	return m
}

func TestMessagesLookup(t *testing.T) {
	t.Parallel()

	m := newMessagesFixture(t)

	got, ok := m.Lookup("Greeting", catalog.DefaultTable, language.French)
	assert.True(t, ok)
	assert.Equal(t, "Salut", got)
}

// Keys containing marker syntax need quoting in the TOML source but look up
// verbatim.
func TestMessagesLookupQuotedKey(t *testing.T) {
	t.Parallel()

	m := newMessagesFixture(t)

	got, ok := m.Lookup("Hello, @(name)", catalog.DefaultTable, language.English)
	assert.True(t, ok)
	assert.Equal(t, "Hello, @(name)", got)
}

// Non-default table names namespace the message ID with the table name.
func TestMessagesLookupTable(t *testing.T) {
	t.Parallel()

	m := newMessagesFixture(t)

	got, ok := m.Lookup("NotFound", "Errors", language.French)
	assert.True(t, ok)
	assert.Equal(t, "Introuvable", got)
}

// A locale without its own message falls back to the bundle's default
// language.
func TestMessagesLookupFallback(t *testing.T) {
	t.Parallel()

	m := newMessagesFixture(t)

	got, ok := m.Lookup("Greeting", catalog.DefaultTable, language.German)
	assert.True(t, ok)
	assert.Equal(t, "Hello", got)
}

func TestMessagesLookupMissing(t *testing.T) {
	t.Parallel()

	m := newMessagesFixture(t)

	_, ok := m.Lookup("Nonexistent", catalog.DefaultTable, language.English)
	assert.False(t, ok)
}
