// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"codeberg.org/lokal/lokal/catalog"
	"codeberg.org/lokal/lokal/localize"
)

// newTestLocalizer returns a localizer over table whose diagnostics are
// captured in the returned builder.
func newTestLocalizer(table catalog.Table, opts localize.Options) (*localize.Localizer, *strings.Builder) {
	var buf strings.Builder

	logger := zerolog.New(&buf)
	opts.Logger = &logger

	return localize.New(table, opts), &buf
}

func TestBuilderLiteralEscapesPercent(t *testing.T) {
	t.Parallel()

	b := localize.NewBuilder(len("100% sure"), 0)
	b.Literal("100% sure")

	assert.Equal(t, "100%% sure", b.Template().Key())
}

func TestBuilderAppendsMarker(t *testing.T) {
	t.Parallel()

	b := localize.NewBuilder(8, 1)
	b.Literal("Hello, ")
	b.Interpolate("name:", localize.Text("World"))

	assert.Equal(t, "Hello, @(name)", b.Template().Key())
}

func TestBuilderCustomEscape(t *testing.T) {
	t.Parallel()

	loc, _ := newTestLocalizer(catalog.Static{}, localize.Options{Escape: '#'})

	b := loc.Builder(4, 1)
	b.Literal("Hi ")
	b.Interpolate("name", localize.Text("x"))

	assert.Equal(t, "Hi #(name)", b.Template().Key())
}

// TestBuilderDuplicateName verifies that a duplicate interpolation name keeps
// the first pairing, inserts no second marker, and raises one diagnostic.
func TestBuilderDuplicateName(t *testing.T) {
	t.Parallel()

	loc, buf := newTestLocalizer(catalog.Static{}, localize.Options{})

	b := loc.Builder(4, 2)
	b.Literal("Hi ")
	b.Interpolate("name:", localize.Text("first"))
	b.Interpolate("name", localize.Text("second"))

	tmpl := b.Template()
	assert.Equal(t, "Hi @(name)", tmpl.Key())

	// The key is missing from the table, so resolution falls back to it and
	// substitutes over it; the retained pairing must be the first one.
	got := loc.Resolve(t.Context(), tmpl)
	assert.Equal(t, "Hi first", got)

	assert.Equal(t, 1, strings.Count(buf.String(), "Duplicate interpolation name"))
}
