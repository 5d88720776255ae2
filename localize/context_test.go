// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"codeberg.org/lokal/lokal/localize"
)

func TestTagFrom(t *testing.T) {
	t.Parallel()

	assert.Equal(t, language.Make(localize.BaseLocale), localize.TagFrom(t.Context()))
	assert.Equal(t, language.Make(localize.BaseLocale), localize.TagFrom(nil)) //nolint:staticcheck

	ctx := localize.WithTag(t.Context(), language.French)
	assert.Equal(t, language.French, localize.TagFrom(ctx))

	// Storing the zero tag clears the value.
	ctx = localize.WithTag(ctx, language.Tag{})
	assert.Equal(t, language.Make(localize.BaseLocale), localize.TagFrom(ctx))
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	matcher := language.NewMatcher([]language.Tag{language.English, language.French})

	tests := []struct {
		name   string
		target string
		accept string
		want   language.Tag
	}{
		{"query parameter", "/?lang=fr", "", language.French},
		{"accept header", "/", "fr", language.French},
		{"query beats header", "/?lang=fr", "en", language.French},
		{"auto defers to header", "/?lang=auto", "fr", language.French},
		{"no preference", "/", "", language.English},
		{"unsupported falls back", "/?lang=zu", "", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}

			assert.Equal(t, tt.want, localize.FromRequest(r, matcher))
		})
	}
}

func TestWithRequest(t *testing.T) {
	t.Parallel()

	matcher := language.NewMatcher([]language.Tag{language.English, language.French})

	r := httptest.NewRequest("GET", "/?lang=fr", nil)
	ctx := localize.WithRequest(t.Context(), r, matcher)

	assert.Equal(t, language.French, localize.TagFrom(ctx))
}
