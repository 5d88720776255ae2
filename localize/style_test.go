// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"codeberg.org/lokal/lokal/localize"
)

// TestStyledNumbers verifies that styling a numeric pairing widens the
// placeholder to %@ and renders a locale-formatted string instead of the raw
// number.
func TestStyledNumbers(t *testing.T) {
	t.Parallel()

	t.Run("Int_AmericanEnglish", func(t *testing.T) {
		t.Parallel()

		p := localize.Styled(localize.Int(1234567), localize.Style{Locale: language.AmericanEnglish})

		assert.Equal(t, "%@", p.Placeholder())
		assert.Equal(t, "1,234,567", p.Value())
	})

	t.Run("Int_German", func(t *testing.T) {
		t.Parallel()

		p := localize.Styled(localize.Int(1234567), localize.Style{Locale: language.German})

		assert.Equal(t, "%@", p.Placeholder())
		assert.Equal(t, "1.234.567", p.Value())
	})

	t.Run("Float64", func(t *testing.T) {
		t.Parallel()

		p := localize.Styled(localize.Float64(1234.5), localize.Style{Locale: language.AmericanEnglish})

		assert.Equal(t, "%@", p.Placeholder())
		assert.Equal(t, "1,234.5", p.Value())
	})

	t.Run("ZeroLocaleFormatsForEnglish", func(t *testing.T) {
		t.Parallel()

		p := localize.Styled(localize.Int(1000), localize.Style{})

		assert.Equal(t, "1,000", p.Value())
	})
}

// TestStyledDate verifies that a styled date renders through its time layout.
func TestStyledDate(t *testing.T) {
	t.Parallel()

	when := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	p := localize.Styled(localize.Date(when), localize.Style{TimeLayout: "2006-01-02"})

	assert.Equal(t, "%@", p.Placeholder())
	assert.Equal(t, "2025-06-01", p.Value())
}

// TestStyledPassthrough verifies that pairings without a styled form keep
// their plain placeholder and value when wrapped.
func TestStyledPassthrough(t *testing.T) {
	t.Parallel()

	p := localize.Styled(localize.Text("plain"), localize.Style{Locale: language.German})

	assert.Equal(t, "%@", p.Placeholder())
	assert.Equal(t, "plain", p.Value())
}
