// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Style carries locale-aware presentation settings applied to a styled
// interpolation at substitution time.
type Style struct {
	// Locale selects the locale used for number formatting.
	// The zero tag formats for English.
	Locale language.Tag

	// TimeLayout is the Go time layout applied to styled dates.
	// Empty means [time.DateTime].
	TimeLayout string
}

func (s Style) layout() string {
	if s.TimeLayout == "" {
		return time.DateTime
	}

	return s.TimeLayout
}

func (s Style) printer() *message.Printer {
	tag := s.Locale
	if tag == (language.Tag{}) {
		tag = language.English
	}

	return message.NewPrinter(tag)
}

// Formattable is a Pairing that can restyle its placeholder and value for a
// given Style.
type Formattable interface {
	Pairing

	// StyledPlaceholder returns the placeholder used when a style is applied.
	StyledPlaceholder() string

	// StyledValue returns the value rendered under s.
	StyledValue(s Style) any
}

// Styled wraps p so the substitution engine uses its styled placeholder and
// value. Pairings that do not implement [Formattable] pass through unchanged.
func Styled(p Pairing, s Style) Pairing {
	return styledPairing{wrapped: p, style: s}
}

type styledPairing struct {
	wrapped Pairing
	style   Style
}

func (p styledPairing) Placeholder() string {
	if f, ok := p.wrapped.(Formattable); ok {
		return f.StyledPlaceholder()
	}

	return p.wrapped.Placeholder()
}

func (p styledPairing) Value() any {
	if f, ok := p.wrapped.(Formattable); ok {
		return f.StyledValue(p.style)
	}

	return p.wrapped.Value()
}

func (p datePairing) StyledPlaceholder() string { return "%@" }

func (p datePairing) StyledValue(s Style) any { return p.t.Format(s.layout()) }

// Styled numeric output is a string, so the placeholder widens to %@.

func (p intPairing) StyledPlaceholder() string { return "%@" }

func (p intPairing) StyledValue(s Style) any {
	return s.printer().Sprint(number.Decimal(int(p)))
}

func (p float32Pairing) StyledPlaceholder() string { return "%@" }

func (p float32Pairing) StyledValue(s Style) any {
	return s.printer().Sprint(number.Decimal(float32(p)))
}

func (p float64Pairing) StyledPlaceholder() string { return "%@" }

func (p float64Pairing) StyledValue(s Style) any {
	return s.printer().Sprint(number.Decimal(float64(p)))
}
