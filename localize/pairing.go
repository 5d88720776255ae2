// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"time"
)

// Pairing associates a captured value with the printf-style placeholder used
// to render it. Pairings are created once per interpolated value, are
// immutable, and are discarded after substitution.
type Pairing interface {
	// Placeholder returns the conversion token substituted into the format
	// string, one of %@, %d, %f or %lf.
	Placeholder() string

	// Value returns the argument passed to the final formatting step.
	Value() any
}

// Text pairs a string with %@.
func Text(s string) Pairing { return textPairing(s) }

// Date pairs a time with %@ and its textual description.
func Date(t time.Time) Pairing { return datePairing{t} }

// Int pairs an integer with %d.
func Int(n int) Pairing { return intPairing(n) }

// Float32 pairs a single-precision float with %f.
func Float32(f float32) Pairing { return float32Pairing(f) }

// Float64 pairs a double-precision float with %lf.
func Float64(f float64) Pairing { return float64Pairing(f) }

// Optional defers to the wrapped pairing when it is non-nil; a nil pairing
// renders as the literal text "nil" through %@.
func Optional(p Pairing) Pairing { return optionalPairing{p} }

type textPairing string

func (p textPairing) Placeholder() string { return "%@" }
func (p textPairing) Value() any          { return string(p) }

type datePairing struct {
	t time.Time
}

func (p datePairing) Placeholder() string { return "%@" }
func (p datePairing) Value() any          { return p.t.String() }

type intPairing int

func (p intPairing) Placeholder() string { return "%d" }
func (p intPairing) Value() any          { return int(p) }

type float32Pairing float32

func (p float32Pairing) Placeholder() string { return "%f" }
func (p float32Pairing) Value() any          { return float32(p) }

type float64Pairing float64

func (p float64Pairing) Placeholder() string { return "%lf" }
func (p float64Pairing) Value() any          { return float64(p) }

type optionalPairing struct {
	wrapped Pairing
}

func (p optionalPairing) Placeholder() string {
	if p.wrapped == nil {
		return "%@"
	}

	return p.wrapped.Placeholder()
}

func (p optionalPairing) Value() any {
	if p.wrapped == nil {
		return "nil"
	}

	return p.wrapped.Value()
}
