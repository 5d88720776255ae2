// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"strings"

	"github.com/rs/zerolog"
)

// Template is a raw lookup key plus its named interpolation arguments.
// It is immutable after construction and consumed once by a Localizer.
type Template struct {
	key  string
	args map[string]Pairing
}

// Key returns the accumulated raw lookup key, markers included.
func (t Template) Key() string { return t.key }

// Builder accumulates literal text and named interpolations while a template
// is being constructed. It validates argument-name uniqueness: a name used
// twice keeps its first pairing and raises an error diagnostic.
type Builder struct {
	key    strings.Builder
	args   map[string]Pairing
	escape rune
	logger zerolog.Logger
}

// NewBuilder returns a Builder using the default escape character.
//
// literalLen is the expected total literal length; the key buffer reserves
// twice that to amortize growth from percent escaping. interpolationCount
// sizes the argument map. Both are hints, not limits.
func NewBuilder(literalLen, interpolationCount int) *Builder {
	return newBuilder(DefaultEscape, Logger, literalLen, interpolationCount)
}

func newBuilder(escape rune, logger zerolog.Logger, literalLen, interpolationCount int) *Builder {
	b := &Builder{
		args:   make(map[string]Pairing, interpolationCount),
		escape: escape,
		logger: logger,
	}
	b.key.Grow(2 * literalLen)

	return b
}

// Literal appends text verbatim, escaping every % as %% so it survives the
// final formatting step untouched.
func (b *Builder) Literal(text string) *Builder {
	b.key.WriteString(strings.ReplaceAll(text, "%", "%%"))

	return b
}

// Interpolate records p under name and appends the corresponding marker to
// the raw key. A trailing ":" carried over from the call-site label is
// stripped to obtain the canonical parameter name.
func (b *Builder) Interpolate(name string, p Pairing) *Builder {
	canonical := strings.TrimSuffix(name, ":")

	if _, dup := b.args[canonical]; dup {
		b.logger.Error().
			Str("name", canonical).
			Msg("Duplicate interpolation name, keeping the first value")

		return b
	}

	b.args[canonical] = p

	b.key.WriteRune(b.escape)
	b.key.WriteByte('(')
	b.key.WriteString(canonical)
	b.key.WriteByte(')')

	return b
}

// InterpolateStyled records p wrapped with s, so substitution uses the styled
// placeholder and value.
func (b *Builder) InterpolateStyled(name string, p Pairing, s Style) *Builder {
	return b.Interpolate(name, Styled(p, s))
}

// Template returns the accumulated template.
func (b *Builder) Template() Template {
	return Template{key: b.key.String(), args: b.args}
}
