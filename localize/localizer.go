// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"codeberg.org/lokal/lokal/catalog"
)

// DefaultEscape is the character introducing interpolation markers.
const DefaultEscape = '@'

// Options configures a Localizer. The zero value selects the documented
// defaults. Options are read at construction time; configure once, up front,
// rather than mutating shared state at runtime.
type Options struct {
	// Escape is the single character introducing markers, so that a marker
	// reads as "<Escape>(name)". Default '@'.
	Escape rune

	// Table is the strings table consulted on lookup.
	// Default [catalog.DefaultTable].
	Table string

	// Prefix optionally derives a key prefix from the raw key. A non-empty
	// result is joined to the raw key with a "." to form the lookup key.
	Prefix func(key string) string

	// StrictMissing deduplicates missing-key warnings per locale+key and
	// visibly wraps fallback strings as "⟦...⟧". Intended for development
	// builds; leave off in production.
	StrictMissing bool

	// Logger overrides the package diagnostics logger.
	Logger *zerolog.Logger
}

// Localizer resolves templates against a strings table. Each call is a pure
// pipeline over immutable inputs; a Localizer is safe for concurrent use.
type Localizer struct {
	table       catalog.Table
	opts        Options
	marker      *regexp.Regexp
	logger      zerolog.Logger
	missingOnce sync.Map // strict-mode dedupe, see logMissing
}

// New returns a Localizer reading from table.
func New(table catalog.Table, opts Options) *Localizer {
	if opts.Escape == 0 {
		opts.Escape = DefaultEscape
	}

	if opts.Table == "" {
		opts.Table = catalog.DefaultTable
	}

	logger := Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Localizer{
		table:  table,
		opts:   opts,
		marker: markerPattern(opts.Escape),
		logger: logger,
	}
}

// Builder returns a Builder whose markers use this localizer's escape
// character and whose diagnostics go to its logger.
func (l *Localizer) Builder(literalLen, interpolationCount int) *Builder {
	return newBuilder(l.opts.Escape, l.logger, literalLen, interpolationCount)
}

// Resolve looks t's key up in the strings table and substitutes its
// interpolations. The language is taken from ctx (see [WithTag]).
//
// A missing entry falls back to the lookup key itself; because the key still
// contains the markers, substitution proceeds over it, so an untranslated
// template renders its interpolated values regardless. An empty entry is
// returned unchanged. Neither condition fails; both are logged.
func (l *Localizer) Resolve(ctx context.Context, t Template) string {
	key := t.key
	if l.opts.Prefix != nil {
		if p := l.opts.Prefix(t.key); p != "" {
			key = p + "." + t.key
		}
	}

	tag := TagFrom(ctx)

	resolved, ok := l.table.Lookup(key, l.opts.Table, tag)

	switch {
	case !ok:
		l.logMissing(tag, key)

		resolved = key
		if l.opts.StrictMissing {
			resolved = "⟦" + key + "⟧"
		}

	case resolved == "":
		l.logger.Warn().
			Str("table", l.opts.Table).
			Str("key", key).
			Msg("Localized value is empty")

		return ""
	}

	if len(t.args) == 0 {
		return resolved
	}

	return l.substitute(resolved, t.args)
}

// Tr resolves a raw key with alternating name, Pairing argument pairs:
//
//	loc.Tr(ctx, "Hello, @(name)", "name", localize.Text("World"))
//
// A malformed pair list is a programmer error and panics. Duplicate names are
// dropped with an error diagnostic, keeping the first occurrence.
func (l *Localizer) Tr(ctx context.Context, key string, kv ...any) string {
	if len(kv)%2 != 0 {
		panic("localize: Tr: odd number of arguments, want name, pairing pairs")
	}

	args := make(map[string]Pairing, len(kv)/2)

	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic("localize: Tr: interpolation name must be a string")
		}

		p, ok := kv[i+1].(Pairing)
		if !ok {
			panic("localize: Tr: interpolation value must be a Pairing")
		}

		canonical := strings.TrimSuffix(name, ":")
		if _, dup := args[canonical]; dup {
			l.logger.Error().
				Str("name", canonical).
				Msg("Duplicate interpolation name, keeping the first value")

			continue
		}

		args[canonical] = p
	}

	return l.Resolve(ctx, Template{key: key, args: args})
}

// Key is a raw lookup key with no interpolations.
//
// Construct with Key("Greeting") and call Resolve to look it up using the
// locale carried in ctx. cmd/msgextract collects Key constants into the
// extraction catalog.
type Key string

// Resolve looks k up through l. It is equivalent to resolving an empty
// template built from k.
func (k Key) Resolve(ctx context.Context, l *Localizer) string {
	return l.Resolve(ctx, Template{key: string(k)})
}
