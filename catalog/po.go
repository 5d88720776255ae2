// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

var _ Table = (*Gettext)(nil)

// Gettext is a Table backed by GNU gettext .po catalogues. Table names map to
// gettext domains.
type Gettext struct {
	localesByTag map[string]*gotext.Locale
	locales      localeSet
}

// NewGettext loads .po catalogues from dir inside fsys. Two filename layouts
// are accepted:
//
//	<dir>/<locale>.po          entries for [DefaultTable]
//	<dir>/<table>.<locale>.po  entries for the named table
//
// The <locale> part may use hyphens or underscores, for example "pt-BR.po" or
// "pt_BR.po", and is normalised to a canonical BCP 47 tag for matching.
// Template files ending in .pot are ignored, as are files whose locale part
// does not parse (these are logged and skipped). Catalogue files are parsed
// concurrently.
func NewGettext(fsys fs.FS, dir string) (*Gettext, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue directory %s: %w", dir, err)
	}

	g := &Gettext{localesByTag: make(map[string]*gotext.Locale)}

	var (
		mu sync.Mutex
		eg errgroup.Group
	)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".po") {
			continue
		}

		table, localeName := splitCatalogueName(strings.TrimSuffix(name, ".po"))

		// Accept both underscore and hyphen.
		t, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
		if err != nil {
			Logger.Warn().
				Err(err).
				Str("file", name).
				Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		eg.Go(func() error {
			po := gotext.NewPoFS(fsys)
			po.ParseFile(path.Join(dir, name))

			mu.Lock()
			defer mu.Unlock()

			loc, ok := g.localesByTag[canonical]
			if !ok {
				// Base path is unused when manually adding translators.
				loc = gotext.NewLocale("", canonical)
				g.localesByTag[canonical] = loc

				g.locales.add(t)
			}

			loc.AddTranslator(table, po)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.locales.build()

	return g, nil
}

// splitCatalogueName separates an optional table prefix from the locale part
// of a catalogue filename (extension already trimmed).
func splitCatalogueName(base string) (table, locale string) {
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[:i], base[i+1:]
	}

	return DefaultTable, base
}

// Lookup implements Table.
func (g *Gettext) Lookup(key, table string, tag language.Tag) (string, bool) {
	loc := g.localesByTag[g.locales.match(tag).String()]
	if loc == nil {
		return "", false
	}

	if !loc.IsTranslatedD(table, key) {
		return "", false
	}

	return loc.GetD(table, key), true
}

// Matcher returns a matcher over the loaded locales, suitable for
// [localize.FromRequest].
func (g *Gettext) Matcher() language.Matcher {
	return g.locales.matcher
}

// Languages returns the loaded locales, sorted by tag string. The returned
// slice is a copy and safe to retain.
func (g *Gettext) Languages() []language.Tag {
	return g.locales.languages()
}
