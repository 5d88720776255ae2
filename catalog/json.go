// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

var _ Table = (*JSON)(nil)

// JSON is a Table backed by per-locale JSON documents. Each <locale>.json
// file maps table names to objects of key → localized string:
//
//	{
//	  "Localizable": {
//	    "Hello, @(name)": "Bonjour, @(name)"
//	  }
//	}
type JSON struct {
	docsByTag map[string][]byte
	locales   localeSet
}

// NewJSON loads every valid <locale>.json document from dir inside fsys,
// reading the files concurrently. Files whose locale part does not parse or
// whose content is not valid JSON are logged and skipped.
func NewJSON(fsys fs.FS, dir string) (*JSON, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue directory %s: %w", dir, err)
	}

	j := &JSON{docsByTag: make(map[string][]byte)}

	var (
		mu sync.Mutex
		eg errgroup.Group
	)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		localeName := strings.TrimSuffix(name, ".json")

		t, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
		if err != nil {
			Logger.Warn().
				Err(err).
				Str("file", name).
				Msg("Skipping invalid locale file")

			continue
		}

		eg.Go(func() error {
			data, err := fs.ReadFile(fsys, path.Join(dir, name))
			if err != nil {
				return fmt.Errorf("failed to read catalogue file %s: %w", name, err)
			}

			if !gjson.ValidBytes(data) {
				Logger.Warn().
					Str("file", name).
					Msg("Skipping malformed JSON catalogue")

				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			j.docsByTag[t.String()] = data

			j.locales.add(t)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	j.locales.build()

	return j, nil
}

// Lookup implements Table.
func (j *JSON) Lookup(key, table string, tag language.Tag) (string, bool) {
	doc, ok := j.docsByTag[j.locales.match(tag).String()]
	if !ok {
		return "", false
	}

	res := gjson.GetBytes(doc, escapePath(table)+"."+escapePath(key))
	if !res.Exists() || res.Type != gjson.String {
		return "", false
	}

	return res.String(), true
}

// Matcher returns a matcher over the loaded locales, suitable for
// [localize.FromRequest].
func (j *JSON) Matcher() language.Matcher {
	return j.locales.matcher
}

// Languages returns the loaded locales, sorted by tag string. The returned
// slice is a copy and safe to retain.
func (j *JSON) Languages() []language.Tag {
	return j.locales.languages()
}

// escapePath escapes gjson path syntax so a literal key can be used as a
// single path component.
func escapePath(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@':
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}
