// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// DefaultTable is the strings table consulted when no table name is
// configured.
const DefaultTable = "Localizable"

// Logger is the logger used by package catalog.
var Logger = log.With().Str("sys", "catalog").Logger()

// Table provides read access to named tables of localized strings.
type Table interface {
	// Lookup returns the entry for key inside table for the given language.
	// It reports whether an entry exists, so callers can distinguish a
	// missing key from an intentionally empty translation.
	Lookup(key, table string, tag language.Tag) (string, bool)
}

// localeSet tracks the locales a backend has loaded and matches requested
// tags against them. The base locale is always first so it acts as the
// default fallback for matching.
type localeSet struct {
	tags    []language.Tag
	matcher language.Matcher
}

func (s *localeSet) add(t language.Tag) {
	for _, have := range s.tags {
		if have == t {
			return
		}
	}

	s.tags = append(s.tags, t)
}

// build finalizes the set and constructs the matcher.
func (s *localeSet) build() {
	sort.Slice(s.tags, func(i, j int) bool { return s.tags[i].String() < s.tags[j].String() })

	all := make([]language.Tag, 0, len(s.tags)+1)
	all = append(all, language.English)

	for _, t := range s.tags {
		if t == language.English {
			continue
		}

		all = append(all, t)
	}

	s.tags = all
	s.matcher = language.NewMatcher(all)
}

// match resolves t to the closest loaded locale. The matched index is used
// rather than the matched tag, which the matcher may decorate with
// extensions that no longer equal a loaded tag.
func (s *localeSet) match(t language.Tag) language.Tag {
	_, index := language.MatchStrings(s.matcher, t.String())

	return s.tags[index]
}

// languages returns a copy of the loaded tags, sorted by tag string.
func (s *localeSet) languages() []language.Tag {
	out := make([]language.Tag, len(s.tags))
	copy(out, s.tags)

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}
