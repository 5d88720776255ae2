// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Logger is the default diagnostics logger used by package localize.
// Override per Localizer through [Options.Logger].
var Logger = log.With().Str("sys", "localize").Logger()

// logMissing reports a key that has no entry in the strings table. In strict
// mode the warning is deduplicated per (locale, key) pair.
func (l *Localizer) logMissing(tag language.Tag, key string) {
	if l.opts.StrictMissing {
		id := strippedTagString(tag) + "\x00" + key
		if _, loaded := l.missingOnce.LoadOrStore(id, struct{}{}); loaded {
			return
		}
	}

	l.logger.Warn().
		Str("locale", tag.String()).
		Str("table", l.opts.Table).
		Str("key", key).
		Msg("Key not found in strings table")
}

// strippedTagString removes variants to form a stable key using base, script
// and region only.
func strippedTagString(tag language.Tag) string {
	b, s, r := tag.Raw()
	stripped, _ := language.Compose(b, s, r)

	return stripped.String()
}
