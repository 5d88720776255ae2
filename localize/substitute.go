// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// markerPattern compiles the marker regexp for the given escape character.
// A marker is the escape followed by a parenthesized, non-empty name.
func markerPattern(escape rune) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(string(escape)) + `\(([^()]+)\)`)
}

// substitute replaces every marker in resolved with its argument's
// placeholder and formats the result with the ordered argument values.
//
// A marker naming an unrecorded argument aborts substitution: the resolved
// template is returned unmodified and the diagnostic lists the valid
// parameter names. A string without markers is returned as-is, which makes
// substitution idempotent.
func (l *Localizer) substitute(resolved string, args map[string]Pairing) string {
	matches := l.marker.FindAllStringSubmatch(resolved, -1)
	if len(matches) == 0 {
		return resolved
	}

	format := resolved
	values := make([]any, 0, len(matches))

	for _, m := range matches {
		pattern, name := m[0], m[1]

		p, ok := args[name]
		if !ok {
			l.logger.Error().
				Str("name", name).
				Str("valid", parameterNames(args)).
				Msg("No argument recorded for marker, substitution aborted")

			return resolved
		}

		// Duplicate occurrences of the same marker are all replaced on the
		// first match; the later matches only append their values, keeping
		// placeholder and value counts aligned.
		format = strings.ReplaceAll(format, pattern, p.Placeholder())

		values = append(values, p.Value())
	}

	if len(matches) != len(values) {
		l.logger.Warn().
			Int("markers", len(matches)).
			Int("values", len(values)).
			Msg("Marker and value counts differ, returning template unsubstituted")

		return resolved
	}

	return fmt.Sprintf(printfFormat(format), values...)
}

// parameterNames returns the template's parameter names, sorted and
// comma-separated, for diagnostics.
func parameterNames(args map[string]Pairing) string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}

	sort.Strings(names)

	return strings.Join(names, ", ")
}

// printfFormat rewrites the placeholder vocabulary into fmt verbs: %@ renders
// any value and %lf is the double conversion, neither of which fmt
// understands directly. %% and the remaining verbs pass through untouched.
func printfFormat(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}

		switch s[i+1] {
		case '@':
			b.WriteString("%v")

			i++
		case 'l':
			if i+2 < len(s) && s[i+2] == 'f' {
				b.WriteString("%f")

				i += 2
			} else {
				b.WriteByte(c)
			}
		case '%':
			b.WriteString("%%")

			i++
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
