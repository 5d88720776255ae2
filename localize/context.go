// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// BaseLocale is the locale assumed when no tag is carried in the context.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// LangParam is the name of the URL query parameter read by [FromRequest] as
// the preferred UI language, a BCP 47 tag.
const LangParam = "lang"

// WithTag stores t in ctx and returns a derived context that carries it.
//
// The returned context should be passed to downstream code that resolves
// templates. Passing the zero value of [language.Tag] clears any existing
// value. The ctx must not be nil.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the tag for [BaseLocale]
// if none is present. It never returns the zero value of [language.Tag] and
// accepts a nil ctx.
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// FromRequest returns the best language tag for r, matched against m, by
// inspecting user preferences in priority order:
// 1) query parameter [LangParam]
// 2) Accept-Language header
//
// Catalog backends that load locale files expose a suitable matcher, for
// example [catalog.Gettext.Matcher]. If r or m is nil, FromRequest returns
// the tag for [BaseLocale].
func FromRequest(r *http.Request, m language.Matcher) language.Tag {
	if r == nil || m == nil {
		return baseTag
	}

	preferred := make([]string, 0, 2)
	if q := r.URL.Query().Get(LangParam); q != "" && !strings.EqualFold(q, "auto") {
		preferred = append(preferred, q)
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}

	tag, _ := language.MatchStrings(m, preferred...)

	return tag
}

// WithRequest resolves the language from r using [FromRequest] and installs
// the matched tag in the returned context. The ctx must not be nil.
func WithRequest(ctx context.Context, r *http.Request, m language.Matcher) context.Context {
	return WithTag(ctx, FromRequest(r, m))
}
