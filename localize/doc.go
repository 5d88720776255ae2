// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package localize resolves interpolated string templates against a table of
localized strings.

A template is a raw lookup key containing interpolation markers such as
"@(name)", together with a named argument for each marker. Resolution looks the
key up in a [catalog.Table], replaces each marker with a printf-style
placeholder derived from the argument's type, and formats the result with the
argument values.

# Quick start

	loc := localize.New(table, localize.Options{})

	b := loc.Builder(len("Hello, "), 1)
	b.Literal("Hello, ")
	b.Interpolate("name:", localize.Text("World"))

	s := loc.Resolve(ctx, b.Template()) // "Hello, World"

Or, when the raw key is known up front:

	loc.Tr(ctx, "Hello, @(name)", "name", localize.Text("World"))

# Placeholders

Each supported value type carries a default placeholder: text and dates render
through %@, integers through %d, and floats through %f or %lf. The final
formatting step translates this vocabulary into fmt verbs, so a literal % in
template text must be written as %% (the Builder does this automatically).

# Styled interpolations

Wrapping an argument with [Styled] applies locale-aware presentation at
substitution time: dates take a time layout, numbers are grouped and punctuated
for the style's locale. Styled numeric values substitute through %@ because the
styled output is a string, not a raw numeric literal.

# Diagnostics

Nothing in this package fails hard at resolution time. Missing keys fall back
to the key itself, empty translations are returned unchanged, and malformed
marker/argument combinations degrade to the unsubstituted template; every such
condition is reported through the package logger (or [Options.Logger]). When
[Options.StrictMissing] is enabled, missing keys are logged once per
locale+key and the fallback is visibly wrapped as "⟦...⟧".
*/
package localize
