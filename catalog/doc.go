// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog provides read access to tables of localized strings.

The [Table] interface is the single collaborator required by package localize:
one lookup of a key inside a named table for a language. Backends implement it
over different storage formats:

  - [Gettext] loads GNU gettext .po catalogues, mapping table names to gettext
    domains.
  - [Messages] loads go-i18n TOML message files.
  - [JSON] queries flat per-locale JSON documents.
  - [Static] serves an in-memory map, useful for programmatic tables and
    tests.

All backends are read-only after construction and safe for concurrent use.
*/
package catalog
