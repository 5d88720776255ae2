// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var _ Table = (*Messages)(nil)

// Messages is a Table backed by go-i18n TOML message files.
//
// go-i18n has no native notion of tables; table names other than
// [DefaultTable] namespace the message ID as "<table>.<key>".
type Messages struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewMessages loads every messages.<lang>.toml file from dir inside fsys into
// a go-i18n bundle whose default language is defaultLang.
func NewMessages(fsys fs.FS, dir string, defaultLang language.Tag) (*Messages, error) {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read message directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "messages.") || !strings.HasSuffix(name, ".toml") {
			continue
		}

		if _, err := bundle.LoadMessageFileFS(fsys, path.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("failed to load message file %s: %w", name, err)
		}
	}

	return &Messages{bundle: bundle, defaultLang: defaultLang}, nil
}

// Lookup implements Table. go-i18n reports a missing message through a
// not-found error rather than a presence flag; that sentinel is translated
// back into ok == false here.
func (m *Messages) Lookup(key, table string, tag language.Tag) (string, bool) {
	id := key
	if table != "" && table != DefaultTable {
		id = table + "." + key
	}

	localizer := i18n.NewLocalizer(m.bundle, tag.String(), m.defaultLang.String())

	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return "", false
	}

	return msg, true
}
