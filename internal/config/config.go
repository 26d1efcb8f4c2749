// Copyright (C) 2021  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config decodes rule files into mailbox rule sources.
//
// A rule file contains one table per mailbox:
//
//	[Work]
//	addresses = """
//	boss@co.com
//	"""
//
//	[Lists]
//	patterns = [ '^list-.*@co\.com$' ]
//
// Top-level keys, that are not tables, are program settings. So are the tables "log", "journal",
// "storage" and "recipient", unless they contain addresses or patterns. Every other table is a
// mailbox, whatever its name.
//
// Patterns use Go's regexp syntax. They are lowercased like addresses, so escapes with an
// uppercase letter (for example \S) must not be used.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/rules"
)

const (
	fieldAddresses = "addresses"
	fieldPatterns  = "patterns"
)

// Error is returned if a rule file cannot be read or decoded.
type Error struct {
	Filename string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: could not load %q: %v", e.Filename, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	errNotAString  = errors.New("config: not a string")
	errNotAMapping = errors.New("config: document is not a mapping")
)

// settingTables are the namespaces of settings, that may be written as tables.
var settingTables = map[string]bool{
	"log":       true,
	"journal":   true,
	"storage":   true,
	"recipient": true,
}

// File is a decoded rule file.
type File struct {
	// Sources are the mailboxes in order of declaration.
	Sources []rules.Source
	// Settings are the top-level settings, keyed like viper keys.
	Settings map[string]interface{}
}

func newFile() *File {
	return &File{Settings: make(map[string]interface{})}
}

type decodeFunc func([]byte) (*File, error)

// Load reads and decodes the rule file. The format is chosen by file extension: ".yaml"
// and ".yml" are decoded as YAML, everything else as TOML.
func Load(fs afero.Fs, filename string) (*File, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, &Error{Filename: filename, Err: err}
	}

	file, err := decoderFor(filename)(data)
	if err != nil {
		return nil, &Error{Filename: filename, Err: err}
	}

	log.Debug().
		Str("filename", filename).
		Int("mailboxes", len(file.Sources)).
		Int("settings", len(file.Settings)).
		Msg("rules loaded")

	return file, nil
}

// LoadRules reads the rule file and returns only its mailboxes. The returned sources keep the
// order of declaration.
func LoadRules(fs afero.Fs, filename string) ([]rules.Source, error) {
	file, err := Load(fs, filename)
	if err != nil {
		return nil, err
	}

	return file.Sources, nil
}

// isSettingTable reports if a table holds settings rather than a mailbox.
func isSettingTable(name string, fields []string) bool {
	if !settingTables[strings.ToLower(name)] {
		return false
	}

	for _, field := range fields {
		if field == fieldAddresses || field == fieldPatterns {
			return false
		}
	}

	return true
}

func decoderFor(filename string) decodeFunc {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return decodeYAML
	default:
		return decodeTOML
	}
}

// fieldError describes a mailbox field of the wrong type.
func fieldError(mailbox, field, found string) error {
	return fmt.Errorf("expected a string or a list of strings for %s in mailbox %q, but found %s",
		field, mailbox, found)
}

func warnUnknownField(mailbox, field string) {
	log.Warn().
		Str("mailbox", mailbox).
		Str("field", field).
		Msg("ignoring unknown field")
}
