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

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/rules"
)

func decodeTOML(data []byte) (*File, error) {
	var document map[string]interface{}

	meta, err := toml.Decode(string(data), &document)
	if err != nil {
		return nil, err
	}

	var (
		file = newFile()
		seen = make(map[string]bool)
	)

	// The document is a map, so the order is taken from the metadata.
	for _, key := range meta.Keys() {
		name := key[0]
		if seen[name] {
			continue
		}

		seen[name] = true

		table, ok := document[name].(map[string]interface{})
		if !ok || isSettingTable(name, tomlFields(table)) {
			log.Debug().Str("key", name).Msg("reading setting")
			file.Settings[name] = document[name]
			continue
		}

		source, err := tomlSource(name, table)
		if err != nil {
			return nil, err
		}

		file.Sources = append(file.Sources, source)
	}

	return file, nil
}

func tomlFields(table map[string]interface{}) []string {
	fields := make([]string, 0, len(table))

	for field := range table {
		fields = append(fields, field)
	}

	return fields
}

func tomlSource(name string, table map[string]interface{}) (rules.Source, error) {
	source := rules.Source{Mailbox: name}

	for field, value := range table {
		var target *[]string

		switch field {
		case fieldAddresses:
			target = &source.Addresses
		case fieldPatterns:
			target = &source.Patterns
		default:
			warnUnknownField(name, field)
			continue
		}

		lines, err := tomlStrings(value)
		if err != nil {
			return source, fieldError(name, field, fmt.Sprintf("%T", value))
		}

		*target = lines
	}

	return source, nil
}

func tomlStrings(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil

	case []interface{}:
		lines := make([]string, 0, len(v))

		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errNotAString
			}

			lines = append(lines, s)
		}

		return lines, nil
	}

	return nil, errNotAString
}
