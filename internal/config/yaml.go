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

	"gopkg.in/yaml.v3"

	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/rules"
)

const (
	tagString = "!!str"
	tagNull   = "!!null"
)

func decodeYAML(data []byte) (*File, error) {
	var document yaml.Node

	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	file := newFile()

	// An empty document has no content at all.
	if len(document.Content) == 0 {
		return file, nil
	}

	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errNotAMapping
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		var (
			name  = root.Content[i].Value
			value = root.Content[i+1]
		)

		if value.Kind != yaml.MappingNode || isSettingTable(name, yamlFields(value)) {
			log.Debug().Str("key", name).Msg("reading setting")

			var setting interface{}
			if err := value.Decode(&setting); err != nil {
				return nil, fmt.Errorf("line %d: %w", value.Line, err)
			}

			file.Settings[name] = setting
			continue
		}

		source, err := yamlSource(name, value)
		if err != nil {
			return nil, err
		}

		file.Sources = append(file.Sources, source)
	}

	return file, nil
}

func yamlFields(table *yaml.Node) []string {
	fields := make([]string, 0, len(table.Content)/2)

	for i := 0; i+1 < len(table.Content); i += 2 {
		fields = append(fields, table.Content[i].Value)
	}

	return fields
}

func yamlSource(name string, table *yaml.Node) (rules.Source, error) {
	source := rules.Source{Mailbox: name}

	for i := 0; i+1 < len(table.Content); i += 2 {
		var (
			field  = table.Content[i].Value
			value  = table.Content[i+1]
			target *[]string
		)

		switch field {
		case fieldAddresses:
			target = &source.Addresses
		case fieldPatterns:
			target = &source.Patterns
		default:
			warnUnknownField(name, field)
			continue
		}

		lines, err := yamlStrings(value)
		if err != nil {
			return source, fmt.Errorf("line %d: %w", value.Line, fieldError(name, field, value.Tag))
		}

		*target = lines
	}

	return source, nil
}

func yamlStrings(value *yaml.Node) ([]string, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Tag {
		case tagNull:
			return nil, nil
		case tagString:
			return []string{value.Value}, nil
		}

	case yaml.SequenceNode:
		lines := make([]string, 0, len(value.Content))

		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != tagString {
				return nil, errNotAString
			}

			lines = append(lines, item.Value)
		}

		return lines, nil
	}

	return nil, errNotAString
}
