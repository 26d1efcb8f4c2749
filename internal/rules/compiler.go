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

package rules

import (
	"regexp"

	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/mails"
)

// Compile builds an AddressMap from sources in their declaration order. If any pattern fails to
// compile, a *CompileError is returned and no AddressMap is built.
func Compile(sources []Source) (*AddressMap, error) {
	m := AddressMap{
		exact: make(map[string]int),
	}

	for _, source := range sources {
		patterns, err := compilePatterns(source)
		if err != nil {
			return nil, err
		}

		id := len(m.mailboxes)
		m.mailboxes = append(m.mailboxes, source.Mailbox)

		for _, address := range splitAll(source.Addresses) {
			if previous, ok := m.exact[address]; ok && previous != id {
				log.Warn().
					Str("address", address).
					Str("previous", m.mailboxes[previous]).
					Str("mailbox", source.Mailbox).
					Msg("address is declared for multiple mailboxes, the last one wins")
			}

			m.exact[address] = id
		}

		for _, pattern := range patterns {
			pattern.mailbox = id
			m.patterns = append(m.patterns, pattern)
		}
	}

	log.Debug().
		Int("mailboxes", len(m.mailboxes)).
		Int("addresses", len(m.exact)).
		Int("patterns", len(m.patterns)).
		Msg("rules compiled")

	return &m, nil
}

func compilePatterns(source Source) ([]patternRule, error) {
	var patterns []patternRule

	for _, pattern := range splitAll(source.Patterns) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &CompileError{
				Mailbox: source.Mailbox,
				Pattern: pattern,
				Err:     err,
			}
		}

		patterns = append(patterns, patternRule{re: re})
	}

	return patterns, nil
}

func splitAll(blobs []string) []string {
	var lines []string

	for _, blob := range blobs {
		lines = append(lines, mails.SplitLines(blob)...)
	}

	return lines
}
