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

package mails

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims surrounding whitespace and lowercases an address or pattern, so that
// configured rules and queried recipients compare symmetrically.
func Normalize(raw string) string {
	// A cases.Caser is stateful and must not be shared.
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

// SplitLines splits a newline delimited blob into normalized lines. Empty lines are dropped.
func SplitLines(blob string) []string {
	var lines []string

	for _, line := range strings.Split(blob, "\n") {
		if normalized := Normalize(line); len(normalized) > 0 {
			lines = append(lines, normalized)
		}
	}

	return lines
}
