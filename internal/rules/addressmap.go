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

import "regexp"

// AddressMap is the compiled, read-only set of rules. It is safe for concurrent use.
type AddressMap struct {
	// mailboxes holds every mailbox name once, rules refer to it by index.
	mailboxes []string
	exact     map[string]int
	patterns  []patternRule
}

type patternRule struct {
	re      *regexp.Regexp
	mailbox int
}

// Resolve returns the mailbox owning address. The address is expected to be normalized
// already (see mails.Normalize).
func (m *AddressMap) Resolve(address string) (string, bool) {
	match := m.Explain(address)
	return match.Mailbox, match.Matched()
}

// Explain resolves address like Resolve, but also reports the rule that decided.
func (m *AddressMap) Explain(address string) Match {
	if id, ok := m.exact[address]; ok {
		return Match{
			Kind:    Exact,
			Mailbox: m.mailboxes[id],
			Rule:    address,
		}
	}

	for _, pattern := range m.patterns {
		if pattern.re.MatchString(address) {
			return Match{
				Kind:    Pattern,
				Mailbox: m.mailboxes[pattern.mailbox],
				Rule:    pattern.re.String(),
			}
		}
	}

	return Match{Kind: None}
}

// Mailboxes returns the names of all mailboxes in declaration order.
func (m *AddressMap) Mailboxes() []string {
	return append([]string(nil), m.mailboxes...)
}
