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

// Package rules compiles mailbox rules into an AddressMap, which decides the mailbox a recipient
// address is sorted into.
//
// Exact addresses always take precedence. Patterns are tried afterwards in the order they were
// declared and the first one matching anywhere within the address wins.
package rules

// Source is a single decoded mailbox entry of the configuration. Addresses and Patterns contain
// raw, possibly newline delimited, blobs.
type Source struct {
	Mailbox   string
	Addresses []string
	Patterns  []string
}

// Kind is the kind of rule that decided a Match.
type Kind int

const (
	// None means no rule matched.
	None Kind = iota
	// Exact means the address was configured verbatim.
	Exact
	// Pattern means a regular expression matched the address.
	Pattern
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Pattern:
		return "pattern"
	}

	return "none"
}

// Match is the outcome of resolving a single address.
type Match struct {
	Kind    Kind
	Mailbox string
	// Rule is the normalized address or pattern source that matched.
	Rule string
}

// Matched reports if a mailbox was found.
func (m Match) Matched() bool {
	return m.Kind != None
}
