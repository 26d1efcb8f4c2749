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

package crypto

import (
	"crypto/rand"
	"encoding/base32"
	"io"
	"strings"
)

// byteLength is the amount of random bytes per id. 10 bytes encode to 16 base32 characters
// without padding.
const byteLength = 10

// encoding only produces characters, that are safe to use in maildir filenames. Neither "/"
// nor ":" may appear in the unique part of a name.
var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// IDGenerator is a service to generate unique string IDs.
type IDGenerator interface {
	// GenerateID generates a new id.
	GenerateID() (string, error)
}

// NewIDGenerator creates a new id generator reading from crypto/rand.
func NewIDGenerator() IDGenerator {
	return randomIDGenerator{random: rand.Reader}
}

type randomIDGenerator struct {
	random io.Reader
}

func (r randomIDGenerator) GenerateID() (string, error) {
	b := make([]byte, byteLength)

	if _, err := io.ReadFull(r.random, b); err != nil {
		return "", err
	}

	return strings.ToLower(encoding.EncodeToString(b)), nil
}
