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
	"bufio"
	"io"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

// Header is the parsed header section of an incoming mail.
type Header struct {
	header mail.Header
}

// ReadHeader parses the header section at the start of r. The body is not consumed beyond the
// blank line separating it from the header.
func ReadHeader(r io.Reader) (Header, error) {
	raw, err := textproto.ReadHeader(bufio.NewReader(r))
	if err != nil {
		return Header{}, err
	}

	return Header{mail.Header{Header: message.Header{Header: raw}}}, nil
}

// MessageID returns the Message-Id without angle brackets, or an empty string.
func (h Header) MessageID() string {
	id, err := h.header.MessageID()
	if err != nil {
		return ""
	}

	return id
}

// Subject returns the decoded subject, or the raw value if it cannot be decoded.
func (h Header) Subject() string {
	subject, err := h.header.Subject()
	if err != nil {
		return h.header.Get("Subject")
	}

	return subject
}

// Address returns the first address in the header field key (for example "Delivered-To"). An
// empty string is returned if the field is missing or cannot be parsed.
func (h Header) Address(key string) string {
	if !h.header.Has(key) {
		return ""
	}

	list, err := h.header.AddressList(key)
	if err != nil || len(list) == 0 {
		return ""
	}

	return list[0].Address
}
