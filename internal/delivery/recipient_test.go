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

package delivery

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasdietrich/sortmail/internal/mails"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}

func header(t *testing.T, raw string) mails.Header {
	h, err := mails.ReadHeader(strings.NewReader(raw))
	require.NoError(t, err)
	return h
}

func TestRecipientFromDefaultVariable(t *testing.T) {
	source := NewRecipientSourceWithEnv(RecipientOptions{},
		env(map[string]string{"ORIGINAL_RECIPIENT": "  Boss@Co.com "}))

	recipient, err := source.Lookup(mails.Header{})
	require.NoError(t, err)
	assert.Equal(t, "boss@co.com", recipient)
}

func TestRecipientFromCustomVariable(t *testing.T) {
	source := NewRecipientSourceWithEnv(RecipientOptions{Variable: "RECIPIENT"},
		env(map[string]string{
			"ORIGINAL_RECIPIENT": "wrong@co.com",
			"RECIPIENT":          "right@co.com",
		}))

	recipient, err := source.Lookup(mails.Header{})
	require.NoError(t, err)
	assert.Equal(t, "right@co.com", recipient)
}

func TestRecipientMissing(t *testing.T) {
	source := NewRecipientSourceWithEnv(RecipientOptions{Variable: "RECIPIENT"}, env(nil))

	_, err := source.Lookup(mails.Header{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRecipient))
	assert.Contains(t, err.Error(), "RECIPIENT")
}

func TestRecipientBlankCountsAsMissing(t *testing.T) {
	source := NewRecipientSourceWithEnv(RecipientOptions{},
		env(map[string]string{"ORIGINAL_RECIPIENT": "  "}))

	_, err := source.Lookup(mails.Header{})
	assert.True(t, errors.Is(err, ErrMissingRecipient))
}

func TestRecipientHeaderFallback(t *testing.T) {
	source := NewRecipientSourceWithEnv(RecipientOptions{Header: "Delivered-To"}, env(nil))

	recipient, err := source.Lookup(header(t, "Delivered-To: <List-Eng@Co.com>\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "list-eng@co.com", recipient)
}

func TestRecipientVariableBeforeHeader(t *testing.T) {
	source := NewRecipientSourceWithEnv(RecipientOptions{Header: "Delivered-To"},
		env(map[string]string{"ORIGINAL_RECIPIENT": "boss@co.com"}))

	recipient, err := source.Lookup(header(t, "Delivered-To: other@co.com\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "boss@co.com", recipient)
}

func TestRecipientHeaderFallbackMissing(t *testing.T) {
	source := NewRecipientSourceWithEnv(RecipientOptions{Header: "X-Original-To"}, env(nil))

	_, err := source.Lookup(header(t, "Subject: nothing\r\n\r\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRecipient))
	assert.Contains(t, err.Error(), "X-Original-To")
}
