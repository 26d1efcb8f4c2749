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
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/mails"
)

const defaultRecipientVariable = "ORIGINAL_RECIPIENT"

func init() {
	viper.SetDefault("recipient.env", defaultRecipientVariable)
	viper.SetDefault("recipient.header", "")
}

// RecipientOptions configure where the original recipient is taken from.
type RecipientOptions struct {
	// Variable is the name of the environment variable holding the recipient.
	Variable string
	// Header is a header field used if the variable is not set. An empty string disables the
	// fallback.
	Header string
}

// RecipientOptionsFromViper reads the recipient options from viper.
//
// `recipient.env` is the name of the environment variable.
// `recipient.header` is the optional header field, for example "Delivered-To".
func RecipientOptionsFromViper() RecipientOptions {
	return RecipientOptions{
		Variable: viper.GetString("recipient.env"),
		Header:   viper.GetString("recipient.header"),
	}
}

// RecipientSource looks up the original recipient of a mail.
type RecipientSource struct {
	// LookupEnv is used to read the environment. It has the same signature as os.LookupEnv.
	LookupEnv func(string) (string, bool)
	opts      RecipientOptions
}

// NewRecipientSource creates a new recipient source reading the process environment.
func NewRecipientSource(opts RecipientOptions) *RecipientSource {
	return NewRecipientSourceWithEnv(opts, os.LookupEnv)
}

// NewRecipientSourceWithEnv creates a new recipient source reading from lookupEnv.
func NewRecipientSourceWithEnv(opts RecipientOptions, lookupEnv func(string) (string, bool)) *RecipientSource {
	if opts.Variable == "" {
		opts.Variable = defaultRecipientVariable
	}

	return &RecipientSource{
		LookupEnv: lookupEnv,
		opts:      opts,
	}
}

// Lookup returns the normalized recipient. The environment variable takes precedence over the
// header field. A variable, that is set but blank, counts as missing.
func (s *RecipientSource) Lookup(header mails.Header) (string, error) {
	if value, ok := s.LookupEnv(s.opts.Variable); ok {
		if recipient := mails.Normalize(value); recipient != "" {
			return recipient, nil
		}
	}

	if s.opts.Header != "" {
		if recipient := mails.Normalize(header.Address(s.opts.Header)); recipient != "" {
			return recipient, nil
		}

		return "", fmt.Errorf("%w: neither environment variable %s nor header %s is set",
			ErrMissingRecipient, s.opts.Variable, s.opts.Header)
	}

	return "", fmt.Errorf("%w: environment variable %s is not set",
		ErrMissingRecipient, s.opts.Variable)
}
