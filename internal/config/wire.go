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
	"errors"

	"github.com/google/wire"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/rules"
)

// WireSet provides the compiled address map.
var WireSet = wire.NewSet(
	NewAddressMap,
)

var errNoFilename = errors.New("config: no rule file given")

// NewAddressMap loads the rule file configured as `config` and compiles it.
func NewAddressMap(fs afero.Fs) (*rules.AddressMap, error) {
	filename := viper.GetString("config")
	if filename == "" {
		return nil, &Error{Err: errNoFilename}
	}

	sources, err := LoadRules(fs, filename)
	if err != nil {
		return nil, err
	}

	return rules.Compile(sources)
}
