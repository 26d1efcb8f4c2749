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
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/log"
)

const envPrefix = "SORTMAIL"

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"config":        "config",
	"dry-run":       "dryrun",
	"maildir":       "maildir",
	"recipient-env": "recipient.env",
	"log-level":     "log.level",
}

// NewFlagSet creates the command line flags of sortmail.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringP("config", "c", "", "Path to the rule file (toml or yaml)")
	flags.BoolP("dry-run", "n", false, "Process the mail but do not actually deliver it")
	flags.StringP("maildir", "M", "", "Use an alternate root maildir (default: $HOME/Maildir)")
	flags.StringP("recipient-env", "R", "",
		"Environment variable containing the original recipient (default: ORIGINAL_RECIPIENT)")
	flags.StringP("log-level", "l", "", "Log level (trace, debug, info, warn, error)")

	return flags
}

// Setup configures viper. Settings are taken from the flags, the environment (prefixed with
// SORTMAIL_), the settings of the rule file and the registered defaults, in that order. Mailbox
// tables of the rule file never become settings.
func Setup(fs afero.Fs, flags *pflag.FlagSet) error {
	viper.SetTypeByDefaultValue(true)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix(envPrefix)

	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	filename := viper.GetString("config")
	if filename == "" {
		return nil
	}

	log.Debug().Str("filename", filename).Msg("loading settings")

	file, err := Load(fs, filename)
	if err != nil {
		return err
	}

	return viper.MergeConfigMap(file.Settings)
}
