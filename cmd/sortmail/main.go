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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/config"
	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/storage"
)

const usageText = `
Usage:
  sortmail [OPTIONS] [COMMAND]

  Read a mail from stdin and deliver it into the maildir folder of the mailbox
  its original recipient is configured for.

Version:
  %s

Commands:
  deliver   Deliver the mail read from stdin (default)
  shell     Start an interactive shell to try the rules

Options:
%s
`

var (
	// Version is set at compile-time.
	Version string
)

func main() {
	flags := config.NewFlagSet("sortmail")
	flags.Usage = printUsage(flags)

	if err := flags.Parse(os.Args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		log.Fatal().Err(err).Msg("invalid arguments")
	}

	switch commandName := flags.Arg(1); commandName {
	case "", "deliver":
		run(flags, "deliver")
	case "shell":
		run(flags, commandName)
	default:
		flags.Usage()
		os.Exit(2)
	}
}

func run(flags *pflag.FlagSet, commandName string) {
	if err := config.Setup(storage.NewFilesystem(), flags); err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	setupLogger()
	printConfig()
	runCommand(commandName)
}

type command interface {
	run(context.Context) error
}

func runCommand(commandName string) {
	var (
		cmd     command
		cleanup func()
		err     error
	)

	switch commandName {
	case "deliver":
		cmd, cleanup, err = newDeliverCommand()
	case "shell":
		cmd, cleanup, err = newShellCommand()
	}

	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the application")
	}

	ctx := log.WithCommand(context.Background(), commandName)
	err = cmd.run(ctx)
	cleanup()

	if err != nil {
		log.FatalContext(ctx).Err(err).Msg("command failed")
	}
}

func printUsage(flags *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, usageText,
			Version,
			flags.FlagUsages())
	}
}

func setupLogger() {
	if err := log.Setup(log.OptionsFromViper()); err != nil {
		log.Fatal().Err(err).Msg("could not setup logging")
	}
}

func printConfig() {
	keys := viper.AllKeys()
	sort.Strings(keys)

	for _, key := range keys {
		v, _ := json.Marshal(viper.Get(key))
		log.Trace().Str("key", key).RawJSON("value", v).Msg("config")
	}
}
