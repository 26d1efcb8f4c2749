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

// Package shell provides an interactive shell to try rules against addresses and to inspect the
// delivery journal.
package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/abiosoft/ishell"

	"github.com/lukasdietrich/sortmail/internal/database"
	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/rules"
)

// Shell is an interactive shell on top of the compiled rules.
type Shell struct {
	addressMap *rules.AddressMap
	journal    database.Journal
}

// NewShell creates a new shell instance.
func NewShell(addressMap *rules.AddressMap, journal database.Journal) *Shell {
	return &Shell{
		addressMap: addressMap,
		journal:    journal,
	}
}

// Run starts the shell read loop. It returns when the user exits the shell.
func (s *Shell) Run() {
	shell := ishell.New()
	s.setupShell(shell)
	shell.Run()
}

func (s *Shell) setupShell(shell *ishell.Shell) {
	shell.AddCmd(&ishell.Cmd{
		Name: "resolve",
		Help: "show the mailbox for one or more addresses",
		Func: s.wrapShellFunc(s.resolve),
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "mailboxes",
		Help: "list all configured mailboxes",
		Func: s.wrapShellFunc(s.mailboxes),
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "journal",
		Help: "show the latest deliveries",
		Func: s.wrapShellFunc(s.recentDeliveries),
	})
}

type shellContext struct {
	context.Context
	args []string
	out  io.Writer
}

func (c *shellContext) printf(format string, v ...interface{}) {
	fmt.Fprintf(c.out, format, v...)
}

func (s *Shell) wrapShellFunc(fn func(*shellContext) error) func(*ishell.Context) {
	return func(shell *ishell.Context) {
		ctx := shellContext{
			Context: log.WithCommand(context.Background(), "shell"),
			args:    shell.Args,
			out:     shellWriter{shell},
		}

		if err := fn(&ctx); err != nil {
			shell.Err(err)
		}
	}
}

type shellWriter struct {
	shell *ishell.Context
}

func (w shellWriter) Write(p []byte) (int, error) {
	w.shell.Print(string(p))
	return len(p), nil
}
