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

package shell

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lukasdietrich/sortmail/internal/mails"
)

const defaultJournalLimit = 10

var (
	errJournalDisabled = errors.New("the journal is disabled, set journal.filename to enable it")
)

func (s *Shell) resolve(ctx *shellContext) error {
	if len(ctx.args) == 0 {
		return errors.New("Usage: resolve ADDRESS...")
	}

	ctx.printf("\n")

	for _, arg := range ctx.args {
		address := mails.Normalize(arg)
		match := s.addressMap.Explain(address)

		if match.Matched() {
			ctx.printf("\t%s -> %q (%s %s)\n", address, match.Mailbox, match.Kind, match.Rule)
		} else {
			ctx.printf("\t%s -> no match, root maildir\n", address)
		}
	}

	ctx.printf("\n")
	return nil
}

func (s *Shell) mailboxes(ctx *shellContext) error {
	if len(ctx.args) != 0 {
		return errors.New("Usage: mailboxes")
	}

	mailboxes := s.addressMap.Mailboxes()

	ctx.printf("\n(%d) Mailboxes:\n", len(mailboxes))
	for _, mailbox := range mailboxes {
		ctx.printf("\t%q\n", mailbox)
	}
	ctx.printf("\n")

	return nil
}

func (s *Shell) recentDeliveries(ctx *shellContext) error {
	limit, err := parseLimit(ctx.args)
	if err != nil {
		return err
	}

	if !s.journal.Enabled() {
		return errJournalDisabled
	}

	deliveries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return err
	}

	ctx.printf("\n(%d) Deliveries:\n", len(deliveries))
	for _, delivery := range deliveries {
		mailbox := "-"
		if delivery.Mailbox.Valid {
			mailbox = strconv.Quote(delivery.Mailbox.String)
		}

		ctx.printf("\t%s  %s -> %s  %s\n",
			time.Unix(delivery.DeliveredAt, 0).UTC().Format(time.RFC3339),
			delivery.Recipient,
			mailbox,
			delivery.Filename)
	}
	ctx.printf("\n")

	return nil
}

func parseLimit(args []string) (int, error) {
	switch len(args) {
	case 0:
		return defaultJournalLimit, nil
	case 1:
		limit, err := strconv.Atoi(args[0])
		if err != nil || limit < 1 {
			return 0, fmt.Errorf("invalid number of deliveries %q", args[0])
		}

		return limit, nil
	default:
		return 0, errors.New("Usage: journal [N]")
	}
}
