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

package models

import "database/sql"

// DeliveryEntity is the entity for the "deliveries" table.
type DeliveryEntity struct {
	ID          int64 `db:"id"`
	DeliveredAt int64 `db:"delivered_at"`
	// Recipient is the normalized recipient address.
	Recipient string `db:"recipient"`
	// Mailbox is not valid for mails delivered to the root maildir.
	Mailbox   sql.NullString `db:"mailbox"`
	RuleKind  string         `db:"rule_kind"`
	Rule      string         `db:"rule"`
	Filename  string         `db:"filename"`
	MessageID string         `db:"message_id"`
	Size      int64          `db:"size"`
}
