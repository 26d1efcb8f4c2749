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

package database

import (
	"context"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/models"
)

// Journal records every delivery. It is optional and only backed by a database, if
// `journal.filename` is configured.
type Journal interface {
	// Enabled reports if deliveries are actually recorded.
	Enabled() bool
	// Record stores a delivery.
	Record(context.Context, *models.DeliveryEntity) error
	// Recent returns the latest deliveries, newest first.
	Recent(context.Context, int) ([]models.DeliveryEntity, error)
}

// OpenJournal opens the journal database if one is configured. The returned cleanup function
// closes the connection.
func OpenJournal(deliveryDao DeliveryDao) (Journal, func(), error) {
	if viper.GetString("journal.filename") == "" {
		return disabledJournal{}, func() {}, nil
	}

	conn, err := OpenConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		conn.Close()
	}

	return NewJournal(conn, deliveryDao), cleanup, nil
}

// NewJournal creates a journal backed by conn.
func NewJournal(conn Conn, deliveryDao DeliveryDao) Journal {
	return sqlJournal{
		conn:        conn,
		deliveryDao: deliveryDao,
	}
}

type sqlJournal struct {
	conn        Conn
	deliveryDao DeliveryDao
}

func (sqlJournal) Enabled() bool {
	return true
}

func (j sqlJournal) Record(ctx context.Context, delivery *models.DeliveryEntity) error {
	tx, err := j.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer tx.RollbackWith(func() {
		log.WarnContext(ctx).
			Str("filename", delivery.Filename).
			Msg("journal entry rolled back")
	})

	if err := j.deliveryDao.Insert(ctx, tx, delivery); err != nil {
		return err
	}

	return tx.Commit()
}

func (j sqlJournal) Recent(ctx context.Context, limit int) ([]models.DeliveryEntity, error) {
	return j.deliveryDao.FindRecent(ctx, j.conn, limit)
}

type disabledJournal struct{}

func (disabledJournal) Enabled() bool {
	return false
}

func (disabledJournal) Record(context.Context, *models.DeliveryEntity) error {
	return nil
}

func (disabledJournal) Recent(context.Context, int) ([]models.DeliveryEntity, error) {
	return nil, nil
}
