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

	"github.com/lukasdietrich/sortmail/internal/models"
)

// DeliveryDao is a data access object for the delivery journal.
type DeliveryDao interface {
	// Insert inserts a new delivery.
	Insert(context.Context, Queryer, *models.DeliveryEntity) error
	// FindRecent returns the latest deliveries, newest first.
	FindRecent(context.Context, Queryer, int) ([]models.DeliveryEntity, error)
}

// deliveryDao is the sqlite implementation of DeliveryDao.
type deliveryDao struct{}

// NewDeliveryDao creates a new DeliveryDao.
func NewDeliveryDao() DeliveryDao {
	return deliveryDao{}
}

func (deliveryDao) Insert(ctx context.Context, q Queryer, delivery *models.DeliveryEntity) error {
	const query = `
		insert into "deliveries" (
			"delivered_at" ,
			"recipient" ,
			"mailbox" ,
			"rule_kind" ,
			"rule" ,
			"filename" ,
			"message_id" ,
			"size"
		) values (
			:delivered_at ,
			:recipient ,
			:mailbox ,
			:rule_kind ,
			:rule ,
			:filename ,
			:message_id ,
			:size
		) ;
	`

	result, err := execNamed(ctx, q, query, delivery)
	if err != nil {
		return err
	}

	if err := ensureRowsAffected(result); err != nil {
		return err
	}

	delivery.ID, err = result.LastInsertId()
	return err
}

func (deliveryDao) FindRecent(
	ctx context.Context,
	q Queryer,
	limit int,
) ([]models.DeliveryEntity, error) {
	const query = `
		select *
		from "deliveries"
		order by "delivered_at" desc, "id" desc
		limit $1 ;
	`

	var deliverySlice []models.DeliveryEntity

	if err := selectSlice(ctx, q, &deliverySlice, query, limit); err != nil {
		return nil, err
	}

	return deliverySlice, nil
}
