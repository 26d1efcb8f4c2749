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

	"github.com/stretchr/testify/mock"

	"github.com/lukasdietrich/sortmail/internal/models"
)

// MockJournal is a mock implementation of Journal.
type MockJournal struct {
	mock.Mock
}

// Enabled provides a mock function with given fields:
func (_m *MockJournal) Enabled() bool {
	ret := _m.Called()

	var r0 bool
	if rf, ok := ret.Get(0).(func() bool); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// Record provides a mock function with given fields: _a0, _a1
func (_m *MockJournal) Record(_a0 context.Context, _a1 *models.DeliveryEntity) error {
	ret := _m.Called(_a0, _a1)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.DeliveryEntity) error); ok {
		r0 = rf(_a0, _a1)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Recent provides a mock function with given fields: _a0, _a1
func (_m *MockJournal) Recent(_a0 context.Context, _a1 int) ([]models.DeliveryEntity, error) {
	ret := _m.Called(_a0, _a1)

	var r0 []models.DeliveryEntity
	if rf, ok := ret.Get(0).(func(context.Context, int) []models.DeliveryEntity); ok {
		r0 = rf(_a0, _a1)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]models.DeliveryEntity)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(_a0, _a1)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
