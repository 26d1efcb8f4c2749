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
	"errors"
	"fmt"
)

var (
	// ErrEmptyMessage is returned if the incoming mail has no content at all.
	ErrEmptyMessage = errors.New("delivery: empty incoming message")
	// ErrMissingRecipient is returned if the original recipient is not known.
	ErrMissingRecipient = errors.New("delivery: missing recipient")
	// ErrStoreWrite is returned if the mail could not be written to the maildir.
	ErrStoreWrite = errors.New("delivery: could not save mail to maildir")
	// ErrInvalidMailbox is returned if a mailbox name cannot be used as a maildir folder.
	ErrInvalidMailbox = errors.New("delivery: invalid mailbox name")
	// ErrNoMaildir is returned if no root maildir is configured.
	ErrNoMaildir = errors.New("delivery: no root maildir")
)

// StoreError describes a failed write into a maildir folder. It matches ErrStoreWrite.
type StoreError struct {
	Directory string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrStoreWrite, e.Directory, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports ErrStoreWrite as target.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreWrite
}
