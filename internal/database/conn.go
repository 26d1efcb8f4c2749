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
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/log"
)

const (
	driverName     = "sqlite3"
	migrationTable = "journal_migrations"
)

//go:embed migrations/*.sql
var migrationFolder embed.FS

func init() {
	migrate.SetTable(migrationTable)

	viper.SetDefault("journal.filename", "")
	viper.SetDefault("journal.journalmode", "wal")
}

// Queryer is an interface for both transactions and the database connection itself.
type Queryer interface {
	sqlx.ExtContext
}

// Tx is a database transaction, which can be rolled back or committed.
type Tx interface {
	Queryer
	Commit() error
	Rollback() error
	RollbackWith(func()) error
}

type tx struct {
	*sqlx.Tx
}

func (t tx) RollbackWith(callback func()) error {
	err := t.Rollback()

	if !errors.Is(err, sql.ErrTxDone) {
		callback()
	}

	return err
}

// Conn is a connection to the sql database.
type Conn interface {
	Queryer
	Begin(context.Context) (Tx, error)
	Close() error
}

type conn struct {
	*sqlx.DB
}

func (c conn) Begin(ctx context.Context) (Tx, error) {
	rawTx, err := c.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return tx{rawTx}, nil
}

// OpenConnection opens an sqlite3 database connection using the configuration from viper and
// applies all pending migrations.
//
// `journal.filename` is the filename for the sqlite database.
// `journal.journalmode` will be used for the journal_mode pragma.
func OpenConnection() (Conn, error) {
	sqliteVersion, _, _ := sqlite3.Version()

	dsn := createDataSourceName()
	log.Debug().
		Str("driver", driverName).
		Str("version", sqliteVersion).
		Str("dataSourceName", dsn).
		Msg("connecting to database")

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// Only one mail is sorted per process. A single connection also keeps ":memory:" databases
	// alive between queries.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return conn{db}, nil
}

func createDataSourceName() string {
	opts := make(url.Values)
	opts.Add("_journal_mode", viper.GetString("journal.journalmode"))

	dsn := url.URL{
		Scheme:   "file",
		Opaque:   viper.GetString("journal.filename"),
		RawQuery: opts.Encode(),
	}

	return dsn.String()
}

func applyMigrations(db *sqlx.DB) error {
	files, err := fs.Sub(migrationFolder, "migrations")
	if err != nil {
		return fmt.Errorf("could not load migration folder: %w", err)
	}

	source := migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(files),
	}

	n, err := migrate.Exec(db.DB, driverName, &source, migrate.Up)
	if err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	if n > 0 {
		log.Info().
			Int("migrations", n).
			Msg("database migrations applied")
	}

	return nil
}
